package types

import (
	"encoding/xml"
	"strings"
)

// LocalMachine is the placeholder descriptors use for the machine running the
// build. Inside the chroot the host is reachable through the QEMU user-mode
// gateway address.
const (
	LocalMachine        = "LOCALMACHINE"
	LocalMachineGateway = "10.0.2.2"
)

// ReplaceLocalMachine rewrites every LOCALMACHINE token in value to the
// gateway address.
func ReplaceLocalMachine(value string) string {
	return strings.ReplaceAll(value, LocalMachine, LocalMachineGateway)
}

// Marker is an element whose presence alone carries meaning, such as
// <noauth/>.
type Marker struct{}

// Descriptor is a decoded project descriptor. The root element name is not
// checked; only its project and target children are read.
type Descriptor struct {
	XMLName xml.Name
	Project *Project `xml:"project"`
	Target  *Target  `xml:"target"`
}

type Project struct {
	Name       string     `xml:"name"`
	BuildType  string     `xml:"buildtype"`
	Suite      string     `xml:"suite"`
	Mirror     *Mirror    `xml:"mirror"`
	NoAuthFlag *Marker    `xml:"noauth"`
	BuildImage BuildImage `xml:"buildimage"`
}

type BuildImage struct {
	Arch    string `xml:"arch"`
	SDKArch string `xml:"sdkarch"`
}

type Mirror struct {
	PrimaryHost  string      `xml:"primary_host"`
	PrimaryPath  string      `xml:"primary_path"`
	PrimaryProto string      `xml:"primary_proto"`
	Host         string      `xml:"host"`
	Options      []string    `xml:"options>option"`
	URLs         []MirrorURL `xml:"url-list>url"`
	CDROM        *string     `xml:"cdrom"`
}

// MirrorURL is one additional mirror from the url-list.
type MirrorURL struct {
	Binary  string   `xml:"binary"`
	Source  string   `xml:"source"`
	Options []string `xml:"options>option"`
	Key     string   `xml:"key"`
	RawKey  string   `xml:"raw-key"`
}

type Target struct {
	DebootstrapVariant *DebootstrapVariant `xml:"debootstrapvariant"`
}

type DebootstrapVariant struct {
	Value       string `xml:",chardata"`
	IncludePkgs string `xml:"includepkgs,attr"`
}

// Includes reports whether pkg is named in the includepkgs attribute.
func (v *DebootstrapVariant) Includes(pkg string) bool {
	if v == nil {
		return false
	}
	return strings.Contains(v.IncludePkgs, pkg)
}

func (p *Project) HasMirror() bool {
	return p != nil && p.Mirror != nil
}

func (p *Project) HasPrimaryHost() bool {
	return p.HasMirror() && strings.TrimSpace(p.Mirror.PrimaryHost) != ""
}

func (p *Project) HasCDROM() bool {
	return p.HasMirror() && p.Mirror.CDROM != nil
}

// NoAuth reports whether the project disables repository authentication.
func (p *Project) NoAuth() bool {
	return p != nil && p.NoAuthFlag != nil
}

// SuiteName returns the trimmed target suite.
func (p *Project) SuiteName() string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(p.Suite)
}

// Arch returns the target architecture, falling back to the default for the
// project's build type.
func (p *Project) Arch() string {
	if p == nil {
		return DefaultArch
	}
	if arch := strings.TrimSpace(p.BuildImage.Arch); arch != "" {
		return arch
	}
	return ArchForBuildType(p.BuildType)
}

// SDKArch returns the architecture of the host sysroot used by cross builds.
func (p *Project) SDKArch() string {
	if p == nil {
		return DefaultSDKArch
	}
	if arch := strings.TrimSpace(p.BuildImage.SDKArch); arch != "" {
		return arch
	}
	return DefaultSDKArch
}

// PrimaryMirror returns the primary mirror URL. With hostSysroot set and a
// host mirror configured, the host mirror is returned instead. An empty
// string means no primary host is configured.
func (p *Project) PrimaryMirror(hostSysroot bool) string {
	if !p.HasPrimaryHost() {
		return ""
	}
	m := p.Mirror
	if hostSysroot {
		if host := strings.TrimSpace(m.Host); host != "" {
			return ReplaceLocalMachine(host)
		}
	}
	proto := strings.TrimSpace(m.PrimaryProto)
	if proto == "" {
		proto = "http"
	}
	url := proto + "://" + strings.Trim(strings.TrimSpace(m.PrimaryHost), "/")
	if path := strings.Trim(strings.TrimSpace(m.PrimaryPath), "/"); path != "" {
		url += "/" + path
	}
	return ReplaceLocalMachine(url)
}

// PrimaryProto returns the lower-cased primary mirror protocol.
func (p *Project) PrimaryProto() string {
	if !p.HasMirror() {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(p.Mirror.PrimaryProto))
}

// MirrorURLs returns the additional mirrors in document order.
func (p *Project) MirrorURLs() []MirrorURL {
	if !p.HasMirror() {
		return nil
	}
	return p.Mirror.URLs
}

// Variant returns the debootstrap variant element, or nil.
func (d Descriptor) Variant() *DebootstrapVariant {
	if d.Target == nil {
		return nil
	}
	return d.Target.DebootstrapVariant
}
