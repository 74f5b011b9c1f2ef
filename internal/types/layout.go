package types

import "path/filepath"

const (
	LocalRepoKeyPath = "repo/repo.pub"
	AptConfDir       = "aptconfdir/apt.conf.d"
	AptConfName      = "16allowuntrusted"
	CCacheDir        = "ccache"
)

// VariantLayout holds everything that differs between the native and the
// cross builder. The two layouts are kept separate because the differences
// are not uniform.
type VariantLayout struct {
	Variant           Variant
	ConfigName        string
	PbuilderDir       string
	SatisfyDependsCmd string
	// ForeignArchBootstrap enables the qemu-debootstrap switch when the
	// target architecture differs from the build host.
	ForeignArchBootstrap bool
	// HostSysrootMirror selects the host-sysroot primary mirror for
	// MIRRORSITE.
	HostSysrootMirror bool
}

var (
	NativeLayout = VariantLayout{
		Variant:              VariantNative,
		ConfigName:           "pbuilderrc",
		PbuilderDir:          "pbuilder",
		SatisfyDependsCmd:    "/usr/lib/pbuilder/pbuilder-satisfydepends-experimental",
		ForeignArchBootstrap: true,
	}
	CrossLayout = VariantLayout{
		Variant:           VariantCross,
		ConfigName:        "cross_pbuilderrc",
		PbuilderDir:       "pbuilder_cross",
		SatisfyDependsCmd: "/usr/lib/pbuilder/pbuilder-satisfydepends-apt",
		HostSysrootMirror: true,
	}
)

// LayoutFor returns the layout of variant. Anything but cross is native.
func LayoutFor(variant Variant) VariantLayout {
	if variant == VariantCross {
		return CrossLayout
	}
	return NativeLayout
}

func (l VariantLayout) ConfigPath(buildDir string) string {
	return filepath.Join(buildDir, l.ConfigName)
}

func (l VariantLayout) BaseDir(buildDir string) string {
	return filepath.Join(buildDir, l.PbuilderDir)
}

func (l VariantLayout) HookDir(buildDir string) string {
	return filepath.Join(buildDir, l.PbuilderDir, "hooks.d")
}

func AptConfPath(buildDir string) string {
	return filepath.Join(buildDir, AptConfDir, AptConfName)
}
