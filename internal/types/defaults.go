package types

import "strings"

const (
	DefaultArch    = "amd64"
	DefaultSDKArch = "amd64"
)

var buildTypeArch = map[string]string{
	"amd64":   "amd64",
	"i386":    "i386",
	"armel":   "armel",
	"armhf":   "armhf",
	"aarch64": "arm64",
	"arm64":   "arm64",
	"powerpc": "powerpc",
	"ppc64el": "ppc64el",
	"riscv64": "riscv64",
	"s390x":   "s390x",
}

// ArchForBuildType maps a descriptor build type to a Debian architecture.
// Unknown build types are returned as-is.
func ArchForBuildType(buildType string) string {
	normalized := strings.ToLower(strings.TrimSpace(buildType))
	if normalized == "" {
		return DefaultArch
	}
	if arch, ok := buildTypeArch[normalized]; ok {
		return arch
	}
	return normalized
}
