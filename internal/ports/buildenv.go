package ports

import "xbuildenv/internal/types"

// HookScript is one executable pbuilder hook.
type HookScript struct {
	Name    string
	Content string
}

// BuildEnvWriterPort writes generated chroot-builder files under a build
// directory. Files are created or overwritten; each method returns the paths
// it wrote.
type BuildEnvWriterPort interface {
	WriteBuilderConfig(buildDir string, variant types.Variant, content string) (string, error)
	WriteAptConf(buildDir string, content string) (string, error)
	WriteHooks(buildDir string, variant types.Variant, hooks []HookScript) ([]string, error)
}
