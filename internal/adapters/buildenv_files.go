package adapters

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"xbuildenv/internal/ports"
	"xbuildenv/internal/types"
)

type BuildEnvFileAdapter struct{}

func NewBuildEnvFileAdapter() BuildEnvFileAdapter {
	return BuildEnvFileAdapter{}
}

func (a BuildEnvFileAdapter) WriteBuilderConfig(buildDir string, variant types.Variant, content string) (string, error) {
	if err := requireBuildDir(buildDir); err != nil {
		return "", err
	}
	path := types.LayoutFor(variant).ConfigPath(buildDir)
	if err := writeFile(path, content, 0644); err != nil {
		return "", err
	}
	return path, nil
}

func (a BuildEnvFileAdapter) WriteAptConf(buildDir string, content string) (string, error) {
	if err := requireBuildDir(buildDir); err != nil {
		return "", err
	}
	path := types.AptConfPath(buildDir)
	if err := writeFile(path, content, 0644); err != nil {
		return "", err
	}
	return path, nil
}

func (a BuildEnvFileAdapter) WriteHooks(buildDir string, variant types.Variant, hooks []ports.HookScript) ([]string, error) {
	if err := requireBuildDir(buildDir); err != nil {
		return nil, err
	}
	dir := types.LayoutFor(variant).HookDir(buildDir)
	paths := make([]string, 0, len(hooks))
	for _, hook := range hooks {
		path := filepath.Join(dir, hook.Name)
		if err := writeFile(path, hook.Content, 0755); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func requireBuildDir(buildDir string) error {
	if strings.TrimSpace(buildDir) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("build directory is empty")
	}
	return nil
}

// writeFile creates the parent directory and writes content with perm.
func writeFile(path string, content string, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create directory for " + path).
			WithCause(err)
	}
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write " + path).
			WithCause(err)
	}
	// WriteFile keeps the mode of an existing file; hooks must be executable.
	if err := os.Chmod(path, perm); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to set mode of " + path).
			WithCause(err)
	}
	return nil
}

var _ ports.BuildEnvWriterPort = BuildEnvFileAdapter{}
