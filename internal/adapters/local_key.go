package adapters

import (
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"xbuildenv/internal/ports"
	"xbuildenv/internal/types"
)

// LocalRepoKeyAdapter reads the public key generated for the build
// directory's local repository.
type LocalRepoKeyAdapter struct{}

func NewLocalRepoKeyAdapter() LocalRepoKeyAdapter {
	return LocalRepoKeyAdapter{}
}

func (a LocalRepoKeyAdapter) ReadRepoKey(buildDir string) (string, error) {
	path := filepath.Join(buildDir, types.LocalRepoKeyPath)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read local repo key " + path).
			WithCause(err)
	}
	return string(data), nil
}

var _ ports.LocalKeyPort = LocalRepoKeyAdapter{}
