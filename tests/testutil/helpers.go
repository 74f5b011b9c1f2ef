// Package testutil provides shared test helpers used across integration,
// e2e, and unit test packages.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRepoKey is an armored key block written as the local repo key of
// generated build directories.
const TestRepoKey = "-----BEGIN PGP PUBLIC KEY BLOCK-----\n\nmDMEZQAAABYJKwYBBAHaRw8BAQdA\n-----END PGP PUBLIC KEY BLOCK-----\n"

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// NewBuildDir creates an empty build directory holding only the local repo
// key, the state the image builder leaves before pbuilder is configured.
func NewBuildDir(t *testing.T) string {
	t.Helper()
	buildDir := filepath.Join(t.TempDir(), "build")
	require.NoError(t, os.MkdirAll(filepath.Join(buildDir, "repo"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(buildDir, "repo", "repo.pub"), []byte(TestRepoKey), 0o644))
	return buildDir
}
