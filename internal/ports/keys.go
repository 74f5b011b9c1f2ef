package ports

import "context"

// LocalKeyPort reads the signing key of the build directory's local repo.
type LocalKeyPort interface {
	ReadRepoKey(buildDir string) (string, error)
}

// KeyFetcherPort retrieves armored key text from a descriptor key URL.
type KeyFetcherPort interface {
	FetchKey(ctx context.Context, url string) (string, error)
}

// KeyringPort inspects armored OpenPGP key material.
type KeyringPort interface {
	// Fingerprints returns the upper-case hex fingerprint of every primary
	// key in armored.
	Fingerprints(armored string) ([]string, error)
}
