package core

import (
	"context"
	"errors"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"xbuildenv/internal/ports"
	"xbuildenv/internal/types"
)

const testRepoKey = "-----BEGIN PGP PUBLIC KEY BLOCK-----\nlocal\n-----END PGP PUBLIC KEY BLOCK-----\n"

type fakeLocalKeys struct {
	key string
	err error
}

func (f fakeLocalKeys) ReadRepoKey(string) (string, error) {
	return f.key, f.err
}

type fakeKeyFetcher struct {
	keys    map[string]string
	err     error
	fetched []string
}

func (f *fakeKeyFetcher) FetchKey(_ context.Context, url string) (string, error) {
	f.fetched = append(f.fetched, url)
	if f.err != nil {
		return "", f.err
	}
	key, ok := f.keys[url]
	if !ok {
		return "", errors.New("unexpected url " + url)
	}
	return key, nil
}

type fakePreprocessor struct {
	err    error
	closed bool
}

type fakeExpanded struct {
	path   string
	parent *fakePreprocessor
}

func (f fakeExpanded) Path() string { return f.path }

func (f fakeExpanded) Close() error {
	f.parent.closed = true
	return nil
}

func (f *fakePreprocessor) Preprocess(_ context.Context, path string) (ports.PreprocessedFile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return fakeExpanded{path: path, parent: f}, nil
}

type fakeEngine struct {
	structural []string
	err        error
	called     bool
}

func (f *fakeEngine) Validate(context.Context, []byte) ([]string, error) {
	f.called = true
	return f.structural, f.err
}

type fakeDescriptors struct {
	desc types.Descriptor
	err  error
}

func (f fakeDescriptors) Load(string) (types.Descriptor, error) { return f.desc, f.err }

func (f fakeDescriptors) Decode([]byte) (types.Descriptor, error) { return f.desc, f.err }

func newTestResolver(fetcher *fakeKeyFetcher) MirrorResolver {
	if fetcher == nil {
		fetcher = &fakeKeyFetcher{}
	}
	return NewMirrorResolver(fakeLocalKeys{key: testRepoKey}, fetcher)
}

func preprocessFailure() error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg("elbe preprocess").
		WithCause(errors.New("exit status 1"))
}

func writeTempDescriptor(dir string, content string) (string, error) {
	path := dir + "/project.xml"
	return path, os.WriteFile(path, []byte(content), 0644)
}

func cdromPath(path string) *string {
	return &path
}

func baseProject() *types.Project {
	return &types.Project{
		Name:      "demo",
		BuildType: "armhf",
		Suite:     "bookworm",
		Mirror: &types.Mirror{
			PrimaryHost:  "deb.debian.org",
			PrimaryPath:  "/debian",
			PrimaryProto: "http",
		},
		BuildImage: types.BuildImage{Arch: "armhf", SDKArch: "amd64"},
	}
}
