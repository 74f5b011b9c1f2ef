package core

import (
	"context"
	"fmt"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"xbuildenv/internal/ports"
	"xbuildenv/internal/types"
)

const localMirrorAddr = "http://127.0.0.1:8080"

type MirrorResolver struct {
	LocalKeys  ports.LocalKeyPort
	KeyFetcher ports.KeyFetcherPort
}

func NewMirrorResolver(localKeys ports.LocalKeyPort, fetcher ports.KeyFetcherPort) MirrorResolver {
	return MirrorResolver{LocalKeys: localKeys, KeyFetcher: fetcher}
}

// LocalMirrorEntry is the source line for the build directory's own repo.
func LocalMirrorEntry(buildDir string, suite string) types.MirrorEntry {
	return types.MirrorEntry{
		URI:        fmt.Sprintf("%s%s/repo", localMirrorAddr, buildDir),
		Suite:      suite,
		Components: []string{"main"},
	}
}

// Resolve derives the APT sources and keys the chroot of variant needs.
// Errors reading the local repo key or fetching a key URL are returned
// unchanged.
func (r MirrorResolver) Resolve(ctx context.Context, desc types.Descriptor, buildDir string, variant types.Variant) (types.MirrorSet, error) {
	prj := desc.Project
	if prj == nil {
		return placeholder("No Project"), nil
	}
	if !prj.HasMirror() {
		return placeholder("No mirrors configured"), nil
	}
	assert.NotEmpty(ctx, buildDir, "build directory must be set")

	suite := prj.SuiteName()
	set := types.MirrorSet{Entries: []types.MirrorEntry{LocalMirrorEntry(buildDir, suite)}}
	localKey, err := r.LocalKeys.ReadRepoKey(buildDir)
	if err != nil {
		return types.MirrorSet{}, err
	}
	set.Keys = append(set.Keys, localKey)

	if prj.HasPrimaryHost() {
		set.Entries = append(set.Entries, primaryEntries(prj, suite, variant)...)
	}

	for _, url := range prj.MirrorURLs() {
		options := trimOptions(url.Options)
		if binary := strings.TrimSpace(url.Binary); binary != "" {
			set.Entries = append(set.Entries, types.MirrorEntry{Options: options, URI: binary})
		}
		if types.HasTrustOverride(options) {
			continue
		}
		if strings.TrimSpace(url.RawKey) != "" {
			set.Keys = append(set.Keys, ExtractKeyBody(url.RawKey))
		}
		if keyURL := strings.TrimSpace(url.Key); keyURL != "" {
			key, err := r.KeyFetcher.FetchKey(ctx, types.ReplaceLocalMachine(keyURL))
			if err != nil {
				return types.MirrorSet{}, err
			}
			set.Keys = append(set.Keys, key)
		}
	}

	if prj.HasCDROM() {
		set.Entries = append(set.Entries, types.MirrorEntry{
			URI:        "copy:///cdrom/targetrepo",
			Suite:      suite,
			Components: []string{"main", "added"},
		})
	}

	log.Ctx(ctx).Debug().
		Str("build_dir", buildDir).
		Str("variant", string(variant)).
		Int("lines", len(set.Entries)).
		Int("keys", len(set.Keys)).
		Msg("mirrors resolved")
	return set, nil
}

// primaryEntries builds the primary mirror lines. Each line gets its own
// option list so the cross line never leaks into the native one.
func primaryEntries(prj *types.Project, suite string, variant types.Variant) []types.MirrorEntry {
	global := trimOptions(prj.Mirror.Options)

	nativeOpts := append(append([]string(nil), global...), "arch="+prj.Arch())
	entries := []types.MirrorEntry{{
		Options:    nativeOpts,
		URI:        prj.PrimaryMirror(false),
		Suite:      suite,
		Components: []string{"main"},
	}}
	if variant != types.VariantCross {
		return entries
	}

	crossOpts := append(append([]string(nil), global...), "arch="+prj.SDKArch())
	return append(entries, types.MirrorEntry{
		Options:    crossOpts,
		URI:        prj.PrimaryMirror(true),
		Suite:      suite,
		Components: []string{"main"},
	})
}

// ExtractKeyBody takes the raw-key node text, drops its first and last line
// and left-trims spaces and tabs from the remaining lines. In an indented
// descriptor the dropped lines are the whitespace around the armored block.
func ExtractKeyBody(block string) string {
	block = strings.TrimSuffix(strings.ReplaceAll(block, "\r\n", "\n"), "\n")
	lines := strings.Split(block, "\n")
	if len(lines) < 3 {
		return ""
	}
	body := lines[1 : len(lines)-1]
	trimmed := make([]string, 0, len(body))
	for _, line := range body {
		trimmed = append(trimmed, strings.TrimLeft(line, " \t"))
	}
	return strings.Join(trimmed, "\n")
}

func trimOptions(options []string) []string {
	var out []string
	for _, opt := range options {
		if value := strings.Trim(opt, " \t\n"); value != "" {
			out = append(out, value)
		}
	}
	return out
}

func placeholder(comment string) types.MirrorSet {
	return types.MirrorSet{Entries: []types.MirrorEntry{{Comment: comment}}}
}
