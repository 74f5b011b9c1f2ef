package app

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"xbuildenv/internal/core"
	"xbuildenv/internal/types"
)

// Mirrors resolves the APT sources and keys of one variant without writing
// anything.
func (s Service) Mirrors(ctx context.Context, req MirrorsRequest) (MirrorsResult, error) {
	if err := requirePaths(req.DescriptorPath, req.BuildDir); err != nil {
		return MirrorsResult{}, err
	}
	desc, err := s.Descriptors.Load(req.DescriptorPath)
	if err != nil {
		return MirrorsResult{}, err
	}
	variant := types.VariantNative
	if req.Cross {
		variant = types.VariantCross
	}
	resolver := core.NewMirrorResolver(s.LocalKeys, s.KeyFetcher)
	set, err := resolver.Resolve(ctx, desc, strings.TrimSpace(req.BuildDir), variant)
	if err != nil {
		return MirrorsResult{}, err
	}

	result := MirrorsResult{Variant: variant, Lines: set.Lines()}
	for _, key := range set.Keys {
		summary := KeySummary{Armored: key}
		fingerprints, err := s.Keyring.Fingerprints(key)
		if err != nil {
			// local test keys and hand-written blocks may not parse
			log.Ctx(ctx).Debug().Err(err).Msg("key not readable as armored keyring")
		} else {
			summary.Fingerprints = fingerprints
		}
		result.Keys = append(result.Keys, summary)
	}
	return result, nil
}
