package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"xbuildenv/internal/core"
	"xbuildenv/internal/types"
)

// Configure writes the pbuilder configuration, the trust override and the
// repo hooks for the native builder, and for the cross builder when
// requested.
func (s Service) Configure(ctx context.Context, req ConfigureRequest) (ConfigureResult, error) {
	if err := requirePaths(req.DescriptorPath, req.BuildDir); err != nil {
		return ConfigureResult{}, err
	}
	desc, err := s.Descriptors.Load(req.DescriptorPath)
	if err != nil {
		return ConfigureResult{}, err
	}
	buildDir := strings.TrimSpace(req.BuildDir)

	variants := []types.Variant{types.VariantNative}
	if req.Cross {
		variants = append(variants, types.VariantCross)
	}

	emitter := core.NewBuilderConfigEmitter()
	hooks := core.NewRepoHookEmitter(core.NewMirrorResolver(s.LocalKeys, s.KeyFetcher))
	var result ConfigureResult
	for _, variant := range variants {
		content := emitter.Render(ctx, core.BuilderConfigRequest{
			BuildDir:         buildDir,
			Descriptor:       desc,
			Variant:          variant,
			NoCCache:         req.NoCCache,
			HostArch:         req.HostArch,
			BootstrapOptions: req.BootstrapOptions,
		})
		path, err := s.Writer.WriteBuilderConfig(buildDir, variant, content)
		if err != nil {
			return ConfigureResult{}, err
		}
		result.Files = append(result.Files, path)

		scripts, err := hooks.Render(ctx, desc, buildDir, variant)
		if err != nil {
			return ConfigureResult{}, err
		}
		paths, err := s.Writer.WriteHooks(buildDir, variant, scripts)
		if err != nil {
			return ConfigureResult{}, err
		}
		result.Files = append(result.Files, paths...)
	}

	if content, ok := core.RenderAptTrustOverride(desc); ok {
		path, err := s.Writer.WriteAptConf(buildDir, content)
		if err != nil {
			return ConfigureResult{}, err
		}
		result.Files = append(result.Files, path)
	}

	log.Ctx(ctx).Info().
		Str("build_dir", buildDir).
		Bool("cross", req.Cross).
		Int("files", len(result.Files)).
		Msg("builder configuration written")
	return result, nil
}

func requirePaths(descriptorPath string, buildDir string) error {
	if strings.TrimSpace(descriptorPath) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("descriptor path is required")
	}
	if strings.TrimSpace(buildDir) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("build directory is required")
	}
	return nil
}
