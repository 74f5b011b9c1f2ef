package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"xbuildenv/internal/app"
)

type mirrorsOptions struct {
	Descriptor string
	BuildDir   string
	Cross      bool
	Format     string
}

func newMirrorsCommand() *cobra.Command {
	opts := mirrorsOptions{}
	cmd := &cobra.Command{
		Use:   "mirrors",
		Short: "Print the resolved APT sources and keys",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMirrors(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Descriptor, "descriptor", "", "Project descriptor path")
	cmd.Flags().StringVar(&opts.BuildDir, "build-dir", "", "Build directory")
	cmd.Flags().BoolVar(&opts.Cross, "cross", false, "Resolve for the cross builder")
	cmd.Flags().StringVar(&opts.Format, "format", "text", "Output format (text, yaml)")

	_ = viper.BindPFlag("descriptor", cmd.Flags().Lookup("descriptor"))
	_ = viper.BindPFlag("build_dir", cmd.Flags().Lookup("build-dir"))
	_ = viper.BindPFlag("cross", cmd.Flags().Lookup("cross"))
	_ = viper.BindPFlag("format", cmd.Flags().Lookup("format"))
	return cmd
}

func runMirrors(ctx context.Context, cmd *cobra.Command, opts mirrorsOptions) error {
	service := newAppService()
	result, err := service.Mirrors(ctx, app.MirrorsRequest{
		DescriptorPath: resolveString(cmd, opts.Descriptor, "descriptor", "descriptor"),
		BuildDir:       resolveString(cmd, opts.BuildDir, "build_dir", "build-dir"),
		Cross:          resolveBool(cmd, opts.Cross, "cross", "cross"),
	})
	if err != nil {
		return err
	}
	rendered, err := renderMirrors(result, resolveString(cmd, opts.Format, "format", "format"))
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), rendered)
	return nil
}

func renderMirrors(result app.MirrorsResult, format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		var b strings.Builder
		for _, line := range result.Lines {
			b.WriteString(line)
			b.WriteString("\n")
		}
		for i, key := range result.Keys {
			fingerprint := "unparsed"
			if len(key.Fingerprints) > 0 {
				fingerprint = strings.Join(key.Fingerprints, ",")
			}
			fmt.Fprintf(&b, "key %d: %s\n", i+1, fingerprint)
		}
		return b.String(), nil
	case "yaml":
		data, err := yaml.Marshal(result)
		if err != nil {
			return "", errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to render mirrors as yaml").
				WithCause(err)
		}
		return string(data), nil
	default:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unsupported output format: " + format)
	}
}
