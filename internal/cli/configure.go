package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"xbuildenv/internal/app"
)

type configureOptions struct {
	Descriptor       string
	BuildDir         string
	Cross            bool
	NoCCache         bool
	HostArch         string
	BootstrapOptions []string
}

func newConfigureCommand() *cobra.Command {
	opts := configureOptions{}
	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Write pbuilder configuration and repo hooks into a build directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigure(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Descriptor, "descriptor", "", "Project descriptor path")
	cmd.Flags().StringVar(&opts.BuildDir, "build-dir", "", "Build directory")
	cmd.Flags().BoolVar(&opts.Cross, "cross", false, "Also write the cross builder configuration")
	cmd.Flags().BoolVar(&opts.NoCCache, "no-ccache", false, "Disable ccache in the chroot")
	cmd.Flags().StringVar(&opts.HostArch, "host-arch", "amd64", "Architecture of the build host")
	cmd.Flags().StringSliceVar(&opts.BootstrapOptions, "bootstrap-opt", nil, "Base debootstrap options (replaces pbuilder defaults)")

	_ = viper.BindPFlag("descriptor", cmd.Flags().Lookup("descriptor"))
	_ = viper.BindPFlag("build_dir", cmd.Flags().Lookup("build-dir"))
	_ = viper.BindPFlag("cross", cmd.Flags().Lookup("cross"))
	_ = viper.BindPFlag("no_ccache", cmd.Flags().Lookup("no-ccache"))
	_ = viper.BindPFlag("host_arch", cmd.Flags().Lookup("host-arch"))
	_ = viper.BindPFlag("bootstrap_options", cmd.Flags().Lookup("bootstrap-opt"))
	return cmd
}

func runConfigure(ctx context.Context, cmd *cobra.Command, opts configureOptions) error {
	service := newAppService()
	req := app.ConfigureRequest{
		DescriptorPath: resolveString(cmd, opts.Descriptor, "descriptor", "descriptor"),
		BuildDir:       resolveString(cmd, opts.BuildDir, "build_dir", "build-dir"),
		Cross:          resolveBool(cmd, opts.Cross, "cross", "cross"),
		NoCCache:       resolveBool(cmd, opts.NoCCache, "no_ccache", "no-ccache"),
		HostArch:       resolveString(cmd, opts.HostArch, "host_arch", "host-arch"),
	}
	if flagChanged(cmd, "bootstrap-opt") || viper.IsSet("bootstrap_options") {
		req.BootstrapOptions = resolveStrings(cmd, opts.BootstrapOptions, "bootstrap_options", "bootstrap-opt")
	}
	result, err := service.Configure(ctx, req)
	if err != nil {
		return err
	}
	for _, path := range result.Files {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote: %s\n", path)
	}
	return nil
}
