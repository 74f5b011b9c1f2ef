package cli

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"xbuildenv/internal/app"
)

type validateOptions struct {
	Descriptor string
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate [descriptor]",
		Short: "Validate a project descriptor against the schema and semantic rules",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Descriptor = args[0]
				return runValidate(cmd.Context(), nil, cmd, opts)
			}
			return runValidate(cmd.Context(), cmd, cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Descriptor, "descriptor", "", "Project descriptor path")
	_ = viper.BindPFlag("descriptor", cmd.Flags().Lookup("descriptor"))
	return cmd
}

// runValidate resolves options against flagCmd; a nil flagCmd means opts
// already holds explicit values.
func runValidate(ctx context.Context, flagCmd *cobra.Command, out *cobra.Command, opts validateOptions) error {
	service := newAppService()
	path := resolveString(flagCmd, opts.Descriptor, "descriptor", "descriptor")
	result, err := service.Validate(ctx, app.ValidateRequest{DescriptorPath: path})
	if err != nil {
		return err
	}
	if !result.OK() {
		for _, msg := range result.Errors {
			fmt.Fprintln(out.ErrOrStderr(), msg)
		}
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("descriptor validation failed (%s): %d error(s)", result.Kind, len(result.Errors)))
	}
	fmt.Fprintf(out.OutOrStdout(), "validated: %s\n", path)
	return nil
}
