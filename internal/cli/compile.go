package cli

import (
	"github.com/spf13/cobra"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Query QueryFlags
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile query flags to an OData query string",
		Long: `Compile query flags to the OData query string that a GET request
would use, without contacting any server.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, cmd)
		},
	}

	opts.Query.Register(cmd)
	return cmd
}

func runCompile(opts *CompileOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	options, err := opts.Query.Build()
	if err != nil {
		_ = formatter.Error("INVALID_FLAGS", err.Error())
		return WrapExitError(ExitCommandError, "invalid query flags", err)
	}

	compiled, err := options.Compile()
	if err != nil {
		_ = formatter.Error("INVALID_QUERY", err.Error())
		return WrapExitError(ExitCommandError, "query does not compile", err)
	}

	return formatter.Success(compiled)
}
