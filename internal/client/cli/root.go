package cli

import (
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/gophforum/internal/buildinfo"
	"github.com/dmitrijs2005/gophforum/internal/client/config"
	"github.com/spf13/cobra"
)

// newApp is a seam for tests.
var newApp = NewApp

// NewRootCmd builds the gophforum command tree reading from in and writing
// to out.
func NewRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	var (
		flags *config.Flags
		cfg   *config.Config
	)

	withApp := func(cmd *cobra.Command, fn func(ctx context.Context, a *App) error) error {
		a, err := newApp(cmd.Context(), cfg, in, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(cmd.Context(), a)
	}

	repl := func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *App) error {
			a.Run(ctx)
			return nil
		})
	}

	root := &cobra.Command{
		Use:   "gophforum",
		Short: "Terminal client for the gophforum discussion server",
		Long: `gophforum talks to a gophforum server over gRPC. Without a subcommand
it starts an interactive shell for reading, posting and moderating.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := flags.Load()
			if err != nil {
				return err
			}
			cfg = c
			return nil
		},
		RunE: repl,
	}
	root.SetIn(in)
	root.SetOut(out)
	flags = config.RegisterFlags(root.PersistentFlags())

	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive shell",
		Args:  cobra.NoArgs,
		RunE:  repl,
	}

	var cursor string
	threadsCmd := &cobra.Command{
		Use:   "threads [category]",
		Short: "List threads, optionally in one category",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := allCategories
			if len(args) > 0 {
				category = args[0]
			}
			return withApp(cmd, func(ctx context.Context, a *App) error {
				return a.Threads(ctx, []string{category, cursor})
			})
		},
	}
	threadsCmd.Flags().StringVar(&cursor, "cursor", "", "continue after this cursor")

	categoriesCmd := &cobra.Command{
		Use:   "categories",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *App) error {
				return a.Categories(ctx)
			})
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
			return nil
		},
	}

	root.AddCommand(replCmd, threadsCmd, categoriesCmd, versionCmd)
	return root
}

// Execute runs the command tree on the process's stdin and stdout.
func Execute(ctx context.Context) error {
	return NewRootCmd(os.Stdin, os.Stdout).ExecuteContext(ctx)
}
