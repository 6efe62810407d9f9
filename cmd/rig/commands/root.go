// Package commands implements the CLI commands for the rig tool manager.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.rigtool.dev/rig/internal/adapters/detector"
	"go.rigtool.dev/rig/internal/app"
	"go.rigtool.dev/rig/internal/build"
	"go.rigtool.dev/rig/internal/core/domain"
	"go.rigtool.dev/rig/internal/ui/style"
)

// CLI represents the command line interface for rig.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Check(ctx context.Context) (domain.LintResult, error)
	List(ctx context.Context) ([]domain.Declaration, error)
	Lock(ctx context.Context) (domain.Plan, error)
	Status(ctx context.Context) (app.StatusResult, error)
	Format(ctx context.Context, write bool) (app.FormatResult, error)
	Watch(ctx context.Context) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "rig",
		Short:         "Declare and pin your project's development tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("output-mode", "o", "auto", "Output mode: auto, styled, plain, or ci")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newLockCmd())
	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newFmtCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// marks returns the status markers for the resolved output mode, colored
// only when rendering to an interactive terminal.
func marks(cmd *cobra.Command) (ok, fail, warn string) {
	mode, _ := cmd.Flags().GetString("output-mode")
	if detector.ResolveMode(detector.DetectEnvironment(), mode) == detector.ModeStyled {
		return style.OK.Render(style.Check),
			style.Fail.Render(style.Cross),
			style.Warn.Render(style.Warning)
	}
	return style.Check, style.Cross, style.Warning
}
