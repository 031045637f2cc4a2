// Package commands implements the CLI commands for the preppy bundling tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.trai.ch/preppy/internal/adapters/config"
	"go.trai.ch/preppy/internal/build"
	"go.trai.ch/preppy/internal/core/domain"
)

// CLI represents the command line interface for preppy.
type CLI struct {
	app      Application
	settings SettingsResolver
	rootCmd  *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, s domain.Settings) error
}

// SettingsResolver merges the parsed flags with the other settings sources.
type SettingsResolver interface {
	Resolve(flags *pflag.FlagSet) (domain.Settings, error)
}

// New creates a new CLI instance with the given app.
func New(a Application, settings SettingsResolver) *CLI {
	c := &CLI{
		app:      a,
		settings: settings,
	}

	rootCmd := &cobra.Command{
		Use:   "preppy",
		Short: "Bundle a package into CommonJS, ES module and executable builds",
		Long: "preppy reads package.json and builds the outputs it declares:\n" +
			"main (CommonJS), module (ES module), bin (executable) and types (declarations).",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		RunE:          c.runBuild,
	}

	// Setting flags first so -v stays verbose and --version gets no shorthand.
	config.RegisterFlags(rootCmd.Flags())

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c.rootCmd = rootCmd
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) runBuild(cmd *cobra.Command, _ []string) error {
	s, err := c.settings.Resolve(cmd.Flags())
	if err != nil {
		return err
	}
	return c.app.Run(cmd.Context(), s)
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
