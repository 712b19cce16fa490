// Package cli wires the vizex commands: the partition, battery and CPU
// report on the root command, the directory report, preferences and
// version.
package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"vizex/pkg/config"
	"vizex/pkg/source"
)

// Env holds what the commands act on.
type Env struct {
	Source source.Source
	Prefs  *config.Store
	Stdout io.Writer
	Stderr io.Writer
	// Profile pins the colour profile. When nil it is detected from
	// Stdout and the environment (NO_COLOR, CLICOLOR_FORCE).
	Profile *termenv.Profile
}

type globalFlags struct {
	verbose bool
	noColor bool
}

// profile returns the rendering profile for this run.
func (e *Env) profile(g *globalFlags) termenv.Profile {
	if g.noColor {
		return termenv.Ascii
	}
	if e.Profile != nil {
		return *e.Profile
	}
	return termenv.NewOutput(e.Stdout).EnvColorProfile()
}

// NewRootCmd returns the root command reading the running system.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	return NewCommand(&Env{
		Source: source.NewSystem(),
		Prefs:  config.NewStore(config.PrefsPath()),
		Stdout: stdout,
		Stderr: stderr,
	})
}

// NewCommand returns the root command acting on env.
func NewCommand(env *Env) *cobra.Command {
	g := &globalFlags{}
	rf := &reportFlags{}

	cmd := &cobra.Command{
		Use:   "vizex [disk|battery|cpu]",
		Short: "Visualize disk usage, battery charge and CPU frequency in the terminal",
		Long: `Displays disk usage in the terminal, graphically.

Customize visuals by setting colors and attributes.

COLORS: light_red, red, dark_red, dark_blue, blue, cyan, yellow, green,
  pink, white, black, purple, neon, grey, beige, orange, magenta, peach.

ATTRIBUTES: bold, dim, underlined, blink, reverse.

"battery" shows the battery charge, "cpu" the frequency of every core.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(env.Stderr, g.verbose)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, env, g, rf, args)
		},
	}

	cmd.SetOut(env.Stdout)
	cmd.SetErr(env.Stderr)

	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log debug information to stderr")
	cmd.PersistentFlags().BoolVar(&g.noColor, "no-color", false, "Disable colors and text attributes")
	rf.bind(cmd)

	cmd.AddCommand(newFilesCmd(env, g))
	cmd.AddCommand(newConfigCmd(env))
	cmd.AddCommand(newVersionCmd(env.Stdout))

	return cmd
}

// Execute runs the CLI with the process stdio.
func Execute() error {
	return NewRootCmd(os.Stdout, os.Stderr).Execute()
}

func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
