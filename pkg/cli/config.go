package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"vizex/pkg/config"
	"vizex/pkg/display"
)

func newConfigCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change stored preferences",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the stored preferences",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runConfigShow(env)
			},
		},
		&cobra.Command{
			Use:   "set <name> [value]",
			Short: "Store a preference; without a value the preference is cleared",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				value := ""
				if len(args) == 2 {
					value = args[1]
				}
				return runConfigSet(env, args[0], value)
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Remove all stored preferences",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := env.Prefs.Reset(); err != nil {
					return err
				}
				fmt.Fprintln(env.Stdout, "Preferences reset")
				return nil
			},
		},
	)
	return cmd
}

func runConfigShow(env *Env) error {
	prefs, err := env.Prefs.Get()
	if err != nil {
		return err
	}
	table := &display.Table{Header: []string{"Name", "Value"}}
	for _, k := range config.PrefKeys {
		v, _ := prefs.Get(k)
		if v == "" {
			v = "(default)"
		}
		table.Rows = append(table.Rows, []string{k, v})
	}

	disp := display.NewWriterDisplay(env.Stdout)
	defer disp.Close()
	disp.Print("# " + env.Prefs.Path() + "\n")
	disp.RenderTable(table)
	return nil
}

func runConfigSet(env *Env, key, value string) error {
	if err := env.Prefs.Update(func(p *config.Prefs) error { return p.Set(key, value) }); err != nil {
		return err
	}
	if value == "" {
		fmt.Fprintf(env.Stdout, "Cleared %s\n", key)
	} else {
		fmt.Fprintf(env.Stdout, "Set %s = %s\n", key, value)
	}
	return nil
}
