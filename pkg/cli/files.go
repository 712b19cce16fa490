package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"vizex/pkg/common"
	"vizex/pkg/config"
	"vizex/pkg/order"
	"vizex/pkg/report"
)

type filesFlags struct {
	sort  string
	all   bool
	width int
	save  string
	jq    string
}

func newFilesCmd(env *Env, g *globalFlags) *cobra.Command {
	f := &filesFlags{}
	cmd := &cobra.Command{
		Use:   "files [asc|desc] [dir]",
		Short: "Display the files and directories of a directory with their size, type and age",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFiles(cmd, env, g, f, args)
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&f.sort, "sort", "s", "", "Order by type, size, name or dt")
	fs.BoolVarP(&f.all, "all", "a", false, "Show hidden files")
	fs.IntVar(&f.width, "width", config.DefaultWidth, "Upper bound of the share bar width")
	fs.StringVar(&f.save, "save", "", "Export the listing to a .csv, .json, .csv.zst or .json.zst file")
	fs.StringVar(&f.jq, "jq", "", "Filter exported records with a jq expression")
	return cmd
}

// splitFilesArgs separates the optional leading direction from the
// directory. A lone argument other than asc or desc is the directory.
func splitFilesArgs(args []string) (direction, dir string, err error) {
	if len(args) > 0 {
		switch strings.ToLower(args[0]) {
		case string(order.Ascending), string(order.Descending):
			direction, args = args[0], args[1:]
		}
	}
	switch len(args) {
	case 0:
		dir = "."
	case 1:
		dir = args[0]
	default:
		return "", "", &common.ConfigError{Field: "order", Value: args[0], Reason: "expected asc or desc"}
	}
	return direction, dir, nil
}

func runFiles(cmd *cobra.Command, env *Env, g *globalFlags, f *filesFlags, args []string) error {
	direction, dir, err := splitFilesArgs(args)
	if err != nil {
		return err
	}
	if err := checkExport(f.save, f.jq); err != nil {
		return err
	}

	prefs, err := env.Prefs.Get()
	if err != nil {
		return err
	}
	b := config.NewBuilder().
		Prefs(prefs).
		Flags(config.Prefs{Sort: f.sort, Order: direction}).
		Profile(env.profile(g)).
		ShowHidden(f.all)
	if cmd.Flags().Changed("width") {
		b.WidthFlag(f.width)
	}
	opts, err := b.Build()
	if err != nil {
		return err
	}

	snap, err := report.Build(env.Source, report.Request{
		Subject: common.SubjectFiles,
		Spec:    opts.Sort,
		Theme:   opts.Theme,
		Width:   opts.Width,
		Dir:     dir,
	})
	if err != nil {
		return err
	}
	return printAndSave(env, snap, f.save, f.jq)
}
