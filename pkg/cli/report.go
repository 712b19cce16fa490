package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"vizex/pkg/common"
	"vizex/pkg/config"
	"vizex/pkg/display"
	"vizex/pkg/export"
	"vizex/pkg/live"
	"vizex/pkg/report"
)

// reportFlags are the flags of the partition, battery and CPU report.
type reportFlags struct {
	save     string
	include  []string
	exclude  []string
	every    bool
	details  bool
	header   string
	style    string
	text     string
	graph    string
	mark     string
	width    int
	sort     string
	order    string
	jq       string
	live     bool
	interval time.Duration
}

func (f *reportFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.save, "save", "", "Export the report to a .csv, .json, .csv.zst or .json.zst file")
	fs.StringArrayVarP(&f.include, "path", "P", nil, "Print only this partition (repeatable)")
	fs.StringArrayVarP(&f.exclude, "exclude", "X", nil, "Leave out this partition (repeatable)")
	fs.BoolVar(&f.every, "every", false, "Display every partition, pseudo filesystems included")
	fs.BoolVar(&f.details, "details", false, "Display additional details like fstype and mountpoint")
	fs.StringVarP(&f.header, "header", "d", "", "Set the partition name color")
	fs.StringVarP(&f.style, "style", "s", "", "Change the style of the header's display")
	fs.StringVarP(&f.text, "text", "t", "", "Set the color of the regular text")
	fs.StringVarP(&f.graph, "graph", "g", "", "Change the color of the bar graph")
	fs.StringVarP(&f.mark, "mark", "m", "", "Choose the symbol used for the graph")
	fs.IntVar(&f.width, "width", config.DefaultWidth, "Number of segments in each bar")
	fs.StringVar(&f.sort, "sort", "", "Order partitions by type, size, name or dt")
	fs.StringVar(&f.order, "order", "", "Sort direction: asc or desc")
	fs.StringVar(&f.jq, "jq", "", "Filter exported records with a jq expression")
	fs.BoolVar(&f.live, "live", false, "Keep refreshing the cpu report until q is pressed")
	fs.DurationVar(&f.interval, "interval", live.DefaultInterval, "Refresh period of --live")
}

// options resolves defaults, stored preferences and the given flags.
func (f *reportFlags) options(cmd *cobra.Command, env *Env, g *globalFlags) (config.Options, error) {
	prefs, err := env.Prefs.Get()
	if err != nil {
		return config.Options{}, err
	}
	b := config.NewBuilder().
		Prefs(prefs).
		Flags(config.Prefs{
			Symbol:      f.mark,
			HeaderColor: f.header,
			HeaderStyle: f.style,
			TextColor:   f.text,
			GraphColor:  f.graph,
			Sort:        f.sort,
			Order:       f.order,
		}).
		Profile(env.profile(g)).
		Every(f.every).
		Details(f.details).
		Include(f.include...).
		Exclude(f.exclude...)
	if cmd.Flags().Changed("width") {
		b.WidthFlag(f.width)
	}
	return b.Build()
}

func runReport(cmd *cobra.Command, env *Env, g *globalFlags, f *reportFlags, args []string) error {
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	subject, err := common.ParseSubject(arg)
	if err != nil {
		return err
	}
	if err := checkExport(f.save, f.jq); err != nil {
		return err
	}
	if f.live && subject != common.SubjectCPU {
		return &common.ConfigError{Field: "live", Value: subject.String(), Reason: "only the cpu report refreshes"}
	}

	opts, err := f.options(cmd, env, g)
	if err != nil {
		return err
	}
	req := report.Request{
		Subject: subject,
		Spec:    opts.Sort,
		Theme:   opts.Theme,
		Include: opts.Include,
		Exclude: opts.Exclude,
		Every:   opts.Every,
		Details: opts.Details,
		Width:   opts.Width,
	}

	if f.live {
		return live.Run(cmd.Context(), env.Source, req, f.interval, env.Stdout)
	}

	snap, err := report.Build(env.Source, req)
	if errors.Is(err, common.ErrNoBattery) {
		fmt.Fprintln(env.Stdout, "Battery not found!")
		return nil
	}
	if err != nil {
		return err
	}
	return printAndSave(env, snap, f.save, f.jq)
}

// checkExport rejects a bad destination or query before anything is
// sampled.
func checkExport(dest, query string) error {
	if dest != "" {
		if _, err := export.FormatFor(dest); err != nil {
			return err
		}
	}
	if query != "" {
		if dest == "" {
			return &common.ConfigError{Field: "jq", Value: query, Reason: "requires --save"}
		}
		if _, err := export.ParseQuery(query); err != nil {
			return err
		}
	}
	return nil
}

// printAndSave prints the report, then exports it. An export failure does
// not affect what was printed.
func printAndSave(env *Env, snap *report.Snapshot, dest, query string) error {
	disp := display.NewWriterDisplay(env.Stdout)
	disp.PrintLines(snap.Lines())
	disp.Close()

	if dest == "" {
		return nil
	}
	var opts []export.Option
	if query != "" {
		opts = append(opts, export.WithQuery(query))
	}
	return export.Write(snap, dest, opts...)
}
