package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"subtransfer/internal/cues"
	"subtransfer/internal/textfilter"
)

func newCuesCommand(ctx *commandContext) *cobra.Command {
	var filters string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "cues <subtitle>",
		Short: "Show the cues a subtitle file yields",
		Long: `Parse a subtitle file exactly as import would and list the resulting cues,
including speaker names and choice tags.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			names := cfg.Align.Filters
			if cmd.Flags().Changed("filter") {
				set, err := textfilter.Parse(filters)
				if err != nil {
					return err
				}
				names = set.Names()
			}
			set, err := textfilter.NewSet(names...)
			if err != nil {
				return err
			}

			list, err := cues.Load(args[0], cues.Options{Filters: set, ChoiceSpeakers: cfg.Align.ChoiceSpeakers})
			if err != nil {
				return err
			}
			if asJSON {
				if list == nil {
					list = []cues.Cue{}
				}
				return writeJSON(cmd, list)
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No cues found")
				return nil
			}
			rows := make([][]string, 0, len(list))
			for i, c := range list {
				rows = append(rows, []string{
					strconv.Itoa(i),
					formatCueTime(c.Start),
					cueRole(c),
					c.Speaker,
					truncate(c.Text, 60),
				})
			}
			fmt.Fprintln(out, renderTable([]column{
				{title: "#", right: true},
				{title: "Start", right: true},
				{title: "Role"},
				{title: "Speaker"},
				{title: "Text"},
			}, rows))
			fmt.Fprintln(out, pluralize(len(list), "cue", "cues"))
			return nil
		},
	}

	cmd.Flags().StringVar(&filters, "filter", "", "Comma separated text filters to apply while reading")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print cues as JSON")
	return cmd
}

func formatCueTime(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	total := d.Milliseconds()
	return fmt.Sprintf("%d:%02d:%02d.%03d", total/3_600_000, total/60_000%60, total/1000%60, total%1000)
}

func cueRole(c cues.Cue) string {
	if role := c.Role(); role != cues.EffectNone {
		return role
	}
	return "line"
}
