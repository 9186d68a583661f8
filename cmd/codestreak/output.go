package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"codestreak/internal/modules/dashboard/dto"
	apperrors "codestreak/internal/platform/errors"
)

// render writes out in the requested format; text uses the given printer.
func render(w io.Writer, format string, out dto.LoadOutput, text func(io.Writer, dto.LoadOutput)) error {
	switch format {
	case "", "text":
		text(w, out)
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(out)
	default:
		return fmt.Errorf("%w: unknown format %q", apperrors.ErrValidation, format)
	}
}

func printStatus(w io.Writer, out dto.LoadOutput) {
	if out.Redirected {
		return
	}
	s := out.Status
	if s == nil {
		return
	}
	_, _ = fmt.Fprintf(w, "%s  %s (%s)\n", s.Avatar, s.Date, s.Timezone)
	for _, r := range s.Rings {
		mark := ""
		if r.Goal > 0 && r.Current >= r.Goal {
			mark = "  ✓"
		}
		_, _ = fmt.Fprintf(w, "  %-10s %s %d/%d%s\n", r.Metric.Label(), bar(r.Progress, 20), r.Current, r.Goal, mark)
	}
	_, _ = fmt.Fprintf(w, "  streak     %d (best %d)\n", s.StreakCur, s.StreakBest)
	if len(s.Reminders) > 0 {
		_, _ = fmt.Fprintf(w, "  reminders  %s\n", strings.Join(s.Reminders, ", "))
	}
	if len(s.Repos) > 0 {
		_, _ = fmt.Fprintf(w, "  repos      %s\n", strings.Join(s.Repos, ", "))
	}
	for _, c := range s.Celebrations {
		_, _ = fmt.Fprintf(w, "  ✦ %s goal reached ✦\n", c.Metric.Label())
	}
}

func printStatusLine(w io.Writer, s *dto.StatusOutput) {
	parts := make([]string, 0, len(s.Rings)+1)
	for _, r := range s.Rings {
		parts = append(parts, fmt.Sprintf("%s %d/%d", r.Metric.Label(), r.Current, r.Goal))
	}
	parts = append(parts, fmt.Sprintf("streak %d", s.StreakCur))
	_, _ = fmt.Fprintln(w, strings.Join(parts, " · "))
}

var weekdays = [7]string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

func printHistory(w io.Writer, out dto.LoadOutput) {
	if out.Redirected {
		return
	}
	if out.HeatmapMessage != "" {
		_, _ = fmt.Fprintln(w, out.HeatmapMessage)
	}
	hm := out.Heatmap
	if hm == nil {
		return
	}
	_, _ = fmt.Fprintf(w, "%-10s %s   (%s)\n", "", strings.Join(weekdays[:], " "), hm.Timezone)
	for _, row := range hm.Rows {
		cells := make([]string, len(row.Cells))
		for i, c := range row.Cells {
			if !c.Filled {
				cells[i] = " ·"
				continue
			}
			cells[i] = fmt.Sprintf("%2d", c.Count)
		}
		_, _ = fmt.Fprintf(w, "%-10s %s\n", row.Metric.Label(), strings.Join(cells, " "))
	}
	_, _ = fmt.Fprintln(w, hm.Label)
}

func bar(ratio float64, width int) string {
	filled := int(ratio*float64(width) + 0.5)
	filled = max(0, min(filled, width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func parseGoals(commits, solved string) (int, int, error) {
	c, err1 := strconv.Atoi(commits)
	s, err2 := strconv.Atoi(solved)
	if err1 != nil || err2 != nil {
		return 0, 0, fmt.Errorf("%w: goals must be whole numbers", apperrors.ErrValidation)
	}
	return c, s, nil
}

// flagValue returns nil for flags the user did not set, so they are not
// sent.
func flagValue(cmd *cobra.Command, name, value string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}
