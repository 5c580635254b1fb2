package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var (
	planFlags sessionFlags
	planJSON  bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the intervals a run would count down",
	Long:  `Plan resolves the configuration exactly like run and prints the resulting intervals without starting the countdown.`,
	Args:  cobra.NoArgs,
	RunE:  showPlan,
}

func init() {
	planFlags.register(planCmd)
	planCmd.Flags().BoolVar(&planJSON, "json", false, "output the plan as JSON")
}

// planInterval is the JSON form of one planned interval.
type planInterval struct {
	Index    int    `json:"index"`
	Cycle    int    `json:"cycle"`
	Kind     string `json:"kind"`
	Duration string `json:"duration"`
	Seconds  int64  `json:"seconds"`
}

// planOutput is the JSON form of a planned session.
type planOutput struct {
	Methodology           string         `json:"methodology"`
	FocusDuration         string         `json:"focus_duration"`
	ShortBreakDuration    string         `json:"short_break_duration"`
	LongBreakDuration     string         `json:"long_break_duration"`
	CyclesBeforeLongBreak int            `json:"cycles_before_long_break"`
	TotalCycles           int            `json:"total_cycles"`
	TotalDuration         string         `json:"total_duration"`
	Intervals             []planInterval `json:"intervals"`
}

func showPlan(cmd *cobra.Command, args []string) error {
	cfg, mode, err := planFlags.resolve(cmd, app.config)
	if err != nil {
		return err
	}
	session, err := app.sessions.PlanSession(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if planJSON {
		result := planOutput{
			Methodology:           string(mode.Name()),
			FocusDuration:         cfg.FocusDuration.String(),
			ShortBreakDuration:    cfg.ShortBreakDuration.String(),
			LongBreakDuration:     cfg.LongBreakDuration.String(),
			CyclesBeforeLongBreak: cfg.CyclesBeforeLongBreak,
			TotalCycles:           cfg.TotalCycles,
			TotalDuration:         session.TotalDuration().String(),
			Intervals:             make([]planInterval, 0, session.Len()),
		}
		for _, iv := range session.Intervals {
			result.Intervals = append(result.Intervals, planInterval{
				Index:    iv.Index,
				Cycle:    iv.Cycle,
				Kind:     string(iv.Kind),
				Duration: iv.Duration.String(),
				Seconds:  int64(iv.Duration.Seconds()),
			})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	renderer := lipgloss.NewRenderer(out)
	headerStyle := renderer.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := renderer.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "CYCLE", "INTERVAL", "DURATION").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, iv := range session.Intervals {
		t.Row(strconv.Itoa(iv.Index), strconv.Itoa(iv.Cycle), iv.Kind.Label(), formatMinutes(iv.Duration))
	}

	fmt.Fprintf(out, "%s: %d cycles, %d intervals, %s total\n",
		mode.Title(), cfg.TotalCycles, session.Len(), formatMinutes(session.TotalDuration()))
	fmt.Fprintln(out, t.Render())
	return nil
}
