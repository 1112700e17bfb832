package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/okian/coachlens/internal/adapters/charts"
	app "github.com/okian/coachlens/internal/app"
	"github.com/okian/coachlens/internal/domain/animation"
	"github.com/okian/coachlens/internal/domain/effects"
	"github.com/okian/coachlens/internal/domain/model"
	"github.com/okian/coachlens/internal/domain/types"
)

// Report output formats.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// report is the full ranking of one document.
type report struct {
	Key         model.Key               `json:"key"`
	Summary     types.EffectSummary     `json:"summary"`
	Effects     []types.Effect          `json:"effects"`
	Consultants types.ConsultantSummary `json:"consultants"`
}

type reportOptions struct {
	key     model.Key
	order   effects.Order
	format  string
	top     int
	animate bool
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print ranked effects and consultants for one document",
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts reportOptions
			var err error
			dataset, _ := cmd.Flags().GetString("dataset")
			view, _ := cmd.Flags().GetString("view")
			opts.key = model.Key{Dataset: dataset, View: view}
			order, _ := cmd.Flags().GetString("order")
			if opts.order, err = effects.ParseOrder(order); err != nil {
				return err
			}
			opts.format, _ = cmd.Flags().GetString("format")
			opts.top, _ = cmd.Flags().GetInt("top")
			opts.animate, _ = cmd.Flags().GetBool("animate")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			svc := newService(cfg)
			if err := svc.Start(cmd.Context()); err != nil {
				return err
			}
			defer svc.Stop()

			r, err := buildReport(cmd.Context(), svc, opts)
			if err != nil {
				return err
			}
			if err := writeReport(cmd.OutOrStdout(), r, opts); err != nil {
				return err
			}
			if opts.animate && opts.format == formatText {
				return animateTeamAverage(cmd.Context(), cmd.OutOrStdout(), r.Consultants.TeamAverage,
					animation.WithDuration(cfg.AnimationDuration()),
					animation.WithFrameInterval(cfg.FrameInterval()),
				)
			}
			return nil
		},
	}
	cmd.Flags().String("dataset", "", "Dataset to report (default: configured or first loaded)")
	cmd.Flags().String("view", "", "View to report")
	cmd.Flags().String("order", "desc", "Effect order: asc or desc")
	cmd.Flags().String("format", formatText, "Output format: text, json or yaml")
	cmd.Flags().Int("top", 0, "Show only the first N rows of each table (0 = all)")
	cmd.Flags().Bool("animate", false, "Animate the team average gauge after a text report")
	return cmd
}

func buildReport(ctx context.Context, svc *app.Service, opts reportOptions) (report, error) {
	key, err := svc.Resolve(ctx, opts.key)
	if err != nil {
		return report{}, err
	}
	summary, err := svc.EffectSummary(ctx, key)
	if err != nil {
		return report{}, err
	}
	ranked, err := svc.RankedEffects(ctx, key, opts.order)
	if err != nil {
		return report{}, err
	}
	people, err := svc.ConsultantSummary(ctx, key)
	if err != nil {
		return report{}, err
	}
	if opts.top > 0 {
		ranked = ranked[:min(opts.top, len(ranked))]
		people.Ranked = people.Ranked[:min(opts.top, len(people.Ranked))]
	}
	return report{Key: key, Summary: summary, Effects: ranked, Consultants: people}, nil
}

func writeReport(w io.Writer, r report, opts reportOptions) error {
	switch opts.format {
	case formatJSON:
		return writeJSON(w, r)
	case formatYAML:
		return writeYAML(w, r)
	case formatText, "":
		return writeText(w, r)
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeYAML renders v with its JSON field names.
func writeYAML(w io.Writer, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return err
	}
	return enc.Close()
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
)

func tierStyle(t types.Tier) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(charts.TierColor(t))).Bold(t == types.TierHigh)
}

func writeText(w io.Writer, r report) error {
	var b strings.Builder

	fmt.Fprintln(&b, headingStyle.Render("Behavioral effects "+r.Key.String()))
	if r.Summary.Highest != nil {
		fmt.Fprintf(&b, "highest %s (%s)  lowest %s (%s)  measured %d/%d\n",
			label(*r.Summary.Highest), r.Summary.Highest.EffectSizeLabel,
			label(*r.Summary.Lowest), r.Summary.Lowest.EffectSizeLabel,
			r.Summary.Measured, r.Summary.Total)
	}
	for i, e := range r.Effects {
		line := fmt.Sprintf("%3d  %-32s %8s  %-10s with %-8s without %-8s",
			i+1, label(e), e.EffectSizeLabel, e.ConfidenceLabel, e.WithBehavior, e.WithoutBehavior)
		if !e.Measured {
			line = mutedStyle.Render(line)
		}
		fmt.Fprintln(&b, line)
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, headingStyle.Render(fmt.Sprintf("Consultants (team average %.1f%%)", r.Consultants.TeamAverage)))
	for _, c := range r.Consultants.Ranked {
		rate := tierStyle(c.Tier).Render(fmt.Sprintf("%6.1f%%", c.RateValue))
		fmt.Fprintf(&b, "%3d  %-24s %s  %-6s potential %s\n", c.Rank, c.Name, rate, c.Tier, c.TotalPotentialStr)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func label(e types.Effect) string {
	if e.Title != "" {
		return e.Title
	}
	return e.Key
}

// animateTeamAverage drives an Animator towards avg and prints each frame
// on one line until the run completes.
func animateTeamAverage(ctx context.Context, w io.Writer, avg float64, opts ...animation.Option) error {
	const width = 40
	sink := func(_ string, f animation.Frame) {
		filled := int(f.ArcFraction*width + 0.5)
		fmt.Fprintf(w, "\rteam average [%s%s] %6.1f%%",
			strings.Repeat("#", filled), strings.Repeat(".", width-filled), f.DisplayedValue)
	}
	a := animation.New(append(opts, animation.WithSink(sink))...)
	a.Start(ctx, avg)
	defer a.Stop()

	select {
	case <-a.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	_, err := fmt.Fprintln(w)
	return err
}
