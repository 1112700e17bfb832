// Package charts renders the dashboard charts as a standalone HTML page
// using go-echarts.
package charts

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/okian/coachlens/internal/domain/types"
)

// DefaultAssetsHost serves the echarts scripts.
const DefaultAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

var tierColors = map[types.Tier]string{
	types.TierHigh:   "#2e7d32",
	types.TierMedium: "#f9a825",
	types.TierLow:    "#c62828",
}

const (
	positiveColor = "#1565c0"
	negativeColor = "#ad1457"
	unmeasured    = "#9e9e9e"
)

// TierColor returns the hex colour of a consultant tier.
func TierColor(t types.Tier) string {
	if c, ok := tierColors[t]; ok {
		return c
	}
	return unmeasured
}

// Dashboard is everything one page shows.
type Dashboard struct {
	Title       string
	Effects     []types.Effect
	Consultants types.ConsultantSummary
}

// Renderer builds echarts pages.
type Renderer struct {
	assetsHost string
	theme      string
	maxBars    int
}

// NewRenderer creates a Renderer with default settings.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{assetsHost: DefaultAssetsHost, maxBars: 25}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes the dashboard page to w.
func (r *Renderer) Render(w io.Writer, d Dashboard) error {
	page := components.NewPage()
	page.SetAssetsHost(r.assetsHost)
	page.PageTitle = d.Title
	page.AddCharts(
		r.EffectsBar(d.Effects),
		r.ConsultantsBar(d.Consultants),
		r.TeamAverageGauge(d.Consultants.TeamAverage),
	)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write dashboard: %w", err)
	}
	return nil
}

func (r *Renderer) init(title string) opts.Initialization {
	return opts.Initialization{
		PageTitle:  title,
		Theme:      r.theme,
		Width:      "100%",
		Height:     "480px",
		AssetsHost: r.assetsHost,
	}
}

func (r *Renderer) capped(n int) int {
	if r.maxBars > 0 && n > r.maxBars {
		return r.maxBars
	}
	return n
}

// EffectsBar charts effect sizes in the given order, in percent.
// Unmeasured behaviors are drawn grey at zero.
func (r *Renderer) EffectsBar(effects []types.Effect) *charts.Bar {
	n := r.capped(len(effects))
	x := make([]string, 0, n)
	y := make([]opts.BarData, 0, n)
	for _, e := range effects[:n] {
		label := e.Title
		if label == "" {
			label = e.Key
		}
		color := positiveColor
		switch {
		case !e.Measured:
			color = unmeasured
		case e.EffectSizePct < 0:
			color = negativeColor
		}
		x = append(x, label)
		y = append(y, opts.BarData{
			Name:      label,
			Value:     e.EffectSizePct,
			ItemStyle: &opts.ItemStyle{Color: color},
		})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(r.init("Behavioral effects")),
		charts.WithTitleOpts(opts.Title{Title: "Behavioral effects", Subtitle: fmt.Sprintf("features=%d", len(effects))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "effect size (%)"}),
	)
	bar.SetXAxis(x).
		AddSeries("effect", y,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	return bar
}

// ConsultantsBar charts success rates in rank order coloured by tier.
func (r *Renderer) ConsultantsBar(s types.ConsultantSummary) *charts.Bar {
	n := r.capped(len(s.Ranked))
	x := make([]string, 0, n)
	y := make([]opts.BarData, 0, n)
	for _, c := range s.Ranked[:n] {
		x = append(x, c.Name)
		y = append(y, opts.BarData{
			Name:      c.Name,
			Value:     c.RateValue,
			ItemStyle: &opts.ItemStyle{Color: TierColor(c.Tier)},
		})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(r.init("Consultant performance")),
		charts.WithTitleOpts(opts.Title{
			Title:    "Consultant performance",
			Subtitle: fmt.Sprintf("consultants=%d team average=%.1f%%", len(s.Ranked), s.TeamAverage),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "success rate (%)", Max: 100}),
	)
	bar.SetXAxis(x).
		AddSeries("success rate", y,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	return bar
}

// TeamAverageGauge shows the team average success rate.
func (r *Renderer) TeamAverageGauge(avg float64) *charts.Gauge {
	g := charts.NewGauge()
	g.SetGlobalOptions(
		charts.WithInitializationOpts(r.init("Team average")),
		charts.WithTitleOpts(opts.Title{Title: "Team average"}),
	)
	g.AddSeries("team", []opts.GaugeData{{Name: "success rate", Value: avg}})
	return g
}
