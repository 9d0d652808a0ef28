// Package chart turns chart descriptions into go-echarts option blobs that the page script mounts.
package chart

import (
	"fmt"
	"html/template"

	"titanic/domain/core"
	"titanic/domain/prediction"
	"titanic/internal/insights"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	DefaultHeight    = "320px"
	ComparisonHeight = "260px"
)

// Snippet is one chart ready to be mounted by the page script
type Snippet struct {
	ID     core.ChartID `json:"id"`
	Title  string       `json:"title"`
	Option template.JS  `json:"option"`
	Theme  string       `json:"theme"`
	Height string       `json:"height"`
	// Release names the chart this one replaces; the page script disposes it before mounting.
	Release core.ChartID `json:"release,omitempty"`
}

// optionSource is satisfied by every go-echarts chart type we build
type optionSource interface {
	Validate()
	JSONNotEscaped() template.HTML
}

func snippet(src optionSource, id core.ChartID, title, theme, height string) Snippet {
	src.Validate()
	return Snippet{
		ID:     id,
		Title:  title,
		Option: template.JS(string(src.JSONNotEscaped())),
		Theme:  theme,
		Height: height,
	}
}

func initOpts(id core.ChartID, theme, height string) opts.Initialization {
	return opts.Initialization{
		ChartID:         id.String(),
		Theme:           theme,
		Width:           "100%",
		Height:          height,
		BackgroundColor: "transparent",
	}
}

// Render builds the snippet for a static insights chart
func Render(c insights.Chart, theme string) (Snippet, error) {
	id := core.NewChartID("chart-" + c.Key)
	switch c.Kind {
	case insights.KindBar:
		return snippet(Bar(c, id, theme), id, c.Title, theme, DefaultHeight), nil
	case insights.KindLine:
		return snippet(Line(c, id, theme), id, c.Title, theme, DefaultHeight), nil
	default:
		return Snippet{}, fmt.Errorf("unsupported chart kind %q for %s", c.Kind, c.Key)
	}
}

// RenderAll builds snippets for a group of charts, stopping at the first unsupported one
func RenderAll(group []insights.Chart, theme string) ([]Snippet, error) {
	out := make([]Snippet, 0, len(group))
	for _, c := range group {
		s, err := Render(c, theme)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func globalOpts(c insights.Chart, id core.ChartID, theme string) []charts.GlobalOpts {
	yAxis := opts.YAxis{Type: "value"}
	if c.Percent {
		yAxis.Max = 100
		yAxis.AxisLabel = &opts.AxisLabel{Formatter: "{value}%"}
	}

	return []charts.GlobalOpts{
		charts.WithInitializationOpts(initOpts(id, theme, DefaultHeight)),
		charts.WithTitleOpts(opts.Title{Title: c.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithYAxisOpts(yAxis),
	}
}

// Bar builds a bar chart; series with PointColors get one color per bar
func Bar(c insights.Chart, id core.ChartID, theme string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOpts(c, id, theme)...)
	bar.SetXAxis(c.Labels)

	for _, s := range c.Series {
		data := make([]opts.BarData, len(s.Values))
		for i, v := range s.Values {
			data[i] = opts.BarData{Value: v}
			if i < len(s.PointColors) {
				data[i].ItemStyle = &opts.ItemStyle{Color: s.PointColors[i]}
			}
		}

		var seriesOpts []charts.SeriesOpts
		if s.Color != "" {
			seriesOpts = append(seriesOpts, charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}))
		}
		bar.AddSeries(s.Name, data, seriesOpts...)
	}
	return bar
}

// Line builds a smoothed line chart
func Line(c insights.Chart, id core.ChartID, theme string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(globalOpts(c, id, theme)...)
	line.SetXAxis(c.Labels)

	for _, s := range c.Series {
		data := make([]opts.LineData, len(s.Values))
		for i, v := range s.Values {
			data[i] = opts.LineData{Value: v}
		}
		line.AddSeries(s.Name, data,
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
		)
	}
	return line
}

// Comparison builds the two-bar probability chart shown under a comparison result
func Comparison(cmp prediction.Comparison, theme string) Snippet {
	id := core.NewChartID("comparison")
	title := "Survival Probability Comparison"

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts(id, theme, ComparisonHeight)),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:      "value",
			Max:       100,
			AxisLabel: &opts.AxisLabel{Formatter: "{value}%"},
		}),
	)
	bar.SetXAxis([]string{"Person 1", "Person 2"}).
		AddSeries("Survival Probability (%)", []opts.BarData{
			{Value: prediction.PercentValue(cmp.Person1.Probability), ItemStyle: &opts.ItemStyle{Color: cmp.Person1.Color}},
			{Value: prediction.PercentValue(cmp.Person2.Probability), ItemStyle: &opts.ItemStyle{Color: cmp.Person2.Color}},
		},
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top", Formatter: "{c}%"}),
		)

	return snippet(bar, id, title, theme, ComparisonHeight)
}

// Page assembles every chart into one standalone go-echarts page
func Page(agg insights.Aggregates, theme string) (*components.Page, error) {
	page := components.NewPage()
	page.PageTitle = "Titanic Survival Insights"
	page.SetLayout(components.PageFlexLayout)

	for _, group := range [][]insights.Chart{agg.Rates, agg.Outcomes} {
		for _, c := range group {
			id := core.NewChartID("export-" + c.Key)
			switch c.Kind {
			case insights.KindBar:
				page.AddCharts(Bar(c, id, theme))
			case insights.KindLine:
				page.AddCharts(Line(c, id, theme))
			default:
				return nil, fmt.Errorf("unsupported chart kind %q for %s", c.Kind, c.Key)
			}
		}
	}
	return page, nil
}
