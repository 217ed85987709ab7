// Package figure renders the coefficient comparison figure: one
// dot-and-whisker panel per partition set, stacked on a single HTML page.
package figure

import (
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/wildrange/rsf-go/internal/analysis"
	"github.com/wildrange/rsf-go/internal/conf"
	"github.com/wildrange/rsf-go/internal/errors"
)

// Helper function to create a pointer to a boolean
func boolPtr(b bool) *bool { return &b }

// PanelChart builds one caterpillar panel as a candlestick chart: per
// predictor and method, the body collapses to a tick at the odds-ratio
// estimate (open == close) and the wick spans the confidence interval.
// Candlestick series share the bar layout, so the two methods are dodged
// side by side per predictor.
func PanelChart(panel analysis.Panel, settings *conf.FigureSettings) *charts.Kline {
	kline := charts.NewKLine()

	kline.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  settings.Width,
			Height: settings.Height,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: panel.Title,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: boolPtr(true)}),
		charts.WithLegendOpts(opts.Legend{Show: boolPtr(true)}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Rotate: 30},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Odds ratio",
		}),
		charts.WithGridOpts(opts.Grid{
			ContainLabel: boolPtr(true),
			Left:         "3%",
			Right:        "4%",
			Bottom:       "12%",
		}),
	)

	predictors := panel.Results.Predictors()
	kline.SetXAxis(predictors)

	for _, label := range panel.Results.Labels() {
		data := make([]opts.KlineData, 0, len(predictors))
		for _, predictor := range predictors {
			rec, ok := panel.Results.Find(predictor, label)
			if !ok {
				continue
			}
			// Candlestick value order is [open, close, lowest, highest].
			data = append(data, opts.KlineData{
				Value: [4]float64{rec.Estimate, rec.Estimate, rec.Lower, rec.Upper},
			})
		}
		kline.AddSeries(label, data)
	}

	// Reference line at odds ratio 1, no effect.
	kline.SetSeriesOptions(
		charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{
			Name:  "no effect",
			YAxis: 1,
		}),
	)

	return kline
}

// RenderPage writes all panels as one HTML page in panel order.
func RenderPage(w io.Writer, panels []analysis.Panel, settings *conf.FigureSettings) error {
	page := components.NewPage()
	page.SetLayout(components.PageCenterLayout)
	if settings.Title != "" {
		page.PageTitle = settings.Title
	}

	for i := range panels {
		page.AddCharts(PanelChart(panels[i], settings))
	}

	if err := page.Render(w); err != nil {
		return errors.New(err).
			Component("figure").
			Category(errors.CategoryFigureRender).
			Build()
	}
	return nil
}

// WritePage renders the figure to the configured output path, creating
// parent directories as needed.
func WritePage(path string, panels []analysis.Panel, settings *conf.FigureSettings) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.New(err).
				Component("figure").
				Category(errors.CategoryFileIO).
				Context("path", path).
				Build()
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.New(err).
			Component("figure").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}
	defer file.Close()

	return RenderPage(file, panels, settings)
}
