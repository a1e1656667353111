package heatmap

import (
	"github.com/vanderheijden86/clustermap/pkg/config"
	"github.com/vanderheijden86/clustermap/pkg/linkage"
)

// OptionsFromConfig maps file-level configuration onto composer options.
// Empty config fields keep the defaults; invalid names pass through and
// surface as errors when the figure is composed.
func OptionsFromConfig(cfg config.Config) Options {
	opts := DefaultOptions()

	if cfg.Colorscale != "" {
		opts.Colorscale = cfg.Colorscale
	}
	if cfg.Normalize != "" {
		opts.Normalize = Normalize(cfg.Normalize)
	}

	if cfg.Cluster.Method != "" {
		opts.Linkage.Method = linkage.Method(cfg.Cluster.Method)
	}
	if cfg.Cluster.Metric != "" {
		opts.Linkage.Metric = linkage.Metric(cfg.Cluster.Metric)
	}
	opts.Linkage.OptimalOrdering = cfg.Cluster.OptimalOrdering
	if cfg.Cluster.Rows != nil {
		opts.ClusterRows = *cfg.Cluster.Rows
	}
	if cfg.Cluster.Columns != nil {
		opts.ClusterCols = *cfg.Cluster.Columns
	}

	if cfg.Canvas.Width > 0 {
		opts.Width = cfg.Canvas.Width
	}
	if cfg.Canvas.Height > 0 {
		opts.Height = cfg.Canvas.Height
	}
	if cfg.Canvas.DendrogramBand > 0 {
		opts.DendrogramBand = cfg.Canvas.DendrogramBand
	}
	if cfg.Canvas.LegendBand > 0 {
		opts.LegendBand = cfg.Canvas.LegendBand
	}

	return opts
}
