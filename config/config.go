// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"

	"github.com/spf13/viper"

	"github.com/liyang-lab/ConSite/internal/viz"
)

// RenderSettings size the rendered artifacts
type RenderSettings struct {
	// width and height of the whole-sequence domain map, in pixels
	MapWidth  int `mapstructure:"map-width"`
	MapHeight int `mapstructure:"map-height"`

	// the minimum hit panel width and the width added per residue,
	// so characters stay legible at any hit size
	PanelWidth  int     `mapstructure:"panel-width"`
	PanelHeight int     `mapstructure:"panel-height"`
	PerChar     float64 `mapstructure:"per-char"`

	// seed MSA panel cell geometry and how many sequences to draw
	MSAColWidth  int `mapstructure:"msa-col-width"`
	MSARowHeight int `mapstructure:"msa-row-height"`
	MaxMSARows   int `mapstructure:"max-msa-rows"`

	// conservation track size
	TrackWidth  int `mapstructure:"track-width"`
	TrackHeight int `mapstructure:"track-height"`
}

// ReportSettings shape the report page
type ReportSettings struct {
	// cap on the scores preview table
	MaxScoreRows int `mapstructure:"max-score-rows"`
}

// Config is the root-level settings struct and is a mix of settings
// available in consite.yaml and those available from the command line
type Config struct {
	// Render settings for the raster artifacts
	Render RenderSettings `mapstructure:"render"`

	// Report settings for the HTML page
	Report ReportSettings `mapstructure:"report"`
}

// New returns a new Config struct populated by Viper settings (either
// from a local consite.yaml) and/or command line arguments
func New() *Config {
	setDefaults()

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		log.Fatalf("unable to decode settings, %v", err)
	}
	return &c
}

// Options converts the render settings to the renderer's geometry
func (c *Config) Options() viz.Options {
	return viz.Options{
		MapWidth:       c.Render.MapWidth,
		MapHeight:      c.Render.MapHeight,
		PanelBaseWidth: c.Render.PanelWidth,
		PanelHeight:    c.Render.PanelHeight,
		PerChar:        c.Render.PerChar,
		MSAColWidth:    c.Render.MSAColWidth,
		MSARowHeight:   c.Render.MSARowHeight,
		MaxMSARows:     c.Render.MaxMSARows,
		TrackWidth:     c.Render.TrackWidth,
		TrackHeight:    c.Render.TrackHeight,
	}
}

func setDefaults() {
	d := viz.DefaultOptions()
	viper.SetDefault("render.map-width", d.MapWidth)
	viper.SetDefault("render.map-height", d.MapHeight)
	viper.SetDefault("render.panel-width", d.PanelBaseWidth)
	viper.SetDefault("render.panel-height", d.PanelHeight)
	viper.SetDefault("render.per-char", d.PerChar)
	viper.SetDefault("render.msa-col-width", d.MSAColWidth)
	viper.SetDefault("render.msa-row-height", d.MSARowHeight)
	viper.SetDefault("render.max-msa-rows", d.MaxMSARows)
	viper.SetDefault("render.track-width", d.TrackWidth)
	viper.SetDefault("render.track-height", d.TrackHeight)
	viper.SetDefault("report.max-score-rows", 100)
}
