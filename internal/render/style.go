package render

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Style controls the appearance of rendered charts. The zero value is
// not usable; start from DefaultStyle and override via YAML.
type Style struct {
	Font struct {
		Family string `yaml:"family"`
		Size   int    `yaml:"size"`
	} `yaml:"font"`
	Colors struct {
		Background string `yaml:"background"`
		Grid       string `yaml:"grid"`
		Header     string `yaml:"header"`
		Text       string `yaml:"text"`
		Bar        string `yaml:"bar"`
		Event      string `yaml:"event"`
		// Priority overrides the bar color per exercise priority.
		Priority map[string]string `yaml:"priority"`
	} `yaml:"colors"`
	Layout struct {
		Width        int `yaml:"width"`
		RowHeight    int `yaml:"row_height"`
		HeaderHeight int `yaml:"header_height"`
		LabelWidth   int `yaml:"label_width"`
		BarHeight    int `yaml:"bar_height"`
		EventHeight  int `yaml:"event_height"`
	} `yaml:"layout"`
}

func DefaultStyle() Style {
	var s Style
	s.Font.Family = "Arial, sans-serif"
	s.Font.Size = 12
	s.Colors.Background = "#ffffff"
	s.Colors.Grid = "#e0e0e0"
	s.Colors.Header = "#f5f5f5"
	s.Colors.Text = "#333333"
	s.Colors.Bar = "#4285f4"
	s.Colors.Event = "#9aa0a6"
	s.Colors.Priority = map[string]string{
		"high":   "#d93025",
		"medium": "#4285f4",
		"low":    "#34a853",
	}
	s.Layout.Width = 1200
	s.Layout.RowHeight = 96
	s.Layout.HeaderHeight = 40
	s.Layout.LabelWidth = 180
	s.Layout.BarHeight = 20
	s.Layout.EventHeight = 14
	return s
}

// LoadStyle reads a YAML style file over the defaults. An empty path
// returns DefaultStyle unchanged.
func LoadStyle(path string) (Style, error) {
	style := DefaultStyle()
	if path == "" {
		return style, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Style{}, fmt.Errorf("read style file: %w", err)
	}
	if err := yaml.Unmarshal(data, &style); err != nil {
		return Style{}, fmt.Errorf("parse style file: %w", err)
	}
	return style, nil
}

func (s Style) barColor(priority string) string {
	if c, ok := s.Colors.Priority[priority]; ok && c != "" {
		return c
	}
	return s.Colors.Bar
}
