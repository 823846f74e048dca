// Package render turns timeline geometry into static SVG charts for
// export. It shares all placement math with the timeline package so an
// exported chart matches what the live view shows.
package render

import (
	"fmt"
	"strings"
	"time"

	"exercise-tracker/internal/model"
	"exercise-tracker/internal/timeline"
)

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// SVG renders exercises into a chart for the window anchored at now.
func SVG(exercises []model.Exercise, g timeline.Granularity, zoom float64, now time.Time, style Style) string {
	w := timeline.ComputeWindow(g, now)
	headers := w.Headers(g)

	chartWidth := style.Layout.Width - style.Layout.LabelWidth
	height := style.Layout.HeaderHeight + len(exercises)*style.Layout.RowHeight

	var svg strings.Builder
	svg.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="%s"/>
<style>
text { font-family: %s; font-size: %dpx; fill: %s; }
.hdr { font-size: %dpx; }
.sub { font-size: %dpx; fill: #777777; }
</style>
`, style.Layout.Width, height, style.Colors.Background,
		style.Font.Family, style.Font.Size, style.Colors.Text,
		style.Font.Size-1, style.Font.Size-2))

	writeHeaders(&svg, headers, g, zoom, w, chartWidth, height, style)

	y := style.Layout.HeaderHeight
	for _, ex := range exercises {
		writeRow(&svg, ex, w, chartWidth, y, style)
		y += style.Layout.RowHeight
	}

	svg.WriteString("</svg>\n")
	return svg.String()
}

func writeHeaders(svg *strings.Builder, headers []time.Time, g timeline.Granularity, zoom float64, w timeline.Window, chartWidth, height int, style Style) {
	svg.WriteString(fmt.Sprintf(`<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`+"\n",
		style.Layout.Width, style.Layout.HeaderHeight, style.Colors.Header))

	for _, d := range headers {
		bar := timeline.LayoutBar(d, d, w)
		x := style.Layout.LabelWidth + int(bar.Left/100*float64(chartWidth))
		if x > style.Layout.Width {
			continue
		}

		svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="0" x2="%d" y2="%d" stroke="%s" stroke-width="1"/>`+"\n",
			x, x, height, style.Colors.Grid))
		svg.WriteString(fmt.Sprintf(`<text class="hdr" x="%d" y="%d">%s</text>`+"\n",
			x+3, style.Layout.HeaderHeight-8, textEscaper.Replace(timeline.HeaderLabel(d, g, zoom))))

		if month := timeline.MonthLabel(d, g); month != "" {
			svg.WriteString(fmt.Sprintf(`<text class="sub" x="%d" y="%d">%s</text>`+"\n",
				x+3, style.Font.Size, textEscaper.Replace(month)))
		}
	}
}

func writeRow(svg *strings.Builder, ex model.Exercise, w timeline.Window, chartWidth, y int, style Style) {
	rowBottom := y + style.Layout.RowHeight
	svg.WriteString(fmt.Sprintf(`<line x1="0" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="1"/>`+"\n",
		rowBottom, style.Layout.Width, rowBottom, style.Colors.Grid))

	label := ex.Name
	if percent, band, ok := timeline.Readiness(ex); ok {
		label = fmt.Sprintf("%s (%d%%, %s)", ex.Name, percent, band)
	}
	svg.WriteString(fmt.Sprintf(`<text x="8" y="%d">%s</text>`+"\n",
		y+style.Layout.RowHeight/2+style.Font.Size/2, textEscaper.Replace(label)))

	laneY := y + style.Layout.RowHeight/2 - style.Layout.BarHeight/2
	if bar := timeline.LayoutBar(ex.StartDate, ex.EndDate, w); bar.Visible() {
		// Short exercises keep at least their label's width so the bar
		// stays legible; positions of other bars are unaffected.
		writeBar(svg, bar.Clip(), chartWidth, laneY, style.Layout.BarHeight,
			style.barColor(ex.Priority), timeline.MinLabelWidth(ex.Name), style)
	}

	for _, p := range timeline.StackEvents(ex, w) {
		if !p.Bar.Visible() {
			continue
		}
		eventY := laneY + p.OffsetPx
		if eventY < y {
			eventY = y
		}
		if eventY+style.Layout.EventHeight > rowBottom {
			eventY = rowBottom - style.Layout.EventHeight
		}
		writeBar(svg, p.Bar.Clip(), chartWidth, eventY, style.Layout.EventHeight, style.Colors.Event, 0, style)
	}
}

func writeBar(svg *strings.Builder, bar timeline.Bar, chartWidth, y, h int, color string, minWidth int, style Style) {
	x := style.Layout.LabelWidth + int(bar.Left/100*float64(chartWidth))
	width := int(bar.Width / 100 * float64(chartWidth))
	if width < minWidth {
		width = minWidth
	}
	if width < 2 {
		width = 2
	}
	svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" rx="3" fill="%s"/>`+"\n",
		x, y, width, h, color))
}
