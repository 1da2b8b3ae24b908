package chart

import (
	"errors"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"github.com/pfrederiksen/elcap-firsts/internal/tally"
)

// ErrNoData is returned when there is nothing to draw.
var ErrNoData = errors.New("no entries to chart")

// Options controls PNG rendering
type Options struct {
	Width    int
	Title    string
	FontPath string  // TrueType font; the built-in bitmap face is used when empty
	FontSize float64 // points, only used with FontPath
	BarColor string  // hex color
}

// DefaultOptions returns the options used when none are configured
func DefaultOptions() Options {
	return Options{
		Width:    900,
		Title:    "First ascents by climber",
		FontSize: 13,
		BarColor: "#3b6ea5",
	}
}

const (
	rowHeight    = 22.0
	barHeight    = 16.0
	margin       = 20.0
	titleHeight  = 36.0
	countPadding = 6.0
)

// Render draws a horizontal bar per entry, longest bar first.
func Render(entries []tally.Entry, opts Options) (image.Image, error) {
	dc, err := draw(entries, opts)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// RenderPNG draws the chart and encodes it as PNG to w.
func RenderPNG(w io.Writer, entries []tally.Entry, opts Options) error {
	dc, err := draw(entries, opts)
	if err != nil {
		return err
	}
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

func draw(entries []tally.Entry, opts Options) (*gg.Context, error) {
	if len(entries) == 0 {
		return nil, ErrNoData
	}
	defaults := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = defaults.Width
	}
	if opts.BarColor == "" {
		opts.BarColor = defaults.BarColor
	}
	if opts.FontSize <= 0 {
		opts.FontSize = defaults.FontSize
	}

	height := int(titleHeight + float64(len(entries))*rowHeight + 2*margin)
	dc := gg.NewContext(opts.Width, height)
	if opts.FontPath != "" {
		if err := dc.LoadFontFace(opts.FontPath, opts.FontSize); err != nil {
			return nil, fmt.Errorf("loading font: %w", err)
		}
	}

	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetRGB(0.1, 0.1, 0.1)
	if opts.Title != "" {
		dc.DrawStringAnchored(opts.Title, float64(opts.Width)/2, margin+titleHeight/3, 0.5, 0.5)
	}

	labelWidth := 0.0
	maxCount := 0
	for _, e := range entries {
		if w, _ := dc.MeasureString(e.Name); w > labelWidth {
			labelWidth = w
		}
		if e.Count > maxCount {
			maxCount = e.Count
		}
	}
	countWidth, _ := dc.MeasureString(strconv.Itoa(maxCount))

	left := margin + labelWidth + countPadding
	span := float64(opts.Width) - left - margin - countWidth - countPadding
	if span < 1 {
		span = 1
	}

	for i, e := range entries {
		y := margin + titleHeight + float64(i)*rowHeight
		mid := y + rowHeight/2

		dc.SetRGB(0.1, 0.1, 0.1)
		dc.DrawStringAnchored(e.Name, left-countPadding, mid, 1, 0.35)

		barWidth := span * float64(e.Count) / float64(maxCount)
		dc.SetHexColor(opts.BarColor)
		dc.DrawRectangle(left, mid-barHeight/2, barWidth, barHeight)
		dc.Fill()

		dc.SetRGB(0.1, 0.1, 0.1)
		dc.DrawStringAnchored(strconv.Itoa(e.Count), left+barWidth+countPadding, mid, 0, 0.35)
	}

	return dc, nil
}

// WriteText writes the leaderboard as a terminal bar chart.
// width is the length of the longest bar in characters.
func WriteText(w io.Writer, entries []tally.Entry, width int) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No first ascents found.")
		return err
	}
	if width <= 0 {
		width = 40
	}

	nameWidth := 0
	maxCount := 0
	for _, e := range entries {
		if len(e.Name) > nameWidth {
			nameWidth = len(e.Name)
		}
		if e.Count > maxCount {
			maxCount = e.Count
		}
	}

	for _, e := range entries {
		bar := e.Count * width / maxCount
		if bar == 0 && e.Count > 0 {
			bar = 1
		}
		if _, err := fmt.Fprintf(w, "%-*s %s %d\n", nameWidth, e.Name, strings.Repeat("#", bar), e.Count); err != nil {
			return err
		}
	}
	return nil
}
