package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/pfrederiksen/elcap-firsts/internal/ascent"
	"github.com/pfrederiksen/elcap-firsts/internal/config"
	"github.com/pfrederiksen/elcap-firsts/internal/pipeline"
	"github.com/pfrederiksen/elcap-firsts/internal/tally"
)

func sampleReport() *pipeline.Report {
	return &pipeline.Report{
		Area: "El Capitan",
		Routes: []pipeline.RouteResult{
			{Index: 0, Route: "The Nose", Raw: "Warren Harding, 1958", Cleaned: []string{"Warren Harding"}, Names: []string{"Warren Harding"}, Confidence: ascent.Trimmed},
			{Index: 1, Route: "Zodiac", Raw: "Charlie Porter solo 1972", Cleaned: []string{"Charlie Porter solo"}, Names: []string{"Charlie Porter solo"}, Confidence: ascent.Guessed},
			{Index: 2, Route: "Tangerine Trip", Raw: "?", Cleaned: []string{"Charlie Porter"}, Names: []string{"Charlie Porter"}, Confidence: ascent.Guessed, Overridden: true},
		},
		Leaderboard: []tally.Entry{
			{Name: "Charlie Porter", Count: 1},
			{Name: "Charlie Porter solo", Count: 1},
			{Name: "Warren Harding", Count: 1},
		},
		NeedsReview:     []int{1},
		UnusedOverrides: []int{40, 41},
	}
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"text", "JSON", " yaml "} {
		if _, err := ParseFormat(in); err != nil {
			t.Errorf("ParseFormat(%q) error = %v", in, err)
		}
	}
	if _, err := ParseFormat("csv"); err == nil {
		t.Error("ParseFormat(csv) expected error")
	}
}

func TestWriteOutput(t *testing.T) {
	value := map[string]int{"routes": 3}
	text := func(w io.Writer) error {
		_, err := io.WriteString(w, "plain\n")
		return err
	}

	tests := []struct {
		format OutputFormat
		want   string
	}{
		{FormatJSON, "\"routes\": 3"},
		{FormatYAML, "routes: 3"},
		{FormatText, "plain"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteOutput(&buf, value, tt.format, text); err != nil {
				t.Fatalf("WriteOutput() error = %v", err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("WriteOutput() = %q, want %q", buf.String(), tt.want)
			}
		})
	}

	if err := WriteOutput(io.Discard, value, "xml", text); err == nil {
		t.Error("WriteOutput() with unknown format expected error")
	}
}

func TestWriteReportText(t *testing.T) {
	chartCfg := config.Default().Chart
	chartCfg.Min = 1

	var buf bytes.Buffer
	err := writeReportText(&buf, sampleReport(), reportText{chart: chartCfg, verbose: true, order: SortByConfidence})
	if err != nil {
		t.Fatalf("writeReportText() error = %v", err)
	}
	out := buf.String()

	wants := []string{
		"El Capitan: 3 routes, 3 first ascent credits, 3 climbers",
		"Overrides applied: 1",
		"Needs review (1):",
		`[1] Zodiac: "Charlie Porter solo 1972" -> Charlie Porter solo (guessed)`,
		"Unused override indexes: 40, 41",
		"[2] Tangerine Trip: Charlie Porter (guessed) [override]",
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteReportText_Quiet(t *testing.T) {
	report := sampleReport()
	report.NeedsReview = nil
	report.UnusedOverrides = nil

	var buf bytes.Buffer
	if err := writeReportText(&buf, report, reportText{chart: config.Default().Chart}); err != nil {
		t.Fatalf("writeReportText() error = %v", err)
	}
	out := buf.String()

	// default chart minimum is two first ascents
	if !strings.Contains(out, "No first ascents found.") {
		t.Errorf("expected empty chart message:\n%s", out)
	}
	for _, unwanted := range []string{"Needs review", "Unused override", "Routes:"} {
		if strings.Contains(out, unwanted) {
			t.Errorf("output should not contain %q:\n%s", unwanted, out)
		}
	}
}
