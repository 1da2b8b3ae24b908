package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/pfrederiksen/elcap-firsts/internal/pipeline"
)

const (
	DefaultDir  = "~/.local/share/elcap-firsts"
	ReportFile  = "report.json"
	CreditsFile = "credits.parquet"
)

// Storage handles run artifacts in one directory
type Storage struct {
	dataDir string
}

// Credit is one climber credited on one route
type Credit struct {
	RouteIndex int64  `parquet:"route_index" json:"route_index"`
	Route      string `parquet:"route" json:"route"`
	URL        string `parquet:"url,optional" json:"url,omitempty"`
	Position   int64  `parquet:"position" json:"position"`
	Climber    string `parquet:"climber" json:"climber"`
	Confidence string `parquet:"confidence" json:"confidence"`
	Overridden bool   `parquet:"overridden" json:"overridden"`
}

// New creates a new Storage instance
func New(dataDir string) (*Storage, error) {
	dataDir, err := ExpandHome(dataDir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// ExpandHome replaces a leading ~/ with the user's home directory
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}

// Dir returns the directory artifacts are written to
func (s *Storage) Dir() string {
	return s.dataDir
}

// ReportPath returns the path of the report file
func (s *Storage) ReportPath() string {
	return filepath.Join(s.dataDir, ReportFile)
}

// CreditsPath returns the path of the parquet export
func (s *Storage) CreditsPath() string {
	return filepath.Join(s.dataDir, CreditsFile)
}

// SaveReport writes the report as indented JSON and returns its path
func (s *Storage) SaveReport(report *pipeline.Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}

	path := s.ReportPath()
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	return path, nil
}

// LoadReport reads the report written by SaveReport
func (s *Storage) LoadReport() (*pipeline.Report, error) {
	return LoadReportFile(s.ReportPath())
}

// LoadReportFile reads a report from path
func LoadReportFile(path string) (*pipeline.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("no report at %s: %w", path, err)
		}
		return nil, fmt.Errorf("opening report: %w", err)
	}
	defer f.Close()

	return ReadReport(f)
}

// ReadReport decodes a JSON report
func ReadReport(r io.Reader) (*pipeline.Report, error) {
	var report pipeline.Report
	if err := json.NewDecoder(r).Decode(&report); err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}
	return &report, nil
}

// Credits flattens a report into one row per credited climber.
func Credits(report *pipeline.Report) []Credit {
	credits := make([]Credit, 0, report.Credits())
	for _, route := range report.Routes {
		for pos, name := range route.Names {
			credits = append(credits, Credit{
				RouteIndex: int64(route.Index),
				Route:      route.Route,
				URL:        route.URL,
				Position:   int64(pos),
				Climber:    name,
				Confidence: route.Confidence.String(),
				Overridden: route.Overridden,
			})
		}
	}
	return credits
}

// ExportCredits writes the report's credits as parquet and returns the path
func (s *Storage) ExportCredits(report *pipeline.Report) (string, error) {
	path := s.CreditsPath()
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating credits file: %w", err)
	}
	defer f.Close()

	writer := parquet.NewGenericWriter[Credit](f)
	if _, err := writer.Write(Credits(report)); err != nil {
		return "", fmt.Errorf("writing credits: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("closing parquet writer: %w", err)
	}

	return path, nil
}

// LoadCredits reads the parquet export written by ExportCredits
func (s *Storage) LoadCredits() ([]Credit, error) {
	f, err := os.Open(s.CreditsPath())
	if err != nil {
		return nil, fmt.Errorf("opening credits file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat credits file: %w", err)
	}

	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("opening parquet: %w", err)
	}

	reader := parquet.NewGenericReader[Credit](pf)
	defer reader.Close()

	credits := make([]Credit, 0, pf.NumRows())
	batch := make([]Credit, 64)
	for {
		n, err := reader.Read(batch)
		credits = append(credits, batch[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading credits: %w", err)
		}
	}

	return credits, nil
}
