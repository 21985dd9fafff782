// Package export writes the session history as markdown, CSV, YAML or PDF.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/xvierd/focusday/internal/domain"
	"gopkg.in/yaml.v3"
)

// Format is an export output format.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatCSV      Format = "csv"
	FormatYAML     Format = "yaml"
	FormatPDF      Format = "pdf"
)

// Period names accepted by PeriodStart.
const (
	PeriodToday = "today"
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodAll   = "all"
)

var (
	// ErrUnknownFormat is returned for an unsupported output format.
	ErrUnknownFormat = errors.New("unknown export format")

	// ErrUnknownPeriod is returned for an unsupported period name.
	ErrUnknownPeriod = errors.New("unknown export period")
)

// ParseFormat resolves a format name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "md", "markdown":
		return FormatMarkdown, nil
	case "csv":
		return FormatCSV, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Extension returns the file extension used when writing format to a file.
func (f Format) Extension() string {
	return "." + string(f)
}

// PeriodStart returns the earliest timestamp included in period. "all"
// returns the zero time.
func PeriodStart(period string, now time.Time) (time.Time, error) {
	switch period {
	case PeriodToday:
		return domain.StartOfDay(now), nil
	case PeriodWeek:
		return now.AddDate(0, 0, -7), nil
	case PeriodMonth:
		return now.AddDate(0, -1, 0), nil
	case PeriodAll, "":
		return time.Time{}, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownPeriod, period)
}

// Report is the data written by every format.
type Report struct {
	Generated time.Time
	Period    string
	Sessions  []domain.TimerSession
}

// NewReport builds a report of sessions generated at now.
func NewReport(now time.Time, period string, sessions []domain.TimerSession) Report {
	if period == "" {
		period = PeriodAll
	}
	return Report{Generated: now, Period: period, Sessions: sessions}
}

// Stats totals the report's sessions.
func (r Report) Stats() domain.SessionStats {
	return domain.Summarize(r.Sessions)
}

// Write renders r to w in format.
func Write(w io.Writer, format Format, r Report) error {
	switch format {
	case FormatMarkdown:
		return WriteMarkdown(w, r)
	case FormatCSV:
		return WriteCSV(w, r)
	case FormatYAML:
		return WriteYAML(w, r)
	case FormatPDF:
		return WritePDF(w, r)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// WriteMarkdown writes one section per day, oldest first.
func WriteMarkdown(w io.Writer, r Report) error {
	stats := r.Stats()
	var b strings.Builder

	b.WriteString("# Focusday Session Export\n\n")
	fmt.Fprintf(&b, "Generated: %s\n", r.Generated.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Period: %s\n", r.Period)
	fmt.Fprintf(&b, "Sessions: %d (%d min)\n\n", stats.Sessions, stats.FocusMinutes)

	day := ""
	for _, s := range r.Sessions {
		local := s.Timestamp.Local()
		if d := local.Format("2006-01-02"); d != day {
			day = d
			fmt.Fprintf(&b, "## %s\n", local.Format("Monday, January 2, 2006"))
		}
		fmt.Fprintf(&b, "- %s %s, %d min", local.Format("15:04"), s.Mode.Label(), s.DurationMinutes)
		if s.Branch != "" {
			fmt.Fprintf(&b, " (%s)", s.Branch)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteCSV writes a header row and one row per session.
func WriteCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"id", "date", "time", "mode", "duration_min", "branch"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, s := range r.Sessions {
		local := s.Timestamp.Local()
		if err := cw.Write([]string{
			s.ID,
			local.Format("2006-01-02"),
			local.Format("15:04:05"),
			string(s.Mode),
			strconv.Itoa(s.DurationMinutes),
			s.Branch,
		}); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

type yamlReport struct {
	Generated    time.Time             `yaml:"generated"`
	Period       string                `yaml:"period"`
	Count        int                   `yaml:"count"`
	FocusMinutes int                   `yaml:"focus_minutes"`
	Sessions     []domain.TimerSession `yaml:"sessions"`
}

// WriteYAML writes the report as a single YAML document.
func WriteYAML(w io.Writer, r Report) error {
	stats := r.Stats()
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlReport{
		Generated:    r.Generated,
		Period:       r.Period,
		Count:        stats.Sessions,
		FocusMinutes: stats.FocusMinutes,
		Sessions:     r.Sessions,
	}); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

// WritePDF writes an A4 report with one line per session.
func WritePDF(w io.Writer, r Report) error {
	stats := r.Stats()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(r.Generated)
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Focusday Session Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Generated %s, period: %s", r.Generated.Format("2006-01-02 15:04"), r.Period))
	pdf.Ln(10)

	day := ""
	for _, s := range r.Sessions {
		local := s.Timestamp.Local()
		if d := local.Format("2006-01-02"); d != day {
			day = d
			pdf.Ln(2)
			pdf.SetFont("Arial", "B", 13)
			pdf.Cell(0, 9, local.Format("Monday, January 2, 2006"))
			pdf.Ln(8)
			pdf.SetFont("Arial", "", 11)
		}
		line := fmt.Sprintf("    %s  %s, %d min", local.Format("15:04"), s.Mode.Label(), s.DurationMinutes)
		if s.Branch != "" {
			line += "  [" + s.Branch + "]"
		}
		pdf.Cell(0, 7, line)
		pdf.Ln(6)
	}

	if len(r.Sessions) == 0 {
		pdf.Cell(0, 8, "No completed sessions.")
		pdf.Ln(8)
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Total: %d sessions, %d minutes of focus", stats.Sessions, stats.FocusMinutes))

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}
