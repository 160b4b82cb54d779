// Package report writes practice reports from recorded attempts.
package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/at-ishikawa/verbdrill/internal/assets"
	"github.com/at-ishikawa/verbdrill/internal/learning"
	"github.com/at-ishikawa/verbdrill/internal/pdf"
	"github.com/at-ishikawa/verbdrill/internal/statistics"
)

const (
	defaultWeakAreaLimit = 5
	defaultMistakeLimit  = 10
)

// Options controls which attempts are reported and where the report is written.
type Options struct {
	Directory    string
	TemplatePath string
	Year         int
	Month        int
	PDF          bool
	Now          time.Time
}

// Output lists the files written by Generate.
type Output struct {
	MarkdownPath string
	PDFPath      string
}

// Build converts attempts into template data.
func Build(attempts []learning.Attempt, year, month int, now time.Time) assets.ReportTemplate {
	result := statistics.CalculateStatistics(attempts, year, month)

	data := assets.ReportTemplate{
		GeneratedAt:         now,
		Period:              period(year, month),
		Sessions:            result.Sessions,
		Overall:             row(result.Overall),
		AverageResponseTime: time.Duration(result.AverageResponseTime) * time.Millisecond,
	}

	for _, section := range []struct {
		title  string
		header string
		groups []statistics.Accuracy
	}{
		{"By Tense", "Tense", result.ByTense},
		{"By Form", "Form", result.ByForm},
		{"By Pronoun", "Pronoun", result.ByPronoun},
		{"By Verb", "Verb", result.ByVerb},
	} {
		if len(section.groups) == 0 {
			continue
		}
		rows := make([]assets.ReportRow, 0, len(section.groups))
		for _, g := range section.groups {
			rows = append(rows, row(g))
		}
		data.Sections = append(data.Sections, assets.ReportSection{
			Title:  section.title,
			Header: section.header,
			Rows:   rows,
		})
	}

	for _, area := range result.WeakestAreas(defaultWeakAreaLimit) {
		data.WeakAreas = append(data.WeakAreas, assets.ReportWeakArea{
			Dimension: string(area.Dimension),
			Key:       area.Accuracy.Key,
			Total:     area.Accuracy.Total,
			Percent:   area.Accuracy.Percent(),
		})
	}

	data.Mistakes = recentMistakes(attempts, year, month, defaultMistakeLimit)
	return data
}

// Generate writes a markdown report and, if requested, its PDF rendering.
func Generate(attempts []learning.Attempt, opts Options) (Output, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	var buf bytes.Buffer
	if err := assets.WritePracticeReport(&buf, opts.TemplatePath, Build(attempts, opts.Year, opts.Month, now)); err != nil {
		return Output{}, fmt.Errorf("assets.WritePracticeReport() > %w", err)
	}

	if err := os.MkdirAll(opts.Directory, 0755); err != nil {
		return Output{}, fmt.Errorf("os.MkdirAll(%s) > %w", opts.Directory, err)
	}
	output := Output{
		MarkdownPath: filepath.Join(opts.Directory, fileName(opts.Year, opts.Month, now)),
	}
	if err := os.WriteFile(output.MarkdownPath, buf.Bytes(), 0644); err != nil {
		return Output{}, fmt.Errorf("os.WriteFile(%s) > %w", output.MarkdownPath, err)
	}

	if opts.PDF {
		pdfPath, err := pdf.ConvertMarkdownToPDF(output.MarkdownPath)
		if err != nil {
			return output, fmt.Errorf("pdf.ConvertMarkdownToPDF(%s) > %w", output.MarkdownPath, err)
		}
		output.PDFPath = pdfPath
	}
	return output, nil
}

func row(a statistics.Accuracy) assets.ReportRow {
	return assets.ReportRow{
		Key:     a.Key,
		Total:   a.Total,
		Correct: a.Correct,
		Percent: a.Percent(),
	}
}

func period(year, month int) string {
	switch {
	case year == 0:
		return ""
	case month == 0:
		return fmt.Sprintf("%d", year)
	default:
		return fmt.Sprintf("%d-%02d", year, month)
	}
}

func fileName(year, month int, now time.Time) string {
	if p := period(year, month); p != "" {
		return "practice-report-" + p + ".md"
	}
	return "practice-report-" + now.Format("20060102") + ".md"
}

// recentMistakes returns the newest wrong answers first.
func recentMistakes(attempts []learning.Attempt, year, month, limit int) []assets.ReportMistake {
	var wrong []learning.Attempt
	for _, a := range attempts {
		if a.Correct || a.AnsweredAt.IsZero() {
			continue
		}
		if year != 0 && a.AnsweredAt.Year() != year {
			continue
		}
		if month != 0 && int(a.AnsweredAt.Month()) != month {
			continue
		}
		wrong = append(wrong, a)
	}
	slices.SortStableFunc(wrong, func(a, b learning.Attempt) int {
		return b.AnsweredAt.Compare(a.AnsweredAt)
	})
	if len(wrong) > limit {
		wrong = wrong[:limit]
	}

	mistakes := make([]assets.ReportMistake, 0, len(wrong))
	for _, a := range wrong {
		mistakes = append(mistakes, assets.ReportMistake{
			Task:     a.Task().String(),
			Expected: a.Expected,
			Given:    a.Given,
		})
	}
	return mistakes
}
