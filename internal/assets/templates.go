package assets

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"
)

//go:embed templates/practice-report.md.go.tmpl
var fallbackPracticeReportTemplate string

const practiceReportTemplateName = "practice-report.md.go.tmpl"

// ReportTemplate is the top-level data structure for practice report templates
type ReportTemplate struct {
	GeneratedAt         time.Time
	Period              string
	Sessions            int
	Overall             ReportRow
	AverageResponseTime time.Duration
	Sections            []ReportSection
	WeakAreas           []ReportWeakArea
	Mistakes            []ReportMistake
}

// ReportSection is an accuracy table grouped by one dimension
type ReportSection struct {
	Title  string
	Header string
	Rows   []ReportRow
}

type ReportRow struct {
	Key     string
	Total   int
	Correct int
	Percent string
}

type ReportWeakArea struct {
	Dimension string
	Key       string
	Total     int
	Percent   string
}

type ReportMistake struct {
	Task     string
	Expected string
	Given    string
}

func ParseReportTemplate(templatePath string) (*template.Template, error) {
	return parseTemplateWithFallback(templatePath, practiceReportTemplateName, fallbackPracticeReportTemplate)
}

func WritePracticeReport(output io.Writer, templatePath string, templateData ReportTemplate) error {
	tmpl, err := ParseReportTemplate(templatePath)
	if err != nil {
		return fmt.Errorf("ParseReportTemplate(%s) > %w", templatePath, err)
	}
	if err := tmpl.Execute(output, templateData); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}

func parseTemplateWithFallback(templatePath, fallbackName, fallbackTemplate string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"join":  strings.Join,
		"title": title,
	}

	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			fileName := filepath.Base(templatePath)
			tmpl, err := template.New(fileName).
				Funcs(funcMap).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a templatePath",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(fallbackName).
		Funcs(funcMap).
		Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
