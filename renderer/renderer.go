// Package renderer turns report structures into markdown. All layout lives in
// embedded templates; the Go side only builds flat view structs with
// display-formatted values.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templates embed.FS

// RenderReport renders the full financial report to a markdown string.
func RenderReport(v *Report) string {
	partials := map[string]string{
		"report_title":         "report_title.md",
		"report_profit_loss":   "report_profit_loss.md",
		"report_balance_sheet": "report_balance_sheet.md",
		"report_cash_flow":     "report_cash_flow.md",
		"report_ratios":        "report_ratios.md",
		"report_audit":         "report_audit.md",
	}
	return renderTemplate("report", "report.md", partials, v)
}

// RenderReconciliation renders a blocked reconciliation with its diagnostics
// and proposed fixes.
func RenderReconciliation(v *Reconciliation) string {
	partials := map[string]string{
		"reconciliation_diagnostics": "reconciliation_diagnostics.md",
		"reconciliation_fixes":       "reconciliation_fixes.md",
	}
	return renderTemplate("reconciliation", "reconciliation.md", partials, v)
}

// RenderDetection renders a format detection verdict and its reasons.
func RenderDetection(v *Detection) string {
	return renderTemplate("detection", "detection.md", nil, v)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
