package report

import "github.com/goliatone/go-formcodec/pkg/layout"

// Data is the template context for a lint report.
type Data struct {
	Title      string           `json:"title"`
	Documents  int              `json:"documents"`
	Components int              `json:"components"`
	Errors     int              `json:"errors"`
	Warnings   int              `json:"warnings"`
	Findings   []layout.Finding `json:"findings"`
}

// Summarize counts documents, components and findings by severity.
func Summarize(title string, set layout.Set, findings []layout.Finding) Data {
	data := Data{
		Title:     title,
		Documents: len(set.Documents),
		Findings:  findings,
	}
	if data.Findings == nil {
		data.Findings = []layout.Finding{}
	}
	for _, doc := range set.Documents {
		data.Components += len(doc.Components)
	}
	for _, finding := range findings {
		switch finding.Severity {
		case layout.SeverityError:
			data.Errors++
		case layout.SeverityWarning:
			data.Warnings++
		}
	}
	return data
}
