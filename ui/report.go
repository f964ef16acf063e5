package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"anonsurvey/app"
	"anonsurvey/internal/analysis"
)

// BuildReport renders one analysis run as a markdown document:
// per-question and per-student paired comparisons plus the legend.
func BuildReport(result app.AnalysisResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Survey analysis %s\n\n", result.RunID)

	// Legend maps shorthand to question text; the table wants the reverse.
	questionAliases := make(map[string]string, len(result.Legend.Questions))
	for shorthand, text := range result.Legend.Questions {
		questionAliases[text] = shorthand
	}

	b.WriteString("## Paired t-test by question\n\n")
	writeResultTable(&b, "Question", result.ByQuestion, questionAliases)

	b.WriteString("\n## Paired t-test by student\n\n")
	writeResultTable(&b, "Student", result.ByStudent, result.Legend.Students)

	if len(result.Legend.Questions) > 0 {
		b.WriteString("\n## Legend\n\n")
		keys := make([]string, 0, len(result.Legend.Questions))
		for k := range result.Legend.Questions {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "- **%s**: %s\n", k, result.Legend.Questions[k])
		}
	}

	return b.String()
}

// writeResultTable emits one markdown table; aliases (when present)
// replace raw entity keys with their pseudonyms.
func writeResultTable(b *strings.Builder, entity string, results map[string]analysis.PairedTestResult, aliases map[string]string) {
	keys := make([]string, 0, len(results))
	for k := range results {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(b, "| %s | Pre mean | Post mean | Mean diff | N | t | p | Outcome |\n", entity)
	b.WriteString("|---|---|---|---|---|---|---|---|\n")
	for _, k := range keys {
		res := results[k]
		label := k
		if alias, ok := aliases[k]; ok {
			label = alias
		}
		t, p := "-", "-"
		if res.Outcome == analysis.OutcomeComputed {
			t = fmt.Sprintf("%.4f", res.Statistic)
			p = fmt.Sprintf("%.4f", res.PValue)
		}
		fmt.Fprintf(b, "| %s | %.3f | %.3f | %+.3f | %d | %s | %s | %s |\n",
			label, res.Pre.Mean, res.Post.Mean, res.MeanDiff, res.NPairs, t, p, res.Outcome)
	}
}

// RenderReportHTML converts the markdown report to HTML.
func RenderReportHTML(report string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(report))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}
