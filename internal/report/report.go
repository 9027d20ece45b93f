// Package report renders computed grouped statistics as text, markdown or HTML.
package report

import (
	"fmt"
	"strings"

	"groupstat/adapters/stats/engine"
	"groupstat/domain/grouped"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

const rule = "========================================"

// Text renders the class table and statistics as fixed-width console output
func Text(result *grouped.StatsResult) string {
	var b strings.Builder

	b.WriteString("\n" + rule + "\n")
	fmt.Fprintf(&b, "%10s | %10s | %10s\n", "Lower", "Upper", "Freq")
	b.WriteString(strings.Repeat("-", 40) + "\n")
	for _, row := range result.Dataset {
		fmt.Fprintf(&b, "%10.2f | %10.2f | %10.2f\n", row.Lower, row.Upper, row.Frequency)
	}
	b.WriteString(strings.Repeat("-", 40) + "\n")
	fmt.Fprintf(&b, "Total N: %g\n", result.TotalFrequency)
	b.WriteString(rule + "\n")

	fmt.Fprintf(&b, "Mean (Average):     %.4f\n", result.Mean)
	fmt.Fprintf(&b, "Median:             %.4f\n", result.Median)
	fmt.Fprintf(&b, "Mode:               %.4f\n", result.Mode)
	fmt.Fprintf(&b, "Variance:           %.4f\n", result.Variance)
	fmt.Fprintf(&b, "Standard Deviation: %.4f\n", result.StdDev)
	b.WriteString(rule + "\n")

	return b.String()
}

// Markdown renders the statistics and the per-class breakdown as markdown tables
func Markdown(title string, result *grouped.StatsResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title)

	b.WriteString("## Statistics\n\n")
	b.WriteString("| Statistic | Value |\n|---|---:|\n")
	fmt.Fprintf(&b, "| N | %g |\n", result.TotalFrequency)
	fmt.Fprintf(&b, "| Mean | %.4f |\n", result.Mean)
	fmt.Fprintf(&b, "| Median | %.4f |\n", result.Median)
	fmt.Fprintf(&b, "| Mode | %.4f |\n", result.Mode)
	fmt.Fprintf(&b, "| Variance | %.4f |\n", result.Variance)
	fmt.Fprintf(&b, "| Standard deviation | %.4f |\n", result.StdDev)

	b.WriteString("\n## Classes\n\n")
	b.WriteString("| Class | f | x | f·x | cf | (x − mean)² | f·(x − mean)² |\n")
	b.WriteString("|---|---:|---:|---:|---:|---:|---:|\n")
	for i, row := range engine.Breakdown(result) {
		fmt.Fprintf(&b, "| %s | %g | %.2f | %.2f | %g | %.2f | %.2f |\n",
			row.Class, result.Dataset[i].Frequency, row.Midpoint, row.FX,
			row.CumulativeFreq, row.DeviationSquared, row.FDeviationSquared)
	}

	return b.String()
}

// HTML renders the markdown report as a complete HTML page
func HTML(title string, result *grouped.StatsResult) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: title,
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.ToHTML([]byte(Markdown(title, result)), p, renderer)
}
