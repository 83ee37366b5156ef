// Package report renders a completed analysis report as markdown, with an
// HTML rendering for embedding in dashboards.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"heliocorr/domain/analysis"
	"heliocorr/domain/knowledge"
)

// Render produces the markdown report body
func Render(r *analysis.AnalysisReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Heliobiological Correlation Report\n\n")
	fmt.Fprintf(&b, "- **Report:** %s\n", r.ID)
	fmt.Fprintf(&b, "- **Created:** %s\n", r.CreatedAt.String())
	fmt.Fprintf(&b, "- **Samples:** %d aligned %s points\n", r.SampleSize, r.Params.ResampleCadence)
	fmt.Fprintf(&b, "- **Method:** %s\n\n", r.Params.CorrelationMethod)

	absR := r.Correlation.Coefficient
	if absR < 0 {
		absR = -absR
	}
	fmt.Fprintf(&b, "## Correlation\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Coefficient | %.4f (%s) |\n", r.Correlation.Coefficient, knowledge.CorrelationStrength(absR))
	fmt.Fprintf(&b, "| p-value | %.4g |\n", r.Correlation.PValue)
	fmt.Fprintf(&b, "| 95%% CI | [%.3f, %.3f] |\n", r.Correlation.ConfidenceInterval[0], r.Correlation.ConfidenceInterval[1])
	if r.Params.CorrelationMethod == analysis.MethodCrossCorrelation {
		fmt.Fprintf(&b, "| Best lag | %d %s steps |\n", r.Correlation.Lag, r.Params.ResampleCadence)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Periodicity\n\n")
	writeSpectrum(&b, "Activity", r.ActivitySpectrum)
	writeSpectrum(&b, "Event", r.EventSpectrum)
	fmt.Fprintf(&b, "- Mean phase difference: %.3f rad\n", r.Phase.MeanPhaseDiff)
	fmt.Fprintf(&b, "- Seasonal strength (period %d): %.3f\n\n", r.Params.SeasonalPeriod, r.Seasonal.SeasonalStrength)

	fmt.Fprintf(&b, "## Cycle Outlook\n\n")
	fmt.Fprintf(&b, "- Phase: %s (fraction %.2f)\n",
		knowledge.CyclePhaseName(r.Cycle.PhaseFraction, r.Cycle.TrendSlope), r.Cycle.PhaseFraction)
	fmt.Fprintf(&b, "- Risk level: **%s**\n", r.Cycle.RiskLevel)
	fmt.Fprintf(&b, "- Peaks detected: %d\n", r.Cycle.PeakCount)
	if r.Cycle.HasNextPeak {
		fmt.Fprintf(&b, "- Next peak projected: %s (mean interval %.1f steps)\n",
			r.Cycle.NextPeak.Format(time.DateOnly), r.Cycle.MeanPeakInterval)
	} else {
		fmt.Fprintf(&b, "- Next peak: not enough peaks to project\n")
	}
	b.WriteString("\n")

	if len(r.Recommendations) > 0 {
		fmt.Fprintf(&b, "## Recommendations\n\n")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func writeSpectrum(b *strings.Builder, label string, s analysis.SpectralSummary) {
	if period := s.DominantPeriod(); period > 0 {
		fmt.Fprintf(b, "- %s series: dominant period %.1f steps (power %.2f)\n", label, period, s.PowerAtDominant)
	} else {
		fmt.Fprintf(b, "- %s series: no dominant periodicity detected\n", label)
	}
}

// RenderHTML converts the markdown report into a standalone HTML fragment
func RenderHTML(r *analysis.AnalysisReport) []byte {
	md := []byte(Render(r))
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(p.Parse(md), renderer)
}
