// Package report renders solver output as plain text for the CLI. The
// core returns data only; all presentation lives here.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/avandyck/symbiont/internal/scenario"
	"github.com/avandyck/symbiont/internal/solver"
	"github.com/avandyck/symbiont/internal/species"
)

const rule = "=================================================="

// Ecosystem renders the solutions of an ecosystem solve.
func Ecosystem(scn scenario.Scenario, res *solver.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n%s\n", scn.Title, rule)
	writeStats(&b, res.Stats)

	if len(res.Solutions) == 0 {
		b.WriteString("\nNo valid selections found.\n")
		return b.String()
	}

	for i, sol := range res.Solutions {
		fmt.Fprintf(&b, "\nSolution %d\n", i+1)
		fmt.Fprintf(&b, "  Species: %s\n", strings.Join(sol.Names(), ", "))

		for _, attr := range sortedKeys(sol.Window) {
			iv := sol.Window[attr]
			fmt.Fprintf(&b, "  Shared %s window: %g to %g\n", attr, iv.Min, iv.Max)
		}

		totalProvided := 0.0
		for _, sp := range sol.Species {
			totalProvided += sp.Provided
		}
		fmt.Fprintf(&b, "  Total calories provided: %s\n", humanize.Commaf(totalProvided))

		if len(sol.Log) > 0 {
			b.WriteString("  Feeding log:\n")
			for _, line := range sol.Log {
				fmt.Fprintf(&b, "    %s\n", line)
			}
		}
	}

	return b.String()
}

// Assignment renders a multi-site solve in either mode.
func Assignment(scn scenario.Scenario, res *solver.AssignResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n%s\n", scn.Title, rule)
	fmt.Fprintf(&b, "Pool: %d microbes, %d sites\n", len(scn.Pool), len(scn.Sites))
	writeSiteRequirements(&b, scn.Sites)
	writeStats(&b, res.Stats)

	if len(res.PerSite) > 0 {
		for _, sr := range res.PerSite {
			fmt.Fprintf(&b, "\nSite: %s\n", sr.Site)
			if len(sr.Solutions) == 0 {
				b.WriteString("  No valid selections.\n")
				continue
			}
			for i, sol := range sr.Solutions {
				fmt.Fprintf(&b, "  %d. %s\n", i+1, strings.Join(sol.Names(), ", "))
				fmt.Fprintf(&b, "     Averages: %s\n", formatMeans(sol.Means))
			}
		}
		return b.String()
	}

	if len(res.Assignments) == 0 {
		b.WriteString("\nNo assignment covers every site without reuse.\n")
		return b.String()
	}

	for i, asn := range res.Assignments {
		fmt.Fprintf(&b, "\nFull assignment %d\n", i+1)
		for _, sel := range asn.Sites {
			names := make([]string, len(sel.Species))
			for j, sp := range sel.Species {
				names[j] = sp.Name
			}
			fmt.Fprintf(&b, "  %s: %s\n", sel.Site, strings.Join(names, ", "))
			fmt.Fprintf(&b, "    Averages: %s\n", formatMeans(sel.Means))
		}
	}

	return b.String()
}

func writeSiteRequirements(b *strings.Builder, sites []species.Site) {
	for _, site := range sites {
		fmt.Fprintf(b, "  %s:", site.Name)
		for _, attr := range sortedKeys(site.Ranges) {
			iv := site.Ranges[attr]
			fmt.Fprintf(b, " %s %g-%g", attr, iv.Min, iv.Max)
		}
		if len(site.RequiredTraits) > 0 {
			fmt.Fprintf(b, " (needs: %s)", strings.Join(site.RequiredTraits, ", "))
		}
		b.WriteString("\n")
	}
}

func writeStats(b *strings.Builder, st solver.Stats) {
	fmt.Fprintf(b, "Examined %s combinations, %s passed constraints",
		humanize.Comma(int64(st.Enumerated)), humanize.Comma(int64(st.CheckerPass)))
	if st.Simulated > 0 {
		fmt.Fprintf(b, ", %s simulated", humanize.Comma(int64(st.Simulated)))
	}
	fmt.Fprintf(b, ", %d accepted.\n", st.Accepted)
}

func formatMeans(means map[string]float64) string {
	parts := make([]string, 0, len(means))
	for _, attr := range sortedKeys(means) {
		parts = append(parts, fmt.Sprintf("%s=%.1f", attr, means[attr]))
	}
	return strings.Join(parts, ", ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
