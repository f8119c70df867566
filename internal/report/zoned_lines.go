// Package report renders per-line zone listings for display.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/width"

	"farezone.transit.org/internal/stations"
	"farezone.transit.org/internal/zones"
)

const ruleWidth = 32

var (
	rule        = strings.Repeat("=", ruleWidth)
	sameZone    = fmt.Sprintf("%6s", "│")
	zoneChanged = strings.Repeat("─", 5) + "┼" + strings.Repeat("─", 10)
)

// ZonedLines writes every line of the dataset with the zone of each station.
// A vertical bar joins consecutive stations in the same zone and a crossed
// rule separates stations in different zones. Stations without a zone are
// shown with "-" and always start a new band.
func ZonedLines(w io.Writer, zm zones.Map, ds *stations.Dataset, names LineNames) error {
	bw := bufio.NewWriter(w)

	for _, line := range ds.Lines {
		fmt.Fprintf(bw, "\n%s\n\n%s\n\n", rule, center(names.Name(line.Letter), ruleWidth))

		prev, havePrev := 0, false
		for i, st := range line.Stations {
			zone, ok := zm[ds.Names[st.Label]]
			if i > 0 {
				if havePrev && ok && zone == prev {
					fmt.Fprintln(bw, sameZone)
				} else {
					fmt.Fprintln(bw, zoneChanged)
				}
			}
			prev, havePrev = zone, ok

			zoneText := "-"
			if ok {
				zoneText = fmt.Sprint(zone)
			}
			fmt.Fprintf(bw, "%2s%5s  %s\n", zoneText, st.Label, st.Name)
		}
	}

	fmt.Fprintf(bw, "\n%s\n\n", rule)
	return bw.Flush()
}

// center pads s to n display columns, wide characters counting as two.
// Extra padding goes to the right.
func center(s string, n int) string {
	w := displayWidth(s)
	if w >= n {
		return s
	}
	left := (n - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", n-w-left)
}

func displayWidth(s string) int {
	total := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			total += 2
		default:
			total++
		}
	}
	return total
}
