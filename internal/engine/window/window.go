// Package window builds a bounded neighborhood of document lines around the
// best textual match for a query. The window caps the volume of text
// forwarded to the fallback resolver, both for cost and to keep the model
// focused on the locally relevant neighborhood.
package window

import "github.com/voracio/sheetsense/internal/engine/line"

// DefaultRadius is the number of lines kept on each side of the best match.
const DefaultRadius = 20

// Build locates the single best-matching line for the normalized query,
// running the same search as the line matcher but without its score gate, and
// returns the slice of lines from max(0, best-radius) to
// min(len(lines), best+radius). An empty input yields nil. A radius ≤ 0
// falls back to DefaultRadius.
func Build(normalizedQuery string, lines []string, radius int) []string {
	if len(lines) == 0 {
		return nil
	}
	if radius <= 0 {
		radius = DefaultRadius
	}
	best, _ := line.BestMatch(normalizedQuery, lines)

	lo := best - radius
	if lo < 0 {
		lo = 0
	}
	hi := best + radius
	if hi > len(lines) {
		hi = len(lines)
	}
	return lines[lo:hi]
}
