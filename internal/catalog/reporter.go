package catalog

import (
	"fmt"
	"io"
)

// Reporter prints the human-readable progress lines of a run.
type Reporter struct {
	w io.Writer
}

// NewReporter creates a reporter writing to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// AlreadyEnriched reports that the trending column exists and nothing is written.
func (r *Reporter) AlreadyEnriched() {
	fmt.Fprintf(r.w, "%s field already exists in the Excel file.\n", TrendingColumn)
}

// Reading announces the workbook being enriched.
func (r *Reporter) Reading(path string) {
	fmt.Fprintf(r.w, "Reading Excel file from %s\n", path)
}

// Added reports how many products received the flag.
func (r *Reporter) Added(total int) {
	fmt.Fprintf(r.w, "Added %s field to %d products\n", TrendingColumn, total)
}

// FloorEnsured reports that the draw fell short of the trending floor.
func (r *Reporter) FloorEnsured(minTrending int) {
	fmt.Fprintf(r.w, "Ensured at least %d products are trending\n", minTrending)
}

// Saved reports where the enriched workbook was written.
func (r *Reporter) Saved(path string) {
	fmt.Fprintf(r.w, "Saved updated Excel file to %s\n", path)
}

// Summary prints the totals and the trending share with one decimal.
func (r *Reporter) Summary(res Result) {
	fmt.Fprintf(r.w, "Total products: %d\n", res.Total)
	fmt.Fprintf(r.w, "Trending products: %d (%.1f%%)\n", res.Trending, res.Percentage())
}
