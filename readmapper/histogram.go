package readmapper

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SeedHistogram tallies, across a batch of MapRead calls, the seed_attempt
// at which each successful mapping was found and the count of reads that
// mapped at no seed_attempt at all.
type SeedHistogram struct {
	bySeedAttempt []int
	unmapped      int
	total         int
}

// NewSeedHistogram returns an empty histogram.
func NewSeedHistogram() *SeedHistogram {
	return &SeedHistogram{}
}

// Add records one MapRead outcome: result is nil for an unmapped read.
func (h *SeedHistogram) Add(result *MapResult) {
	h.total++
	if result == nil {
		h.unmapped++
		return
	}
	for len(h.bySeedAttempt) <= result.SeedAttempt {
		h.bySeedAttempt = append(h.bySeedAttempt, 0)
	}
	h.bySeedAttempt[result.SeedAttempt]++
}

// Total is the number of reads recorded, mapped or not.
func (h *SeedHistogram) Total() int { return h.total }

// Unmapped is the number of reads for which MapRead returned nil.
func (h *SeedHistogram) Unmapped() int { return h.unmapped }

// SeedAttemptCounts returns, indexed by seed_attempt, the number of reads
// first mapped at that attempt.
func (h *SeedHistogram) SeedAttemptCounts() []int {
	return append([]int(nil), h.bySeedAttempt...)
}

// WriteText renders a plain-text bar table, one row per seed_attempt plus a
// trailing "unmapped" row, to w.
func (h *SeedHistogram) WriteText(w io.Writer) error {
	var b strings.Builder
	for attempt, count := range h.bySeedAttempt {
		fmt.Fprintf(&b, "seed_attempt=%-3d %8d  %s\n", attempt, count, bar(count, h.total))
	}
	fmt.Fprintf(&b, "unmapped      %8d  %s\n", h.unmapped, bar(h.unmapped, h.total))
	_, err := io.WriteString(w, b.String())
	return errors.Wrap(err, "readmapper: writing seed histogram")
}

func bar(count, total int) string {
	if total == 0 {
		return ""
	}
	const width = 40
	n := count * width / total
	return strings.Repeat("#", n)
}

// WritePNG renders the histogram as a bar chart (one bar per seed_attempt,
// plus an "unmapped" bar) to w.
func (h *SeedHistogram) WritePNG(w io.Writer) error {
	p := plot.New()
	p.Title.Text = "Seed attempt at which mapping succeeded"
	p.X.Label.Text = "seed_attempt (last bar: unmapped)"
	p.Y.Label.Text = "read count"

	values := make(plotter.Values, len(h.bySeedAttempt)+1)
	copy(values, h.bySeedAttempt2Float())
	values[len(values)-1] = float64(h.unmapped)

	bars, err := plotter.NewBarChart(values, vg.Points(24))
	if err != nil {
		return errors.Wrap(err, "readmapper: building bar chart")
	}
	bars.Color = color.RGBA{R: 80, G: 140, B: 200, A: 255}
	p.Add(bars)

	labels := make([]string, len(values))
	for i := range h.bySeedAttempt {
		labels[i] = fmt.Sprintf("%d", i)
	}
	labels[len(labels)-1] = "unmapped"
	p.NominalX(labels...)

	writerTo, err := p.WriterTo(8*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return errors.Wrap(err, "readmapper: rendering histogram png")
	}
	_, err = writerTo.WriteTo(w)
	return errors.Wrap(err, "readmapper: writing histogram png")
}

func (h *SeedHistogram) bySeedAttempt2Float() []float64 {
	out := make([]float64, len(h.bySeedAttempt))
	for i, v := range h.bySeedAttempt {
		out[i] = float64(v)
	}
	return out
}
