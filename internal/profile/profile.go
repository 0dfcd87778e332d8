// Package profile counts the instructions executed by a machine, and
// renders the most frequent ones as a bar chart.
package profile

import (
	"image"
	"io"
	"math"
	"sort"

	"github.com/pkg/errors"
	"github.com/thelolagemann/gbcore/internal/cpu"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Entry holds the statistics of a single mnemonic.
type Entry struct {
	Name   string
	Count  uint64
	Cycles uint64
}

// Profiler accumulates Entry statistics from the instruction trace.
type Profiler struct {
	entries map[string]*Entry
	count   uint64
	cycles  uint64
}

// New returns an empty Profiler.
func New() *Profiler {
	return &Profiler{entries: make(map[string]*Entry)}
}

// Trace records an executed instruction. It is meant to be
// installed as the instruction trace hook.
func (p *Profiler) Trace(t cpu.Trace) {
	e, ok := p.entries[t.Name]
	if !ok {
		e = &Entry{Name: t.Name}
		p.entries[t.Name] = e
	}
	e.Count++
	e.Cycles += uint64(t.Cycles)
	p.count++
	p.cycles += uint64(t.Cycles)
}

// Count returns the number of instructions recorded.
func (p *Profiler) Count() uint64 { return p.count }

// Cycles returns the number of T-states recorded.
func (p *Profiler) Cycles() uint64 { return p.cycles }

// Top returns the n most executed mnemonics, most executed first.
// Ties are broken by name. A negative n returns every mnemonic.
func (p *Profiler) Top(n int) []Entry {
	entries := make([]Entry, 0, len(p.entries))
	for _, e := range p.entries {
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Name < entries[j].Name
	})
	if n >= 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries
}

const (
	chartWidth  = 1024
	chartHeight = 576
)

// WritePNG renders the n most executed mnemonics as a bar chart, and
// writes it to w as a PNG.
func (p *Profiler) WritePNG(w io.Writer, n int) error {
	top := p.Top(n)
	if len(top) == 0 {
		return errors.New("profile: no instructions recorded")
	}

	plt := plot.New()
	plt.Title.Text = "Instructions executed"
	plt.Y.Label.Text = "Count"
	plt.X.Tick.Label.Rotation = math.Pi / 2

	values := make(plotter.Values, len(top))
	names := make([]string, len(top))
	for i, e := range top {
		values[i] = float64(e.Count)
		names[i] = e.Name
	}
	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return errors.Wrap(err, "profile")
	}
	plt.Add(bars)
	plt.NominalX(names...)

	img := image.NewRGBA(image.Rect(0, 0, chartWidth, chartHeight))
	c := vgimg.NewWith(vgimg.UseImage(img))
	plt.Draw(draw.New(c))

	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(w); err != nil {
		return errors.Wrap(err, "profile: writing png")
	}
	return nil
}
