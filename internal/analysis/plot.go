package analysis

import (
	"fmt"
	"image/color"
	"io"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/edumetrics/enem-pipeline/internal/hits"
	"github.com/edumetrics/enem-pipeline/internal/microdata"
)

var (
	aboveColor  = color.RGBA{R: 31, G: 119, B: 180, A: 160}
	belowColor  = color.RGBA{R: 214, G: 39, B: 40, A: 160}
	medianColor = color.RGBA{A: 255}
)

// RenderHitsFigure draws the 2x2 scatter grid of hits vs score per
// subject, split by the above/below-median label with the per-hits
// median overlaid, and writes it as PNG.
func RenderHitsFigure(rows []hits.Labeled, w io.Writer) error {
	const (
		gridRows = 2
		gridCols = 2
	)
	plots := make([][]*plot.Plot, gridRows)
	for r := range plots {
		plots[r] = make([]*plot.Plot, gridCols)
	}

	for i, subject := range microdata.Subjects() {
		p, err := subjectPlot(rows, subject)
		if err != nil {
			return fmt.Errorf("plot %s: %w", subject, err)
		}
		plots[i/gridCols][i%gridCols] = p
	}

	img := vgimg.New(14*vg.Inch, 10*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: gridRows, Cols: gridCols,
		PadX: vg.Millimeter * 4, PadY: vg.Millimeter * 4,
		PadTop: vg.Millimeter * 2, PadBottom: vg.Millimeter * 2,
		PadLeft: vg.Millimeter * 2, PadRight: vg.Millimeter * 2,
	}
	canvases := plot.Align(plots, tiles, dc)
	for r := 0; r < gridRows; r++ {
		for c := 0; c < gridCols; c++ {
			plots[r][c].Draw(canvases[r][c])
		}
	}

	png := vgimg.PngCanvas{Canvas: img}
	_, err := png.WriteTo(w)
	return err
}

func subjectPlot(rows []hits.Labeled, subject microdata.Subject) (*plot.Plot, error) {
	var above, below plotter.XYs
	scoresByHits := map[int][]float64{}

	for i := range rows {
		sl := rows[i].Subjects[subject]
		if sl.Score == nil {
			continue
		}
		pt := plotter.XY{X: float64(sl.Hits), Y: *sl.Score}
		if sl.AboveMedian {
			above = append(above, pt)
		} else {
			below = append(below, pt)
		}
		scoresByHits[sl.Hits] = append(scoresByHits[sl.Hits], *sl.Score)
	}

	var medians plotter.XYs
	hitVals := make([]int, 0, len(scoresByHits))
	for h := range scoresByHits {
		hitVals = append(hitVals, h)
	}
	sort.Ints(hitVals)
	for _, h := range hitVals {
		if m := medianOf(scoresByHits[h]); m != nil {
			medians = append(medians, plotter.XY{X: float64(h), Y: *m})
		}
	}

	p := plot.New()
	label := subject.Label()
	p.Title.Text = fmt.Sprintf("Correct Answers vs Scores in %s", label)
	p.X.Label.Text = fmt.Sprintf("Number of Correct Answers in %s", label)
	p.Y.Label.Text = fmt.Sprintf("Score in %s", label)
	p.Add(plotter.NewGrid())

	for _, series := range []struct {
		name string
		pts  plotter.XYs
		col  color.Color
		r    vg.Length
	}{
		{"Score > Median", above, aboveColor, vg.Points(1)},
		{"Score <= Median", below, belowColor, vg.Points(1)},
		{"Median", medians, medianColor, vg.Points(2.5)},
	} {
		if len(series.pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(series.pts)
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Color = series.col
		s.GlyphStyle.Radius = series.r
		p.Add(s)
		p.Legend.Add(series.name, s)
	}
	p.Legend.Top = true
	p.Legend.Left = true
	return p, nil
}

func medianOf(xs []float64) *float64 {
	if len(xs) == 0 {
		return nil
	}
	sort.Float64s(xs)
	mid := len(xs) / 2
	var m float64
	if len(xs)%2 == 1 {
		m = xs[mid]
	} else {
		m = (xs[mid-1] + xs[mid]) / 2
	}
	return &m
}
