// Package spy draws sparsity patterns of a matrix and of its ILU factors.
package spy

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"ilu"
)

var (
	originalColor = color.RGBA{R: 30, G: 60, B: 160, A: 255}
	fillColor     = color.RGBA{R: 200, G: 40, B: 40, A: 255}
)

// PatternPoints splits the entries of L+U into original entries and fill-ins.
func PatternPoints(p *ilu.Pattern) (original, fill plotter.XYs) {
	add := func(i, col, lev int) {
		xy := plotter.XY{X: float64(col), Y: -float64(i)}
		if lev == 0 {
			original = append(original, xy)
		} else {
			fill = append(fill, xy)
		}
	}
	for i := 0; i < p.Size; i++ {
		for k := p.LRowStart[i]; k < p.LRowStart[i+1]; k++ {
			add(i, p.LCol[k], p.LLevel[k])
		}
		for k := p.URowStart[i]; k < p.URowStart[i+1]; k++ {
			add(i, p.UCol[k], p.ULevel[k])
		}
	}
	return original, fill
}

// Plot returns a plot of the pattern of L+U with fill-ins highlighted.
func Plot(p *ilu.Pattern, title string) (*plot.Plot, error) {
	pl := plot.New()
	pl.Title.Text = title
	pl.X.Label.Text = "column"
	pl.Y.Label.Text = "-row"

	original, fill := PatternPoints(p)
	for _, series := range []struct {
		name  string
		xys   plotter.XYs
		color color.Color
	}{
		{"original", original, originalColor},
		{fmt.Sprintf("fill (level <= %d)", p.Level), fill, fillColor},
	} {
		if len(series.xys) == 0 {
			continue
		}
		s, err := plotter.NewScatter(series.xys)
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Shape = draw.BoxGlyph{}
		s.GlyphStyle.Radius = markerRadius(p.Size)
		s.GlyphStyle.Color = series.color
		pl.Add(s)
		pl.Legend.Add(series.name, s)
	}
	pl.Legend.Top = true
	return pl, nil
}

// Save writes the plot of p to file; the format follows the file extension.
func Save(p *ilu.Pattern, title, file string) error {
	pl, err := Plot(p, title)
	if err != nil {
		return err
	}
	return pl.Save(6*vg.Inch, 6*vg.Inch, file)
}

func markerRadius(size int) vg.Length {
	switch {
	case size <= 50:
		return vg.Points(3)
	case size <= 500:
		return vg.Points(1)
	default:
		return vg.Points(0.3)
	}
}
