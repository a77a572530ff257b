/*
 * angles.go, part of gorefine.
 *
 * Copyright 2024 The goRefine Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package chemplot

import (
	"errors"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	refine "github.com/rmera/gorefine"
	"github.com/rmera/gorefine/stf"
	v3 "github.com/rmera/gorefine/v3"
)

// DihedralPairs reads all the remaining frames of r and returns, for each, the dihedrals
// defined by the atoms in first and second, in degrees.
func DihedralPairs(r *stf.Reader, first, second [4]int) ([][2]float64, error) {
	for _, q := range [2][4]int{first, second} {
		for _, a := range q {
			if a < 0 || a >= r.Len() {
				panic(v3.ErrIndexOutOfRange)
			}
		}
	}
	c := v3.Zeros(r.Len())
	var ret [][2]float64
	for {
		_, err := r.Next(c)
		if errors.Is(err, io.EOF) {
			return ret, nil
		}
		if err != nil {
			return ret, &Error{"reading frame", []string{"DihedralPairs"}, true, err}
		}
		ret = append(ret, [2]float64{
			refine.Rad2Deg(refine.DihedralAt(c, first[0], first[1], first[2], first[3])),
			refine.Rad2Deg(refine.DihedralAt(c, second[0], second[1], second[2], second[3])),
		})
	}
}

func basicAngleMap(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.X.Min = -180
	p.X.Max = 180
	p.Y.Min = -180
	p.Y.Max = 180
	p.Add(plotter.NewGrid())
	return p
}

// AngleMap returns a scatter plot of pairs of angles in degrees, as given by DihedralPairs.
// Points are colored from red to violet in order, and up to 4 points with indexes in
// tag are drawn with distinct glyphs.
func AngleMap(data [][2]float64, tag []int, title, xlabel, ylabel string) (*plot.Plot, error) {
	if len(data) == 0 {
		return nil, &Error{"no angles", []string{"AngleMap"}, true, ErrNoData}
	}
	if len(tag) > 4 {
		return nil, &Error{"", []string{"AngleMap"}, true, ErrTooManyTag}
	}
	p := basicAngleMap(title, xlabel, ylabel)
	var tagged int
	for key, val := range data {
		s, err := plotter.NewScatter(plotter.XYs{{X: val[0], Y: val[1]}})
		if err != nil {
			return nil, &Error{"adding point", []string{"AngleMap"}, true, err}
		}
		if isInInt(tag, key) {
			s.GlyphStyle.Shape, _ = getShape(tagged)
			tagged++
		}
		r, g, b := colors(key, len(data))
		s.GlyphStyle.Color = color.RGBA{R: r, G: g, B: b, A: 255}
		p.Add(s)
	}
	return p, nil
}
