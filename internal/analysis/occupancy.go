package analysis

import (
	"github.com/san-kum/starfield/internal/starfield"
)

// Occupancy describes how the stars of a Screen cover its grid.
type Occupancy struct {
	Stars      int     // tracked star points
	Marked     int     // cells showing a star glyph
	Duplicates int     // points sharing a cell with an earlier point
	Density    float64 // configured density
	Realised   float64 // Marked / area
	Columns    []float64
	Rows       []float64
}

// Measure scans the buffer and star list of s.
func Measure(s *starfield.Screen) Occupancy {
	w, h := s.Width(), s.Height()
	occ := Occupancy{
		Density: s.Density(),
		Columns: make([]float64, w),
		Rows:    make([]float64, h),
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if s.Cell(x, y) != starfield.StarGlyph {
				continue
			}
			occ.Marked++
			occ.Columns[x]++
			occ.Rows[y]++
		}
	}

	stars := s.Stars()
	occ.Stars = len(stars)
	seen := make(map[starfield.Point]struct{}, len(stars))
	for _, p := range stars {
		if _, ok := seen[p]; ok {
			occ.Duplicates++
			continue
		}
		seen[p] = struct{}{}
	}

	if area := w * h; area > 0 {
		occ.Realised = float64(occ.Marked) / float64(area)
	}
	return occ
}
