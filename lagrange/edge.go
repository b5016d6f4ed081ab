package lagrange

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// EdgePoints places count points evenly along the straight line from frm to
// to, excluding both end points, ordered from frm toward to
func EdgePoints(frm, to r3.Vec, count int) (pts []r3.Vec) {
	if count <= 0 {
		return nil
	}
	var (
		span = r3.Sub(to, frm)
	)
	pts = make([]r3.Vec, count)
	for i := 1; i <= count; i++ {
		pts[i-1] = r3.Add(frm, r3.Scale(float64(i)/float64(count+1), span))
	}
	return
}

func edgeCoords(frm, to GridCoord, count int) (coords []GridCoord) {
	pts := EdgePoints(toVec(frm), toVec(to), count)
	coords = make([]GridCoord, len(pts))
	for i, p := range pts {
		coords[i] = toCoord(p)
	}
	return
}

func toVec(c GridCoord) r3.Vec {
	return r3.Vec{X: float64(c[0]), Y: float64(c[1]), Z: float64(c[2])}
}

// Grid positions are exact integers, rounding removes interpolation noise
func toCoord(v r3.Vec) GridCoord {
	return GridCoord{int(math.Round(v.X)), int(math.Round(v.Y)), int(math.Round(v.Z))}
}

// unitStep is the grid step from a to b when the span covers order steps
func unitStep(a, b GridCoord, order int) r3.Vec {
	return r3.Scale(1/float64(order), r3.Sub(toVec(b), toVec(a)))
}
