package geom

import "math"

// Add appends a polygon and grows the bbox to cover it. Rings with fewer
// than three vertices are dropped.
func (g *Geometry) Add(poly Polygon) {
	var kept Polygon
	for i, ring := range poly {
		if len(ring) < 3 {
			if i == 0 {
				return
			}
			continue
		}
		kept = append(kept, ring)
	}
	if len(kept) == 0 {
		return
	}
	empty := len(g.Polygons) == 0
	g.Polygons = append(g.Polygons, kept)
	for _, p := range kept[0] {
		if empty {
			g.BBox = BBox{MinX: p[0], MinY: p[1], MaxX: p[0], MaxY: p[1]}
			empty = false
			continue
		}
		g.BBox = g.BBox.Extend(p[0], p[1])
	}
}

// Empty reports whether g has no polygons.
func (g Geometry) Empty() bool { return len(g.Polygons) == 0 }

// Extend returns b grown to include (x, y).
func (b BBox) Extend(x, y float64) BBox {
	if x < b.MinX {
		b.MinX = x
	}
	if y < b.MinY {
		b.MinY = y
	}
	if x > b.MaxX {
		b.MaxX = x
	}
	if y > b.MaxY {
		b.MaxY = y
	}
	return b
}

// Union returns the smallest bbox covering both.
func (b BBox) Union(o BBox) BBox {
	b = b.Extend(o.MinX, o.MinY)
	return b.Extend(o.MaxX, o.MaxY)
}

// Center is the bbox midpoint.
func (b BBox) Center() (float64, float64) {
	return (b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2
}

// ContainsPoint reports whether (x, y) is inside b, edges included.
func (b BBox) ContainsPoint(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// ringMoments returns the signed shoelace area of r and the centroid
// accumulators (sum over edges of (xi+xj)*cross, (yi+yj)*cross).
func ringMoments(r Ring) (area, cx, cy float64) {
	n := len(r)
	if n == 0 {
		return 0, 0, 0
	}
	// Shift by the first vertex to keep the sums well conditioned for
	// lon/lat values far from the origin.
	ox, oy := r[0][0], r[0][1]
	for i := 0; i < n; i++ {
		x0, y0 := r[i][0]-ox, r[i][1]-oy
		x1, y1 := r[(i+1)%n][0]-ox, r[(i+1)%n][1]-oy
		cross := x0*y1 - x1*y0
		area += cross
		cx += (x0 + x1) * cross
		cy += (y0 + y1) * cross
	}
	area /= 2
	if area != 0 {
		cx = cx/(6*area) + ox
		cy = cy/(6*area) + oy
	}
	return area, cx, cy
}

// Area is the planar area of g in squared degrees, holes subtracted.
func (g Geometry) Area() float64 {
	var total float64
	for _, poly := range g.Polygons {
		for i, ring := range poly {
			a, _, _ := ringMoments(ring)
			if i == 0 {
				total += math.Abs(a)
			} else {
				total -= math.Abs(a)
			}
		}
	}
	return total
}

// Centroid returns the area-weighted centroid over every polygon, with holes
// removed. Degenerate geometry with zero area falls back to the mean of the
// outer ring vertices.
func (g Geometry) Centroid() (x, y float64, ok bool) {
	var sa, sx, sy float64
	for _, poly := range g.Polygons {
		for i, ring := range poly {
			a, cx, cy := ringMoments(ring)
			a = math.Abs(a)
			if i > 0 {
				a = -a
			}
			sa += a
			sx += a * cx
			sy += a * cy
		}
	}
	if sa != 0 {
		return sx / sa, sy / sa, true
	}
	var n int
	for _, poly := range g.Polygons {
		for _, p := range poly[0] {
			x += p[0]
			y += p[1]
			n++
		}
	}
	if n == 0 {
		return 0, 0, false
	}
	return x / float64(n), y / float64(n), true
}

// Contains reports whether (x, y) falls inside g using the even-odd rule
// over every ring, so holes are excluded.
func (g Geometry) Contains(x, y float64) bool {
	if g.Empty() || !g.BBox.ContainsPoint(x, y) {
		return false
	}
	for _, poly := range g.Polygons {
		in := false
		for _, ring := range poly {
			if ringContains(ring, x, y) {
				in = !in
			}
		}
		if in {
			return true
		}
	}
	return false
}

func ringContains(r Ring, x, y float64) bool {
	in := false
	n := len(r)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := r[i], r[j]
		if (a[1] > y) != (b[1] > y) {
			xi := a[0] + (y-a[1])*(b[0]-a[0])/(b[1]-a[1])
			if x < xi {
				in = !in
			}
		}
	}
	return in
}

// SignedArea is the shoelace area of r: positive when counter-clockwise.
func (r Ring) SignedArea() float64 {
	a, _, _ := ringMoments(r)
	return a
}
