package region

import (
	"github.com/dhconnelly/rtreego"
)

// Index answers point queries over a collection. Candidates come from an
// R-tree over region bounding boxes and are confirmed with an exact
// point-in-polygon test.
type Index struct {
	tree *rtreego.Rtree
	// insertion position of each code, so overlapping hits resolve in
	// collection order
	rank map[string]int
}

type indexEntry struct {
	r    *Region
	rect rtreego.Rect
}

func (e *indexEntry) Bounds() rtreego.Rect { return e.rect }

// NewIndex builds an index over every region of c with a non-empty
// geometry.
func NewIndex(c *Collection) *Index {
	idx := &Index{
		tree: rtreego.NewTree(2, 4, 16),
		rank: make(map[string]int, c.Len()),
	}
	for i, r := range c.Regions() {
		if r.Geometry.Empty() {
			continue
		}
		b := r.Geometry.BBox
		rect, err := rtreego.NewRectFromPoints(
			rtreego.Point{b.MinX, b.MinY},
			rtreego.Point{b.MaxX, b.MaxY},
		)
		if err != nil {
			// zero-width boxes: pad to a point rect
			rect = rtreego.Point{b.MinX, b.MinY}.ToRect(1e-9)
		}
		idx.tree.Insert(&indexEntry{r: r, rect: rect})
		idx.rank[r.Code] = i
	}
	return idx
}

// Size is the number of indexed regions.
func (idx *Index) Size() int { return idx.tree.Size() }

// At returns the region containing (x, y). When regions overlap the one
// added to the collection first wins.
func (idx *Index) At(x, y float64) (*Region, bool) {
	var best *Region
	for _, s := range idx.tree.SearchIntersect(rtreego.Point{x, y}.ToRect(1e-9)) {
		e := s.(*indexEntry)
		if !e.r.Geometry.Contains(x, y) {
			continue
		}
		if best == nil || idx.rank[e.r.Code] < idx.rank[best.Code] {
			best = e.r
		}
	}
	return best, best != nil
}
