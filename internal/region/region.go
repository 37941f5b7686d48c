// Package region holds keyed collections of boundary polygons with their
// attributes: the table a choropleth is drawn from.
package region

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/aclements/go-moremath/stats"

	"geostates/internal/geom"
)

var (
	// ErrNotFound is returned when a region code is not in a collection.
	ErrNotFound = errors.New("region not found")
	// ErrMissingValue is returned when a region has no usable value for a
	// column.
	ErrMissingValue = errors.New("missing value")
	// ErrDuplicate is returned by Add for a code that is already present.
	ErrDuplicate = errors.New("duplicate region code")
)

// NotFoundError names the code that could not be found.
type NotFoundError struct {
	Code string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("region %q not found", e.Code) }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// MissingValueError names the region and column of a missing or NaN value.
type MissingValueError struct {
	Code, Column string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("region %q: missing value for column %q", e.Code, e.Column)
}

func (e *MissingValueError) Is(target error) bool { return target == ErrMissingValue }

// Region is one row of a collection.
type Region struct {
	Code     string
	Props    map[string]string
	Values   map[string]float64
	Geometry geom.Geometry
}

// Name returns the NAME property, falling back to the code.
func (r *Region) Name() string {
	if n := r.Props["NAME"]; n != "" {
		return n
	}
	if n := r.Props["name"]; n != "" {
		return n
	}
	return r.Code
}

// Value returns the named numeric value. Missing and NaN values are errors.
func (r *Region) Value(column string) (float64, error) {
	v, ok := r.Values[column]
	if !ok || math.IsNaN(v) {
		return 0, &MissingValueError{Code: r.Code, Column: column}
	}
	return v, nil
}

// Collection is an insertion-ordered table of regions with unique codes.
// Collections are not safe for concurrent mutation.
type Collection struct {
	order []string
	byKey map[string]*Region
}

// New returns an empty collection.
func New() *Collection {
	return &Collection{byKey: map[string]*Region{}}
}

// FromFeatures builds a collection keyed by the keyProp property of each
// feature. Features without the property are skipped; a repeated key is an
// error.
func FromFeatures(feats []geom.Feature, keyProp string) (*Collection, error) {
	c := New()
	for _, f := range feats {
		code := strings.TrimSpace(f.Props[keyProp])
		if code == "" {
			slog.Debug("feature_without_key", "key", keyProp)
			continue
		}
		r := &Region{Code: code, Props: f.Props, Values: f.Values, Geometry: f.Geometry}
		if err := c.Add(r); err != nil {
			return nil, err
		}
	}
	if c.Len() == 0 {
		return nil, fmt.Errorf("no features carry key property %q", keyProp)
	}
	return c, nil
}

// Add inserts r. The maps of r are created if nil.
func (c *Collection) Add(r *Region) error {
	if _, ok := c.byKey[r.Code]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicate, r.Code)
	}
	if r.Props == nil {
		r.Props = map[string]string{}
	}
	if r.Values == nil {
		r.Values = map[string]float64{}
	}
	c.order = append(c.order, r.Code)
	c.byKey[r.Code] = r
	return nil
}

// Len is the number of regions.
func (c *Collection) Len() int { return len(c.order) }

// Codes returns the region codes in insertion order.
func (c *Collection) Codes() []string {
	return append([]string(nil), c.order...)
}

// Has reports whether code is present.
func (c *Collection) Has(code string) bool {
	_, ok := c.byKey[code]
	return ok
}

// Get returns the region for code or a *NotFoundError.
func (c *Collection) Get(code string) (*Region, error) {
	r, ok := c.byKey[code]
	if !ok {
		return nil, &NotFoundError{Code: code}
	}
	return r, nil
}

// Regions returns the regions in insertion order.
func (c *Collection) Regions() []*Region {
	out := make([]*Region, 0, len(c.order))
	for _, code := range c.order {
		out = append(out, c.byKey[code])
	}
	return out
}

// Filter returns a new collection of the regions for which keep is true.
// Regions are shared, not copied.
func (c *Collection) Filter(keep func(*Region) bool) *Collection {
	out := New()
	for _, r := range c.Regions() {
		if keep(r) {
			out.order = append(out.order, r.Code)
			out.byKey[r.Code] = r
		}
	}
	return out
}

// Drop returns a new collection without the given codes. Codes that are
// not present are ignored.
func (c *Collection) Drop(codes ...string) *Collection {
	skip := make(map[string]bool, len(codes))
	for _, code := range codes {
		skip[code] = true
	}
	return c.Filter(func(r *Region) bool { return !skip[r.Code] })
}

// Select returns a new collection with exactly the given codes, in the
// given order. Every code must be present.
func (c *Collection) Select(codes ...string) (*Collection, error) {
	out := New()
	for _, code := range codes {
		r, err := c.Get(code)
		if err != nil {
			return nil, err
		}
		if err := out.Add(r); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Value is shorthand for Get(code) followed by Region.Value.
func (c *Collection) Value(code, column string) (float64, error) {
	r, err := c.Get(code)
	if err != nil {
		return 0, err
	}
	return r.Value(column)
}

// Range returns the minimum and maximum of column over every region of c.
// Any missing value is an error.
func (c *Collection) Range(column string) (lo, hi float64, err error) {
	if c.Len() == 0 {
		return 0, 0, fmt.Errorf("range of %q: empty collection", column)
	}
	xs := make([]float64, 0, c.Len())
	for _, r := range c.Regions() {
		v, err := r.Value(column)
		if err != nil {
			return 0, 0, err
		}
		xs = append(xs, v)
	}
	lo, hi = stats.Bounds(xs)
	return lo, hi, nil
}

// Join copies the values in t onto matching regions, overwriting existing
// values of the same column. It returns the codes in t that matched no
// region, sorted.
func (c *Collection) Join(t geom.Table) (unmatched []string) {
	for code, vals := range t {
		r, ok := c.byKey[code]
		if !ok {
			unmatched = append(unmatched, code)
			continue
		}
		for col, v := range vals {
			r.Values[col] = v
		}
	}
	sort.Strings(unmatched)
	return unmatched
}

// Bounds is the union bbox of every region.
func (c *Collection) Bounds() geom.BBox {
	var b geom.BBox
	for i, r := range c.Regions() {
		if i == 0 {
			b = r.Geometry.BBox
			continue
		}
		b = b.Union(r.Geometry.BBox)
	}
	return b
}
