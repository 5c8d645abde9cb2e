package img2ascii

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"
)

// ErrEmptyCharset is returned by Match when no characters are registered.
var ErrEmptyCharset = errors.New("img2ascii: character set is empty")

// DirtyPolicy decides when Add invalidates the normalized brightness view.
type DirtyPolicy int

const (
	// DirtyOnRangeChange invalidates the view only when a new character's
	// raw brightness lies strictly outside the range the view was built
	// from. A new in-range brightness is spliced into the view directly,
	// since every other normalized key stays the same.
	DirtyOnRangeChange DirtyPolicy = iota
	// DirtyAlways invalidates the view on every successful Add.
	DirtyAlways
)

func (p DirtyPolicy) String() string {
	switch p {
	case DirtyOnRangeChange:
		return "range"
	case DirtyAlways:
		return "always"
	}
	return fmt.Sprintf("DirtyPolicy(%d)", int(p))
}

// ParseDirtyPolicy parses "range" or "always". The empty string selects
// DirtyOnRangeChange.
func ParseDirtyPolicy(s string) (DirtyPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "range":
		return DirtyOnRangeChange, nil
	case "always":
		return DirtyAlways, nil
	}
	return 0, fmt.Errorf("unknown dirty policy %q, options are range or always", s)
}

// bucket holds the characters sharing one raw brightness, ordered by
// code point. Buckets are never empty while referenced by a CharMatcher.
type bucket struct {
	brightness float64
	runes      []rune
}

func (b *bucket) insert(r rune) {
	i, found := slices.BinarySearch(b.runes, r)
	if !found {
		b.runes = slices.Insert(b.runes, i, r)
	}
}

func (b *bucket) remove(r rune) {
	if i, found := slices.BinarySearch(b.runes, r); found {
		b.runes = slices.Delete(b.runes, i, i+1)
	}
}

// normEntry is one bucket placed on the normalized [0, 1] scale.
type normEntry struct {
	key    float64
	bucket *bucket
}

// CharMatcher maps a brightness in [0, 1] to the character of the working
// set whose normalized glyph brightness is closest. It is not safe for
// concurrent use.
type CharMatcher struct {
	raster GlyphRasterizer
	policy DirtyPolicy

	chars   map[rune]float64
	buckets []*bucket // ascending raw brightness

	// Normalized view. Entries share bucket pointers with buckets, so a
	// rune joining an existing bucket is visible without a rebuild.
	view             []normEntry
	viewMin, viewMax float64
	dirty            bool
}

// MatcherOption configures a CharMatcher.
type MatcherOption func(*CharMatcher)

// WithDirtyPolicy selects when Add invalidates the normalized view.
func WithDirtyPolicy(p DirtyPolicy) MatcherOption {
	return func(m *CharMatcher) {
		m.policy = p
	}
}

// NewCharMatcher builds a matcher over charset, measuring each glyph with
// raster. Repeated runes are registered once.
func NewCharMatcher(charset []rune, raster GlyphRasterizer, opts ...MatcherOption) (*CharMatcher, error) {
	m := &CharMatcher{
		raster: raster,
		chars:  make(map[rune]float64, len(charset)),
		dirty:  true,
	}
	for _, opt := range opts {
		opt(m)
	}
	for _, r := range charset {
		if err := m.Add(r); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Policy returns the matcher's dirty policy.
func (m *CharMatcher) Policy() DirtyPolicy {
	return m.policy
}

// Add registers r. Adding a present rune does nothing.
func (m *CharMatcher) Add(r rune) error {
	if _, ok := m.chars[r]; ok {
		return nil
	}
	glyph, err := m.raster.Rasterize(r)
	if err != nil {
		return err
	}
	brightness := glyph.Coverage()
	m.chars[r] = brightness

	i, found := m.findBucket(brightness)
	if found {
		m.buckets[i].insert(r)
		if m.policy == DirtyAlways {
			m.dirty = true
		}
		return nil
	}

	b := &bucket{brightness: brightness, runes: []rune{r}}
	m.buckets = slices.Insert(m.buckets, i, b)
	m.spliceIntoView(b)
	return nil
}

// spliceIntoView applies the dirty policy to a newly created bucket.
func (m *CharMatcher) spliceIntoView(b *bucket) {
	switch {
	case m.dirty:
	case m.policy == DirtyAlways, len(m.view) == 0:
		m.dirty = true
	case b.brightness < m.viewMin || b.brightness > m.viewMax:
		m.dirty = true
	default:
		// Strictly inside the range and distinct from every existing
		// brightness, so viewMax > viewMin here.
		key := (b.brightness - m.viewMin) / (m.viewMax - m.viewMin)
		i := sort.Search(len(m.view), func(i int) bool { return m.view[i].key >= key })
		m.view = slices.Insert(m.view, i, normEntry{key: key, bucket: b})
	}
}

// Remove unregisters r. Removing an absent rune does nothing.
func (m *CharMatcher) Remove(r rune) {
	brightness, ok := m.chars[r]
	if !ok {
		return
	}
	delete(m.chars, r)

	if i, found := m.findBucket(brightness); found {
		b := m.buckets[i]
		b.remove(r)
		if len(b.runes) == 0 {
			m.buckets = slices.Delete(m.buckets, i, i+1)
		}
	}
	m.dirty = true
}

// Match returns the character whose normalized brightness is nearest to
// brightness. Between two equally near keys the lower one wins, and
// within a key the smallest code point wins.
func (m *CharMatcher) Match(brightness float64) (rune, error) {
	if len(m.chars) == 0 {
		return 0, ErrEmptyCharset
	}
	view := m.normalizedView()

	// First key >= brightness is the ceiling; the floor is that key when
	// equal, otherwise the one before it.
	ceil := sort.Search(len(view), func(i int) bool { return view[i].key >= brightness })
	floor := ceil - 1
	if ceil == len(view) {
		ceil = len(view) - 1
	} else if view[ceil].key == brightness {
		floor = ceil
	}
	if floor < 0 {
		floor = 0
	}

	best := view[ceil]
	if math.Abs(view[floor].key-brightness) <= math.Abs(view[ceil].key-brightness) {
		best = view[floor]
	}
	return best.bucket.runes[0], nil
}

// Chars returns the working set in code point order.
func (m *CharMatcher) Chars() []rune {
	chars := make([]rune, 0, len(m.chars))
	for r := range m.chars {
		chars = append(chars, r)
	}
	slices.Sort(chars)
	return chars
}

// Len returns the number of registered characters.
func (m *CharMatcher) Len() int {
	return len(m.chars)
}

// Contains reports whether r is registered.
func (m *CharMatcher) Contains(r rune) bool {
	_, ok := m.chars[r]
	return ok
}

// RawBrightness returns the glyph coverage measured for r.
func (m *CharMatcher) RawBrightness(r rune) (float64, bool) {
	b, ok := m.chars[r]
	return b, ok
}

// NormalizedBrightness returns r's brightness on the working set's
// normalized scale.
func (m *CharMatcher) NormalizedBrightness(r rune) (float64, bool) {
	raw, ok := m.chars[r]
	if !ok {
		return 0, false
	}
	for _, e := range m.normalizedView() {
		if e.bucket.brightness == raw {
			return e.key, true
		}
	}
	return 0, false
}

// CharBrightness is one row of a CharMatcher's brightness table.
type CharBrightness struct {
	Rune       rune
	Raw        float64
	Normalized float64
}

// Table lists every registered character from darkest to brightest,
// ties in code point order.
func (m *CharMatcher) Table() []CharBrightness {
	var table []CharBrightness
	for _, e := range m.normalizedView() {
		for _, r := range e.bucket.runes {
			table = append(table, CharBrightness{Rune: r, Raw: e.bucket.brightness, Normalized: e.key})
		}
	}
	return table
}

// findBucket returns the index of the bucket for brightness, or the
// index where it would be inserted.
func (m *CharMatcher) findBucket(brightness float64) (int, bool) {
	i := sort.Search(len(m.buckets), func(i int) bool { return m.buckets[i].brightness >= brightness })
	return i, i < len(m.buckets) && m.buckets[i].brightness == brightness
}

// normalizedView is the only reader of the dirty flag: it rebuilds the
// view when needed and returns it.
func (m *CharMatcher) normalizedView() []normEntry {
	if m.dirty {
		m.view, m.viewMin, m.viewMax = normalize(m.buckets)
		m.dirty = false
		Logger().Debug("renormalized character brightness",
			"buckets", len(m.buckets), "min", m.viewMin, "max", m.viewMax)
	}
	return m.view
}

// normalize maps bucket brightness linearly onto [0, 1]. When all
// buckets share one brightness every key is 0.
func normalize(buckets []*bucket) (view []normEntry, lo, hi float64) {
	if len(buckets) == 0 {
		return nil, 0, 0
	}
	lo, hi = buckets[0].brightness, buckets[len(buckets)-1].brightness
	view = make([]normEntry, len(buckets))
	for i, b := range buckets {
		var key float64
		if hi > lo {
			key = (b.brightness - lo) / (hi - lo)
		}
		view[i] = normEntry{key: key, bucket: b}
	}
	return view, lo, hi
}
