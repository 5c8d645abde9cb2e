package img2ascii

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRaster gives each rune a fixed number of ink cells out of 64, so
// coverages are exact binary fractions.
type fakeRaster map[rune]int

func (f fakeRaster) Rasterize(r rune) (GlyphBitmap, error) {
	n, ok := f[r]
	if !ok {
		return GlyphBitmap{}, fmt.Errorf("%w %q", ErrNoGlyph, r)
	}
	g := NewGlyphBitmap(8, 8)
	for i := 0; i < n; i++ {
		g.Set(i%8, i/8, true)
	}
	return g, nil
}

var testRaster = fakeRaster{
	'a': 8,  // 0.125
	'b': 24, // 0.375
	'c': 40, // 0.625
	'd': 16, // 0.25, between a and b
	'e': 0,
	'f': 64,
	'A': 32,
	'B': 32,
}

func newTestMatcher(t *testing.T, charset string, opts ...MatcherOption) *CharMatcher {
	t.Helper()
	m, err := NewCharMatcher([]rune(charset), testRaster, opts...)
	require.NoError(t, err)
	return m
}

func mustMatch(t *testing.T, m *CharMatcher, b float64) rune {
	t.Helper()
	r, err := m.Match(b)
	require.NoError(t, err)
	return r
}

func TestCharMatcherEmpty(t *testing.T) {
	m := newTestMatcher(t, "")
	_, err := m.Match(0.5)
	assert.ErrorIs(t, err, ErrEmptyCharset)

	require.NoError(t, m.Add('a'))
	m.Remove('a')
	_, err = m.Match(0.5)
	assert.ErrorIs(t, err, ErrEmptyCharset)
}

func TestCharMatcherNormalizedLookup(t *testing.T) {
	// a, b, c normalize to 0, 0.5, 1.
	m := newTestMatcher(t, "abc")

	cases := []struct {
		brightness float64
		want       rune
	}{
		{-1, 'a'},
		{0, 'a'},
		{0.2, 'a'},
		{0.25, 'a'}, // exact tie goes to the floor
		{0.3, 'b'},
		{0.5, 'b'},
		{0.75, 'b'},
		{0.76, 'c'},
		{1, 'c'},
		{7, 'c'},
	}
	for _, tc := range cases {
		assert.Equal(t, string(tc.want), string(mustMatch(t, m, tc.brightness)), "brightness %v", tc.brightness)
	}
}

func TestCharMatcherTieBreakByCodePoint(t *testing.T) {
	for _, charset := range []string{"AB", "BA"} {
		m := newTestMatcher(t, charset)
		for _, b := range []float64{0, 0.5, 1} {
			assert.Equal(t, 'A', mustMatch(t, m, b), "charset %q", charset)
		}
	}
}

func TestCharMatcherSingleBrightnessNormalizesToZero(t *testing.T) {
	m := newTestMatcher(t, "BA")
	n, ok := m.NormalizedBrightness('B')
	require.True(t, ok)
	assert.Equal(t, 0.0, n)
	assert.Equal(t, 'A', mustMatch(t, m, 0.9))
}

func TestCharMatcherRawBrightness(t *testing.T) {
	m := newTestMatcher(t, "abcf")
	for r, want := range map[rune]float64{'a': 0.125, 'b': 0.375, 'c': 0.625, 'f': 1} {
		raw, ok := m.RawBrightness(r)
		require.True(t, ok, "rune %q", r)
		assert.Equal(t, want, raw, "rune %q", r)
	}

	// Raw coverage does not move when the range does.
	m.Remove('f')
	raw, _ := m.RawBrightness('c')
	assert.Equal(t, 0.625, raw)
	n, _ := m.NormalizedBrightness('c')
	assert.Equal(t, 1.0, n)

	_, ok := m.RawBrightness('z')
	assert.False(t, ok)
}

func TestCharMatcherDeduplicates(t *testing.T) {
	m := newTestMatcher(t, "abcabca")
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, []rune("abc"), m.Chars())
}

func TestCharMatcherCharsOrdered(t *testing.T) {
	m := newTestMatcher(t, "fcBeaA")
	assert.Equal(t, []rune("ABacef"), m.Chars())
	assert.True(t, m.Contains('e'))
	assert.False(t, m.Contains('z'))
}

func TestCharMatcherAddRemoveNoOps(t *testing.T) {
	m := newTestMatcher(t, "abc")
	require.NoError(t, m.Add('a'))
	assert.Equal(t, 3, m.Len())

	m.Remove('z')
	assert.Equal(t, 3, m.Len())
}

func TestCharMatcherAddPropagatesRasterizerError(t *testing.T) {
	m := newTestMatcher(t, "a")
	err := m.Add('z')
	assert.ErrorIs(t, err, ErrNoGlyph)
	assert.False(t, m.Contains('z'))

	_, err = NewCharMatcher([]rune("az"), testRaster)
	assert.ErrorIs(t, err, ErrNoGlyph)
}

func TestCharMatcherRemoveRenormalizes(t *testing.T) {
	m := newTestMatcher(t, "abc")
	assert.Equal(t, 'c', mustMatch(t, m, 1))

	// Without c, b becomes the top of the scale.
	m.Remove('c')
	assert.Equal(t, 'b', mustMatch(t, m, 1))
	n, _ := m.NormalizedBrightness('b')
	assert.Equal(t, 1.0, n)
}

func TestCharMatcherRemoveKeepsSharedBucket(t *testing.T) {
	m := newTestMatcher(t, "ABe")
	m.Remove('A')
	assert.Equal(t, 'B', mustMatch(t, m, 1))
	m.Remove('B')
	assert.Equal(t, 'e', mustMatch(t, m, 1))
	assert.Len(t, m.buckets, 1)
}

func sweep(t *testing.T, m *CharMatcher) []rune {
	t.Helper()
	var out []rune
	for i := 0; i <= 100; i++ {
		out = append(out, mustMatch(t, m, float64(i)/100))
	}
	return out
}

func TestCharMatcherAddRemoveRoundTrip(t *testing.T) {
	for _, policy := range []DirtyPolicy{DirtyOnRangeChange, DirtyAlways} {
		for _, c := range "defB" {
			m := newTestMatcher(t, "abcA", WithDirtyPolicy(policy))
			beforeChars, beforeSweep := m.Chars(), sweep(t, m)

			require.NoError(t, m.Add(c))
			m.Remove(c)

			assert.Equal(t, beforeChars, m.Chars(), "policy %v rune %q", policy, c)
			assert.Equal(t, beforeSweep, sweep(t, m), "policy %v rune %q", policy, c)
		}
	}
}

func TestDirtyOnRangeChangeSplicesInRangeAdd(t *testing.T) {
	m := newTestMatcher(t, "abc")
	mustMatch(t, m, 0)
	require.False(t, m.dirty)

	// d (0.25) sits inside [0.125, 0.625]: no rebuild, but it is matchable.
	require.NoError(t, m.Add('d'))
	assert.False(t, m.dirty)
	n, ok := m.NormalizedBrightness('d')
	require.True(t, ok)
	assert.Equal(t, 0.25, n)
	assert.Equal(t, 'd', mustMatch(t, m, 0.26))

	// f (1.0) widens the range.
	require.NoError(t, m.Add('f'))
	assert.True(t, m.dirty)
	assert.Equal(t, 'f', mustMatch(t, m, 1))
	assert.Equal(t, 'c', mustMatch(t, m, (0.625-0.125)/(1-0.125)))
}

func TestDirtyAlwaysInvalidatesOnEveryAdd(t *testing.T) {
	m := newTestMatcher(t, "abc", WithDirtyPolicy(DirtyAlways))
	assert.Equal(t, DirtyAlways, m.Policy())
	mustMatch(t, m, 0)
	require.False(t, m.dirty)

	require.NoError(t, m.Add('d'))
	assert.True(t, m.dirty)
	assert.Equal(t, 'd', mustMatch(t, m, 0.26))
}

func TestDirtyPoliciesAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	order := []rune("abcdefAB")

	ranged := newTestMatcher(t, "", WithDirtyPolicy(DirtyOnRangeChange))
	always := newTestMatcher(t, "", WithDirtyPolicy(DirtyAlways))
	for step := 0; step < 200; step++ {
		r := order[rng.Intn(len(order))]
		if rng.Intn(3) == 0 {
			ranged.Remove(r)
			always.Remove(r)
		} else {
			require.NoError(t, ranged.Add(r))
			require.NoError(t, always.Add(r))
		}
		if ranged.Len() == 0 {
			continue
		}
		b := rng.Float64()
		assert.Equal(t, mustMatch(t, always, b), mustMatch(t, ranged, b), "step %d brightness %v", step, b)
	}
}

func TestCharMatcherMatchIsNearest(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	raster := fakeRaster{}
	var charset []rune
	for i := 0; i < 40; i++ {
		r := rune('!' + i)
		raster[r] = rng.Intn(65)
		charset = append(charset, r)
	}
	m, err := NewCharMatcher(charset, raster)
	require.NoError(t, err)

	var targets []float64
	for _, r := range charset {
		n, _ := m.NormalizedBrightness(r)
		targets = append(targets, n)
	}
	for i := 0; i < 200; i++ {
		targets = append(targets, rng.Float64()*1.2-0.1)
	}

	for _, b := range targets {
		got := mustMatch(t, m, b)
		gotKey, _ := m.NormalizedBrightness(got)
		for _, other := range charset {
			key, _ := m.NormalizedBrightness(other)
			require.LessOrEqual(t, math.Abs(gotKey-b), math.Abs(key-b),
				"target %v: %q is farther than %q", b, got, other)
		}
	}
}

func TestParseDirtyPolicy(t *testing.T) {
	for in, want := range map[string]DirtyPolicy{"": DirtyOnRangeChange, "range": DirtyOnRangeChange, "Always": DirtyAlways} {
		got, err := ParseDirtyPolicy(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseDirtyPolicy("sometimes")
	assert.Error(t, err)
	assert.Equal(t, "always", DirtyAlways.String())
}

func TestCharMatcherTable(t *testing.T) {
	m := newTestMatcher(t, "cBaA")
	assert.Equal(t, []CharBrightness{
		{Rune: 'a', Raw: 0.125, Normalized: 0},
		{Rune: 'A', Raw: 0.5, Normalized: 0.75},
		{Rune: 'B', Raw: 0.5, Normalized: 0.75},
		{Rune: 'c', Raw: 0.625, Normalized: 1},
	}, m.Table())

	assert.Empty(t, newTestMatcher(t, "").Table())
}
