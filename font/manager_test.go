package font

import (
	"testing"

	"github.com/agiangrant/boxtree/retained"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spec(family string, size float32) retained.FontSpec {
	return retained.FontSpec{Family: family, Weight: retained.WeightNormal, Size: size, DPI: 96}
}

func TestAcquireSharesFaces(t *testing.T) {
	m, err := NewManager()
	require.NoError(t, err)

	a := m.AcquireFont(spec("sans", 12))
	b := m.AcquireFont(spec("sans", 12))
	c := m.AcquireFont(spec("sans", 14))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, 2, m.Live())

	m.ReleaseFont(a)
	_, ok := m.Face(a)
	assert.True(t, ok, "one reference left")

	m.ReleaseFont(b)
	_, ok = m.Face(a)
	assert.False(t, ok)
	assert.Equal(t, 1, m.Live())

	m.ReleaseFont(a)
	assert.Equal(t, 1, m.Live())
}

func TestMeasureString(t *testing.T) {
	m, err := NewManager()
	require.NoError(t, err)

	small := m.AcquireFont(spec("sans", 10))
	large := m.AcquireFont(spec("sans", 20))

	w, h := m.MeasureString(small, "")
	assert.Zero(t, w)
	assert.Positive(t, h)

	ws, _ := m.MeasureString(small, "hello")
	wl, hl := m.MeasureString(large, "hello")
	assert.Positive(t, ws)
	assert.InEpsilon(t, 2*ws, wl, 0.15)
	assert.Positive(t, hl)

	wider, _ := m.MeasureString(small, "hello hello")
	assert.Greater(t, wider, ws)

	met := m.Metrics(large)
	assert.Positive(t, met.Ascent)
	assert.Positive(t, met.Descent)
	assert.GreaterOrEqual(t, met.LineHeight, met.Ascent)
}

func TestMonoAndFallbackFaces(t *testing.T) {
	m, err := NewManager()
	require.NoError(t, err)

	mono := m.AcquireFont(spec("Go Mono", 10))
	wi, _ := m.MeasureString(mono, "iii")
	wm, _ := m.MeasureString(mono, "mmm")
	assert.InDelta(t, wi, wm, 0.01, "monospaced advances")

	bitmap := m.AcquireFont(spec("sans", 0))
	w, h := m.MeasureString(bitmap, "abc")
	assert.Equal(t, float32(21), w)
	assert.Equal(t, float32(13), h)

	w, h = m.MeasureString(retained.FontHandle(999), "abc")
	assert.Zero(t, w)
	assert.Zero(t, h)
}

func TestVariantSelection(t *testing.T) {
	m, err := NewManager()
	require.NoError(t, err)

	regular := spec("sans", 12)
	bold := regular
	bold.Weight = retained.WeightBold
	italic := regular
	italic.Slant = retained.SlantItalic

	assert.Same(t, m.sans[styleRegular], m.lookup(regular))
	assert.Same(t, m.sans[styleBold], m.lookup(bold))
	assert.Same(t, m.sans[styleItalic], m.lookup(italic))

	bold.Slant = retained.SlantOblique
	bold.Family = "monospace"
	assert.Same(t, m.mono[styleBoldItalic], m.lookup(bold))
}
