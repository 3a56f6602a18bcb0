// Package font provides a reference-counted font manager backed by the Go
// font family from golang.org/x/image.
package font

import (
	"fmt"
	"strings"

	"github.com/agiangrant/boxtree/retained"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// style indexes the four variants of a family.
type style uint8

const (
	styleRegular style = iota
	styleBold
	styleItalic
	styleBoldItalic
)

type family [4]*opentype.Font

type entry struct {
	spec retained.FontSpec
	face xfont.Face
	refs int
}

// Manager implements retained.FontManager. Faces are created on first
// acquisition of a spec and closed when the last reference is released.
// A Manager is not safe for concurrent use.
type Manager struct {
	sans family
	mono family

	entries map[retained.FontHandle]*entry
	bySpec  map[retained.FontSpec]retained.FontHandle
	next    retained.FontHandle
}

var _ retained.FontManager = (*Manager)(nil)

// NewManager parses the embedded Go fonts.
func NewManager() (*Manager, error) {
	m := &Manager{
		entries: make(map[retained.FontHandle]*entry),
		bySpec:  make(map[retained.FontSpec]retained.FontHandle),
	}
	var err error
	if m.sans, err = parseFamily(goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF); err != nil {
		return nil, fmt.Errorf("font: sans family: %w", err)
	}
	if m.mono, err = parseFamily(gomono.TTF, gomonobold.TTF, gomonoitalic.TTF, gomonobolditalic.TTF); err != nil {
		return nil, fmt.Errorf("font: mono family: %w", err)
	}
	return m, nil
}

func parseFamily(ttfs ...[]byte) (family, error) {
	var f family
	for i, ttf := range ttfs {
		parsed, err := opentype.Parse(ttf)
		if err != nil {
			return f, err
		}
		f[i] = parsed
	}
	return f, nil
}

// lookup picks the variant for a spec. Families naming "mono" or "courier"
// map to Go Mono, everything else to Go.
func (m *Manager) lookup(spec retained.FontSpec) *opentype.Font {
	fam := &m.sans
	name := strings.ToLower(spec.Family)
	if strings.Contains(name, "mono") || strings.Contains(name, "courier") {
		fam = &m.mono
	}
	st := styleRegular
	bold := spec.Weight >= 600
	italic := spec.Slant != retained.SlantNormal
	switch {
	case bold && italic:
		st = styleBoldItalic
	case bold:
		st = styleBold
	case italic:
		st = styleItalic
	}
	return fam[st]
}

// newFace builds a face whose size is spec.Size device pixels. Sizes that
// cannot be rasterized fall back to the fixed 7x13 bitmap face.
func (m *Manager) newFace(spec retained.FontSpec) xfont.Face {
	base := m.lookup(spec)
	if base == nil || spec.Size <= 0 {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(base, &opentype.FaceOptions{
		Size:    float64(spec.Size),
		DPI:     72,
		Hinting: xfont.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}

// AcquireFont returns a handle for spec, sharing the face with earlier
// acquisitions of an equal spec.
func (m *Manager) AcquireFont(spec retained.FontSpec) retained.FontHandle {
	if h, ok := m.bySpec[spec]; ok {
		m.entries[h].refs++
		return h
	}
	m.next++
	h := m.next
	m.entries[h] = &entry{spec: spec, face: m.newFace(spec), refs: 1}
	m.bySpec[spec] = h
	return h
}

// ReleaseFont drops one reference.
func (m *Manager) ReleaseFont(h retained.FontHandle) {
	e, ok := m.entries[h]
	if !ok {
		return
	}
	e.refs--
	if e.refs > 0 {
		return
	}
	if e.face != basicfont.Face7x13 {
		e.face.Close()
	}
	delete(m.entries, h)
	delete(m.bySpec, e.spec)
}

// MeasureString returns the advance width of s and the line height.
func (m *Manager) MeasureString(h retained.FontHandle, s string) (width, height float32) {
	e, ok := m.entries[h]
	if !ok {
		return 0, 0
	}
	met := e.face.Metrics()
	return fromFixed(xfont.MeasureString(e.face, s)), fromFixed(met.Height)
}

// Metrics returns the vertical metrics of the face.
func (m *Manager) Metrics(h retained.FontHandle) retained.FontMetrics {
	e, ok := m.entries[h]
	if !ok {
		return retained.FontMetrics{}
	}
	met := e.face.Metrics()
	return retained.FontMetrics{
		Ascent:     fromFixed(met.Ascent),
		Descent:    fromFixed(met.Descent),
		LineHeight: fromFixed(met.Height),
	}
}

// Face returns the x/image face behind h for drawing.
func (m *Manager) Face(h retained.FontHandle) (xfont.Face, bool) {
	e, ok := m.entries[h]
	if !ok {
		return nil, false
	}
	return e.face, true
}

// Live returns the number of faces currently held.
func (m *Manager) Live() int {
	return len(m.entries)
}

func fromFixed(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
