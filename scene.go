package boxtree

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/agiangrant/boxtree/cssstyle"
	"github.com/agiangrant/boxtree/retained"
	"github.com/pelletier/go-toml/v2"
)

// Scene is a TOML description of one surface and its element trees.
//
//	[surface]
//	width = 320
//	height = 200
//	background = "#fafafa"
//
//	[[element]]
//	id = "root"
//	style = "width: 100%; height: 100%; padding: 8px"
//
//	[[element]]
//	parent = "root"
//	text = "Hello"
//	style = "color: navy; font-size: 14pt"
//
// Elements without a parent become top-level elements of the surface.
// A parent must be declared before its children.
type Scene struct {
	Surface  SceneSurface   `toml:"surface"`
	Elements []SceneElement `toml:"element"`
}

type SceneSurface struct {
	ID         string  `toml:"id"`
	Width      float32 `toml:"width"`
	Height     float32 `toml:"height"`
	Background string  `toml:"background"`
}

type SceneElement struct {
	ID     string `toml:"id"`
	Parent string `toml:"parent"`
	Text   string `toml:"text"`
	Style  string `toml:"style"`
}

// ParseScene decodes a scene document.
func ParseScene(data []byte) (Scene, error) {
	var sc Scene
	if err := toml.Unmarshal(data, &sc); err != nil {
		return sc, fmt.Errorf("failed to parse scene: %w", err)
	}
	if sc.Surface.Width <= 0 || sc.Surface.Height <= 0 {
		return sc, fmt.Errorf("surface size must be positive, got %vx%v", sc.Surface.Width, sc.Surface.Height)
	}
	return sc, nil
}

// LoadScene reads and decodes a scene file.
func LoadScene(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	sc, err := ParseScene(data)
	if err != nil {
		return sc, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// BuildScene creates the surface and elements of sc and paints the whole
// surface once. Style and parent errors are collected; the elements are
// still created.
func (e *Engine) BuildScene(sc Scene) (retained.SurfaceHandle, error) {
	s, err := e.CreateSurface(sc.Surface.Width, sc.Surface.Height)
	if err != nil {
		return 0, err
	}
	e.ctx.SetSurfaceID(s, sc.Surface.ID)

	var errs []error
	if sc.Surface.Background != "" {
		c, err := cssstyle.ParseColor(sc.Surface.Background)
		if err != nil {
			errs = append(errs, fmt.Errorf("surface background: %w", err))
		} else {
			e.renderer.SetClearColor(s, c)
		}
	}

	e.ctx.BeginBatch()
	byID := make(map[string]retained.ElementHandle, len(sc.Elements))
	for i, se := range sc.Elements {
		name := se.ID
		if name == "" {
			name = fmt.Sprintf("element[%d]", i)
		}

		el := e.ctx.CreateElement()
		if el == 0 {
			errs = append(errs, fmt.Errorf("%s: element limit of %d reached", name, e.cfg.Limits.MaxElements))
			break
		}
		if se.ID != "" {
			if _, dup := byID[se.ID]; dup {
				errs = append(errs, fmt.Errorf("%s: duplicate id", name))
			} else {
				byID[se.ID] = el
			}
			e.ctx.SetElementID(el, se.ID)
		}
		if se.Text != "" {
			e.ctx.SetText(el, se.Text)
		}
		if err := cssstyle.Apply(e.ctx, el, se.Style); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}

		if se.Parent == "" {
			e.ctx.AttachToSurface(el, s)
			continue
		}
		parent, ok := byID[se.Parent]
		if !ok {
			errs = append(errs, fmt.Errorf("%s: unknown parent %q", name, se.Parent))
			e.ctx.AttachToSurface(el, s)
			continue
		}
		e.ctx.AppendChild(parent, el)
	}
	e.ctx.EndBatch()

	e.Render(s)
	return s, errors.Join(errs...)
}

// DumpLayout writes one line per element of s, depth-first in paint order:
//
//	root x=0 y=0 w=320 h=200
//	  #3 "Hello" x=8 y=8 w=29 h=14
func (e *Engine) DumpLayout(w io.Writer, s retained.SurfaceHandle) error {
	if !e.ctx.SurfaceValid(s) {
		return fmt.Errorf("surface %d is not valid", s)
	}
	e.ctx.ValidateElementLayouts()

	var walk func(el retained.ElementHandle, depth int) error
	walk = func(el retained.ElementHandle, depth int) error {
		var b strings.Builder
		b.WriteString(strings.Repeat("  ", depth))
		if id := e.ctx.ElementID(el); id != "" {
			b.WriteString(id)
		} else {
			fmt.Fprintf(&b, "#%d", el)
		}
		if text := e.ctx.Text(el); text != "" {
			fmt.Fprintf(&b, " %q", text)
		}
		if st, ok := e.ctx.Style(el); ok && !st.Visible {
			b.WriteString(" hidden")
		}
		r := e.ctx.AbsoluteRect(el)
		fmt.Fprintf(&b, " x=%g y=%g w=%g h=%g\n", r.Left, r.Top, r.Width(), r.Height())
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		for _, c := range e.ctx.Children(el) {
			if err := walk(c, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	for _, el := range e.ctx.TopLevelElements(s) {
		if err := walk(el, 0); err != nil {
			return fmt.Errorf("failed to write layout: %w", err)
		}
	}
	return nil
}
