// Package cssstyle applies CSS declaration blocks to retained elements.
//
//	cssstyle.Apply(ctx, el, "width: 50%; padding: 4px 8px; background: #eee")
//
// Properties map onto the retained style setters. A few non-standard
// properties cover engine features CSS has no word for: position-origin,
// children-size-boundary, clip-boundary and flex-children.
package cssstyle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agiangrant/boxtree/retained"
	"github.com/aymerick/douceur/parser"
)

// Apply parses block and applies each declaration to h inside one batch.
// Declarations that fail are skipped; their errors are joined and returned.
func Apply(ctx *retained.Context, h retained.ElementHandle, block string) error {
	decls, err := parser.ParseDeclarations(block)
	if err != nil {
		return fmt.Errorf("cssstyle: parse: %w", err)
	}
	if !ctx.ElementValid(h) {
		return fmt.Errorf("cssstyle: element %d is not valid", h)
	}

	a := &applier{ctx: ctx, h: h}
	ctx.BeginBatch()
	defer ctx.EndBatch()

	var errs []error
	for _, d := range decls {
		prop := strings.ToLower(strings.TrimSpace(d.Property))
		value := strings.TrimSpace(d.Value)
		if err := a.apply(prop, value); err != nil {
			errs = append(errs, fmt.Errorf("cssstyle: %s: %w", prop, err))
		}
	}
	if err := a.finish(); err != nil {
		errs = append(errs, fmt.Errorf("cssstyle: %w", err))
	}
	return errors.Join(errs...)
}

// applier carries properties whose meaning depends on the final child axis.
type applier struct {
	ctx *retained.Context
	h   retained.ElementHandle

	justify, align string
	flex           string
}

var edgeNames = map[string]retained.Edge{
	"left":   retained.EdgeLeft,
	"top":    retained.EdgeTop,
	"right":  retained.EdgeRight,
	"bottom": retained.EdgeBottom,
}

type dimSetter func(ctx *retained.Context, h retained.ElementHandle, d retained.Dimension)

var sizeProps = map[string]dimSetter{
	"width":      (*retained.Context).SetWidth,
	"height":     (*retained.Context).SetHeight,
	"min-width":  (*retained.Context).SetMinWidth,
	"min-height": (*retained.Context).SetMinHeight,
	"max-width":  (*retained.Context).SetMaxWidth,
	"max-height": (*retained.Context).SetMaxHeight,
}

type edgeDimSetter func(ctx *retained.Context, h retained.ElementHandle, edge retained.Edge, d retained.Dimension)

var boxProps = map[string]edgeDimSetter{
	"margin":       (*retained.Context).SetMargin,
	"padding":      (*retained.Context).SetPadding,
	"border-width": (*retained.Context).SetBorderWidth,
}

func (a *applier) apply(prop, value string) error {
	lower := strings.ToLower(value)

	if set, ok := sizeProps[prop]; ok {
		d, err := ParseDimension(value)
		if err != nil {
			return err
		}
		set(a.ctx, a.h, d)
		return nil
	}
	if edge, ok := edgeNames[prop]; ok {
		d, err := ParseDimension(value)
		if err != nil {
			return err
		}
		a.ctx.SetOffset(a.h, edge, d)
		a.ctx.SetPositionPriority(a.h, edge.Axis(), edge == retained.EdgeRight || edge == retained.EdgeBottom)
		return nil
	}
	if set, ok := boxProps[prop]; ok {
		return a.applyBox(value, set)
	}
	if base, side, ok := splitEdgeProp(prop); ok {
		return a.applyEdge(base, side, value)
	}

	switch prop {
	case "border":
		return a.applyBorder(value, []retained.Edge{retained.EdgeLeft, retained.EdgeTop, retained.EdgeRight, retained.EdgeBottom})
	case "border-color":
		vals, err := boxValues(value)
		if err != nil {
			return err
		}
		var colors [4]retained.Color
		for i, v := range vals {
			if colors[i], err = ParseColor(v); err != nil {
				return err
			}
		}
		for i, c := range colors {
			a.ctx.SetBorderColor(a.h, retained.Edge(i), c)
		}
	case "background", "background-color":
		c, err := ParseColor(value)
		if err != nil {
			return err
		}
		a.ctx.SetBackgroundColor(a.h, c)
	case "color":
		c, err := ParseColor(value)
		if err != nil {
			return err
		}
		a.ctx.SetTextColor(a.h, c)

	case "position":
		switch lower {
		case "static", "auto":
			a.ctx.SetPositioning(a.h, retained.PositionAuto)
		case "relative":
			a.ctx.SetPositioning(a.h, retained.PositionRelative)
		case "absolute", "fixed":
			a.ctx.SetPositioning(a.h, retained.PositionAbsolute)
		default:
			return fmt.Errorf("%w: %q", ErrInvalidValue, value)
		}
	case "position-origin":
		b, err := parseBoundary(lower)
		if err != nil {
			return err
		}
		a.ctx.SetPositionOrigin(a.h, b)
	case "children-size-boundary":
		b, err := parseBoundary(lower)
		if err != nil {
			return err
		}
		a.ctx.SetChildrenSizeBoundary(a.h, b)
	case "clip-boundary":
		b, err := parseBoundary(lower)
		if err != nil {
			return err
		}
		a.ctx.SetClippingBoundary(a.h, b)

	case "display":
		switch lower {
		case "none":
			a.ctx.SetVisible(a.h, false)
		case "flex":
			a.ctx.SetVisible(a.h, true)
			a.flex = "main"
		default:
			a.ctx.SetVisible(a.h, true)
		}
	case "visibility":
		switch lower {
		case "visible":
			a.ctx.SetVisible(a.h, true)
		case "hidden", "collapse":
			a.ctx.SetVisible(a.h, false)
		default:
			return fmt.Errorf("%w: %q", ErrInvalidValue, value)
		}
	case "overflow", "clip":
		switch lower {
		case "hidden", "clip":
			a.ctx.SetClipping(a.h, retained.ClipEnabled)
		case "visible":
			a.ctx.SetClipping(a.h, retained.ClipDisabled)
		case "auto":
			a.ctx.SetClipping(a.h, retained.ClipAuto)
		default:
			return fmt.Errorf("%w: %q", ErrInvalidValue, value)
		}

	case "flex-direction", "child-axis":
		switch lower {
		case "row", "horizontal":
			a.ctx.SetChildAxis(a.h, retained.AxisHorizontal)
		case "column", "vertical":
			a.ctx.SetChildAxis(a.h, retained.AxisVertical)
		default:
			return fmt.Errorf("%w: %q", ErrInvalidValue, value)
		}
	case "flex-children":
		switch lower {
		case "none", "horizontal", "vertical", "both":
			a.flex = lower
		default:
			return fmt.Errorf("%w: %q", ErrInvalidValue, value)
		}
	case "justify-content":
		a.justify = lower
	case "align-items":
		a.align = lower
	case "text-align":
		al, err := parseAlignment(lower)
		if err != nil {
			return err
		}
		a.ctx.SetAlignment(a.h, retained.AxisHorizontal, al)
	case "vertical-align":
		al, err := parseAlignment(lower)
		if err != nil {
			return err
		}
		a.ctx.SetAlignment(a.h, retained.AxisVertical, al)

	case "font-family":
		a.ctx.SetFontFamily(a.h, strings.Trim(value, `"'`))
	case "font-size":
		d, err := ParseDimension(value)
		if err != nil {
			return err
		}
		a.ctx.SetFontSize(a.h, d)
	case "font-weight":
		w, err := parseFontWeight(lower)
		if err != nil {
			return err
		}
		a.ctx.SetFontWeight(a.h, w)
	case "font-style":
		switch lower {
		case "normal":
			a.ctx.SetFontSlant(a.h, retained.SlantNormal)
		case "italic":
			a.ctx.SetFontSlant(a.h, retained.SlantItalic)
		case "oblique":
			a.ctx.SetFontSlant(a.h, retained.SlantOblique)
		default:
			return fmt.Errorf("%w: %q", ErrInvalidValue, value)
		}

	default:
		return ErrUnknownProperty
	}
	return nil
}

// splitEdgeProp splits per-edge properties such as "margin-left" or
// "border-top-color" into ("margin", left) and ("border-color", top).
func splitEdgeProp(prop string) (base string, edge retained.Edge, ok bool) {
	parts := strings.Split(prop, "-")
	if len(parts) < 2 {
		return "", 0, false
	}
	edge, ok = edgeNames[parts[1]]
	if !ok {
		return "", 0, false
	}
	base = strings.Join(append([]string{parts[0]}, parts[2:]...), "-")
	switch base {
	case "margin", "padding", "border", "border-width", "border-color":
		return base, edge, true
	}
	return "", 0, false
}

func (a *applier) applyEdge(base string, edge retained.Edge, value string) error {
	switch base {
	case "border":
		return a.applyBorder(value, []retained.Edge{edge})
	case "border-color":
		c, err := ParseColor(value)
		if err != nil {
			return err
		}
		a.ctx.SetBorderColor(a.h, edge, c)
		return nil
	}
	d, err := ParseDimension(value)
	if err != nil {
		return err
	}
	boxProps[base](a.ctx, a.h, edge, d)
	return nil
}

func (a *applier) applyBox(value string, set edgeDimSetter) error {
	vals, err := boxValues(value)
	if err != nil {
		return err
	}
	var dims [4]retained.Dimension
	for i, v := range vals {
		if dims[i], err = ParseDimension(v); err != nil {
			return err
		}
	}
	for i, d := range dims {
		set(a.ctx, a.h, retained.Edge(i), d)
	}
	return nil
}

// applyBorder handles "width [style] [color]" in any order. Style keywords
// are accepted and ignored; only solid borders are drawn.
func (a *applier) applyBorder(value string, edges []retained.Edge) error {
	var (
		width    *retained.Dimension
		color    *retained.Color
		problems []string
	)
	for _, tok := range strings.Fields(value) {
		switch strings.ToLower(tok) {
		case "none", "hidden":
			zero := retained.Abs(0)
			width = &zero
			continue
		case "solid", "dashed", "dotted", "double", "groove", "ridge", "inset", "outset":
			continue
		}
		if d, err := ParseDimension(tok); err == nil && !d.IsAuto() {
			width = &d
			continue
		}
		if c, err := ParseColor(tok); err == nil {
			color = &c
			continue
		}
		problems = append(problems, tok)
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %q", ErrInvalidValue, strings.Join(problems, " "))
	}
	for _, e := range edges {
		if width != nil {
			a.ctx.SetBorderWidth(a.h, e, *width)
		}
		if color != nil {
			a.ctx.SetBorderColor(a.h, e, *color)
		}
	}
	return nil
}

// finish applies alignment and flex settings relative to the final child
// axis.
func (a *applier) finish() error {
	st, ok := a.ctx.Style(a.h)
	if !ok {
		return nil
	}
	main := st.ChildAxis
	cross := retained.AxisHorizontal
	if main == retained.AxisHorizontal {
		cross = retained.AxisVertical
	}

	var errs []error
	if a.justify != "" {
		if al, err := parseAlignment(a.justify); err != nil {
			errs = append(errs, fmt.Errorf("justify-content: %w", err))
		} else {
			a.ctx.SetAlignment(a.h, main, al)
		}
	}
	if a.align != "" {
		if al, err := parseAlignment(a.align); err != nil {
			errs = append(errs, fmt.Errorf("align-items: %w", err))
		} else {
			a.ctx.SetAlignment(a.h, cross, al)
		}
	}

	switch a.flex {
	case "main":
		a.ctx.SetFlexChildren(a.h, main, true)
	case "horizontal", "vertical", "both", "none":
		a.ctx.SetFlexChildren(a.h, retained.AxisHorizontal, a.flex == "horizontal" || a.flex == "both")
		a.ctx.SetFlexChildren(a.h, retained.AxisVertical, a.flex == "vertical" || a.flex == "both")
	}
	return errors.Join(errs...)
}
