package cssstyle

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/agiangrant/boxtree/retained"
)

var (
	ErrUnknownProperty = errors.New("unknown property")
	ErrInvalidValue    = errors.New("invalid value")
)

// ParseDimension parses a CSS length.
//
//	auto   -> retained.Auto()
//	12px   -> device pixels
//	9pt    -> points, scaled by DPI
//	50%    -> ratio 0.5
//	12     -> absolute device units
func ParseDimension(value string) (retained.Dimension, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "auto" || value == "none" {
		return retained.Auto(), nil
	}

	num, build := value, retained.Abs
	switch {
	case strings.HasSuffix(value, "px"):
		num, build = strings.TrimSuffix(value, "px"), retained.Px
	case strings.HasSuffix(value, "pt"):
		num, build = strings.TrimSuffix(value, "pt"), retained.Pt
	case strings.HasSuffix(value, "%"):
		num = strings.TrimSuffix(value, "%")
		build = func(v float32) retained.Dimension { return retained.Percent(v / 100) }
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(num), 32)
	if err != nil {
		return retained.Dimension{}, fmt.Errorf("%w: dimension %q", ErrInvalidValue, value)
	}
	return build(float32(f)), nil
}

// ParseColor parses #rgb, #rrggbb, #rrggbbaa, rgb(), rgba() and the basic
// named colors.
func ParseColor(value string) (retained.Color, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if c, ok := namedColors[value]; ok {
		return c, nil
	}

	switch {
	case strings.HasPrefix(value, "#"):
		return parseHex(value[1:])
	case strings.HasPrefix(value, "rgba(") && strings.HasSuffix(value, ")"):
		return parseRGB(value[len("rgba(") : len(value)-1])
	case strings.HasPrefix(value, "rgb(") && strings.HasSuffix(value, ")"):
		return parseRGB(value[len("rgb(") : len(value)-1])
	}
	return 0, fmt.Errorf("%w: color %q", ErrInvalidValue, value)
}

func parseHex(hex string) (retained.Color, error) {
	// Expand shorthand: #RGB -> #RRGGBB
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	switch len(hex) {
	case 6:
		hex += "ff"
	case 8:
	default:
		return 0, fmt.Errorf("%w: color #%s", ErrInvalidValue, hex)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: color #%s", ErrInvalidValue, hex)
	}
	return retained.Color(v), nil
}

func parseRGB(args string) (retained.Color, error) {
	parts := strings.Split(args, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return 0, fmt.Errorf("%w: rgb(%s)", ErrInvalidValue, args)
	}
	var ch [4]uint8
	ch[3] = 0xff
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: rgb(%s)", ErrInvalidValue, args)
		}
		if i == 3 {
			f *= 255
		}
		ch[i] = uint8(min(max(f, 0), 255))
	}
	return retained.RGBA(ch[0], ch[1], ch[2], ch[3]), nil
}

var namedColors = map[string]retained.Color{
	"transparent": retained.Transparent,
	"black":       retained.RGB(0, 0, 0),
	"white":       retained.RGB(0xff, 0xff, 0xff),
	"red":         retained.RGB(0xff, 0, 0),
	"green":       retained.RGB(0, 0x80, 0),
	"lime":        retained.RGB(0, 0xff, 0),
	"blue":        retained.RGB(0, 0, 0xff),
	"navy":        retained.RGB(0, 0, 0x80),
	"yellow":      retained.RGB(0xff, 0xff, 0),
	"orange":      retained.RGB(0xff, 0xa5, 0),
	"purple":      retained.RGB(0x80, 0, 0x80),
	"cyan":        retained.RGB(0, 0xff, 0xff),
	"aqua":        retained.RGB(0, 0xff, 0xff),
	"magenta":     retained.RGB(0xff, 0, 0xff),
	"fuchsia":     retained.RGB(0xff, 0, 0xff),
	"teal":        retained.RGB(0, 0x80, 0x80),
	"maroon":      retained.RGB(0x80, 0, 0),
	"olive":       retained.RGB(0x80, 0x80, 0),
	"silver":      retained.RGB(0xc0, 0xc0, 0xc0),
	"gray":        retained.RGB(0x80, 0x80, 0x80),
	"grey":        retained.RGB(0x80, 0x80, 0x80),
}

func parseBoundary(value string) (retained.Boundary, error) {
	switch value {
	case "border-box", "outer":
		return retained.BoundaryOuter, nil
	case "padding-box", "inner-border":
		return retained.BoundaryInnerBorder, nil
	case "content-box", "inner":
		return retained.BoundaryInner, nil
	}
	return 0, fmt.Errorf("%w: boundary %q", ErrInvalidValue, value)
}

func parseAlignment(value string) (retained.Alignment, error) {
	switch value {
	case "start", "flex-start", "left", "top":
		return retained.AlignStart, nil
	case "center":
		return retained.AlignCenter, nil
	case "end", "flex-end", "right", "bottom":
		return retained.AlignEnd, nil
	}
	return 0, fmt.Errorf("%w: alignment %q", ErrInvalidValue, value)
}

func parseFontWeight(value string) (retained.FontWeight, error) {
	switch value {
	case "normal":
		return retained.WeightNormal, nil
	case "bold":
		return retained.WeightBold, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 || n > 1000 {
		return 0, fmt.Errorf("%w: font-weight %q", ErrInvalidValue, value)
	}
	return retained.FontWeight(n), nil
}

// boxValues expands the 1-4 value CSS shorthand (top right bottom left) into
// values indexed by retained.Edge.
func boxValues(value string) ([4]string, error) {
	f := strings.Fields(value)
	var top, right, bottom, left string
	switch len(f) {
	case 1:
		top, right, bottom, left = f[0], f[0], f[0], f[0]
	case 2:
		top, right, bottom, left = f[0], f[1], f[0], f[1]
	case 3:
		top, right, bottom, left = f[0], f[1], f[2], f[1]
	case 4:
		top, right, bottom, left = f[0], f[1], f[2], f[3]
	default:
		return [4]string{}, fmt.Errorf("%w: %q needs 1 to 4 values", ErrInvalidValue, value)
	}
	var out [4]string
	out[retained.EdgeLeft] = left
	out[retained.EdgeTop] = top
	out[retained.EdgeRight] = right
	out[retained.EdgeBottom] = bottom
	return out, nil
}
