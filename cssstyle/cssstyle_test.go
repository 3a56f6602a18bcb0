package cssstyle

import (
	"testing"

	"github.com/agiangrant/boxtree/retained"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newElement(t *testing.T) (*retained.Context, retained.ElementHandle) {
	t.Helper()
	ctx := retained.NewContext(retained.DefaultOptions(), nil, nil)
	h := ctx.CreateElement()
	require.NotZero(t, h)
	return ctx, h
}

func style(t *testing.T, ctx *retained.Context, h retained.ElementHandle) retained.Style {
	t.Helper()
	st, ok := ctx.Style(h)
	require.True(t, ok)
	return st
}

func TestParseDimension(t *testing.T) {
	tests := []struct {
		in   string
		want retained.Dimension
	}{
		{"auto", retained.Auto()},
		{"none", retained.Auto()},
		{"12px", retained.Px(12)},
		{"9pt", retained.Pt(9)},
		{"50%", retained.Percent(0.5)},
		{"7", retained.Abs(7)},
		{" -3.5PX ", retained.Px(-3.5)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDimension(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseDimension("wide")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want retained.Color
	}{
		{"#fff", retained.RGB(0xff, 0xff, 0xff)},
		{"#1da1f2", retained.RGB(0x1d, 0xa1, 0xf2)},
		{"#11223380", retained.RGBA(0x11, 0x22, 0x33, 0x80)},
		{"Red", retained.RGB(0xff, 0, 0)},
		{"transparent", retained.Transparent},
		{"rgb(1, 2, 3)", retained.RGB(1, 2, 3)},
		{"rgba(1,2,3,0)", retained.RGBA(1, 2, 3, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"#12", "#gggggg", "rgb(1,2)", "chartreuse-ish"} {
		_, err := ParseColor(bad)
		assert.ErrorIs(t, err, ErrInvalidValue, bad)
	}
}

func TestApplySizesAndBox(t *testing.T) {
	ctx, h := newElement(t)
	err := Apply(ctx, h, `
		width: 50%; height: 20px; min-width: 10; max-height: none;
		margin: 1px 2px 3px 4px;
		padding: 5px 6px;
		padding-left: 9pt;
		border: 2px solid #000;
		border-top-width: 0;
	`)
	require.NoError(t, err)

	st := style(t, ctx, h)
	assert.Equal(t, retained.Percent(0.5), st.Width)
	assert.Equal(t, retained.Px(20), st.Height)
	assert.Equal(t, retained.Abs(10), st.MinWidth)
	assert.True(t, st.MaxHeight.IsAuto())

	assert.Equal(t, retained.Px(4), st.Margin[retained.EdgeLeft])
	assert.Equal(t, retained.Px(1), st.Margin[retained.EdgeTop])
	assert.Equal(t, retained.Px(2), st.Margin[retained.EdgeRight])
	assert.Equal(t, retained.Px(3), st.Margin[retained.EdgeBottom])

	assert.Equal(t, retained.Pt(9), st.Padding[retained.EdgeLeft])
	assert.Equal(t, retained.Px(5), st.Padding[retained.EdgeTop])
	assert.Equal(t, retained.Px(6), st.Padding[retained.EdgeRight])

	assert.Equal(t, retained.Abs(0), st.BorderWidth[retained.EdgeTop])
	assert.Equal(t, retained.Px(2), st.BorderWidth[retained.EdgeBottom])
	for _, c := range st.BorderColor {
		assert.Equal(t, retained.RGB(0, 0, 0), c)
	}
}

func TestApplyPositioning(t *testing.T) {
	ctx, h := newElement(t)
	require.NoError(t, Apply(ctx, h, "position: relative; right: 10px; top: 5%; position-origin: content-box"))

	st := style(t, ctx, h)
	assert.Equal(t, retained.PositionRelative, st.Positioning)
	assert.Equal(t, retained.Px(10), st.Offset[retained.EdgeRight])
	assert.Equal(t, retained.Percent(0.05), st.Offset[retained.EdgeTop])
	assert.True(t, st.RightPriority)
	assert.False(t, st.BottomPriority)
	assert.Equal(t, retained.BoundaryInner, st.PositionOrigin)

	require.NoError(t, Apply(ctx, h, "position: fixed"))
	assert.Equal(t, retained.PositionAbsolute, style(t, ctx, h).Positioning)
}

func TestApplyChildLayout(t *testing.T) {
	ctx, h := newElement(t)
	// justify-content follows the final child axis regardless of order.
	require.NoError(t, Apply(ctx, h, "justify-content: end; align-items: center; display: flex; flex-direction: row"))

	st := style(t, ctx, h)
	assert.Equal(t, retained.AxisHorizontal, st.ChildAxis)
	assert.Equal(t, retained.AlignEnd, st.HAlign)
	assert.Equal(t, retained.AlignCenter, st.VAlign)
	assert.True(t, st.FlexChildWidth)
	assert.False(t, st.FlexChildHeight)

	require.NoError(t, Apply(ctx, h, "flex-children: vertical; children-size-boundary: padding-box"))
	st = style(t, ctx, h)
	assert.False(t, st.FlexChildWidth)
	assert.True(t, st.FlexChildHeight)
	assert.Equal(t, retained.BoundaryInnerBorder, st.ChildrenSizeBoundary)
}

func TestApplyPaintAndFont(t *testing.T) {
	ctx, h := newElement(t)
	require.NoError(t, Apply(ctx, h, `
		background: #336699; color: white;
		overflow: visible; clip-boundary: content-box;
		font-family: "Go Mono"; font-size: 12pt; font-weight: bold; font-style: italic;
		visibility: hidden
	`))

	st := style(t, ctx, h)
	assert.Equal(t, retained.RGB(0x33, 0x66, 0x99), st.Background)
	assert.Equal(t, retained.RGB(0xff, 0xff, 0xff), st.TextColor)
	assert.Equal(t, retained.ClipDisabled, st.Clipping)
	assert.Equal(t, retained.BoundaryInner, st.ClippingBoundary)
	assert.Equal(t, "Go Mono", st.FontFamily)
	assert.Equal(t, retained.Pt(12), st.FontSize)
	assert.Equal(t, retained.WeightBold, st.FontWeight)
	assert.Equal(t, retained.SlantItalic, st.FontSlant)
	assert.False(t, st.Visible)
}

func TestApplyCollectsErrors(t *testing.T) {
	ctx, h := newElement(t)
	err := Apply(ctx, h, "width: 30px; float: left; height: tall; color: blue")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownProperty)
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Contains(t, err.Error(), "float")
	assert.Contains(t, err.Error(), "height")

	// Valid declarations around the failures still apply.
	st := style(t, ctx, h)
	assert.Equal(t, retained.Px(30), st.Width)
	assert.True(t, st.Height.IsAuto())
	assert.Equal(t, retained.RGB(0, 0, 0xff), st.TextColor)
	assert.False(t, ctx.InBatch())
}

func TestApplyStaleElement(t *testing.T) {
	ctx, h := newElement(t)
	ctx.DeleteElement(h)
	assert.Error(t, Apply(ctx, h, "width: 1px"))
}

func TestApplyDrivesLayout(t *testing.T) {
	ctx := retained.NewContext(retained.DefaultOptions(), nil, nil)
	s := ctx.CreateSurface(200, 100)
	root := ctx.CreateElement()
	child := ctx.CreateElement()
	ctx.AppendChild(root, child)
	ctx.AttachToSurface(root, s)

	require.NoError(t, Apply(ctx, root, "width: 100%; height: 100%; padding: 10px; children-size-boundary: content-box"))
	require.NoError(t, Apply(ctx, child, "width: 50%; height: 20px"))

	r := ctx.AbsoluteRect(child)
	assert.Equal(t, retained.XYWH(10, 10, 90, 20), r)
}
