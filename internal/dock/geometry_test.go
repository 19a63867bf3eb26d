package dock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fullHD = Rect{Width: 1920, Height: 1080}

func TestPlaceBottomScenario(t *testing.T) {
	win, strut, err := Place(EdgeBottom, 30, fullHD)
	require.NoError(t, err)

	assert.Equal(t, Rect{X: 0, Y: 1050, Width: 1920, Height: 30}, win)

	var want Strut
	want[StrutBottom] = 30
	want[StrutBottomStartX] = 0
	want[StrutBottomEndX] = 1920
	assert.Equal(t, want, strut)
}

func TestPlaceEdges(t *testing.T) {
	tests := []struct {
		edge  Edge
		win   Rect
		strut Strut
	}{
		{
			edge:  EdgeLeft,
			win:   Rect{X: 0, Y: 0, Width: 24, Height: 1080},
			strut: Strut{24, 0, 0, 0, 0, 1080, 0, 0, 0, 0, 0, 0},
		},
		{
			edge:  EdgeRight,
			win:   Rect{X: 1896, Y: 0, Width: 24, Height: 1080},
			strut: Strut{0, 24, 0, 0, 0, 0, 0, 1080, 0, 0, 0, 0},
		},
		{
			edge:  EdgeTop,
			win:   Rect{X: 0, Y: 0, Width: 1920, Height: 24},
			strut: Strut{0, 0, 24, 0, 0, 0, 0, 0, 0, 1920, 0, 0},
		},
		{
			edge:  EdgeBottom,
			win:   Rect{X: 0, Y: 1056, Width: 1920, Height: 24},
			strut: Strut{0, 0, 0, 24, 0, 0, 0, 0, 0, 0, 0, 1920},
		},
	}

	for _, tt := range tests {
		t.Run(tt.edge.String(), func(t *testing.T) {
			win, strut, err := Place(tt.edge, 24, fullHD)
			require.NoError(t, err)
			assert.Equal(t, tt.win, win)
			assert.Equal(t, tt.strut, strut)
		})
	}
}

func TestPlaceReservesOnlyOneEdge(t *testing.T) {
	widths := []int{StrutLeft, StrutRight, StrutTop, StrutBottom}
	for _, edge := range []Edge{EdgeLeft, EdgeRight, EdgeTop, EdgeBottom} {
		_, strut, err := Place(edge, 10, fullHD)
		require.NoError(t, err)

		for _, i := range widths {
			if i == int(edge) {
				assert.Equal(t, uint32(10), strut[i])
			} else {
				assert.Zero(t, strut[i], "edge %s index %d", edge, i)
			}
		}
	}
}

func TestPlaceOffsetScreen(t *testing.T) {
	screen := Rect{X: 1920, Y: 0, Width: 2560, Height: 1440}

	win, strut, err := Place(EdgeBottom, 20, screen)
	require.NoError(t, err)
	assert.Equal(t, Rect{X: 1920, Y: 1420, Width: 2560, Height: 20}, win)
	assert.Equal(t, uint32(1920), strut[StrutBottomStartX])
	assert.Equal(t, uint32(4480), strut[StrutBottomEndX])
}

func TestPlaceClampsThickness(t *testing.T) {
	win, strut, err := Place(EdgeTop, 5000, Rect{Width: 800, Height: 600})
	require.NoError(t, err)
	assert.Equal(t, 600, win.Height)
	assert.Equal(t, uint32(600), strut[StrutTop])
}

func TestPlaceRejectsBadInput(t *testing.T) {
	_, _, err := Place(EdgeTop, 0, fullHD)
	assert.ErrorIs(t, err, ErrInvalidThickness)

	_, _, err = Place(Edge(9), 10, fullHD)
	assert.Error(t, err)
}

func TestParseEdge(t *testing.T) {
	for in, want := range map[string]Edge{
		"left": EdgeLeft, "Right": EdgeRight, " top ": EdgeTop, "BOTTOM": EdgeBottom,
	} {
		got, err := ParseEdge(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseEdge("center")
	assert.Error(t, err)
}

func TestEdgeVertical(t *testing.T) {
	assert.True(t, EdgeLeft.Vertical())
	assert.True(t, EdgeRight.Vertical())
	assert.False(t, EdgeTop.Vertical())
	assert.False(t, EdgeBottom.Vertical())
}
