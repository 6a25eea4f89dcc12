package view

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewStartsSplitHorizontal(t *testing.T) {
	s := New()
	require.Equal(t, Split, s.Mode())
	require.Equal(t, Horizontal, s.Orientation())
	require.Equal(t, DefaultRatio, s.Ratio())
	require.True(t, s.EditorVisible())
	require.True(t, s.PreviewVisible())
}

func TestModesShowExactlyTheirPanes(t *testing.T) {
	s := New()

	s.SetMode(EditorOnly)
	require.True(t, s.EditorVisible())
	require.False(t, s.PreviewVisible())

	s.SetMode(ViewerOnly)
	require.False(t, s.EditorVisible())
	require.True(t, s.PreviewVisible())

	s.SetMode(Split)
	require.True(t, s.EditorVisible())
	require.True(t, s.PreviewVisible())
}

func TestSetModeIsIdempotent(t *testing.T) {
	s := New()
	s.Resize(RatioStep)
	s.SetMode(ViewerOnly)
	once := s
	s.SetMode(ViewerOnly)
	require.Equal(t, once, s)
}

func TestToggleOrientationTwiceRestoresEvenSplit(t *testing.T) {
	s := New()
	s.Resize(2 * RatioStep)
	require.InDelta(t, 0.7, s.Ratio(), 1e-9)

	s.ToggleOrientation()
	require.Equal(t, Vertical, s.Orientation())
	require.Equal(t, DefaultRatio, s.Ratio())

	s.Resize(-RatioStep)
	s.ToggleOrientation()
	require.Equal(t, Horizontal, s.Orientation())
	require.Equal(t, DefaultRatio, s.Ratio())
}

func TestToggleOrientationKeepsMode(t *testing.T) {
	s := New()
	s.SetMode(EditorOnly)
	s.ToggleOrientation()
	require.Equal(t, EditorOnly, s.Mode())
	require.Equal(t, Vertical, s.Orientation())
}

func TestResizeClamps(t *testing.T) {
	s := New()
	for i := 0; i < 10; i++ {
		s.Resize(RatioStep)
	}
	require.Equal(t, MaxRatio, s.Ratio())
	for i := 0; i < 10; i++ {
		s.Resize(-RatioStep)
	}
	require.Equal(t, MinRatio, s.Ratio())
}

func TestLayout(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(*State)
		w, h   int
		editor Rect
		prev   Rect
	}{
		{
			name:   "split horizontal",
			setup:  func(*State) {},
			w:      100,
			h:      40,
			editor: Rect{Width: 50, Height: 40},
			prev:   Rect{Width: 50, Height: 40},
		},
		{
			name:   "split horizontal odd width",
			setup:  func(*State) {},
			w:      81,
			h:      10,
			editor: Rect{Width: 41, Height: 10},
			prev:   Rect{Width: 40, Height: 10},
		},
		{
			name:   "split vertical",
			setup:  func(s *State) { s.ToggleOrientation() },
			w:      80,
			h:      30,
			editor: Rect{Width: 80, Height: 15},
			prev:   Rect{Width: 80, Height: 15},
		},
		{
			name:   "editor only",
			setup:  func(s *State) { s.SetMode(EditorOnly) },
			w:      80,
			h:      30,
			editor: Rect{Width: 80, Height: 30},
		},
		{
			name:  "viewer only",
			setup: func(s *State) { s.SetMode(ViewerOnly) },
			w:     80,
			h:     30,
			prev:  Rect{Width: 80, Height: 30},
		},
		{
			name:   "resized split",
			setup:  func(s *State) { s.Resize(-RatioStep) },
			w:      100,
			h:      20,
			editor: Rect{Width: 40, Height: 20},
			prev:   Rect{Width: 60, Height: 20},
		},
		{
			name:   "negative size",
			setup:  func(*State) {},
			w:      -5,
			h:      -1,
			editor: Rect{},
			prev:   Rect{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			tt.setup(&s)
			got := s.Layout(tt.w, tt.h)
			require.Equal(t, tt.editor, got.Editor)
			require.Equal(t, tt.prev, got.Preview)
		})
	}
}

func TestHiddenPaneRectIsEmpty(t *testing.T) {
	s := New()
	s.SetMode(EditorOnly)
	require.True(t, s.Layout(80, 24).Preview.Empty())
	require.False(t, s.Layout(80, 24).Editor.Empty())
}
