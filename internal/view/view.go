package view

import "math"

// Mode selects which of the editor and preview panes are shown.
type Mode int

const (
	Split Mode = iota
	EditorOnly
	ViewerOnly
)

func (m Mode) String() string {
	switch m {
	case EditorOnly:
		return "editor"
	case ViewerOnly:
		return "viewer"
	default:
		return "split"
	}
}

// Orientation arranges the panes in Split mode. Horizontal places them side
// by side, Vertical stacks the editor above the preview.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

const (
	// DefaultRatio is the editor share of a fresh split.
	DefaultRatio = 0.5
	MinRatio     = 0.2
	MaxRatio     = 0.8
	// RatioStep is how far one grow/shrink command moves the divider.
	RatioStep = 0.1
)

// State is the pane visibility and split arrangement.
type State struct {
	mode        Mode
	orientation Orientation
	ratio       float64
}

// New returns the initial state: both panes, side by side, evenly split.
func New() State {
	return State{mode: Split, orientation: Horizontal, ratio: DefaultRatio}
}

func (s State) Mode() Mode { return s.mode }

func (s State) Orientation() Orientation { return s.orientation }

// Ratio is the editor's share of the split.
func (s State) Ratio() float64 { return s.ratio }

func (s State) EditorVisible() bool { return s.mode != ViewerOnly }

func (s State) PreviewVisible() bool { return s.mode != EditorOnly }

// SetMode switches pane visibility. Applying the current mode is a no-op.
func (s *State) SetMode(mode Mode) {
	switch mode {
	case Split, EditorOnly, ViewerOnly:
		s.mode = mode
	}
}

// ToggleOrientation flips the split direction and evens out the panes.
func (s *State) ToggleOrientation() {
	if s.orientation == Horizontal {
		s.orientation = Vertical
	} else {
		s.orientation = Horizontal
	}
	s.ratio = DefaultRatio
}

// Resize moves the divider by delta, keeping both panes usable.
func (s *State) Resize(delta float64) {
	r := s.ratio + delta
	// Snap to one decimal so repeated steps do not drift.
	r = math.Round(r*10) / 10
	s.ratio = math.Max(MinRatio, math.Min(MaxRatio, r))
}

// Rect is a pane size in terminal cells.
type Rect struct {
	Width  int
	Height int
}

// Empty reports whether the pane takes no space.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Layout is the size given to each pane. A hidden pane gets an empty Rect.
type Layout struct {
	Editor  Rect
	Preview Rect
}

// Layout distributes width x height between the visible panes.
func (s State) Layout(width, height int) Layout {
	width = max(width, 0)
	height = max(height, 0)

	switch s.mode {
	case EditorOnly:
		return Layout{Editor: Rect{Width: width, Height: height}}
	case ViewerOnly:
		return Layout{Preview: Rect{Width: width, Height: height}}
	}

	if s.orientation == Vertical {
		editorHeight := share(height, s.ratio)
		return Layout{
			Editor:  Rect{Width: width, Height: editorHeight},
			Preview: Rect{Width: width, Height: height - editorHeight},
		}
	}
	editorWidth := share(width, s.ratio)
	return Layout{
		Editor:  Rect{Width: editorWidth, Height: height},
		Preview: Rect{Width: width - editorWidth, Height: height},
	}
}

func share(total int, ratio float64) int {
	n := int(math.Round(float64(total) * ratio))
	if n < 0 {
		return 0
	}
	if n > total {
		return total
	}
	return n
}
