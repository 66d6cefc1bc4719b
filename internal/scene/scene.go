// Package scene models a board's persisted structure — top-level screens in
// viewport coordinates and a flat collection of patterns in local 0..1
// coordinates — together with the recursive hit-tester and the draft
// resolver that decide where a newly drawn rectangle belongs.
//
// A pattern's container is not stored; it is re-derived geometrically every
// time the structure is interpreted. The full pattern collection is
// reconsidered inside every region that contains a point, at every nesting
// depth, which is what produces the self-similar picture-in-picture effect.
package scene

import "github.com/drostelab/droste/internal/geom"

const (
	// MinDragSize is the minimum width and height, in normalized viewport
	// units, a drag must reach before it creates a screen or pattern.
	// Undersized drafts are discarded entirely.
	MinDragSize = 0.01

	// MaxDepth bounds the self-similar recursion. The abstract model is
	// infinite; hit-testing and rendering both stop at this depth so that
	// pathological inputs cannot loop.
	MaxDepth = 64
)

// Scene is the entire persisted structure of a board.
//
// Screens are mutually independent top-level regions in viewport
// coordinates. Patterns are stored in one flat ordered collection, each in
// the local frame of whichever region it is interpreted inside. Collection
// order carries no meaning beyond stable indexing and tie-breaking.
type Scene struct {
	Screens  []geom.Rect `json:"screens"`
	Patterns []geom.Rect `json:"patterns"`
}

// ClickedPath identifies a located region: the containing screen plus an
// ordered chain of pattern indices, one per level of self-similar recursion.
// An empty Path means the point landed directly in the screen.
type ClickedPath struct {
	Screen int   `json:"screen"`
	Path   []int `json:"path"`
}

// Depth returns the number of pattern levels in the path.
func (c ClickedPath) Depth() int {
	return len(c.Path)
}

// Clone returns a deep copy of the scene. Collections are append-only, so a
// shallow slice copy is enough to decouple the copy from later appends.
func (s Scene) Clone() Scene {
	out := Scene{
		Screens:  make([]geom.Rect, len(s.Screens)),
		Patterns: make([]geom.Rect, len(s.Patterns)),
	}
	copy(out.Screens, s.Screens)
	copy(out.Patterns, s.Patterns)
	return out
}

// FrameOf resolves a clicked path to the outer-frame rectangle of the region
// it names, by walking the screen frame and then each pattern frame in
// outer-to-inner order. Panics on out-of-range indices: a stale path can
// only arise from mutation patterns the design forbids.
func (s Scene) FrameOf(path ClickedPath) geom.Rect {
	frame := s.Screens[path.Screen]
	for _, idx := range path.Path {
		frame = frame.ToOuterRect(s.Patterns[idx])
	}
	return frame
}
