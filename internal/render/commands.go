// Package render compiles a scene into a flat draw-command buffer a
// frontend can replay onto a Canvas2D context. The compiler is where the
// self-similar model becomes finite: every screen re-instances the entire
// pattern collection inside itself, recursively, until the depth cutoff or
// the minimum on-screen size stops the expansion.
package render

import (
	"encoding/json"

	"github.com/drostelab/droste/internal/geom"
	"github.com/drostelab/droste/internal/scene"
)

// DrawCommand represents a single drawing operation for the frontend to
// execute. Commands are in painter's order (back to front); outer regions
// precede the instances nested inside them.
type DrawCommand struct {
	Op        string    `json:"op"`                  // "screen" or "pattern"
	Screen    int       `json:"screen"`              // owning screen index
	Index     int       `json:"index,omitempty"`     // pattern index, for "pattern" ops
	Depth     int       `json:"depth"`               // nesting depth (0 = the screen itself)
	Rect      geom.Rect `json:"rect"`                // absolute viewport rectangle
	Transform []float64 `json:"transform,omitempty"` // local-to-viewport affine for the region's frame
}

// Options bound the expansion. Zero values fall back to the defaults.
type Options struct {
	// MaxDepth caps the recursion; capped further by scene.MaxDepth.
	MaxDepth int
	// MinSize stops recursion into regions whose on-screen width or height
	// has shrunk below this many normalized units.
	MinSize float64
}

const (
	defaultDepth   = 8
	defaultMinSize = 0.002
)

func (o Options) withDefaults() Options {
	if o.MaxDepth <= 0 || o.MaxDepth > scene.MaxDepth {
		o.MaxDepth = defaultDepth
	}
	if o.MinSize <= 0 {
		o.MinSize = defaultMinSize
	}
	return o
}

// Compile generates the draw-command buffer for a scene. The scene may be a
// committed scene or a speculative preview; the compiler does not care.
func Compile(s scene.Scene, opts Options) []DrawCommand {
	opts = opts.withDefaults()

	var commands []DrawCommand
	for i, screen := range s.Screens {
		commands = append(commands, DrawCommand{
			Op:        "screen",
			Screen:    i,
			Depth:     0,
			Rect:      screen,
			Transform: screen.FrameMatrix().ToSlice(),
		})
		expand(s.Patterns, i, screen.FrameMatrix(), 1, opts, &commands)
	}
	return commands
}

// expand instances every pattern inside the frame described by parent,
// emitting a command per instance and recursing into each one. parent maps
// the frame's local 0..1 space to the viewport.
func expand(patterns []geom.Rect, screen int, parent geom.Matrix2D, depth int, opts Options, commands *[]DrawCommand) {
	if depth > opts.MaxDepth {
		return
	}
	for k, pattern := range patterns {
		absolute := parent.TransformRect(pattern)
		if absolute.Width() < opts.MinSize || absolute.Height() < opts.MinSize {
			continue
		}
		frame := parent.Multiply(pattern.FrameMatrix())
		*commands = append(*commands, DrawCommand{
			Op:        "pattern",
			Screen:    screen,
			Index:     k,
			Depth:     depth,
			Rect:      absolute,
			Transform: frame.ToSlice(),
		})
		expand(patterns, screen, frame, depth+1, opts, commands)
	}
}

// ToJSON serializes a draw-command buffer.
func ToJSON(commands []DrawCommand) (string, error) {
	if commands == nil {
		return "[]", nil
	}
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}
