package scene

import "github.com/drostelab/droste/internal/geom"

// ResolveDraft decides where a drafted rectangle belongs and returns the
// scene that results from committing it. The input scene is never mutated;
// the function is pure, so it serves both the pointer-up commit and the
// per-frame speculative preview.
//
//   - nil draft: the scene unchanged.
//   - draft below MinDragSize on either axis: the scene unchanged — the
//     drag is discarded entirely.
//   - draft with no clicked path: a new top-level screen.
//   - draft with a clicked path: converted into the local frame of the
//     located region (screen frame first, then each pattern frame along the
//     path, in order) and appended to the pattern collection.
//
// The clicked path is whatever the hit-test captured at drag start;
// containment is evaluated at press time only.
func ResolveDraft(s Scene, path *ClickedPath, draft *geom.Rect) Scene {
	if draft == nil {
		return s
	}
	if draft.Width() < MinDragSize || draft.Height() < MinDragSize {
		return s
	}

	out := s.Clone()

	if path == nil {
		out.Screens = append(out.Screens, *draft)
		return out
	}

	converted := s.Screens[path.Screen].ToLocalRect(*draft)
	for _, idx := range path.Path {
		converted = s.Patterns[idx].ToLocalRect(converted)
	}
	out.Patterns = append(out.Patterns, converted)
	return out
}
