package scene

import "github.com/drostelab/droste/internal/geom"

// HitTest finds the deepest region of the self-similar structure strictly
// containing p, which is given in viewport coordinates. The second return
// value is false when no screen contains the point.
//
// Ties at every level go to the first match in collection order. This holds
// for overlapping screens and for sibling patterns alike.
func HitTest(s Scene, p geom.Point) (ClickedPath, bool) {
	for i, screen := range s.Screens {
		if !screen.ContainsStrict(p) {
			continue
		}
		result := ClickedPath{Screen: i}
		descend(s.Patterns, screen.ToLocal(p), &result)
		return result, true
	}
	return ClickedPath{}, false
}

// descend scans the full pattern collection against the current local-frame
// point, re-entering the matched pattern's frame until nothing matches. The
// same flat collection is reconsidered at every level; that re-scan is the
// self-similar recursion. MaxDepth caps the walk defensively.
func descend(patterns []geom.Rect, local geom.Point, result *ClickedPath) {
	for result.Depth() < MaxDepth {
		matched := false
		for k, pattern := range patterns {
			if pattern.ContainsStrict(local) {
				result.Path = append(result.Path, k)
				local = pattern.ToLocal(local)
				matched = true
				break
			}
		}
		if !matched {
			return
		}
	}
}
