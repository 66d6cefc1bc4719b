package scene_test

import (
	"testing"

	"github.com/drostelab/droste/internal/geom"
	"github.com/drostelab/droste/internal/scene"
	. "github.com/smartystreets/goconvey/convey"
)

func TestResolveDraft(t *testing.T) {
	Convey("Given an empty scene", t, func() {
		s := scene.Scene{}

		Convey("When there is no draft", func() {
			out := scene.ResolveDraft(s, nil, nil)

			Convey("Then the scene is unchanged", func() {
				So(out.Screens, ShouldBeEmpty)
				So(out.Patterns, ShouldBeEmpty)
			})
		})

		Convey("When a drag outside every screen completes", func() {
			// Scenario: drag from (0.1,0.1) to (0.5,0.5) on an empty board.
			draft := geom.NormalizeRect(geom.Point{X: 0.1, Y: 0.1}, geom.Point{X: 0.5, Y: 0.5})
			out := scene.ResolveDraft(s, nil, &draft)

			Convey("Then it becomes a new top-level screen", func() {
				So(out.Screens, ShouldHaveLength, 1)
				So(out.Screens[0], ShouldResemble, geom.Rect{MinX: 0.1, MinY: 0.1, MaxX: 0.5, MaxY: 0.5})
				So(out.Patterns, ShouldBeEmpty)
			})

			Convey("And the input scene is untouched", func() {
				So(s.Screens, ShouldBeEmpty)
			})
		})
	})

	Convey("Given a scene with one screen", t, func() {
		s := scene.Scene{
			Screens: []geom.Rect{{MinX: 0.1, MinY: 0.1, MaxX: 0.5, MaxY: 0.5}},
		}

		Convey("When a drag inside the screen completes", func() {
			// Scenario: drag from (0.2,0.2) to (0.3,0.3); press point hit
			// the screen with no nested pattern match.
			path, ok := scene.HitTest(s, geom.Point{X: 0.2, Y: 0.2})
			So(ok, ShouldBeTrue)

			draft := geom.NormalizeRect(geom.Point{X: 0.2, Y: 0.2}, geom.Point{X: 0.3, Y: 0.3})
			out := scene.ResolveDraft(s, &path, &draft)

			Convey("Then a pattern is appended in screen-local coordinates", func() {
				So(out.Screens, ShouldHaveLength, 1)
				So(out.Patterns, ShouldHaveLength, 1)
				got := out.Patterns[0]
				So(got.MinX, ShouldAlmostEqual, 0.25, tolerance)
				So(got.MinY, ShouldAlmostEqual, 0.25, tolerance)
				So(got.MaxX, ShouldAlmostEqual, 0.5, tolerance)
				So(got.MaxY, ShouldAlmostEqual, 0.5, tolerance)
			})
		})

		Convey("When the press point was outside every screen", func() {
			// Scenario: containment is evaluated at press time only. Even
			// if the release lands where a screen is, a press with no match
			// still creates a top-level screen.
			draft := geom.NormalizeRect(geom.Point{X: 0.6, Y: 0.6}, geom.Point{X: 0.3, Y: 0.3})
			out := scene.ResolveDraft(s, nil, &draft)

			Convey("Then a second top-level screen is created", func() {
				So(out.Screens, ShouldHaveLength, 2)
				So(out.Patterns, ShouldBeEmpty)
			})
		})

		Convey("When the drag is below the minimum size", func() {
			tiny := geom.NormalizeRect(geom.Point{X: 0.2, Y: 0.2}, geom.Point{X: 0.205, Y: 0.4})
			path, _ := scene.HitTest(s, geom.Point{X: 0.2, Y: 0.2})

			Convey("Then neither collection changes, with or without a path", func() {
				out := scene.ResolveDraft(s, &path, &tiny)
				So(out.Screens, ShouldResemble, s.Screens)
				So(out.Patterns, ShouldBeEmpty)

				out = scene.ResolveDraft(s, nil, &tiny)
				So(out.Screens, ShouldResemble, s.Screens)
				So(out.Patterns, ShouldBeEmpty)
			})
		})
	})

	Convey("Given a scene with a nested pattern chain", t, func() {
		s := scene.Scene{
			Screens:  []geom.Rect{{MinX: 0.0, MinY: 0.0, MaxX: 0.8, MaxY: 0.8}},
			Patterns: []geom.Rect{{MinX: 0.25, MinY: 0.25, MaxX: 0.75, MaxY: 0.75}},
		}

		Convey("When a draft resolves against a depth-one path", func() {
			path := scene.ClickedPath{Screen: 0, Path: []int{0}}
			// The pattern's first instance spans (0.2,0.2)-(0.6,0.6) in the
			// viewport; a draft of its middle half should land at
			// (0.25,0.25)-(0.75,0.75) in the pattern's own frame.
			draft := geom.Rect{MinX: 0.3, MinY: 0.3, MaxX: 0.5, MaxY: 0.5}
			out := scene.ResolveDraft(s, &path, &draft)

			Convey("Then the draft is converted through both frames", func() {
				So(out.Patterns, ShouldHaveLength, 2)
				got := out.Patterns[1]
				So(got.MinX, ShouldAlmostEqual, 0.25, tolerance)
				So(got.MinY, ShouldAlmostEqual, 0.25, tolerance)
				So(got.MaxX, ShouldAlmostEqual, 0.75, tolerance)
				So(got.MaxY, ShouldAlmostEqual, 0.75, tolerance)
			})

			Convey("And converting back through FrameOf recovers the draft", func() {
				out := scene.ResolveDraft(s, &path, &draft)
				frame := s.FrameOf(path)
				back := frame.ToOuterRect(out.Patterns[1])
				So(back.MinX, ShouldAlmostEqual, draft.MinX, tolerance)
				So(back.MinY, ShouldAlmostEqual, draft.MinY, tolerance)
				So(back.MaxX, ShouldAlmostEqual, draft.MaxX, tolerance)
				So(back.MaxY, ShouldAlmostEqual, draft.MaxY, tolerance)
			})
		})
	})

	Convey("Given identical inputs applied twice", t, func() {
		s := scene.Scene{
			Screens: []geom.Rect{{MinX: 0.1, MinY: 0.1, MaxX: 0.5, MaxY: 0.5}},
		}
		path, _ := scene.HitTest(s, geom.Point{X: 0.2, Y: 0.2})
		draft := geom.NormalizeRect(geom.Point{X: 0.2, Y: 0.2}, geom.Point{X: 0.3, Y: 0.3})

		Convey("Then the resolver is idempotent as a pure function", func() {
			first := scene.ResolveDraft(s, &path, &draft)
			second := scene.ResolveDraft(s, &path, &draft)
			So(second, ShouldResemble, first)
		})
	})
}
