package render_test

import (
	"testing"

	"github.com/drostelab/droste/internal/geom"
	"github.com/drostelab/droste/internal/render"
	"github.com/drostelab/droste/internal/scene"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCompile(t *testing.T) {
	Convey("Given an empty scene", t, func() {
		commands := render.Compile(scene.Scene{}, render.Options{})

		Convey("Then no commands are emitted", func() {
			So(commands, ShouldBeEmpty)
		})
	})

	Convey("Given a scene with one screen and no patterns", t, func() {
		s := scene.Scene{
			Screens: []geom.Rect{{MinX: 0.1, MinY: 0.1, MaxX: 0.5, MaxY: 0.5}},
		}
		commands := render.Compile(s, render.Options{})

		Convey("Then exactly the screen is emitted", func() {
			So(commands, ShouldHaveLength, 1)
			So(commands[0].Op, ShouldEqual, "screen")
			So(commands[0].Depth, ShouldEqual, 0)
			So(commands[0].Rect, ShouldResemble, s.Screens[0])
		})
	})

	Convey("Given a screen with a half-size pattern", t, func() {
		s := scene.Scene{
			Screens:  []geom.Rect{{MinX: 0.0, MinY: 0.0, MaxX: 0.8, MaxY: 0.8}},
			Patterns: []geom.Rect{{MinX: 0.25, MinY: 0.25, MaxX: 0.75, MaxY: 0.75}},
		}

		Convey("When compiled with a depth limit of 3", func() {
			commands := render.Compile(s, render.Options{MaxDepth: 3, MinSize: 1e-9})

			Convey("Then one instance is emitted per depth", func() {
				So(commands, ShouldHaveLength, 4) // screen + depths 1..3
				So(commands[0].Op, ShouldEqual, "screen")
				for d := 1; d <= 3; d++ {
					So(commands[d].Op, ShouldEqual, "pattern")
					So(commands[d].Depth, ShouldEqual, d)
				}
			})

			Convey("Then painter's order nests outer before inner", func() {
				for i := 1; i < len(commands); i++ {
					outer := commands[i-1].Rect
					inner := commands[i].Rect
					So(inner.MinX, ShouldBeGreaterThan, outer.MinX)
					So(inner.MaxX, ShouldBeLessThan, outer.MaxX)
				}
			})

			Convey("Then instance rects match the frame conversion chain", func() {
				first := s.Screens[0].ToOuterRect(s.Patterns[0])
				So(commands[1].Rect.MinX, ShouldAlmostEqual, first.MinX, 1e-9)
				So(commands[1].Rect.MaxY, ShouldAlmostEqual, first.MaxY, 1e-9)

				second := first.ToOuterRect(s.Patterns[0])
				So(commands[2].Rect.MinX, ShouldAlmostEqual, second.MinX, 1e-9)
				So(commands[2].Rect.MaxX, ShouldAlmostEqual, second.MaxX, 1e-9)
			})
		})

		Convey("When compiled with a coarse size cutoff", func() {
			// Each level halves the instance; a cutoff at an eighth of the
			// screen stops the expansion after two pattern levels.
			commands := render.Compile(s, render.Options{MaxDepth: 32, MinSize: 0.15})

			Convey("Then recursion stops once instances shrink below it", func() {
				So(commands, ShouldHaveLength, 3)
				So(commands[len(commands)-1].Depth, ShouldEqual, 2)
			})
		})
	})

	Convey("Given a full-frame pattern that never shrinks", t, func() {
		s := scene.Scene{
			Screens:  []geom.Rect{{MinX: 0.0, MinY: 0.0, MaxX: 1.0, MaxY: 1.0}},
			Patterns: []geom.Rect{{MinX: 0.0, MinY: 0.0, MaxX: 1.0, MaxY: 1.0}},
		}
		commands := render.Compile(s, render.Options{MaxDepth: 5})

		Convey("Then the depth limit alone terminates the expansion", func() {
			So(commands, ShouldHaveLength, 6)
		})
	})
}
