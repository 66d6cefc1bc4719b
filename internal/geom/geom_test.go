package geom_test

import (
	"testing"

	"github.com/drostelab/droste/internal/geom"
	. "github.com/smartystreets/goconvey/convey"
)

const tolerance = 1e-9

func TestNormalizeRect(t *testing.T) {
	Convey("Given two corner points", t, func() {
		Convey("When the drag runs top-left to bottom-right", func() {
			r := geom.NormalizeRect(geom.Point{X: 0.1, Y: 0.2}, geom.Point{X: 0.5, Y: 0.6})

			Convey("Then the rect is already canonical", func() {
				So(r.MinX, ShouldEqual, 0.1)
				So(r.MinY, ShouldEqual, 0.2)
				So(r.MaxX, ShouldEqual, 0.5)
				So(r.MaxY, ShouldEqual, 0.6)
			})
		})

		Convey("When the drag runs bottom-right to top-left", func() {
			r := geom.NormalizeRect(geom.Point{X: 0.5, Y: 0.6}, geom.Point{X: 0.1, Y: 0.2})

			Convey("Then the corners are swapped into canonical form", func() {
				So(r.MinX, ShouldEqual, 0.1)
				So(r.MinY, ShouldEqual, 0.2)
				So(r.MaxX, ShouldEqual, 0.5)
				So(r.MaxY, ShouldEqual, 0.6)
			})
		})

		Convey("When the corners coincide", func() {
			p := geom.Point{X: 0.3, Y: 0.3}
			r := geom.NormalizeRect(p, p)

			Convey("Then the rect is degenerate but well-formed", func() {
				So(r.IsDegenerate(), ShouldBeTrue)
				So(r.MinX, ShouldEqual, r.MaxX)
				So(r.MinY, ShouldEqual, r.MaxY)
			})
		})
	})
}

func TestContainsStrict(t *testing.T) {
	Convey("Given a unit-quarter rect", t, func() {
		r := geom.Rect{MinX: 0.25, MinY: 0.25, MaxX: 0.75, MaxY: 0.75}

		Convey("Then interior points are contained", func() {
			So(r.ContainsStrict(geom.Point{X: 0.5, Y: 0.5}), ShouldBeTrue)
		})

		Convey("Then boundary points are not contained", func() {
			So(r.ContainsStrict(geom.Point{X: 0.25, Y: 0.5}), ShouldBeFalse)
			So(r.ContainsStrict(geom.Point{X: 0.5, Y: 0.75}), ShouldBeFalse)
			So(r.ContainsStrict(geom.Point{X: 0.25, Y: 0.25}), ShouldBeFalse)
		})

		Convey("Then exterior points are not contained", func() {
			So(r.ContainsStrict(geom.Point{X: 0.1, Y: 0.5}), ShouldBeFalse)
			So(r.ContainsStrict(geom.Point{X: 0.9, Y: 0.9}), ShouldBeFalse)
		})
	})
}

func TestFrameConversion(t *testing.T) {
	Convey("Given a non-degenerate container", t, func() {
		c := geom.Rect{MinX: 0.1, MinY: 0.1, MaxX: 0.5, MaxY: 0.5}

		Convey("When projecting a point into the local frame", func() {
			local := c.ToLocal(geom.Point{X: 0.2, Y: 0.3})

			Convey("Then coordinates are normalized to the container bounds", func() {
				So(local.X, ShouldAlmostEqual, 0.25, tolerance)
				So(local.Y, ShouldAlmostEqual, 0.5, tolerance)
			})
		})

		Convey("When converting a rect into the local frame", func() {
			local := c.ToLocalRect(geom.Rect{MinX: 0.2, MinY: 0.2, MaxX: 0.3, MaxY: 0.3})

			Convey("Then both corners are projected", func() {
				So(local.MinX, ShouldAlmostEqual, 0.25, tolerance)
				So(local.MinY, ShouldAlmostEqual, 0.25, tolerance)
				So(local.MaxX, ShouldAlmostEqual, 0.5, tolerance)
				So(local.MaxY, ShouldAlmostEqual, 0.5, tolerance)
			})
		})

		Convey("When round-tripping arbitrary points through the frame", func() {
			points := []geom.Point{
				{X: 0.0, Y: 0.0},
				{X: 0.123, Y: 0.456},
				{X: 0.5, Y: 0.5},
				{X: 1.7, Y: -0.3}, // outside the container is still a valid projection
			}

			Convey("Then ToOuter(ToLocal(p)) == p within tolerance", func() {
				for _, p := range points {
					rt := c.ToOuter(c.ToLocal(p))
					So(rt.X, ShouldAlmostEqual, p.X, tolerance)
					So(rt.Y, ShouldAlmostEqual, p.Y, tolerance)
				}
			})
		})

		Convey("When chaining conversions through nested containers", func() {
			inner := geom.Rect{MinX: 0.5, MinY: 0.5, MaxX: 1.0, MaxY: 1.0} // local to c
			p := geom.Point{X: 0.4, Y: 0.4}

			local := inner.ToLocal(c.ToLocal(p))
			back := c.ToOuter(inner.ToOuter(local))

			Convey("Then outer-to-inner then inner-to-outer round-trips", func() {
				So(back.X, ShouldAlmostEqual, p.X, tolerance)
				So(back.Y, ShouldAlmostEqual, p.Y, tolerance)
			})
		})
	})

	Convey("Given a degenerate container", t, func() {
		c := geom.Rect{MinX: 0.2, MinY: 0.2, MaxX: 0.2, MaxY: 0.5}

		Convey("Then using it as a frame panics loudly", func() {
			So(func() { c.ToLocal(geom.Point{X: 0.3, Y: 0.3}) }, ShouldPanic)
			So(func() { c.ToOuter(geom.Point{X: 0.3, Y: 0.3}) }, ShouldPanic)
		})
	})
}

func TestFrameMatrix(t *testing.T) {
	Convey("Given a container rect", t, func() {
		c := geom.Rect{MinX: 0.1, MinY: 0.1, MaxX: 0.5, MaxY: 0.5}
		m := c.FrameMatrix()

		Convey("Then the matrix agrees with ToOuter", func() {
			p := geom.Point{X: 0.25, Y: 0.5}
			viaMatrix := m.TransformPoint(p)
			viaFrame := c.ToOuter(p)
			So(viaMatrix.X, ShouldAlmostEqual, viaFrame.X, tolerance)
			So(viaMatrix.Y, ShouldAlmostEqual, viaFrame.Y, tolerance)
		})

		Convey("Then the inverse agrees with ToLocal", func() {
			p := geom.Point{X: 0.2, Y: 0.3}
			viaMatrix := m.Invert().TransformPoint(p)
			viaFrame := c.ToLocal(p)
			So(viaMatrix.X, ShouldAlmostEqual, viaFrame.X, tolerance)
			So(viaMatrix.Y, ShouldAlmostEqual, viaFrame.Y, tolerance)
		})

		Convey("Then matrix composed with its inverse is identity", func() {
			So(m.Multiply(m.Invert()).IsIdentity(), ShouldBeTrue)
		})

		Convey("Then composing frame matrices matches chained conversion", func() {
			inner := geom.Rect{MinX: 0.5, MinY: 0.5, MaxX: 1.0, MaxY: 1.0}
			composed := m.Multiply(inner.FrameMatrix())

			local := geom.Point{X: 0.5, Y: 0.5}
			viaMatrix := composed.TransformPoint(local)
			viaFrame := c.ToOuter(inner.ToOuter(local))
			So(viaMatrix.X, ShouldAlmostEqual, viaFrame.X, tolerance)
			So(viaMatrix.Y, ShouldAlmostEqual, viaFrame.Y, tolerance)
		})
	})
}
