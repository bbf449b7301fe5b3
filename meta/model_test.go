package meta

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Native fixture types. circle holds its shape after another field so the
// base view lands at a non-zero layout offset, and shape nests an entity
// so base conversion has a two-level chain to compose.
type entity struct {
	ID int64
}

type shape struct {
	Ent     entity
	Label   string
	Visible bool
}

type circle struct {
	Radius float64
	S      shape
}

type point struct {
	X, Y int
}

type testModel struct {
	reg    *Registry
	entity *Class
	shape  *Class
	circle *Class
	point  *Class
	color  *Enum
}

// declareTestModel builds the fixture metamodel used across the tests.
func declareTestModel(t *testing.T) *testModel {
	t.Helper()
	reg := NewRegistry()

	colorBuilder, err := DeclareEnum[int](reg, "Color")
	require.NoError(t, err)
	colorBuilder.
		Value("red", 0).
		Value("green", 1).
		Value("blue", 2)
	require.NoError(t, colorBuilder.Err())

	eb, err := Declare[entity](reg, "Entity")
	require.NoError(t, err)
	eb.Property("id", KindInt,
		func(e *entity) Value { return Int(e.ID) },
		func(e *entity, v Value) { e.ID, _ = v.ToInt() })
	require.NoError(t, eb.Err())

	sb, err := Declare[shape](reg, "Shape")
	require.NoError(t, err)
	sb.Base(eb.Class(), func(s *shape) any { return &s.Ent }).
		Constructor(nil, func([]Value) *shape { return &shape{} }).
		Property("label", KindString,
			func(s *shape) Value { return String(s.Label) },
			func(s *shape, v Value) { s.Label, _ = v.ToString() }).
		Property("visible", KindBool,
			func(s *shape) Value { return Bool(s.Visible) },
			func(s *shape, v Value) { s.Visible, _ = v.ToBool() })
	require.NoError(t, sb.Err())

	cb, err := Declare[circle](reg, "Circle")
	require.NoError(t, err)
	cb.Base(sb.Class(), func(c *circle) any { return &c.S }).
		Constructor(nil, func([]Value) *circle { return &circle{} }).
		Constructor([]Kind{KindReal}, func(args []Value) *circle {
			r, _ := args[0].ToReal()
			return &circle{Radius: r}
		}).
		Property("radius", KindReal,
			func(c *circle) Value { return Real(c.Radius) },
			func(c *circle, v Value) { c.Radius, _ = v.ToReal() }).
		Function("area", KindReal, nil, func(c *circle, _ []Value) (Value, error) {
			return Real(3.141592653589793 * c.Radius * c.Radius), nil
		}).
		Function("scale", KindNone, []Kind{KindReal}, func(c *circle, args []Value) (Value, error) {
			f, _ := args[0].ToReal()
			c.Radius *= f
			return NoValue, nil
		})
	require.NoError(t, cb.Err())

	pb, err := Declare[point](reg, "Point")
	require.NoError(t, err)
	pb.Constructor(nil, func([]Value) *point { return &point{} }).
		Constructor([]Kind{KindInt, KindInt}, func(args []Value) *point {
			x, _ := args[0].ToInt()
			y, _ := args[1].ToInt()
			return &point{X: int(x), Y: int(y)}
		}).
		Property("x", KindInt,
			func(p *point) Value { return Int(int64(p.X)) },
			func(p *point, v Value) { n, _ := v.ToInt(); p.X = int(n) }).
		Property("y", KindInt,
			func(p *point) Value { return Int(int64(p.Y)) },
			func(p *point, v Value) { n, _ := v.ToInt(); p.Y = int(n) })
	require.NoError(t, pb.Err())

	return &testModel{
		reg:    reg,
		entity: eb.Class(),
		shape:  sb.Class(),
		circle: cb.Class(),
		point:  pb.Class(),
		color:  colorBuilder.Enum(),
	}
}
