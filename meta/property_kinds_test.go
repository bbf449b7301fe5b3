package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type palette struct {
	Name    string
	Shades  []int64
	Primary int64 // color enum value
	Anchor  *point
}

type paletteModel struct {
	*testModel
	palette *Class
}

func declarePaletteModel(t *testing.T) *paletteModel {
	t.Helper()
	m := declareTestModel(t)

	pb, err := Declare[palette](m.reg, "Palette")
	require.NoError(t, err)
	pb.Constructor(nil, func([]Value) *palette { return &palette{Anchor: &point{}} }).
		ArrayProperty("shades", KindInt, true,
			func(p *palette) []Value {
				out := make([]Value, len(p.Shades))
				for i, s := range p.Shades {
					out[i] = Int(s)
				}
				return out
			},
			func(p *palette, elems []Value) {
				p.Shades = p.Shades[:0]
				for _, e := range elems {
					n, _ := e.ToInt()
					p.Shades = append(p.Shades, n)
				}
			}).
		EnumProperty("primary", m.color,
			func(p *palette) int64 { return p.Primary },
			func(p *palette, v int64) { p.Primary = v }).
		UserProperty("anchor", m.point,
			func(p *palette) UserObject { return NewUserObject(m.point, p.Anchor) },
			func(p *palette, obj UserObject) { p.Anchor = obj.Pointer().(*point) })
	require.NoError(t, pb.Err())

	return &paletteModel{testModel: m, palette: pb.Class()}
}

func TestArrayPropertyRoundTrip(t *testing.T) {
	m := declarePaletteModel(t)
	obj := m.palette.Construct()
	require.True(t, obj.Valid())

	prop, err := m.palette.Property("shades")
	require.NoError(t, err)
	ap, ok := prop.(*ArrayProperty)
	require.True(t, ok)
	assert.Equal(t, KindArray, ap.Kind())
	assert.Equal(t, KindInt, ap.ElementKind())
	assert.True(t, ap.Dynamic())

	// Elements are coerced to the declared element kind.
	require.NoError(t, prop.Set(obj, Array(Int(1), String("2"), Real(3))))

	got, err := prop.Get(obj)
	require.NoError(t, err)
	elems, err := got.ToArray()
	require.NoError(t, err)
	require.Len(t, elems, 3)
	for i, want := range []int64{1, 2, 3} {
		n, err := elems[i].ToInt()
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}
}

func TestArrayPropertyRejectsBadElements(t *testing.T) {
	m := declarePaletteModel(t)
	obj := m.palette.Construct()

	prop, err := m.palette.Property("shades")
	require.NoError(t, err)

	err = prop.Set(obj, Array(Int(1), String("nope")))
	require.Error(t, err)
	assert.True(t, IsInvalidValue(err))

	err = prop.Set(obj, Int(1))
	require.Error(t, err)
	assert.True(t, IsInvalidValue(err))
}

func TestEnumPropertyCoercion(t *testing.T) {
	m := declarePaletteModel(t)
	obj := m.palette.Construct()

	prop, err := m.palette.Property("primary")
	require.NoError(t, err)
	ep, ok := prop.(*EnumProperty)
	require.True(t, ok)
	assert.True(t, ep.Enum().Equal(m.color))

	// By enumerator name.
	require.NoError(t, prop.Set(obj, String("blue")))
	got, err := prop.Get(obj)
	require.NoError(t, err)
	name, err := got.ToString()
	require.NoError(t, err)
	assert.Equal(t, "blue", name)

	// By numeric value.
	require.NoError(t, prop.Set(obj, Int(1)))
	got, err = prop.Get(obj)
	require.NoError(t, err)
	n, _ := got.ToInt()
	assert.Equal(t, int64(1), n)

	// Unknown name and unknown value are invalid values.
	err = prop.Set(obj, String("mauve"))
	require.Error(t, err)
	assert.True(t, IsInvalidValue(err))

	err = prop.Set(obj, Int(42))
	require.Error(t, err)
	assert.True(t, IsInvalidValue(err))
}

func TestUserPropertyRoundTrip(t *testing.T) {
	m := declarePaletteModel(t)
	obj := m.palette.Construct()

	prop, err := m.palette.Property("anchor")
	require.NoError(t, err)
	up, ok := prop.(*UserProperty)
	require.True(t, ok)
	assert.True(t, up.Class().Equal(m.point))

	target := &point{X: 3, Y: 4}
	require.NoError(t, prop.Set(obj, Object(NewUserObject(m.point, target))))

	got, err := prop.Get(obj)
	require.NoError(t, err)
	handle, err := got.ToUser()
	require.NoError(t, err)
	assert.Same(t, target, handle.Pointer())

	// A non-object value cannot be assigned.
	err = prop.Set(obj, Int(1))
	require.Error(t, err)
	assert.True(t, IsInvalidValue(err))

	// Neither can a handle of an unrelated class.
	err = prop.Set(obj, Object(NewUserObject(m.shape, &shape{})))
	require.Error(t, err)
	assert.True(t, IsInvalidValue(err))
}

type countingVisitor struct {
	NopVisitor
	classes    []string
	properties []string
	functions  []string
	enums      []string
}

func (v *countingVisitor) VisitClass(c *Class)                   { v.classes = append(v.classes, c.Name()) }
func (v *countingVisitor) VisitSimpleProperty(p *SimpleProperty) { v.properties = append(v.properties, "simple:"+p.Name()) }
func (v *countingVisitor) VisitArrayProperty(p *ArrayProperty)   { v.properties = append(v.properties, "array:"+p.Name()) }
func (v *countingVisitor) VisitEnumProperty(p *EnumProperty)     { v.properties = append(v.properties, "enum:"+p.Name()) }
func (v *countingVisitor) VisitUserProperty(p *UserProperty)     { v.properties = append(v.properties, "user:"+p.Name()) }
func (v *countingVisitor) VisitFunction(f *Function)             { v.functions = append(v.functions, f.Name()) }
func (v *countingVisitor) VisitEnum(e *Enum)                     { v.enums = append(v.enums, e.Name()) }

func TestVisitorDispatchByKind(t *testing.T) {
	m := declarePaletteModel(t)

	var v countingVisitor
	m.palette.Visit(&v)

	assert.Equal(t, []string{"Palette"}, v.classes)
	assert.Equal(t, []string{"array:shades", "enum:primary", "user:anchor"}, v.properties)
	assert.Empty(t, v.functions)

	v = countingVisitor{}
	m.circle.Visit(&v)
	assert.Equal(t, []string{"Circle"}, v.classes)
	assert.Equal(t, []string{"simple:radius"}, v.properties)
	assert.Equal(t, []string{"area", "scale"}, v.functions)

	v = countingVisitor{}
	m.color.Accept(&v)
	assert.Equal(t, []string{"Color"}, v.enums)
}
