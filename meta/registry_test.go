package meta

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterClassAndLookupByName(t *testing.T) {
	reg := NewRegistry()
	typ := reflect.TypeOf(point{})

	before := reg.ClassCount()
	c, err := reg.RegisterClass("Point", typ)
	require.NoError(t, err)
	assert.Equal(t, before+1, reg.ClassCount())

	got, err := reg.ClassByName("Point")
	require.NoError(t, err)
	assert.Same(t, c, got)

	_, err = reg.ClassByName("Nope")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestRegisterClassDuplicateName(t *testing.T) {
	reg := NewRegistry()
	typ := reflect.TypeOf(point{})

	first, err := reg.RegisterClass("Point", typ)
	require.NoError(t, err)

	_, err = reg.RegisterClass("Point", reflect.TypeOf(shape{}))
	require.Error(t, err)
	assert.True(t, IsAlreadyExists(err))

	// The first registration remains retrievable unchanged.
	got, err := reg.ClassByName("Point")
	require.NoError(t, err)
	assert.Same(t, first, got)
	assert.Equal(t, 1, reg.ClassCount())
}

func TestClassByTypeMultipleViews(t *testing.T) {
	reg := NewRegistry()
	typ := reflect.TypeOf(point{})

	// Several metaclasses may be declared over the same native type
	// under different names.
	a, err := reg.RegisterClass("Point", typ)
	require.NoError(t, err)
	b, err := reg.RegisterClass("Point2D", typ)
	require.NoError(t, err)

	assert.True(t, reg.HasClassFor(typ))
	assert.Equal(t, 2, reg.ClassTypeCount(typ))

	got, err := reg.ClassByType(typ, 0)
	require.NoError(t, err)
	assert.Same(t, a, got)
	got, err = reg.ClassByType(typ, 1)
	require.NoError(t, err)
	assert.Same(t, b, got)

	_, err = reg.ClassByType(typ, 2)
	require.Error(t, err)
	assert.True(t, IsOutOfRange(err))

	unknown := reflect.TypeOf(circle{})
	assert.False(t, reg.HasClassFor(unknown))
	_, err = reg.ClassByType(unknown, 0)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestGlobalEnumerationOrder(t *testing.T) {
	reg := NewRegistry()
	names := []string{"A", "B", "C"}
	for _, n := range names {
		_, err := reg.RegisterClass(n, reflect.TypeOf(point{}))
		require.NoError(t, err)
	}

	require.Equal(t, len(names), reg.ClassCount())
	seen := map[string]int{}
	for i := range names {
		c, err := reg.ClassAt(i)
		require.NoError(t, err)
		assert.Equal(t, names[i], c.Name())
		seen[c.Name()]++
	}
	// Each class appears exactly once in the enumeration.
	for _, n := range names {
		assert.Equal(t, 1, seen[n])
	}

	_, err := reg.ClassAt(len(names))
	require.Error(t, err)
	assert.True(t, IsOutOfRange(err))
	_, err = reg.ClassAt(-1)
	require.Error(t, err)
}

type recordingObserver struct {
	events []string
}

func (o *recordingObserver) ClassAdded(c *Class)   { o.events = append(o.events, "class+"+c.Name()) }
func (o *recordingObserver) ClassRemoved(c *Class) { o.events = append(o.events, "class-"+c.Name()) }
func (o *recordingObserver) EnumAdded(e *Enum)     { o.events = append(o.events, "enum+"+e.Name()) }
func (o *recordingObserver) EnumRemoved(e *Enum)   { o.events = append(o.events, "enum-"+e.Name()) }

func TestObserverNotifications(t *testing.T) {
	reg := NewRegistry()
	obs := &recordingObserver{}
	reg.AddObserver(obs)

	_, err := reg.RegisterClass("A", reflect.TypeOf(point{}))
	require.NoError(t, err)
	_, err = reg.RegisterEnum("E", reflect.TypeOf(int(0)))
	require.NoError(t, err)

	// Notification fired before the registering call returned.
	assert.Equal(t, []string{"class+A", "enum+E"}, obs.events)

	reg.RemoveObserver(obs)
	_, err = reg.RegisterClass("B", reflect.TypeOf(point{}))
	require.NoError(t, err)
	assert.Equal(t, []string{"class+A", "enum+E"}, obs.events)
}

func TestCloseFiresRemovalPerEntityInRegistrationOrder(t *testing.T) {
	reg := NewRegistry()
	obs := &recordingObserver{}

	_, err := reg.RegisterClass("A", reflect.TypeOf(point{}))
	require.NoError(t, err)
	_, err = reg.RegisterClass("B", reflect.TypeOf(shape{}))
	require.NoError(t, err)
	_, err = reg.RegisterEnum("E", reflect.TypeOf(int(0)))
	require.NoError(t, err)

	reg.AddObserver(obs)
	reg.Close()

	assert.Equal(t, []string{"class-A", "class-B", "enum-E"}, obs.events)

	// After teardown the names are gone.
	_, err = reg.ClassByName("A")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	_, err = reg.EnumByName("E")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, 0, reg.ClassCount())
	assert.Equal(t, 0, reg.EnumCount())

	// The registry is reusable after Close.
	_, err = reg.RegisterClass("A", reflect.TypeOf(point{}))
	require.NoError(t, err)
}

func TestEnumRegistryLookups(t *testing.T) {
	reg := NewRegistry()
	typ := reflect.TypeOf(int(0))

	e, err := reg.RegisterEnum("Color", typ)
	require.NoError(t, err)

	got, err := reg.EnumByName("Color")
	require.NoError(t, err)
	assert.Same(t, e, got)

	_, err = reg.RegisterEnum("Color", typ)
	require.Error(t, err)
	assert.True(t, IsAlreadyExists(err))

	assert.True(t, reg.HasEnumFor(typ))
	assert.Equal(t, 1, reg.EnumCount())

	byType, err := reg.EnumByType(typ, 0)
	require.NoError(t, err)
	assert.Same(t, e, byType)
	_, err = reg.EnumByType(typ, 1)
	require.Error(t, err)
	assert.True(t, IsOutOfRange(err))

	at, err := reg.EnumAt(0)
	require.NoError(t, err)
	assert.Same(t, e, at)
	_, err = reg.EnumAt(1)
	require.Error(t, err)
	assert.True(t, IsOutOfRange(err))
}

func TestDefaultRegistryIsSingleInstance(t *testing.T) {
	assert.Same(t, DefaultRegistry(), DefaultRegistry())
}

func TestRegistrationCountScenario(t *testing.T) {
	reg := NewRegistry()

	before := reg.ClassCount()
	_, err := reg.RegisterClass("Scenario", reflect.TypeOf(point{}))
	require.NoError(t, err)
	assert.Equal(t, before+1, reg.ClassCount())

	obs := &recordingObserver{}
	reg.AddObserver(obs)
	reg.Close()
	require.Equal(t, []string{"class-Scenario"}, obs.events)

	_, err = reg.ClassByName("Scenario")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}
