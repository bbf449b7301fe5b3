package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagHolderSetAndGet(t *testing.T) {
	var h TagHolder

	assert.False(t, h.HasTag(String("doc")))
	assert.True(t, h.Tag(String("doc")).IsNone())

	h.SetTag(String("doc"), String("a point in the plane"))
	assert.True(t, h.HasTag(String("doc")))

	s, err := h.Tag(String("doc")).ToString()
	require.NoError(t, err)
	assert.Equal(t, "a point in the plane", s)
}

func TestTagHolderOverwrite(t *testing.T) {
	var h TagHolder
	h.SetTag(String("version"), Int(1))
	h.SetTag(String("version"), Int(2))

	assert.Equal(t, 1, h.TagCount())
	n, err := h.Tag(String("version")).ToInt()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestTagHolderNonStringKeys(t *testing.T) {
	var h TagHolder
	h.SetTag(Int(7), String("seven"))
	h.SetTag(Bool(true), String("yes"))

	assert.True(t, h.HasTag(Int(7)))
	assert.True(t, h.HasTag(Bool(true)))
	// An int key and a string key with the same spelling are distinct.
	assert.False(t, h.HasTag(String("7")))
}

func TestTagHolderKeyOrder(t *testing.T) {
	var h TagHolder
	h.SetTag(String("a"), Int(1))
	h.SetTag(String("b"), Int(2))
	h.SetTag(String("a"), Int(3)) // overwrite keeps position

	require.Equal(t, 2, h.TagCount())

	k, err := h.TagKey(0)
	require.NoError(t, err)
	s, _ := k.ToString()
	assert.Equal(t, "a", s)

	_, err = h.TagKey(2)
	require.Error(t, err)
	assert.True(t, IsOutOfRange(err))

	_, err = h.TagKey(-1)
	require.Error(t, err)
}

func TestTagsOnMetaEntities(t *testing.T) {
	m := declareTestModel(t)

	m.point.SetTag(String("category"), String("geometry"))
	assert.True(t, m.point.HasTag(String("category")))

	prop, err := m.point.Property("x")
	require.NoError(t, err)
	prop.SetTag(String("unit"), String("px"))
	assert.True(t, prop.HasTag(String("unit")))

	fn, err := m.circle.Function("area")
	require.NoError(t, err)
	fn.SetTag(String("pure"), Bool(true))
	assert.True(t, fn.HasTag(String("pure")))

	m.color.SetTag(String("doc"), String("display colors"))
	assert.True(t, m.color.HasTag(String("doc")))
}
