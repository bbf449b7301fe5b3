package meta

// Tagged is the annotation surface shared by metaclasses, properties,
// functions and enums. Keys are arbitrary Values compared by strict
// equality; setting an existing key overwrites its value.
type Tagged interface {
	// HasTag reports whether a tag with the given key is present.
	HasTag(key Value) bool

	// Tag returns the value stored under key, or NoValue if absent.
	Tag(key Value) Value

	// SetTag stores a value under key, overwriting any previous value.
	SetTag(key, value Value)

	// TagCount returns the number of stored tags.
	TagCount() int

	// TagKey returns the key of the index-th tag in insertion order.
	TagKey(index int) (Value, error)
}

type tagPair struct {
	key   Value
	value Value
}

// TagHolder is the default Tagged implementation, embedded by every
// meta-entity. The zero TagHolder is ready to use.
//
// Keys are kept in insertion order and matched by linear scan: arbitrary
// Values (including arrays and object references) are legal keys, so they
// cannot serve as Go map keys, and tag sets are small.
type TagHolder struct {
	tags []tagPair
}

// HasTag reports whether a tag with the given key is present.
func (t *TagHolder) HasTag(key Value) bool {
	return t.find(key) >= 0
}

// Tag returns the value stored under key, or NoValue if absent.
func (t *TagHolder) Tag(key Value) Value {
	if i := t.find(key); i >= 0 {
		return t.tags[i].value
	}
	return NoValue
}

// SetTag stores a value under key, overwriting any previous value.
func (t *TagHolder) SetTag(key, value Value) {
	if i := t.find(key); i >= 0 {
		t.tags[i].value = value
		return
	}
	t.tags = append(t.tags, tagPair{key: key, value: value})
}

// TagCount returns the number of stored tags.
func (t *TagHolder) TagCount() int { return len(t.tags) }

// TagKey returns the key of the index-th tag in insertion order.
func (t *TagHolder) TagKey(index int) (Value, error) {
	if index < 0 || index >= len(t.tags) {
		return NoValue, errIndexOutOfRange("tag", index, len(t.tags))
	}
	return t.tags[index].key, nil
}

func (t *TagHolder) find(key Value) int {
	for i := range t.tags {
		if t.tags[i].key.sameAs(key) {
			return i
		}
	}
	return -1
}
