package frontmatter

// Kind identifies the shape of a frontmatter value.
type Kind int

const (
	// Scalar is a plain or folded string value
	Scalar Kind = iota
	// Mapping is a nested block of key/value pairs
	Mapping
	// Sequence is a nested block of "- item" lines
	Sequence
)

// String returns a human readable name for the kind
func (k Kind) String() string {
	switch k {
	case Mapping:
		return "mapping"
	case Sequence:
		return "sequence"
	default:
		return "scalar"
	}
}

// Value is a single parsed frontmatter value. Only the accessor matching
// Kind returns meaningful data.
type Value struct {
	Kind    Kind
	scalar  string
	mapping Fields
	items   []Value
}

// ScalarValue wraps a string as a scalar value
func ScalarValue(s string) Value {
	return Value{Kind: Scalar, scalar: s}
}

// MappingValue wraps nested fields as a mapping value
func MappingValue(f Fields) Value {
	return Value{Kind: Mapping, mapping: f}
}

// SequenceValue wraps items as a sequence value
func SequenceValue(items ...Value) Value {
	return Value{Kind: Sequence, items: items}
}

// IsScalar reports whether the value is a plain string
func (v Value) IsScalar() bool { return v.Kind == Scalar }

// String returns the scalar text, or "" for non-scalar values
func (v Value) String() string {
	if v.Kind != Scalar {
		return ""
	}
	return v.scalar
}

// Map returns the nested fields of a mapping value
func (v Value) Map() Fields {
	if v.Kind != Mapping {
		return Fields{}
	}
	return v.mapping
}

// Items returns the elements of a sequence value
func (v Value) Items() []Value {
	if v.Kind != Sequence {
		return nil
	}
	return v.items
}

// Fields is an ordered set of frontmatter keys. Keys keep the position of
// their first appearance; a repeated key overwrites the earlier value.
type Fields struct {
	keys   []string
	values map[string]Value
}

func (f *Fields) set(key string, v Value) {
	if f.values == nil {
		f.values = make(map[string]Value)
	}
	if _, exists := f.values[key]; !exists {
		f.keys = append(f.keys, key)
	}
	f.values[key] = v
}

// Get returns the value stored under key
func (f Fields) Get(key string) (Value, bool) {
	v, ok := f.values[key]
	return v, ok
}

// Has reports whether key is present, even with an empty value
func (f Fields) Has(key string) bool {
	_, ok := f.values[key]
	return ok
}

// String returns the scalar value for key, or "" when the key is missing
// or not a scalar
func (f Fields) String(key string) string {
	return f.values[key].String()
}

// Keys returns keys in order of first appearance
func (f Fields) Keys() []string {
	keys := make([]string, len(f.keys))
	copy(keys, f.keys)
	return keys
}

// Len returns the number of distinct keys
func (f Fields) Len() int {
	return len(f.keys)
}
