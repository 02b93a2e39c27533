package machine

import "github.com/dolthub/swiss"

// Object is a single heap-allocated instance: a mapping from field name to
// Value, grounded on original_source's Object{fields: HashMap<String,
// NativeType>} and rendered the way mna-nenuphar's Map wraps a swiss.Map
// rather than a plain Go map.
type Object struct {
	fields *swiss.Map[string, Value]
}

func newObject() *Object {
	return &Object{fields: swiss.NewMap[string, Value](4)}
}

func (o *Object) field(name string) (Value, bool) { return o.fields.Get(name) }

func (o *Object) setField(name string, v Value) { o.fields.Put(name, v) }
