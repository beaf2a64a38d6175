package value

// ObjectKind tags a heap object.
type ObjectKind uint8

const (
	ObjString ObjectKind = iota
	ObjList
	ObjTuple
	ObjDict
	ObjRange
	ObjFunction
)

func (k ObjectKind) String() string {
	switch k {
	case ObjString:
		return "str"
	case ObjList:
		return "list"
	case ObjTuple:
		return "tuple"
	case ObjDict:
		return "dict"
	case ObjRange:
		return "range"
	case ObjFunction:
		return "function"
	}
	return "object"
}

// Object is a heap-allocated value. Only the field matching kind is used.
type Object struct {
	kind  ObjectKind
	str   string
	elems []Value
	dict  *Dict
	rng   Range
	fn    Callable
}

// Kind returns the object's tag.
func (o *Object) Kind() ObjectKind { return o.kind }

// Callable is implemented by the VM's closures and native functions.
type Callable interface {
	Name() string
}

// Range is a lazily indexed arithmetic progression.
type Range struct {
	Start, Stop, Step int
}

// Len returns the number of elements in the range.
func (r Range) Len() int {
	switch {
	case r.Step > 0 && r.Start < r.Stop:
		return (r.Stop - r.Start + r.Step - 1) / r.Step
	case r.Step < 0 && r.Start > r.Stop:
		return (r.Start - r.Stop - r.Step - 1) / -r.Step
	}
	return 0
}

// At returns the i-th element. i must be in [0, Len()).
func (r Range) At(i int) int { return r.Start + i*r.Step }

// Dict is an insertion-ordered mapping with unique keys.
type Dict struct {
	keys  []Value
	vals  []Value
	index map[hashKey]int
}

func newDict() *Dict {
	return &Dict{index: make(map[hashKey]int)}
}

// Len returns the number of entries.
func (d *Dict) Len() int { return len(d.keys) }

// Get looks up key.
func (d *Dict) Get(key Value) (Value, bool, error) {
	hk, err := keyOf(key)
	if err != nil {
		return Value{}, false, err
	}
	i, ok := d.index[hk]
	if !ok {
		return Value{}, false, nil
	}
	return d.vals[i], true, nil
}

// Set inserts or replaces key. Replacing keeps the original position.
func (d *Dict) Set(key, val Value) error {
	hk, err := keyOf(key)
	if err != nil {
		return err
	}
	if i, ok := d.index[hk]; ok {
		d.vals[i] = val
		return nil
	}
	d.index[hk] = len(d.keys)
	d.keys = append(d.keys, key)
	d.vals = append(d.vals, val)
	return nil
}

// Keys returns the keys in insertion order.
func (d *Dict) Keys() []Value { return d.keys }

// Values returns the values in insertion order.
func (d *Dict) Values() []Value { return d.vals }
