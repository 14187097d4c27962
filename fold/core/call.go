package core

// Shape is the calling convention of a combiner or transform.
type Shape int

const (
	// ShapeNone marks an absent transform.
	ShapeNone Shape = iota
	ShapeSync
	ShapeAsync
	ShapeAsyncCancelable
)

func (s Shape) String() string {
	switch s {
	case ShapeSync:
		return "sync"
	case ShapeAsync:
		return "async"
	case ShapeAsyncCancelable:
		return "async_cancelable"
	default:
		return "none"
	}
}

// Arity is the argument form of a fold call.
type Arity int

const (
	// NoSeed starts from the first element.
	NoSeed Arity = iota
	// Seeded starts from a caller-supplied seed.
	Seeded
	// SeededTransform starts from a seed and maps the accumulator at the end.
	SeededTransform
)

func (a Arity) String() string {
	switch a {
	case Seeded:
		return "seeded"
	case SeededTransform:
		return "seeded_transform"
	default:
		return "no_seed"
	}
}

// Call describes a fold invocation to hooks.
type Call struct {
	Arity     Arity
	Combiner  Shape
	Transform Shape
}
