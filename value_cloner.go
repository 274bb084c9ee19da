package dataloader

// ValueCloner is an interface for cloning values.
// A loader uses it when a single fetched value is handed to several waiters,
// and caches may use it to keep stored values isolated from callers.
// The CloneValue method should return a deep copy of the input value.
type ValueCloner[V ValueConstraint] interface {
	CloneValue(V) V
}

// ValueClonerFunc is a function type that implements the ValueCloner interface.
type ValueClonerFunc[V ValueConstraint] func(v V) V

// CloneValue calls the function.
func (f ValueClonerFunc[V]) CloneValue(v V) V {
	return f(v)
}

// NopValueCloner is a value cloner that does not clone values.
// It is used when values do not need to be cloned, e.g. primitive types or
// values treated as immutable.
type NopValueCloner[V ValueConstraint] struct{}

// CloneValue returns the input value.
func (NopValueCloner[V]) CloneValue(v V) V {
	return v
}

// DefaultValueCloner returns a cloner for the given value type.
// If the value type has a Clone or DeepCopy method returning V, that method
// is used. Otherwise values are returned as-is.
func DefaultValueCloner[V ValueConstraint]() ValueCloner[V] {
	var zero V
	var v any = zero

	type cloner interface {
		Clone() V
	}
	type deepCopier interface {
		DeepCopy() V
	}

	switch v.(type) {
	case cloner:
		return ValueClonerFunc[V](func(v V) V {
			var a any = v
			return a.(cloner).Clone()
		})

	case deepCopier:
		return ValueClonerFunc[V](func(v V) V {
			var a any = v
			return a.(deepCopier).DeepCopy()
		})

	default:
		return NopValueCloner[V]{}
	}
}
