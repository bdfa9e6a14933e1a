package repokit

// Binder binds a repo to a Queryer, usually the one of an open transaction
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a constructor to Binder
type BindFunc[T any] func(Queryer) T

// Bind calls f; a nil q is a wiring bug
func (f BindFunc[T]) Bind(q Queryer) T {
	if q == nil {
		panic("repokit: nil Queryer")
	}
	return f(q)
}
