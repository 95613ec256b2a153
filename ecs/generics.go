package ecs

import "github.com/milk9111/platformer/ecs/component"

// Add sets the component value for e, replacing any previous value.
func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value T) error {
	if !handle.Kind().Valid() {
		return component.ErrInvalidComponentKind
	}
	if !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	v := value
	w.store(handle.Kind().ID(), true).Set(e, &v)
	return nil
}

func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	if w == nil {
		return false
	}
	return w.store(handle.Kind().ID(), false).Remove(e)
}

func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	if !w.IsAlive(e) {
		return false
	}
	return w.store(handle.Kind().ID(), false).Has(e)
}

// Get returns a copy of the component value.
func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (T, bool) {
	ptr, ok := GetPtr(w, e, handle)
	if !ok {
		var zero T
		return zero, false
	}
	return *ptr, true
}

// GetPtr returns the stored component so systems can update it in place.
func GetPtr[T any](w *World, e Entity, handle component.ComponentHandle[T]) (*T, bool) {
	if !w.IsAlive(e) {
		return nil, false
	}
	ptr, ok := w.store(handle.Kind().ID(), false).Get(e).(*T)
	return ptr, ok && ptr != nil
}

// ForEach visits every live entity with the component. fn receives the stored
// value; mutations persist.
func ForEach[T any](w *World, handle component.ComponentHandle[T], fn func(e Entity, value *T)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range w.Query(handle.Kind()) {
		if ptr, ok := GetPtr(w, e, handle); ok {
			fn(e, ptr)
		}
	}
}

// ForEach2 visits every live entity that has both components.
func ForEach2[A, B any](w *World, ha component.ComponentHandle[A], hb component.ComponentHandle[B], fn func(e Entity, a *A, b *B)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range w.Query(ha.Kind(), hb.Kind()) {
		a, okA := GetPtr(w, e, ha)
		b, okB := GetPtr(w, e, hb)
		if okA && okB {
			fn(e, a, b)
		}
	}
}
