package ecs

import (
	"fmt"
	"reflect"
)

func typeKey[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// InsertResource stores value as the world's singleton of type T, replacing
// any previous one.
func InsertResource[T any](w *World, value *T) {
	w.resources[typeKey[T]()] = value
}

// Resource returns the singleton of type T.
func Resource[T any](w *World) (*T, bool) {
	value, ok := w.resources[typeKey[T]()]
	if !ok {
		return nil, false
	}
	return value.(*T), true
}

// MustResource returns the singleton of type T and panics when it is missing.
// Plugins insert their resources in Build, so a miss is a wiring bug.
func MustResource[T any](w *World) *T {
	value, ok := Resource[T](w)
	if !ok {
		panic(fmt.Sprintf("ecs: resource %v not inserted", typeKey[T]()))
	}
	return value
}

// RemoveResource drops the singleton of type T.
func RemoveResource[T any](w *World) {
	delete(w.resources, typeKey[T]())
}

// HasResource reports whether a singleton of type T exists.
func HasResource[T any](w *World) bool {
	_, ok := w.resources[typeKey[T]()]
	return ok
}
