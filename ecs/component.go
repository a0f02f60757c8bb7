package ecs

// ComponentID is a unique identifier for component types
type ComponentID uint

// Component is the base interface for all components
type Component interface{}

// ComponentMap stores components by their type ID
type ComponentMap map[ComponentID]Component

// Get fetches a component and asserts it to *T. The second result is false
// when the entity lacks the component or it has a different type.
func Get[T any](w *World, id EntityID, componentID ComponentID) (*T, bool) {
	comp, ok := w.GetComponent(id, componentID)
	if !ok {
		return nil, false
	}
	typed, ok := comp.(*T)
	return typed, ok
}
