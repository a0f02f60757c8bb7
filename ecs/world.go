package ecs

import (
	"reflect"
	"sort"
)

// World manages all entities and components
type World struct {
	entities map[EntityID]*Entity
	// Store components as map[EntityID]map[ComponentID]Component
	components map[EntityID]ComponentMap
	// Tag-based entity lookup for quick access
	entityTags map[string]map[EntityID]bool
	// Event manager for system communication
	eventManager *EventManager
	// Global singletons keyed by their Go type
	resources map[reflect.Type]any
	parents   map[EntityID]EntityID
	children  map[EntityID][]EntityID
	commands  *Commands
}

// NewWorld creates a new ECS world
func NewWorld() *World {
	w := &World{
		entities:     make(map[EntityID]*Entity),
		components:   make(map[EntityID]ComponentMap),
		entityTags:   make(map[string]map[EntityID]bool),
		eventManager: NewEventManager(),
		resources:    make(map[reflect.Type]any),
		parents:      make(map[EntityID]EntityID),
		children:     make(map[EntityID][]EntityID),
	}
	w.commands = &Commands{}
	return w
}

// CreateEntity creates a new entity and adds it to the world
func (w *World) CreateEntity() *Entity {
	entity := NewEntity()
	w.entities[entity.ID] = entity
	w.components[entity.ID] = make(ComponentMap)
	return entity
}

// Exists reports whether the entity is alive.
func (w *World) Exists(entityID EntityID) bool {
	_, ok := w.entities[entityID]
	return ok
}

// RemoveEntity removes an entity, its descendants and all their components
func (w *World) RemoveEntity(entityID EntityID) {
	entity, exists := w.entities[entityID]
	if !exists {
		return
	}

	for _, child := range append([]EntityID(nil), w.children[entityID]...) {
		w.RemoveEntity(child)
	}
	delete(w.children, entityID)
	w.detach(entityID)

	// Remove entity from tag lookups
	for tag := range entity.Tags {
		delete(w.entityTags[tag], entityID)
		if len(w.entityTags[tag]) == 0 {
			delete(w.entityTags, tag)
		}
	}

	delete(w.components, entityID)
	delete(w.entities, entityID)
}

// AddComponent adds a component to an entity
func (w *World) AddComponent(entityID EntityID, componentID ComponentID, component Component) {
	if _, exists := w.entities[entityID]; !exists {
		return
	}

	if _, exists := w.components[entityID]; !exists {
		w.components[entityID] = make(ComponentMap)
	}

	w.components[entityID][componentID] = component
}

// GetComponent retrieves a component from an entity
func (w *World) GetComponent(entityID EntityID, componentID ComponentID) (Component, bool) {
	if componentMap, exists := w.components[entityID]; exists {
		component, exists := componentMap[componentID]
		return component, exists
	}
	return nil, false
}

// HasComponent checks if an entity has a specific component
func (w *World) HasComponent(entityID EntityID, componentID ComponentID) bool {
	if componentMap, exists := w.components[entityID]; exists {
		_, exists := componentMap[componentID]
		return exists
	}
	return false
}

// RemoveComponent removes a component from an entity
func (w *World) RemoveComponent(entityID EntityID, componentID ComponentID) {
	if componentMap, exists := w.components[entityID]; exists {
		delete(componentMap, componentID)
	}
}

// TagEntity adds a tag to an entity and updates the tag lookup
func (w *World) TagEntity(entityID EntityID, tag string) {
	entity, exists := w.entities[entityID]
	if !exists {
		return
	}

	entity.Tags[tag] = true

	if _, exists := w.entityTags[tag]; !exists {
		w.entityTags[tag] = make(map[EntityID]bool)
	}

	w.entityTags[tag][entityID] = true
}

// UntagEntity removes a tag from an entity and the tag lookup
func (w *World) UntagEntity(entityID EntityID, tag string) {
	entity, exists := w.entities[entityID]
	if !exists {
		return
	}
	delete(entity.Tags, tag)
	delete(w.entityTags[tag], entityID)
	if len(w.entityTags[tag]) == 0 {
		delete(w.entityTags, tag)
	}
}

// GetEntitiesWithTag returns all entities with a specific tag, ordered by ID
func (w *World) GetEntitiesWithTag(tag string) []*Entity {
	entities := make([]*Entity, 0)

	if taggedEntities, exists := w.entityTags[tag]; exists {
		for entityID := range taggedEntities {
			if entity, ok := w.entities[entityID]; ok {
				entities = append(entities, entity)
			}
		}
	}

	sort.Slice(entities, func(i, j int) bool { return entities[i].ID < entities[j].ID })
	return entities
}

// FirstWithTag returns the lowest ID carrying tag, or 0.
func (w *World) FirstWithTag(tag string) EntityID {
	var first EntityID
	for id := range w.entityTags[tag] {
		if first == 0 || id < first {
			first = id
		}
	}
	return first
}

// GetAllEntities returns a slice of all entities in the world
func (w *World) GetAllEntities() []*Entity {
	entities := make([]*Entity, 0, len(w.entities))
	for _, entity := range w.entities {
		entities = append(entities, entity)
	}
	sort.Slice(entities, func(i, j int) bool { return entities[i].ID < entities[j].ID })
	return entities
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	return len(w.entities)
}

// GetEventManager returns the world's event manager
func (w *World) GetEventManager() *EventManager {
	return w.eventManager
}

// EmitEvent is a convenience method to emit an event
func (w *World) EmitEvent(event Event) {
	w.eventManager.Emit(event)
}

// QueueEvent buffers an event until the end of the current stage.
func (w *World) QueueEvent(event Event) {
	w.eventManager.Queue(event)
}

// FlushEvents delivers queued events.
func (w *World) FlushEvents() {
	w.eventManager.Flush()
}

// GetEntity returns an entity by its ID
func (w *World) GetEntity(entityID EntityID) *Entity {
	entity, exists := w.entities[entityID]
	if !exists {
		return nil
	}
	return entity
}

// GetEntitiesWithComponent returns all entities that have a specific component
func (w *World) GetEntitiesWithComponent(componentID ComponentID) []*Entity {
	entities := make([]*Entity, 0)

	for id, componentMap := range w.components {
		if _, hasComponent := componentMap[componentID]; hasComponent {
			if entity, ok := w.entities[id]; ok {
				entities = append(entities, entity)
			}
		}
	}

	sort.Slice(entities, func(i, j int) bool { return entities[i].ID < entities[j].ID })
	return entities
}

// Query returns the IDs of entities carrying every listed component, in
// ascending ID order.
func (w *World) Query(componentIDs ...ComponentID) []EntityID {
	result := make([]EntityID, 0)
	for id, componentMap := range w.components {
		matched := true
		for _, cid := range componentIDs {
			if _, ok := componentMap[cid]; !ok {
				matched = false
				break
			}
		}
		if matched {
			result = append(result, id)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// Commands returns the deferred command buffer.
func (w *World) Commands() *Commands {
	return w.commands
}

// ApplyCommands runs every buffered command in submission order.
func (w *World) ApplyCommands() {
	w.commands.apply(w)
}
