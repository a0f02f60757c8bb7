package ecs

import "testing"

type testEvent struct{ n int }

func (testEvent) Type() EventType { return "test" }

func TestQueryReturnsSortedMatches(t *testing.T) {
	w := NewWorld()
	a := w.CreateEntity()
	b := w.CreateEntity()
	c := w.CreateEntity()

	w.AddComponent(a.ID, 1, "a1")
	w.AddComponent(a.ID, 2, "a2")
	w.AddComponent(b.ID, 1, "b1")
	w.AddComponent(c.ID, 1, "c1")
	w.AddComponent(c.ID, 2, "c2")

	got := w.Query(1, 2)
	if len(got) != 2 || got[0] != a.ID || got[1] != c.ID {
		t.Fatalf("expected [%d %d], got %v", a.ID, c.ID, got)
	}
	if all := w.Query(1); len(all) != 3 {
		t.Fatalf("expected 3 entities with component 1, got %d", len(all))
	}
}

func TestRemoveEntityRemovesDescendants(t *testing.T) {
	w := NewWorld()
	root := w.CreateEntity()
	child := w.CreateEntity()
	grandchild := w.CreateEntity()
	other := w.CreateEntity()

	w.SetParent(child.ID, root.ID)
	w.SetParent(grandchild.ID, child.ID)
	w.SetParent(other.ID, root.ID)
	w.TagEntity(grandchild.ID, "part")

	w.RemoveEntity(child.ID)

	if w.Exists(child.ID) || w.Exists(grandchild.ID) {
		t.Fatalf("expected child and grandchild removed")
	}
	if !w.Exists(root.ID) || !w.Exists(other.ID) {
		t.Fatalf("expected root and sibling to survive")
	}
	if kids := w.Children(root.ID); len(kids) != 1 || kids[0] != other.ID {
		t.Fatalf("expected root children [%d], got %v", other.ID, kids)
	}
	if tagged := w.GetEntitiesWithTag("part"); len(tagged) != 0 {
		t.Fatalf("expected tag index cleaned up, got %d entities", len(tagged))
	}
}

func TestSetParentReparents(t *testing.T) {
	w := NewWorld()
	a := w.CreateEntity()
	b := w.CreateEntity()
	child := w.CreateEntity()

	w.SetParent(child.ID, a.ID)
	w.SetParent(child.ID, b.ID)

	if w.Parent(child.ID) != b.ID {
		t.Fatalf("expected parent %d, got %d", b.ID, w.Parent(child.ID))
	}
	if len(w.Children(a.ID)) != 0 {
		t.Fatalf("expected old parent to lose the child")
	}
}

func TestCommandsAreDeferred(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()

	w.Commands().Despawn(e.ID)
	w.Commands().Despawn(EntityID(999999))
	var spawned EntityID
	w.Commands().Spawn(func(w *World, created *Entity) {
		spawned = created.ID
		w.TagEntity(created.ID, "spawned")
	})

	if !w.Exists(e.ID) {
		t.Fatalf("despawn applied before ApplyCommands")
	}
	w.ApplyCommands()

	if w.Exists(e.ID) {
		t.Fatalf("expected entity despawned")
	}
	if spawned == 0 || w.FirstWithTag("spawned") != spawned {
		t.Fatalf("expected spawned entity to be tagged")
	}
	if w.Commands().Len() != 0 {
		t.Fatalf("expected command buffer drained")
	}
}

func TestQueuedEventsFlushInOrder(t *testing.T) {
	w := NewWorld()
	var seen []int
	w.GetEventManager().Subscribe("test", func(e Event) {
		ev := e.(testEvent)
		seen = append(seen, ev.n)
		if ev.n == 1 {
			w.QueueEvent(testEvent{n: 3})
		}
	})

	w.QueueEvent(testEvent{n: 1})
	w.QueueEvent(testEvent{n: 2})
	if len(seen) != 0 {
		t.Fatalf("queued events delivered early")
	}
	w.FlushEvents()

	want := []int{1, 2, 3}
	if len(seen) != len(want) {
		t.Fatalf("expected %v, got %v", want, seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, seen)
		}
	}
	if w.GetEventManager().Pending() != 0 {
		t.Fatalf("expected queue drained")
	}
}

type counter struct{ n int }

func TestResources(t *testing.T) {
	w := NewWorld()
	if _, ok := Resource[counter](w); ok {
		t.Fatalf("expected missing resource")
	}
	InsertResource(w, &counter{n: 4})
	c, ok := Resource[counter](w)
	if !ok || c.n != 4 {
		t.Fatalf("expected counter 4, got %+v", c)
	}
	MustResource[counter](w).n++
	if c.n != 5 {
		t.Fatalf("expected shared pointer, got %d", c.n)
	}
	RemoveResource[counter](w)
	if HasResource[counter](w) {
		t.Fatalf("expected resource removed")
	}
}

func TestGetTypedComponent(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	w.AddComponent(e.ID, 7, &counter{n: 2})

	c, ok := Get[counter](w, e.ID, 7)
	if !ok || c.n != 2 {
		t.Fatalf("expected typed component")
	}
	if _, ok := Get[testEvent](w, e.ID, 7); ok {
		t.Fatalf("expected type mismatch to report false")
	}
}

func TestUntagEntity(t *testing.T) {
	w := NewWorld()
	a := w.CreateEntity()
	b := w.CreateEntity()
	w.TagEntity(a.ID, "enemy")
	w.TagEntity(b.ID, "enemy")

	w.UntagEntity(a.ID, "enemy")
	if a.HasTag("enemy") {
		t.Errorf("entity still carries the tag")
	}
	tagged := w.GetEntitiesWithTag("enemy")
	if len(tagged) != 1 || tagged[0].ID != b.ID {
		t.Fatalf("tagged = %v", tagged)
	}

	w.UntagEntity(b.ID, "enemy")
	if w.FirstWithTag("enemy") != 0 || len(w.GetEntitiesWithTag("enemy")) != 0 {
		t.Errorf("tag lookup not emptied")
	}

	// Missing entities are ignored
	w.UntagEntity(999, "enemy")
}

func TestGetEntityAndComponentLookup(t *testing.T) {
	w := NewWorld()
	a := w.CreateEntity()
	b := w.CreateEntity()
	c := w.CreateEntity()
	w.AddComponent(c.ID, 3, "c")
	w.AddComponent(a.ID, 3, "a")
	w.AddComponent(b.ID, 4, "b")

	if got := w.GetEntity(b.ID); got != b {
		t.Errorf("GetEntity = %v, want %v", got, b)
	}
	w.RemoveEntity(b.ID)
	if w.GetEntity(b.ID) != nil {
		t.Errorf("removed entity still returned")
	}

	with := w.GetEntitiesWithComponent(3)
	if len(with) != 2 || with[0].ID != a.ID || with[1].ID != c.ID {
		t.Fatalf("entities with component 3 = %v", with)
	}
	if n := len(w.GetEntitiesWithComponent(4)); n != 0 {
		t.Errorf("removed entity's component still listed (%d)", n)
	}
}
