package ecs

// SetParent attaches child under parent. Passing parent 0 detaches.
func (w *World) SetParent(child, parent EntityID) {
	if !w.Exists(child) || child == parent {
		return
	}
	w.detach(child)
	if parent == 0 || !w.Exists(parent) {
		return
	}
	w.parents[child] = parent
	w.children[parent] = append(w.children[parent], child)
}

// Parent returns the parent of child, or 0.
func (w *World) Parent(child EntityID) EntityID {
	return w.parents[child]
}

// Children returns a copy of the direct children of parent.
func (w *World) Children(parent EntityID) []EntityID {
	return append([]EntityID(nil), w.children[parent]...)
}

func (w *World) detach(child EntityID) {
	parent, ok := w.parents[child]
	if !ok {
		return
	}
	delete(w.parents, child)
	siblings := w.children[parent]
	for i, id := range siblings {
		if id == child {
			w.children[parent] = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	if len(w.children[parent]) == 0 {
		delete(w.children, parent)
	}
}
