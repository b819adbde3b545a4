package document

// Entity is anything reachable from a Canvas: points, brushes, pens, dash
// styles, shapes, tools and the canvas itself. All entities are pointers and
// compare by identity.
type Entity interface {
	// Clone copies the entity and everything it references. Entities
	// already present in shared are returned as-is instead of copied again.
	Clone(shared Shared) Entity
}

// Shared maps every source entity visited during one copy to its copy.
// A copy registers itself before copying its children, so aliased and cyclic
// references resolve to a single copy. Use a fresh Shared per top-level copy.
type Shared map[Entity]Entity

func NewShared() Shared {
	return make(Shared)
}

func lookup[T Entity](shared Shared, src T) (T, bool) {
	if c, ok := shared[src]; ok {
		if t, ok := c.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}
