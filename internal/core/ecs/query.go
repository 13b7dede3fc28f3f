package ecs

// Each2 visits entities that have both component A and B in ascending ID
// order. The first store drives iteration, so pass the narrower one first
// (typically a tag store such as Enemies).
func Each2[A, B any](sa *PtrComponentStore[A], sb *PtrComponentStore[B], fn func(EntityID, *A, *B)) {
	for _, id := range sa.IDs() {
		b, ok := sb.data[id]
		if !ok {
			continue
		}
		fn(id, sa.data[id], b)
	}
}
