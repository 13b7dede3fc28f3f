package component

// Health is a non-negative hit-point pool. Max is the starting pool.
type Health struct {
	Current uint32
	Max     uint32
}

func NewHealth(max uint32) *Health {
	return &Health{Current: max, Max: max}
}

// Damage subtracts n, saturating at zero, and returns the amount actually removed.
func (h *Health) Damage(n uint32) uint32 {
	if n >= h.Current {
		dealt := h.Current
		h.Current = 0
		return dealt
	}
	h.Current -= n
	return n
}

func (h *Health) Dead() bool { return h.Current == 0 }
