package ecs

// ComponentStats describes one registered component store.
type ComponentStats struct {
	ID          ComponentID
	Type        string
	EntityCount int
}

// WorldStats is a point-in-time snapshot of world population, used by
// inspection tooling and stress reporting.
type WorldStats struct {
	EntityCount        int
	ComponentTypeCount int
	ResourceCount      int
	Components         []ComponentStats
}

// CollectStats walks the registry and returns population counters. Component
// entries appear in registration order.
func (w *World) CollectStats() *WorldStats {
	stats := &WorldStats{
		EntityCount:        len(w.entities),
		ComponentTypeCount: len(w.components.infos),
		ResourceCount:      w.resources.slots.Len(),
		Components:         make([]ComponentStats, 0, len(w.components.infos)),
	}
	for _, info := range w.components.infos {
		count := 0
		if set := w.components.set(info.id); set != nil {
			count = set.Len()
		}
		stats.Components = append(stats.Components, ComponentStats{
			ID:          info.id,
			Type:        info.typ.String(),
			EntityCount: count,
		})
	}
	return stats
}
