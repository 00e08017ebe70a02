package debugui

import "github.com/plus3/keel/ecs"

// RegisterDebugUIComponents registers every component type the debug UI
// attaches to entities and inserts the ImguiInputState resource.
func RegisterDebugUIComponents(w *ecs.World) {
	ecs.RegisterComponent[ImguiItem](w)
	ecs.RegisterComponent[WorldInspectorComponent](w)
	ecs.RegisterComponent[PerformanceStatsComponent](w)
	ecs.InsertResource(w, ImguiInputState{})
}

// SpawnDebugUI spawns the standard debug windows: a world inspector and a
// performance stats panel. scheduler may be nil to omit system timing.
func SpawnDebugUI(w *ecs.World, scheduler *ecs.Scheduler) {
	inspector := w.AddEntity(NewWorldInspectorComponent(100))
	stats := w.AddEntity(NewPerformanceStatsComponent(120))

	timer := NewFrameTimer()
	w.AddEntity(ImguiItem{Render: func() {
		if c := ecs.GetComponent[WorldInspectorComponent](w, inspector); c != nil {
			c.Render(w)
		}
		if c := ecs.GetComponent[PerformanceStatsComponent](w, stats); c != nil {
			c.Render(w, scheduler, timer.GetDeltaTime())
		}
	}})
}
