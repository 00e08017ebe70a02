package debugui

import (
	"github.com/plus3/keel/ecs"
)

type WorldInspectorComponent struct {
	selectedEntity  ecs.Entity
	hasSelection    bool
	filterText      string
	maxRowsPerPage  int
	currentPage     int
	sortColumn      int
	sortAscending   bool
	sortedEntities  []entityRow
	lastEntityCount int
}

type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}
