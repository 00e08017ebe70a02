package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/keel/ecs"
)

type entityRow struct {
	Entity         ecs.Entity
	ComponentTypes []string
}

// NewWorldInspectorComponent creates an inspector window state paginated at
// maxRowsPerPage entities.
func NewWorldInspectorComponent(maxRowsPerPage int) WorldInspectorComponent {
	return WorldInspectorComponent{
		maxRowsPerPage: maxRowsPerPage,
		sortAscending:  true,
	}
}

// Render draws the entity table and, below it, the component fields of the
// selected entity. Field editors write through live component storage.
func (wi *WorldInspectorComponent) Render(w *ecs.World) {
	if !imgui.BeginV("World Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	wi.rebuildCacheIfNeeded(w)

	imgui.InputTextWithHint("##search", "Search...", &wi.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		wi.filterText = ""
	}

	wi.renderEntityTable(w)

	imgui.Separator()
	wi.renderSelectedEntity(w)

	imgui.End()
}

func (wi *WorldInspectorComponent) renderEntityTable(w *ecs.World) {
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 300), 0) {
		imgui.TableSetupColumn("Slot")
		imgui.TableSetupColumn("Generation")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			wi.sortColumn = int(spec.ColumnIndex())
			wi.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			wi.sortEntities()
			sortSpecs.SetSpecsDirty(false)
		}

		rows := wi.filteredRows()

		startIdx := wi.currentPage * wi.maxRowsPerPage
		endIdx := min(startIdx+wi.maxRowsPerPage, len(rows))

		for i := startIdx; i < endIdx; i++ {
			row := rows[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := wi.hasSelection && wi.selectedEntity == row.Entity
			label := fmt.Sprintf("%d##row%d", row.Entity.Index(), i)
			if imgui.SelectableBoolV(label, isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				wi.selectedEntity = row.Entity
				wi.hasSelection = true
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.Entity.Generation()))

			imgui.TableNextColumn()
			imgui.Text(strings.Join(row.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(row.ComponentTypes)))
		}

		imgui.EndTable()

		if len(rows) > wi.maxRowsPerPage {
			totalPages := (len(rows) + wi.maxRowsPerPage - 1) / wi.maxRowsPerPage
			imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", wi.currentPage+1, totalPages, len(rows)))
			imgui.SameLine()
			if imgui.Button("Prev") && wi.currentPage > 0 {
				wi.currentPage--
			}
			imgui.SameLine()
			if imgui.Button("Next") && wi.currentPage < totalPages-1 {
				wi.currentPage++
			}
		} else {
			imgui.Text(fmt.Sprintf("Total: %d entities", len(rows)))
		}
	}
}

func (wi *WorldInspectorComponent) renderSelectedEntity(w *ecs.World) {
	if !wi.hasSelection {
		imgui.Text("No entity selected")
		return
	}
	if !w.IsLive(wi.selectedEntity) {
		imgui.Text("Selected entity no longer exists")
		wi.hasSelection = false
		return
	}

	e := wi.selectedEntity
	imgui.Text(fmt.Sprintf("Entity: slot %d, generation %d", e.Index(), e.Generation()))

	stats := w.CollectStats()
	for _, comp := range stats.Components {
		value := w.ComponentValue(e, comp.ID)
		if value == nil {
			continue
		}
		if imgui.TreeNodeStr(comp.Type) {
			renderComponentFields(value)
			imgui.TreePop()
		}
	}
}

func (wi *WorldInspectorComponent) rebuildCacheIfNeeded(w *ecs.World) {
	entities := w.Entities()
	if wi.sortedEntities != nil && wi.lastEntityCount == len(entities) {
		return
	}
	wi.lastEntityCount = len(entities)

	stats := w.CollectStats()
	wi.sortedEntities = make([]entityRow, 0, len(entities))
	for _, e := range entities {
		types := make([]string, 0, len(stats.Components))
		for _, comp := range stats.Components {
			if w.ComponentValue(e, comp.ID) != nil {
				types = append(types, comp.Type)
			}
		}
		wi.sortedEntities = append(wi.sortedEntities, entityRow{Entity: e, ComponentTypes: types})
	}
	wi.sortEntities()
}

func (wi *WorldInspectorComponent) sortEntities() {
	sort.SliceStable(wi.sortedEntities, func(i, j int) bool {
		a, b := wi.sortedEntities[i], wi.sortedEntities[j]
		var less bool

		switch wi.sortColumn {
		case 1:
			less = a.Entity.Generation() < b.Entity.Generation()
		case 2:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case 3:
			less = len(a.ComponentTypes) < len(b.ComponentTypes)
		default:
			less = a.Entity.Index() < b.Entity.Index()
		}

		if !wi.sortAscending {
			return !less
		}
		return less
	})
}

func (wi *WorldInspectorComponent) filteredRows() []entityRow {
	if wi.filterText == "" {
		return wi.sortedEntities
	}

	filterLower := strings.ToLower(wi.filterText)
	filtered := make([]entityRow, 0, len(wi.sortedEntities))
	for _, row := range wi.sortedEntities {
		idStr := fmt.Sprintf("%d", row.Entity.Index())
		componentsStr := strings.ToLower(strings.Join(row.ComponentTypes, " "))
		if !strings.Contains(idStr, filterLower) && !strings.Contains(componentsStr, filterLower) {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered
}

// SelectedEntity returns the currently selected entity, if any.
func (wi *WorldInspectorComponent) SelectedEntity() (ecs.Entity, bool) {
	return wi.selectedEntity, wi.hasSelection
}

// Invalidate drops the cached entity table so the next Render rebuilds it.
func (wi *WorldInspectorComponent) Invalidate() {
	wi.sortedEntities = nil
}
