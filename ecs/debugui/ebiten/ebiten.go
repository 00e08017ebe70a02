// Package ebiten hosts the debug UI on the cimgui-go Ebiten backend.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
)

// ImguiBackend is a world resource carrying the backend handle, so ImGui
// widgets rendered from systems reach the same instance the game loop drives.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}
