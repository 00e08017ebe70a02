package ecs_test

import "github.com/plus3/keel/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type PlayerController struct{}

type AI struct {
	State int
}

// Custom primitive types for testing non-struct components
type Score int32
type Tag string
type Temperature float64

type Inventory struct {
	Items []string
}

func newTestWorld() *ecs.World {
	w := ecs.NewWorld()
	ecs.RegisterComponent[Position](w)
	ecs.RegisterComponent[Velocity](w)
	ecs.RegisterComponent[Name](w)
	ecs.RegisterComponent[Health](w)
	ecs.RegisterComponent[PlayerController](w)
	ecs.RegisterComponent[AI](w)
	ecs.RegisterComponent[Score](w)
	ecs.RegisterComponent[Tag](w)
	ecs.RegisterComponent[Temperature](w)
	ecs.RegisterComponent[Inventory](w)
	return w
}
