package systems

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/deskscene/pkg/components"
	"github.com/gonewx/deskscene/pkg/ecs"
	"github.com/stretchr/testify/assert"
)

func TestWorldMatrix_ParentChain(t *testing.T) {
	em := ecs.NewEntityManager()

	parent := em.CreateEntity()
	ecs.AddComponent(em, parent, &components.TransformComponent{
		Position: mgl64.Vec3{0, 1, 0},
		Scale:    mgl64.Vec3{2, 2, 2},
	})
	child := em.CreateEntity()
	ecs.AddComponent(em, child, &components.TransformComponent{
		Position: mgl64.Vec3{1, 0, 0},
		Scale:    mgl64.Vec3{1, 1, 1},
		Parent:   parent,
	})

	got := WorldPosition(em, child)
	assert.InDelta(t, 2.0, got.X(), 1e-12)
	assert.InDelta(t, 1.0, got.Y(), 1e-12)
	assert.InDelta(t, 0.0, got.Z(), 1e-12)
}

func TestWorldMatrix_NoTransform(t *testing.T) {
	em := ecs.NewEntityManager()
	id := em.CreateEntity()
	assert.Equal(t, mgl64.Ident4(), WorldMatrix(em, id))
}

func TestWorldMatrix_CycleTerminates(t *testing.T) {
	em := ecs.NewEntityManager()
	a := em.CreateEntity()
	b := em.CreateEntity()
	ecs.AddComponent(em, a, &components.TransformComponent{Scale: mgl64.Vec3{1, 1, 1}, Parent: b})
	ecs.AddComponent(em, b, &components.TransformComponent{Scale: mgl64.Vec3{1, 1, 1}, Parent: a})

	// 不应死循环
	_ = WorldMatrix(em, a)
}

func TestLampOn(t *testing.T) {
	em := ecs.NewEntityManager()
	assert.True(t, LampOn(em), "no lamp counts as on")

	id := em.CreateEntity()
	lamp := &components.LampComponent{On: false}
	ecs.AddComponent(em, id, lamp)
	assert.False(t, LampOn(em))

	lamp.On = true
	assert.True(t, LampOn(em))
}
