package systems

import (
	"testing"

	"github.com/gonewx/deskscene/internal/particle"
	"github.com/gonewx/deskscene/pkg/components"
	"github.com/gonewx/deskscene/pkg/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frameDT = 1.0 / 60.0

func TestSteamSystem_AdvancesEmitters(t *testing.T) {
	em, scene := newTestScene(t)
	ss := NewSteamSystem(em)

	steam, ok := ecs.GetComponent[*components.SteamComponent](em, scene.Steam)
	require.True(t, ok)

	ss.Update(frameDT)
	assert.InDelta(t, frameDT, ss.Elapsed(), 1e-12)

	for _, p := range steam.Animator.Particles() {
		assert.InDelta(t, p.RiseSpeed, p.Age, 1e-12, "one frame rises by the particle speed")
		assert.Greater(t, p.Opacity, 0.0)
	}
}

func TestSteamSystem_LampOffDims(t *testing.T) {
	em, scene := newTestScene(t)
	ss := NewSteamSystem(em)

	lamp, _ := ecs.GetComponent[*components.LampComponent](em, scene.Lamp)
	lamp.On = false

	steam, _ := ecs.GetComponent[*components.SteamComponent](em, scene.Steam)
	for i := 0; i < 120; i++ {
		ss.Update(frameDT)
		for _, p := range steam.Animator.Particles() {
			assert.LessOrEqual(t, p.Opacity, 0.15)
		}
	}
}

func TestSteamSystem_Pause(t *testing.T) {
	em, scene := newTestScene(t)
	ss := NewSteamSystem(em)
	steam, _ := ecs.GetComponent[*components.SteamComponent](em, scene.Steam)

	ss.SetPaused(true)
	ss.Update(frameDT)
	assert.True(t, ss.Paused())
	assert.Equal(t, 0.0, ss.Elapsed())
	assert.Equal(t, 0.0, steam.Animator.Particles()[0].Age)

	ss.SetPaused(false)
	ss.Update(frameDT)
	assert.Greater(t, steam.Animator.Particles()[0].Age, 0.0)
}

func TestSteamSystem_TeardownOnDestroy(t *testing.T) {
	em, scene := newTestScene(t)
	NewSteamSystem(em)

	steam, _ := ecs.GetComponent[*components.SteamComponent](em, scene.Steam)
	animator := steam.Animator

	em.DestroyEntity(scene.Steam)
	em.RemoveMarkedEntities()

	assert.True(t, animator.TornDown())
	assert.Equal(t, 0, animator.Len())
}

func TestSteamSystem_SkipsNilAnimator(t *testing.T) {
	em := ecs.NewEntityManager()
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.SteamComponent{})

	ss := NewSteamSystem(em)
	assert.NotPanics(t, func() { ss.Update(frameDT) })

	em.DestroyEntity(id)
	assert.NotPanics(t, func() { em.RemoveMarkedEntities() })
}

func TestSteamSystem_DeterministicFromParams(t *testing.T) {
	params := []particle.Params{{BaseX: 0.01, BaseZ: -0.01, RiseSpeed: 0.005, PhaseOffset: 3}}
	build := func() (*ecs.EntityManager, *particle.Animator) {
		em := ecs.NewEntityManager()
		id := em.CreateEntity()
		a := particle.NewAnimatorFromParams(particle.DefaultConfig(), params)
		ecs.AddComponent(em, id, &components.SteamComponent{Animator: a})
		return em, a
	}

	emA, a := build()
	emB, b := build()
	ssA, ssB := NewSteamSystem(emA), NewSteamSystem(emB)
	for i := 0; i < 90; i++ {
		ssA.Update(frameDT)
		ssB.Update(frameDT)
	}
	assert.Equal(t, a.Particles(), b.Particles())
}
