package entities

import (
	"math/rand"
	"testing"

	"github.com/gonewx/deskscene/pkg/components"
	"github.com/gonewx/deskscene/pkg/config"
	"github.com/gonewx/deskscene/pkg/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScene(t *testing.T) (*ecs.EntityManager, DeskScene) {
	t.Helper()
	em := ecs.NewEntityManager()
	scene, err := NewDeskScene(em, config.DefaultSceneConfig(), rand.New(rand.NewSource(1)), Textures{})
	require.NoError(t, err)
	return em, scene
}

func TestNewDeskScene_Singletons(t *testing.T) {
	em, scene := newTestScene(t)

	cam, ok := ecs.GetComponent[*components.CameraComponent](em, scene.Camera)
	require.True(t, ok)
	assert.Equal(t, 45.0, cam.FOV)
	assert.Equal(t, 1.1, cam.ZoomPosition.Y())
	assert.Equal(t, 1.6, cam.ZoomPosition.Z())

	lamp, ok := ecs.GetComponent[*components.LampComponent](em, scene.Lamp)
	require.True(t, ok)
	assert.True(t, lamp.On)

	monitor, ok := ecs.GetComponent[*components.MonitorComponent](em, scene.Monitor)
	require.True(t, ok)
	assert.Equal(t, components.BootOff, monitor.Phase)

	steam, ok := ecs.GetComponent[*components.SteamComponent](em, scene.Steam)
	require.True(t, ok)
	assert.Equal(t, 35, steam.Animator.Len())
}

func TestNewDeskScene_Lights(t *testing.T) {
	em, _ := newTestScene(t)

	ids := ecs.GetEntitiesWith1[*components.LightComponent](em)
	require.Len(t, ids, 4)

	kinds := map[components.LightKind]int{}
	for _, id := range ids {
		light, _ := ecs.GetComponent[*components.LightComponent](em, id)
		kinds[light.Kind]++
		if light.Kind == components.LightPoint {
			assert.Equal(t, 30.0, light.IntensityOn)
			assert.Equal(t, 0.0, light.IntensityOff)
		}
	}
	assert.Equal(t, 1, kinds[components.LightAmbient])
	assert.Equal(t, 2, kinds[components.LightDirectional])
	assert.Equal(t, 1, kinds[components.LightPoint])
}

func TestNewDeskScene_Hitboxes(t *testing.T) {
	em, _ := newTestScene(t)

	actions := map[components.HitAction]int{}
	for _, id := range ecs.GetEntitiesWith1[*components.HitboxComponent](em) {
		hb, _ := ecs.GetComponent[*components.HitboxComponent](em, id)
		actions[hb.Action]++
		// 碰撞盒不绘制
		assert.False(t, ecs.HasComponent[*components.MeshComponent](em, id))
	}
	assert.Equal(t, 1, actions[components.ActionToggleLamp])
	assert.Equal(t, 2, actions[components.ActionToggleZoom])
}

func TestNewDeskScene_ParentChain(t *testing.T) {
	em, scene := newTestScene(t)

	// 蒸汽 -> 杯子组 -> 场景根
	steamTf, ok := ecs.GetComponent[*components.TransformComponent](em, scene.Steam)
	require.True(t, ok)
	assert.InDelta(t, 0.22, steamTf.Position.Y(), 1e-12)

	mugTf, ok := ecs.GetComponent[*components.TransformComponent](em, steamTf.Parent)
	require.True(t, ok)
	assert.Equal(t, scene.Root, mugTf.Parent)
	assert.InDelta(t, -0.5, mugTf.Rotation.Y(), 1e-12)

	rootTf, ok := ecs.GetComponent[*components.TransformComponent](em, scene.Root)
	require.True(t, ok)
	assert.Equal(t, -0.5, rootTf.Position.Y())
	assert.Equal(t, ecs.EntityID(0), rootTf.Parent)
}

func TestNewDeskScene_InvalidSteamConfig(t *testing.T) {
	cfg := config.DefaultSceneConfig()
	cfg.Steam.RiseSpeed = "[0.007 0.004]"

	em := ecs.NewEntityManager()
	_, err := NewDeskScene(em, cfg, rand.New(rand.NewSource(1)), Textures{})
	assert.Error(t, err)
}

func TestNewCyberPCEntity_LED(t *testing.T) {
	em := ecs.NewEntityManager()
	NewCyberPCEntity(em, 0, nil)

	found := false
	for _, id := range ecs.GetEntitiesWith1[*components.MeshComponent](em) {
		mesh, _ := ecs.GetComponent[*components.MeshComponent](em, id)
		if mesh.EmissiveIntensity == 2 {
			found = true
			assert.Equal(t, config.HexColor("#00ff44"), mesh.Emissive)
		}
	}
	assert.True(t, found, "LED strip should be emissive")
}
