package systems

import (
	"math/rand"
	"testing"

	"github.com/gonewx/deskscene/pkg/components"
	"github.com/gonewx/deskscene/pkg/config"
	"github.com/gonewx/deskscene/pkg/ecs"
	"github.com/gonewx/deskscene/pkg/entities"
	"github.com/gonewx/deskscene/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/require"
)

const (
	testWidth  = config.DefaultWindowWidth
	testHeight = config.DefaultWindowHeight
)

// newTestScene 构造默认桌面场景（不创建贴图）
func newTestScene(t *testing.T) (*ecs.EntityManager, entities.DeskScene) {
	t.Helper()
	em := ecs.NewEntityManager()
	scene, err := entities.NewDeskScene(em, config.DefaultSceneConfig(), rand.New(rand.NewSource(7)), entities.Textures{})
	require.NoError(t, err)
	return em, scene
}

// newTestInputSystem 创建不触碰系统光标的输入系统
func newTestInputSystem(em *ecs.EntityManager, cs *CameraSystem) (*InputSystem, *[]ebiten.CursorShapeType) {
	is := NewInputSystem(em, cs, testWidth, testHeight)
	shapes := &[]ebiten.CursorShapeType{}
	is.setCursor = func(shape ebiten.CursorShapeType) {
		*shapes = append(*shapes, shape)
	}
	return is, shapes
}

// hitboxWithAction 返回指定动作的第一个碰撞盒
func hitboxWithAction(t *testing.T, em *ecs.EntityManager, action components.HitAction) ecs.EntityID {
	t.Helper()
	for _, id := range ecs.GetEntitiesWith1[*components.HitboxComponent](em) {
		hb, _ := ecs.GetComponent[*components.HitboxComponent](em, id)
		if hb.Action == action {
			return id
		}
	}
	t.Fatalf("no hitbox with action %v", action)
	return 0
}

// screenPointOf 返回实体原点在屏幕上的位置
func screenPointOf(t *testing.T, em *ecs.EntityManager, cs *CameraSystem, id ecs.EntityID) (int, int) {
	t.Helper()
	proj, ok := cs.Projector(testWidth, testHeight)
	require.True(t, ok)
	x, y, _, visible := proj.Project(WorldPosition(em, id))
	require.True(t, visible)
	return int(x), int(y)
}

// clickAt 生成按下 + 释放两帧输入
func clickAt(x, y int) (utils.InputState, utils.InputState) {
	press := utils.InputState{X: x, Y: y, Pressed: true, JustPressed: true}
	release := utils.InputState{X: x, Y: y, JustReleased: true}
	return press, release
}
