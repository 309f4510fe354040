package systems

import (
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/deskscene/pkg/components"
	"github.com/gonewx/deskscene/pkg/ecs"
	"github.com/gonewx/deskscene/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// ClickSlop 按下与释放之间允许的最大移动距离（像素），超过则视为拖拽而不是点击
const ClickSlop = 5.0

// InputSystem 处理场景中的指针拾取
//
//   - 每帧投影所有碰撞盒，指针下最近的一个标记为 Hovered
//   - 悬停在可点击物体上时光标变为手型
//   - 点击台灯切换开关，点击显示器/主机切换拉近
//   - Esc 退出拉近
type InputSystem struct {
	entityManager *ecs.EntityManager
	cameraSystem  *CameraSystem

	width, height int

	pressX, pressY int
	pressing       bool

	hovered     ecs.EntityID
	cursorShape ebiten.CursorShapeType

	// setCursor 设置系统光标（测试时替换）
	setCursor func(ebiten.CursorShapeType)

	// OnAction 点击动作生效后回调（可为 nil）
	OnAction func(action components.HitAction)
}

// NewInputSystem 创建输入系统
func NewInputSystem(em *ecs.EntityManager, cs *CameraSystem, width, height int) *InputSystem {
	s := &InputSystem{
		entityManager: em,
		cameraSystem:  cs,
		width:         width,
		height:        height,
		cursorShape:   ebiten.CursorShapeDefault,
		setCursor:     ebiten.SetCursorShape,
	}
	// 触屏没有鼠标指针
	if utils.IsMobile() {
		s.setCursor = func(ebiten.CursorShapeType) {}
	}
	return s
}

// SetScreenSize 更新逻辑屏幕尺寸（Layout 变化时调用）
func (s *InputSystem) SetScreenSize(width, height int) {
	s.width, s.height = width, height
}

// Hovered 返回当前悬停的碰撞盒实体（0 表示没有）
func (s *InputSystem) Hovered() ecs.EntityID {
	return s.hovered
}

// Update 处理本帧输入
func (s *InputSystem) Update(input utils.InputState) {
	if input.Escape {
		if cam, ok := s.cameraSystem.Camera(); ok && cam.Zoomed {
			cam.Zoomed = false
			log.Printf("[InputSystem] Esc：退出拉近")
		}
	}

	s.updateHover(input.X, input.Y)

	if input.JustPressed {
		s.pressX, s.pressY = input.X, input.Y
		s.pressing = true
	}
	if input.JustReleased && s.pressing {
		s.pressing = false
		dist := math.Hypot(float64(input.X-s.pressX), float64(input.Y-s.pressY))
		if dist <= ClickSlop && s.hovered != 0 {
			s.click(s.hovered)
		}
	}
}

// updateHover 找出指针下深度最近的碰撞盒
func (s *InputSystem) updateHover(x, y int) {
	proj, ok := s.cameraSystem.Projector(s.width, s.height)
	if !ok {
		return
	}

	var best ecs.EntityID
	bestDepth := math.Inf(1)
	px, py := float64(x), float64(y)

	ids := ecs.GetEntitiesWith1[*components.HitboxComponent](s.entityManager)
	for _, id := range ids {
		hb, _ := ecs.GetComponent[*components.HitboxComponent](s.entityManager, id)
		hb.Hovered = false

		rect, depth, visible := proj.ProjectBox(WorldMatrix(s.entityManager, id), mgl64.Vec3{hb.Width, hb.Height, hb.Depth})
		if !visible || !rect.Contains(px, py) {
			continue
		}
		if depth < bestDepth {
			best, bestDepth = id, depth
		}
	}

	if best != 0 {
		hb, _ := ecs.GetComponent[*components.HitboxComponent](s.entityManager, best)
		hb.Hovered = true
	}
	s.hovered = best

	shape := ebiten.CursorShapeDefault
	if best != 0 {
		shape = ebiten.CursorShapePointer
	}
	if shape != s.cursorShape {
		s.cursorShape = shape
		if s.setCursor != nil {
			s.setCursor(shape)
		}
	}
}

// click 执行碰撞盒绑定的动作
func (s *InputSystem) click(id ecs.EntityID) {
	hb, ok := ecs.GetComponent[*components.HitboxComponent](s.entityManager, id)
	if !ok {
		return
	}

	switch hb.Action {
	case components.ActionToggleLamp:
		_, lamp, found := ecs.First[*components.LampComponent](s.entityManager)
		if !found {
			return
		}
		lamp.On = !lamp.On
		log.Printf("[InputSystem] 台灯: on=%v", lamp.On)

	case components.ActionToggleZoom:
		cam, found := s.cameraSystem.Camera()
		if !found {
			return
		}
		cam.Zoomed = !cam.Zoomed
		log.Printf("[InputSystem] 显示器拉近: zoomed=%v", cam.Zoomed)

	default:
		return
	}

	if s.OnAction != nil {
		s.OnAction(hb.Action)
	}
}
