package scenes

import (
	"fmt"
	"log"

	"github.com/gonewx/deskscene/internal/particle"
	"github.com/gonewx/deskscene/pkg/components"
	"github.com/gonewx/deskscene/pkg/config"
	"github.com/gonewx/deskscene/pkg/ecs"
	"github.com/gonewx/deskscene/pkg/entities"
	"github.com/gonewx/deskscene/pkg/game"
	"github.com/gonewx/deskscene/pkg/systems"
	"github.com/gonewx/deskscene/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// noteTextureSize 便利贴贴图边长（像素）
const noteTextureSize = 128

// DeskScene 办公桌场景：台灯、咖啡杯与蒸汽、显示器与主机、便利贴
//
// 每帧更新顺序：
//  1. InputSystem  拾取与点击（台灯开关、显示器拉近）
//  2. CameraSystem 环绕/拉近
//  3. BootSystem   显示器开机与登录
//  4. SteamSystem  蒸汽粒子（发射器活跃状态 = 台灯开关）
type DeskScene struct {
	entityManager *ecs.EntityManager
	handles       entities.DeskScene

	inputSystem  *systems.InputSystem
	cameraSystem *systems.CameraSystem
	bootSystem   *systems.BootSystem
	steamSystem  *systems.SteamSystem
	renderSystem *systems.RenderSystem

	disposed bool
}

// NewDeskScene 创建办公桌场景
//
// 参数:
//   - cfg: 场景配置
//   - src: 蒸汽粒子随机源
//   - am: 音频管理器（可为 nil）
func NewDeskScene(cfg *config.SceneConfig, src particle.Source, am *game.AudioManager) (*DeskScene, error) {
	em := ecs.NewEntityManager()

	textures := entities.Textures{
		Cloud:   utils.NewCloudTexture(),
		Note:    ebiten.NewImageFromImage(utils.NoteImage(noteTextureSize)),
		Monitor: ebiten.NewImage(entities.MonitorScreenWidth, entities.MonitorScreenHeight),
	}

	handles, err := entities.NewDeskScene(em, cfg, src, textures)
	if err != nil {
		return nil, fmt.Errorf("failed to build desk scene: %w", err)
	}

	s := &DeskScene{
		entityManager: em,
		handles:       handles,
	}
	s.cameraSystem = systems.NewCameraSystem(em, handles.Camera)
	s.inputSystem = systems.NewInputSystem(em, s.cameraSystem, cfg.Window.Width, cfg.Window.Height)
	s.bootSystem = systems.NewBootSystem(em, s.cameraSystem, cfg.Boot)
	s.steamSystem = systems.NewSteamSystem(em)
	s.renderSystem = systems.NewRenderSystem(em, s.cameraSystem, config.HexColor(cfg.Background), cfg.Boot.User)

	if am != nil {
		s.inputSystem.OnAction = func(action components.HitAction) {
			switch action {
			case components.ActionToggleLamp:
				am.PlaySound(game.SoundLampClick)
			case components.ActionToggleZoom:
				am.PlaySound(game.SoundZoom)
			}
		}
	}

	log.Printf("[DeskScene] 场景创建完成: %d 个实体", em.Count())
	return s, nil
}

// Update 读取本帧输入并更新场景
func (s *DeskScene) Update(deltaTime float64) {
	s.UpdateWithInput(deltaTime, utils.GetInputState())
}

// UpdateWithInput 使用给定输入更新场景（测试时可构造输入）
func (s *DeskScene) UpdateWithInput(deltaTime float64, input utils.InputState) {
	if s.disposed {
		return
	}
	s.inputSystem.Update(input)
	s.cameraSystem.Update(input)
	s.bootSystem.Update(deltaTime, input)
	s.steamSystem.Update(deltaTime)
	s.entityManager.RemoveMarkedEntities()
}

// Draw 绘制场景
func (s *DeskScene) Draw(screen *ebiten.Image) {
	if s.disposed {
		return
	}
	s.renderSystem.Draw(screen)
}

// SetScreenSize 更新拾取使用的逻辑屏幕尺寸
func (s *DeskScene) SetScreenSize(width, height int) {
	s.inputSystem.SetScreenSize(width, height)
}

// Dispose 销毁所有实体（蒸汽粒子池随之释放）
func (s *DeskScene) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.entityManager.Clear()
	log.Printf("[DeskScene] 场景已释放")
}

// LampOn 台灯是否开启
func (s *DeskScene) LampOn() bool {
	return systems.LampOn(s.entityManager)
}

// Zoomed 镜头是否拉近到显示器
func (s *DeskScene) Zoomed() bool {
	cam, ok := s.cameraSystem.Camera()
	return ok && cam.Zoomed
}

// ToggleSteamPause 暂停/恢复蒸汽时钟，返回切换后的状态
func (s *DeskScene) ToggleSteamPause() bool {
	paused := !s.steamSystem.Paused()
	s.steamSystem.SetPaused(paused)
	log.Printf("[DeskScene] 蒸汽暂停=%v", paused)
	return paused
}

// Steam 返回蒸汽粒子动画器（只读访问）
func (s *DeskScene) Steam() *particle.Animator {
	steam, ok := ecs.GetComponent[*components.SteamComponent](s.entityManager, s.handles.Steam)
	if !ok {
		return nil
	}
	return steam.Animator
}
