package systems

import (
	"fmt"
	"log"
	"strings"
	"unicode"

	"github.com/gonewx/deskscene/pkg/components"
	"github.com/gonewx/deskscene/pkg/config"
	"github.com/gonewx/deskscene/pkg/ecs"
	"github.com/gonewx/deskscene/pkg/utils"
)

// MaxPasswordLength 密码输入框最多接受的字符数
const MaxPasswordLength = 16

// 登录结果提示
const (
	MessageGranted = "ACCESS GRANTED"
	MessageDenied  = "ACCESS DENIED"
)

// BootSystem 驱动显示器的开机与登录流程
//
// 流程：镜头拉近 → 开机进度 0%..100% → 输入密码 → 桌面。
// 镜头离开显示器时屏幕熄灭，下次拉近重新开机。
type BootSystem struct {
	entityManager *ecs.EntityManager
	cameraSystem  *CameraSystem
	config        config.BootConfig
}

// NewBootSystem 创建开机流程系统
func NewBootSystem(em *ecs.EntityManager, cs *CameraSystem, cfg config.BootConfig) *BootSystem {
	return &BootSystem{
		entityManager: em,
		cameraSystem:  cs,
		config:        cfg,
	}
}

// Update 推进开机流程
func (s *BootSystem) Update(dt float64, input utils.InputState) {
	zoomed := false
	if cam, ok := s.cameraSystem.Camera(); ok {
		zoomed = cam.Zoomed
	}

	for _, id := range ecs.GetEntitiesWith1[*components.MonitorComponent](s.entityManager) {
		m, _ := ecs.GetComponent[*components.MonitorComponent](s.entityManager, id)
		if !zoomed {
			if m.Phase != components.BootOff {
				s.reset(m)
				log.Printf("[BootSystem] 显示器关闭")
			}
			continue
		}
		s.step(m, dt, input)
	}
}

func (s *BootSystem) step(m *components.MonitorComponent, dt float64, input utils.InputState) {
	m.Elapsed += dt

	switch m.Phase {
	case components.BootOff:
		s.enter(m, components.BootLoading)

	case components.BootLoading:
		m.Progress = utils.EaseInOutCubic(m.Elapsed / s.config.Duration)
		if m.Progress >= 1 {
			s.enter(m, components.BootLogin)
		}

	case components.BootLogin:
		if m.MessageTimer > 0 {
			m.MessageTimer -= dt
			if m.MessageTimer <= 0 {
				m.Message = ""
			}
		}
		s.handleTyping(m, input)

	case components.BootDesktop:
		// 桌面状态保持到镜头离开
	}
}

// handleTyping 处理密码输入
func (s *BootSystem) handleTyping(m *components.MonitorComponent, input utils.InputState) {
	for _, r := range input.Runes {
		if len(m.Input) >= MaxPasswordLength || !unicode.IsPrint(r) {
			continue
		}
		m.Input = append(m.Input, r)
	}
	if input.Backspace && len(m.Input) > 0 {
		m.Input = m.Input[:len(m.Input)-1]
	}
	if !input.Enter {
		return
	}

	if string(m.Input) == s.config.Password {
		m.Message = MessageGranted
		m.MessageTimer = 0
		s.enter(m, components.BootDesktop)
		return
	}

	log.Printf("[BootSystem] 密码错误（%d 个字符）", len(m.Input))
	m.Input = m.Input[:0]
	m.Message = MessageDenied
	m.MessageTimer = s.config.MessageSeconds
}

func (s *BootSystem) enter(m *components.MonitorComponent, phase components.BootPhase) {
	log.Printf("[BootSystem] %s -> %s", m.Phase, phase)
	m.Phase = phase
	m.Elapsed = 0
}

func (s *BootSystem) reset(m *components.MonitorComponent) {
	m.Phase = components.BootOff
	m.Elapsed = 0
	m.Progress = 0
	m.Input = m.Input[:0]
	m.Message = ""
	m.MessageTimer = 0
}

// progressBarWidth 进度条字符数
const progressBarWidth = 20

// MonitorLines 返回屏幕上应显示的文本行
func MonitorLines(m *components.MonitorComponent, user string) []string {
	switch m.Phase {
	case components.BootLoading:
		filled := int(m.Progress * progressBarWidth)
		bar := strings.Repeat("#", filled) + strings.Repeat(".", progressBarWidth-filled)
		return []string{
			"CYBER-OS BIOS v2.4",
			"",
			"BOOTING...",
			fmt.Sprintf("[%s] %3d%%", bar, int(m.Progress*100)),
		}

	case components.BootLogin:
		lines := []string{
			"CYBER-OS",
			"",
			"USER:     " + user,
			"PASSWORD: " + strings.Repeat("*", len(m.Input)) + "_",
		}
		if m.Message != "" {
			lines = append(lines, "", m.Message)
		}
		return lines

	case components.BootDesktop:
		return []string{
			"CYBER-OS",
			"",
			m.Message,
			"WELCOME, " + strings.ToUpper(user),
		}

	default:
		return nil
	}
}
