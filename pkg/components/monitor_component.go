package components

import "github.com/hajimehoshi/ebiten/v2"

// BootPhase 显示器开机流程阶段
type BootPhase int

const (
	BootOff     BootPhase = iota // 黑屏
	BootLoading                  // 开机进度 0% → 100%
	BootLogin                    // 等待输入密码
	BootDesktop                  // 登录成功
)

// String 返回阶段名（用于日志）
func (p BootPhase) String() string {
	switch p {
	case BootOff:
		return "off"
	case BootLoading:
		return "loading"
	case BootLogin:
		return "login"
	case BootDesktop:
		return "desktop"
	default:
		return "unknown"
	}
}

// MonitorComponent 显示器屏幕内容状态
type MonitorComponent struct {
	Phase    BootPhase
	Elapsed  float64 // 当前阶段已持续时间（秒）
	Progress float64 // 开机进度 [0, 1]

	Input        []rune  // 已输入的密码
	Message      string  // 登录结果提示（如 ACCESS DENIED）
	MessageTimer float64 // 提示剩余显示时间

	// Screen 屏幕贴图，每帧由渲染系统重绘
	Screen *ebiten.Image
}
