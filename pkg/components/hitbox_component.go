package components

// HitAction 点击碰撞盒后触发的动作
type HitAction int

const (
	// ActionToggleLamp 切换台灯
	ActionToggleLamp HitAction = iota
	// ActionToggleZoom 拉近/还原显示器视角
	ActionToggleZoom
)

// HitboxComponent 鼠标拾取区域（局部坐标中心对齐的长方体）
type HitboxComponent struct {
	Width, Height, Depth float64
	Action               HitAction
	Hovered              bool
}
