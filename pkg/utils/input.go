// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState 存储当前帧的输入状态
// 统一处理鼠标、触摸与键盘文本输入；系统只依赖此结构，便于测试时构造
type InputState struct {
	// 指针位置
	X, Y int
	// 指针是否按下
	Pressed bool
	// 本帧刚刚按下 / 刚刚释放
	JustPressed  bool
	JustReleased bool

	// 本帧输入的字符
	Runes []rune
	// 本帧按下的编辑键
	Backspace bool
	Enter     bool
	Escape    bool
}

// 保存最后一次触摸位置（用于触摸释放时获取位置）
var lastTouchX, lastTouchY int

// GetInputState 获取当前帧的输入状态
// 同时支持鼠标点击和触摸输入，优先检测触摸
func GetInputState() InputState {
	state := InputState{}

	touchIDs := ebiten.AppendTouchIDs(nil)
	switch {
	case len(touchIDs) > 0:
		state.X, state.Y = ebiten.TouchPosition(touchIDs[0])
		lastTouchX, lastTouchY = state.X, state.Y
		state.Pressed = true
		state.JustPressed = len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
	case len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0:
		// 触摸释放时使用保存的最后触摸位置
		state.X, state.Y = lastTouchX, lastTouchY
		state.JustReleased = true
	default:
		state.X, state.Y = ebiten.CursorPosition()
		state.Pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
		state.JustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
		state.JustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	}

	state.Runes = ebiten.AppendInputChars(nil)
	state.Backspace = inpututil.IsKeyJustPressed(ebiten.KeyBackspace)
	state.Enter = inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter)
	state.Escape = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	return state
}
