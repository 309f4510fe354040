package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a scene (e.g., the desk, a particle viewer).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	// screen is the target image where the scene should be drawn.
	Draw(screen *ebiten.Image)
}

// Disposable 是一个可选接口，用于在场景被替换或程序退出时释放资源
//
// 实现此接口的场景会在以下时机被调用 Dispose()：
//   - SceneManager 切换到其他场景
//   - SceneManager.Reload 重建场景
//   - 游戏窗口关闭
type Disposable interface {
	Dispose()
}

// Resizable 是一个可选接口，用于接收逻辑屏幕尺寸
type Resizable interface {
	SetScreenSize(width, height int)
}
