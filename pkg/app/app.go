// Package app 提供桌面场景应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：加载配置、创建音频上下文与场景管理器，
// 并实现 ebiten.Game 接口。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/gonewx/deskscene/pkg/config"
	"github.com/gonewx/deskscene/pkg/embedded"
	"github.com/gonewx/deskscene/pkg/game"
	"github.com/gonewx/deskscene/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 场景配置文件路径，为空则使用嵌入的 data/scene.yaml
	ConfigPath string
	// Seed 蒸汽粒子随机种子，0 表示按当前时间
	Seed int64
	// Particles 覆盖蒸汽粒子数量，负数表示使用配置文件中的值
	Particles int
}

// App 是桌面场景应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	sceneConfig              *config.SceneConfig
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 未指定 ConfigPath 时，调用此函数前必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	sceneConfig, err := loadSceneConfig(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	if cfg.Particles >= 0 {
		sceneConfig.Steam.Count = cfg.Particles
		log.Printf("[App] 蒸汽粒子数量覆盖为 %d", cfg.Particles)
	}
	if err := sceneConfig.Validate(); err != nil {
		return nil, fmt.Errorf("场景配置无效: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("[App] 随机种子: %d", seed)

	// 初始化音频上下文（ebiten 进程内只能创建一个）
	var audioManager *game.AudioManager
	if sceneConfig.Audio.Enabled {
		audioContext := audio.NewContext(game.SampleRate)
		audioManager = game.NewAudioManager(audioContext, sceneConfig.Audio.Volume)
		log.Printf("[App] AudioManager initialized")
	}

	// 创建场景管理器；重建场景时沿用同一种子序列
	rng := rand.New(rand.NewSource(seed))
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func() (game.Scene, error) {
		return scenes.NewDeskScene(sceneConfig, rng, audioManager)
	})
	sceneManager.SetScreenSize(sceneConfig.Window.Width, sceneConfig.Window.Height)
	if err := sceneManager.Reload(); err != nil {
		return nil, fmt.Errorf("场景创建失败: %w", err)
	}

	return &App{
		sceneManager: sceneManager,
		sceneConfig:  sceneConfig,
	}, nil
}

// loadSceneConfig 从磁盘或嵌入资源加载场景配置
func loadSceneConfig(path string) (*config.SceneConfig, error) {
	if path != "" {
		log.Printf("[Config] 加载场景配置: %s", path)
		return config.LoadSceneConfig(path)
	}

	data, err := embedded.ReadFile(config.SceneConfigPath)
	if err != nil {
		return nil, fmt.Errorf("读取嵌入配置失败: %w", err)
	}
	log.Printf("[Config] 加载嵌入场景配置: %s", config.SceneConfigPath)
	return config.ParseSceneConfig(data)
}

// Update 更新场景逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.sceneConfig.Window.Width, a.sceneConfig.Window.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.sceneConfig.Window.Width, a.sceneConfig.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	// F5 重建场景（重新播种蒸汽粒子）
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		if err := a.sceneManager.Reload(); err != nil {
			log.Printf("[App] 场景重建失败: %v", err)
		}
	}

	// P 暂停/恢复蒸汽
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		if desk, ok := a.sceneManager.GetCurrentScene().(*scenes.DeskScene); ok {
			desk.ToggleSteamPause()
		}
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := a.sceneConfig.Window.Width, a.sceneConfig.Window.Height
	a.sceneManager.SetScreenSize(w, h)
	return w, h
}

// WindowConfig 返回窗口配置
func (a *App) WindowConfig() config.WindowConfig {
	return a.sceneConfig.Window
}

// GetSceneManager 返回场景管理器
// 用于在程序关闭时释放场景
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}
