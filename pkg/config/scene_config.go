package config

import (
	"fmt"
	"math"
	"os"

	"github.com/gonewx/deskscene/internal/particle"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// 默认窗口尺寸（逻辑分辨率）
const (
	DefaultWindowWidth  = 1280
	DefaultWindowHeight = 720
)

// SceneConfigPath 内嵌场景配置路径
const SceneConfigPath = "data/scene.yaml"

// Vec3 是 YAML 中的三维坐标 [x, y, z]
type Vec3 [3]float64

// SceneConfig 桌面场景配置
//
// 配置文件位置: data/scene.yaml
type SceneConfig struct {
	Window     WindowConfig  `yaml:"window"`
	Background string        `yaml:"background"`
	Camera     CameraConfig  `yaml:"camera"`
	Lamp       LampConfig    `yaml:"lamp"`
	Lights     []LightConfig `yaml:"lights"`
	Steam      SteamConfig   `yaml:"steam"`
	Boot       BootConfig    `yaml:"boot"`
	Audio      AudioConfig   `yaml:"audio"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// CameraConfig 镜头配置
type CameraConfig struct {
	Position Vec3    `yaml:"position"`
	Target   Vec3    `yaml:"target"`
	FOV      float64 `yaml:"fov"` // 垂直视角（度）
	Near     float64 `yaml:"near"`
	Far      float64 `yaml:"far"`

	// 点击显示器后的拉近目标
	ZoomPosition Vec3    `yaml:"zoomPosition"`
	ZoomTarget   Vec3    `yaml:"zoomTarget"`
	ZoomLerp     float64 `yaml:"zoomLerp"` // 每帧插值系数

	Orbit OrbitConfig `yaml:"orbit"`
}

// OrbitConfig 环绕控制配置
type OrbitConfig struct {
	MinAzimuth       float64 `yaml:"minAzimuth"`
	MaxAzimuth       float64 `yaml:"maxAzimuth"`
	MinPolar         float64 `yaml:"minPolar"`
	MaxPolar         float64 `yaml:"maxPolar"`
	DragSpeed        float64 `yaml:"dragSpeed"` // 弧度/像素
	DampingFrequency float64 `yaml:"dampingFrequency"`
	DampingRatio     float64 `yaml:"dampingRatio"`
}

// LampConfig 台灯配置
type LampConfig struct {
	On bool `yaml:"on"`
}

// LightConfig 单个光源配置
type LightConfig struct {
	Name     string  `yaml:"name"`
	Kind     string  `yaml:"kind"` // ambient / directional / point
	Position Vec3    `yaml:"position"`
	Color    string  `yaml:"color"`
	On       float64 `yaml:"on"`  // 台灯开启时强度
	Off      float64 `yaml:"off"` // 台灯关闭时强度
	Distance float64 `yaml:"distance"`
	Decay    float64 `yaml:"decay"`
}

// SteamConfig 蒸汽粒子配置
//
// 范围字段使用 "[min max]" 格式，由 particle.ParseRange 解析。
type SteamConfig struct {
	Count           int     `yaml:"count"`
	BaseSpread      string  `yaml:"baseSpread"`
	RiseSpeed       string  `yaml:"riseSpeed"`
	Phase           string  `yaml:"phase"`
	Lifetime        float64 `yaml:"lifetime"`
	ActiveOpacity   float64 `yaml:"activeOpacity"`
	InactiveOpacity float64 `yaml:"inactiveOpacity"`
	FadeRate        float64 `yaml:"fadeRate"`
	BaseScale       float64 `yaml:"baseScale"`
	GrowthRate      float64 `yaml:"growthRate"`
	DriftAmplitude  float64 `yaml:"driftAmplitude"`
	DriftGain       float64 `yaml:"driftGain"`
	SwayFreqX       float64 `yaml:"swayFreqX"`
	SwayFreqZ       float64 `yaml:"swayFreqZ"`
}

// BootConfig 显示器开机/登录流程配置
type BootConfig struct {
	Duration       float64 `yaml:"duration"` // 进度从 0% 到 100% 的秒数
	User           string  `yaml:"user"`
	Password       string  `yaml:"password"`
	MessageSeconds float64 `yaml:"messageSeconds"`
}

// AudioConfig 交互音效配置
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 ~ 1.0
}

// DefaultSceneConfig 返回与 data/scene.yaml 一致的默认配置
func DefaultSceneConfig() *SceneConfig {
	steam := particle.DefaultConfig()
	return &SceneConfig{
		Window: WindowConfig{
			Width:  DefaultWindowWidth,
			Height: DefaultWindowHeight,
			Title:  "Office Desk",
		},
		Background: "#1a1a1a",
		Camera: CameraConfig{
			Position:     Vec3{0, 2, 4},
			Target:       Vec3{0, 0, 0},
			FOV:          45,
			Near:         0.1,
			Far:          100,
			ZoomPosition: Vec3{0, 1.1, 1.6},
			ZoomTarget:   Vec3{0, 1.1, 0},
			ZoomLerp:     0.04,
			Orbit: OrbitConfig{
				MinAzimuth:       -math.Pi / 2.5,
				MaxAzimuth:       math.Pi / 2.5,
				MinPolar:         0.5,
				MaxPolar:         math.Pi / 2.2,
				DragSpeed:        0.005,
				DampingFrequency: 6,
				DampingRatio:     1,
			},
		},
		Lamp: LampConfig{On: true},
		Lights: []LightConfig{
			{Name: "ambient", Kind: "ambient", Color: "#d0e0ff", On: 0.5, Off: 0.02},
			{Name: "fill", Kind: "directional", Position: Vec3{-5, 4.5, 0}, Color: "#b0c4de", On: 1, Off: 0},
			{Name: "key", Kind: "directional", Position: Vec3{2, 4.5, 2}, Color: "#ffffff", On: 1.5, Off: 0},
			{Name: "bulb", Kind: "point", Position: Vec3{-1.5, 0.36, 0.1}, Color: "#ffaa00", On: 30, Off: 0, Distance: 5, Decay: 2},
		},
		Steam: SteamConfig{
			Count:           steam.Count,
			BaseSpread:      steam.BaseSpread.String(),
			RiseSpeed:       steam.RiseSpeed.String(),
			Phase:           steam.Phase.String(),
			Lifetime:        steam.Lifetime,
			ActiveOpacity:   steam.ActiveOpacity,
			InactiveOpacity: steam.InactiveOpacity,
			FadeRate:        steam.FadeRate,
			BaseScale:       steam.BaseScale,
			GrowthRate:      steam.GrowthRate,
			DriftAmplitude:  steam.DriftAmplitude,
			DriftGain:       steam.DriftGain,
			SwayFreqX:       steam.SwayFreqX,
			SwayFreqZ:       steam.SwayFreqZ,
		},
		Boot: BootConfig{
			Duration:       3.0,
			User:           "guest",
			Password:       "coffee",
			MessageSeconds: 2.5,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.8,
		},
	}
}

// LoadSceneConfig 加载场景配置
//
// 参数:
//   - path: 配置文件路径（如 "data/scene.yaml"）
//
// 返回:
//   - *SceneConfig: 加载成功后的配置结构
//   - error: 读取、解析或验证失败时返回错误
func LoadSceneConfig(path string) (*SceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene config: %w", err)
	}
	return ParseSceneConfig(data)
}

// ParseSceneConfig 从 YAML 数据解析场景配置
//
// 未出现在 YAML 中的字段保留 DefaultSceneConfig 的值。
func ParseSceneConfig(data []byte) (*SceneConfig, error) {
	config := DefaultSceneConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse scene config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene config: %w", err)
	}

	return config, nil
}

// Validate 验证配置有效性
func (c *SceneConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if _, err := colorful.Hex(c.Background); err != nil {
		return fmt.Errorf("background color invalid: %w", err)
	}

	cam := c.Camera
	if cam.FOV <= 0 || cam.FOV >= 180 {
		return fmt.Errorf("camera fov must be within (0, 180), got %.1f", cam.FOV)
	}
	if cam.Near <= 0 || cam.Far <= cam.Near {
		return fmt.Errorf("camera clip planes invalid: near=%.3f far=%.3f", cam.Near, cam.Far)
	}
	if cam.ZoomLerp <= 0 || cam.ZoomLerp > 1 {
		return fmt.Errorf("camera zoomLerp must be within (0, 1], got %.3f", cam.ZoomLerp)
	}
	if cam.Orbit.MinAzimuth > cam.Orbit.MaxAzimuth {
		return fmt.Errorf("orbit azimuth range invalid: min(%.3f) > max(%.3f)", cam.Orbit.MinAzimuth, cam.Orbit.MaxAzimuth)
	}
	if cam.Orbit.MinPolar > cam.Orbit.MaxPolar || cam.Orbit.MinPolar < 0 || cam.Orbit.MaxPolar > math.Pi {
		return fmt.Errorf("orbit polar range invalid: [%.3f, %.3f]", cam.Orbit.MinPolar, cam.Orbit.MaxPolar)
	}

	for i, l := range c.Lights {
		switch l.Kind {
		case "ambient", "directional", "point":
		default:
			return fmt.Errorf("light %d (%s): unknown kind %q", i, l.Name, l.Kind)
		}
		if _, err := colorful.Hex(l.Color); err != nil {
			return fmt.Errorf("light %d (%s): color invalid: %w", i, l.Name, err)
		}
		if l.On < 0 || l.Off < 0 {
			return fmt.Errorf("light %d (%s): intensity must be non-negative", i, l.Name)
		}
	}

	if _, err := c.SteamParticleConfig(); err != nil {
		return err
	}

	if c.Boot.Duration <= 0 {
		return fmt.Errorf("boot duration must be positive, got %.2f", c.Boot.Duration)
	}
	if c.Boot.Password == "" {
		return fmt.Errorf("boot password must not be empty")
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio volume must be within [0, 1], got %.2f", c.Audio.Volume)
	}

	return nil
}

// SteamParticleConfig 将蒸汽配置转换为 particle.Config
func (c *SceneConfig) SteamParticleConfig() (particle.Config, error) {
	s := c.Steam

	spread, err := particle.ParseRange(s.BaseSpread)
	if err != nil {
		return particle.Config{}, fmt.Errorf("steam baseSpread: %w", err)
	}
	speed, err := particle.ParseRange(s.RiseSpeed)
	if err != nil {
		return particle.Config{}, fmt.Errorf("steam riseSpeed: %w", err)
	}
	phase, err := particle.ParseRange(s.Phase)
	if err != nil {
		return particle.Config{}, fmt.Errorf("steam phase: %w", err)
	}

	pc := particle.Config{
		Count:           s.Count,
		BaseSpread:      spread,
		RiseSpeed:       speed,
		Phase:           phase,
		Lifetime:        s.Lifetime,
		ActiveOpacity:   s.ActiveOpacity,
		InactiveOpacity: s.InactiveOpacity,
		FadeRate:        s.FadeRate,
		BaseScale:       s.BaseScale,
		GrowthRate:      s.GrowthRate,
		DriftAmplitude:  s.DriftAmplitude,
		DriftGain:       s.DriftGain,
		SwayFreqX:       s.SwayFreqX,
		SwayFreqZ:       s.SwayFreqZ,
	}
	if err := pc.Validate(); err != nil {
		return particle.Config{}, fmt.Errorf("steam: %w", err)
	}
	return pc, nil
}

// HexColor 解析十六进制颜色，失败时返回白色
func HexColor(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return c
}
