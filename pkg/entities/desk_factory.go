package entities

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/deskscene/internal/particle"
	"github.com/gonewx/deskscene/pkg/components"
	"github.com/gonewx/deskscene/pkg/config"
	"github.com/gonewx/deskscene/pkg/ecs"
	"github.com/gonewx/deskscene/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// 咖啡液面与蒸汽相对杯子模型的偏移
const (
	CoffeeOffsetX = 0.03
	CoffeeOffsetZ = -0.11
	SteamOffsetX  = 0.04
	SteamOffsetZ  = -0.09
)

// 显示器屏幕贴图分辨率（与 3.1 × 1.4 的屏幕比例一致）
const (
	MonitorScreenWidth  = 310
	MonitorScreenHeight = 140
)

// DeskScene 场景中系统需要直接访问的实体
type DeskScene struct {
	Root    ecs.EntityID
	Camera  ecs.EntityID
	Lamp    ecs.EntityID
	Monitor ecs.EntityID
	Steam   ecs.EntityID
}

// Textures 场景使用的贴图（由调用方创建，便于测试时传入 nil）
type Textures struct {
	Cloud   *ebiten.Image
	Note    *ebiten.Image
	Monitor *ebiten.Image
}

// NewDeskScene 创建完整的桌面场景
//
// 参数:
//   - em: EntityManager
//   - cfg: 场景配置
//   - src: 蒸汽粒子的随机源
//   - tex: 贴图
func NewDeskScene(em *ecs.EntityManager, cfg *config.SceneConfig, src particle.Source, tex Textures) (DeskScene, error) {
	steamConfig, err := cfg.SteamParticleConfig()
	if err != nil {
		return DeskScene{}, err
	}

	var scene DeskScene

	scene.Camera = NewCameraEntity(em, cfg.Camera)
	NewLightEntities(em, cfg.Lights)

	// 整个桌面组下移 0.5
	scene.Root = newGroup(em, 0, mgl64.Vec3{0, -0.5, 0}, mgl64.Vec3{}, 1)

	NewDeskEntity(em, scene.Root)
	scene.Monitor = NewCyberPCEntity(em, scene.Root, tex.Monitor)
	scene.Lamp = NewLampEntity(em, scene.Root, cfg.Lamp.On)
	scene.Steam = NewMugEntity(em, scene.Root, particle.NewAnimator(steamConfig, src), tex.Cloud)
	NewNoteEntity(em, scene.Root, tex.Note)

	return scene, nil
}

// NewCameraEntity 创建镜头实体
// 环绕控制的初始球坐标由起始位置相对注视点推算
func NewCameraEntity(em *ecs.EntityManager, cfg config.CameraConfig) ecs.EntityID {
	id := em.CreateEntity()
	position, target := vec(cfg.Position), vec(cfg.Target)
	radius, azimuth, polar := utils.CartesianToSpherical(target, position)

	cam := &components.CameraComponent{
		Position:     position,
		Target:       target,
		FOV:          cfg.FOV,
		Near:         cfg.Near,
		Far:          cfg.Far,
		ZoomPosition: vec(cfg.ZoomPosition),
		ZoomTarget:   vec(cfg.ZoomTarget),
		ZoomLerp:     cfg.ZoomLerp,
		OrbitTarget:  target,
		Radius:       radius,
		Azimuth:      azimuth,
		Polar:        polar,
		GoalAzimuth:  azimuth,
		GoalPolar:    polar,
		Spring:       harmonica.NewSpring(harmonica.FPS(60), cfg.Orbit.DampingFrequency, cfg.Orbit.DampingRatio),
		MinAzimuth:   cfg.Orbit.MinAzimuth,
		MaxAzimuth:   cfg.Orbit.MaxAzimuth,
		MinPolar:     cfg.Orbit.MinPolar,
		MaxPolar:     cfg.Orbit.MaxPolar,
		DragSpeed:    cfg.Orbit.DragSpeed,
	}
	ecs.AddComponent(em, id, cam)
	return id
}

// NewLightEntities 按配置创建光源
func NewLightEntities(em *ecs.EntityManager, lights []config.LightConfig) []ecs.EntityID {
	ids := make([]ecs.EntityID, 0, len(lights))
	for _, l := range lights {
		kind := components.LightAmbient
		switch l.Kind {
		case "directional":
			kind = components.LightDirectional
		case "point":
			kind = components.LightPoint
		}

		id := newGroup(em, 0, vec(l.Position), mgl64.Vec3{}, 1)
		ecs.AddComponent(em, id, &components.LightComponent{
			Name:         l.Name,
			Kind:         kind,
			Color:        config.HexColor(l.Color),
			IntensityOn:  l.On,
			IntensityOff: l.Off,
			Distance:     l.Distance,
			Decay:        l.Decay,
		})
		ids = append(ids, id)
	}
	return ids
}

// NewDeskEntity 创建桌面
func NewDeskEntity(em *ecs.EntityManager, parent ecs.EntityID) ecs.EntityID {
	return newBox(em, parent, mgl64.Vec3{0, 0, 0}, 4, 0.1, 2, hex("#3d2817"))
}

// NewCyberPCEntity 创建显示器与主机，返回屏幕实体（挂载 MonitorComponent）
func NewCyberPCEntity(em *ecs.EntityManager, parent ecs.EntityID, screenTex *ebiten.Image) ecs.EntityID {
	pc := newGroup(em, parent, mgl64.Vec3{0, 0.05, -0.2}, mgl64.Vec3{}, 0.75)

	// 1. 显示器边框
	newBox(em, pc, mgl64.Vec3{0, 1.1, 0}, 3.2, 1.5, 0.1, hex("#050505"))

	// 2. 屏幕（黑色玻璃，内容由贴图提供；顶点色与贴图相乘，有贴图时取白色）
	glass := hex("#000000")
	if screenTex != nil {
		glass = hex("#ffffff")
	}
	screen := newGroup(em, pc, mgl64.Vec3{0, 1.1, 0.051}, mgl64.Vec3{}, 1)
	ecs.AddComponent(em, screen, &components.MeshComponent{
		Shape:   components.ShapePlane,
		Width:   3.1,
		Height:  1.4,
		Color:   glass,
		Opacity: 1,
		Unlit:   true,
		Texture: screenTex,
	})
	ecs.AddComponent(em, screen, &components.MonitorComponent{Screen: screenTex})

	// 3. 支架与底座
	stand := newGroup(em, pc, mgl64.Vec3{0, 0.25, -0.1}, mgl64.Vec3{}, 1)
	ecs.AddComponent(em, stand, &components.MeshComponent{
		Shape:        components.ShapeCylinder,
		RadiusTop:    0.08,
		RadiusBottom: 0.15,
		Height:       0.6,
		Segments:     16,
		Color:        hex("#222222"),
		Opacity:      1,
	})
	newBox(em, pc, mgl64.Vec3{0, 0, -0.1}, 0.8, 0.05, 0.5, hex("#111111"))

	// 4. 主机箱 + 绿色灯条
	tower := newGroup(em, pc, mgl64.Vec3{2.3, 0.6, 0.2}, mgl64.Vec3{}, 1)
	newBox(em, tower, mgl64.Vec3{}, 0.55, 1.3, 1.3, hex("#080808"))
	led := newBox(em, tower, mgl64.Vec3{0.28, 0, 0.4}, 0.02, 1.1, 0.05, hex("#00ff44"))
	if mesh, ok := ecs.GetComponent[*components.MeshComponent](em, led); ok {
		mesh.Emissive = hex("#00ff44")
		mesh.EmissiveIntensity = 2
	}

	// 点击显示器或主机都切换拉近
	newHitbox(em, pc, mgl64.Vec3{0, 1.1, 0}, 3.2, 1.5, 0.1, components.ActionToggleZoom)
	newHitbox(em, tower, mgl64.Vec3{}, 0.55, 1.3, 1.3, components.ActionToggleZoom)

	return screen
}

// NewLampEntity 创建台灯，返回挂载 LampComponent 的实体
func NewLampEntity(em *ecs.EntityManager, parent ecs.EntityID, on bool) ecs.EntityID {
	lamp := newGroup(em, parent, mgl64.Vec3{-1.5, 0.06, 0.1}, mgl64.Vec3{}, 1)
	ecs.AddComponent(em, lamp, &components.LampComponent{On: on})

	metal := hex("#2b2b2b")
	newCylinder(em, lamp, mgl64.Vec3{0, 0.02, 0}, 0.2, 0.22, 0.04, metal)
	newCylinder(em, lamp, mgl64.Vec3{0, 0.4, 0}, 0.02, 0.02, 0.72, metal)
	newCylinder(em, lamp, mgl64.Vec3{0, 0.82, 0}, 0.09, 0.22, 0.2, hex("#3a5a40"))

	// 灯泡：台灯开启时自发光
	bulb := newGroup(em, lamp, mgl64.Vec3{0, 0.72, 0}, mgl64.Vec3{-math.Pi / 2, 0, 0}, 1)
	ecs.AddComponent(em, bulb, &components.MeshComponent{
		Shape:               components.ShapeDisc,
		RadiusTop:           0.12,
		Segments:            20,
		Color:               hex("#4a4030"),
		Emissive:            hex("#ffcc66"),
		EmissiveIntensity:   1.5,
		EmissiveFollowsLamp: true,
		Opacity:             1,
	})

	newHitbox(em, lamp, mgl64.Vec3{0, 0.6, 0}, 0.6, 1.2, 0.6, components.ActionToggleLamp)
	return lamp
}

// NewMugEntity 创建咖啡杯与蒸汽，返回挂载 SteamComponent 的实体
func NewMugEntity(em *ecs.EntityManager, parent ecs.EntityID, animator *particle.Animator, cloud *ebiten.Image) ecs.EntityID {
	mug := newGroup(em, parent, mgl64.Vec3{1.0, 0.05, 0.3}, mgl64.Vec3{0, -0.5, 0}, 1)

	ceramic := hex("#d9d4cc")
	newCylinder(em, mug, mgl64.Vec3{CoffeeOffsetX, 0.1, CoffeeOffsetZ}, 0.09, 0.08, 0.2, ceramic)
	newBox(em, mug, mgl64.Vec3{CoffeeOffsetX + 0.11, 0.1, CoffeeOffsetZ}, 0.04, 0.1, 0.02, ceramic)

	// 咖啡液面
	coffee := newGroup(em, mug, mgl64.Vec3{CoffeeOffsetX, 0.2, CoffeeOffsetZ}, mgl64.Vec3{-math.Pi / 2, 0, 0}, 1)
	ecs.AddComponent(em, coffee, &components.MeshComponent{
		Shape:     components.ShapeDisc,
		RadiusTop: 0.082,
		Segments:  32,
		Color:     hex("#0a0503"),
		Opacity:   1,
		Unlit:     true,
	})

	steam := newGroup(em, mug, mgl64.Vec3{SteamOffsetX, 0.22, SteamOffsetZ}, mgl64.Vec3{}, 1)
	ecs.AddComponent(em, steam, &components.SteamComponent{
		Animator: animator,
		Texture:  cloud,
	})
	return steam
}

// NewNoteEntity 创建便利贴与胶带
func NewNoteEntity(em *ecs.EntityManager, parent ecs.EntityID, tex *ebiten.Image) ecs.EntityID {
	note := newGroup(em, parent, mgl64.Vec3{1.3, 0.35, -0.05}, mgl64.Vec3{0, 1.57, 0}, 1)
	paper := newGroup(em, note, mgl64.Vec3{}, mgl64.Vec3{}, 1)
	ecs.AddComponent(em, paper, &components.MeshComponent{
		Shape:   components.ShapePlane,
		Width:   0.25,
		Height:  0.25,
		Color:   hex("#ffffff"),
		Opacity: 0.9,
		Texture: tex,
	})

	tape := newGroup(em, note, mgl64.Vec3{0, 0.11, 0.002}, mgl64.Vec3{0, 0, 0.05}, 1)
	ecs.AddComponent(em, tape, &components.MeshComponent{
		Shape:   components.ShapePlane,
		Width:   0.12,
		Height:  0.03,
		Color:   hex("#ffffff"),
		Opacity: 0.4,
	})
	return note
}

func newGroup(em *ecs.EntityManager, parent ecs.EntityID, pos, rot mgl64.Vec3, scale float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.TransformComponent{
		Position: pos,
		Rotation: rot,
		Scale:    mgl64.Vec3{scale, scale, scale},
		Parent:   parent,
	})
	return id
}

func newBox(em *ecs.EntityManager, parent ecs.EntityID, pos mgl64.Vec3, w, h, d float64, c colorful.Color) ecs.EntityID {
	id := newGroup(em, parent, pos, mgl64.Vec3{}, 1)
	ecs.AddComponent(em, id, &components.MeshComponent{
		Shape:   components.ShapeBox,
		Width:   w,
		Height:  h,
		Depth:   d,
		Color:   c,
		Opacity: 1,
	})
	return id
}

func newCylinder(em *ecs.EntityManager, parent ecs.EntityID, pos mgl64.Vec3, rTop, rBottom, h float64, c colorful.Color) ecs.EntityID {
	id := newGroup(em, parent, pos, mgl64.Vec3{}, 1)
	ecs.AddComponent(em, id, &components.MeshComponent{
		Shape:        components.ShapeCylinder,
		RadiusTop:    rTop,
		RadiusBottom: rBottom,
		Height:       h,
		Segments:     16,
		Color:        c,
		Opacity:      1,
	})
	return id
}

func newHitbox(em *ecs.EntityManager, parent ecs.EntityID, pos mgl64.Vec3, w, h, d float64, action components.HitAction) ecs.EntityID {
	id := newGroup(em, parent, pos, mgl64.Vec3{}, 1)
	ecs.AddComponent(em, id, &components.HitboxComponent{
		Width:  w,
		Height: h,
		Depth:  d,
		Action: action,
	})
	return id
}

func vec(v config.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v[0], v[1], v[2]}
}

func hex(s string) colorful.Color {
	return config.HexColor(s)
}
