package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/deskscene/pkg/components"
	"github.com/gonewx/deskscene/pkg/ecs"
	"github.com/lucasb-eyer/go-colorful"
)

// sceneLight 本帧生效的光源（已按台灯状态取强度、转换到世界坐标）
type sceneLight struct {
	kind      components.LightKind
	color     colorful.Color
	intensity float64
	position  mgl64.Vec3 // 点光源位置
	direction mgl64.Vec3 // 方向光：指向光源的单位向量
	distance  float64
	decay     float64
}

// collectLights 收集场景光源，强度为 0 的光源被跳过
func collectLights(dst []sceneLight, em *ecs.EntityManager, lampOn bool) []sceneLight {
	dst = dst[:0]
	for _, id := range ecs.GetEntitiesWith1[*components.LightComponent](em) {
		l, _ := ecs.GetComponent[*components.LightComponent](em, id)
		intensity := l.IntensityOff
		if lampOn {
			intensity = l.IntensityOn
		}
		if intensity <= 0 {
			continue
		}

		sl := sceneLight{
			kind:      l.Kind,
			color:     l.Color,
			intensity: intensity,
			distance:  l.Distance,
			decay:     l.Decay,
		}
		switch l.Kind {
		case components.LightDirectional:
			// 方向光照向原点
			if tf, ok := ecs.GetComponent[*components.TransformComponent](em, id); ok && tf.Position.Len() > 0 {
				sl.direction = tf.Position.Normalize()
			} else {
				sl.direction = mgl64.Vec3{0, 1, 0}
			}
		case components.LightPoint:
			sl.position = WorldPosition(em, id)
		}
		dst = append(dst, sl)
	}
	return dst
}

// irradiance 计算表面点接收到的光照（线性 RGB，未限幅）
//
// 漫反射按 Lambert 模型，直接光除以 π；环境光不衰减。
// 点光源衰减：1/d^decay，有截止距离时再乘 (1-(d/distance)^4)^2。
func irradiance(lights []sceneLight, point, normal mgl64.Vec3) colorful.Color {
	var r, g, b float64
	add := func(c colorful.Color, k float64) {
		r += c.R * k
		g += c.G * k
		b += c.B * k
	}

	for i := range lights {
		l := &lights[i]
		switch l.kind {
		case components.LightAmbient:
			add(l.color, l.intensity)

		case components.LightDirectional:
			if ndotl := normal.Dot(l.direction); ndotl > 0 {
				add(l.color, l.intensity*ndotl/math.Pi)
			}

		case components.LightPoint:
			toLight := l.position.Sub(point)
			d := toLight.Len()
			if d == 0 {
				continue
			}
			ndotl := normal.Dot(toLight.Mul(1 / d))
			if ndotl <= 0 {
				continue
			}
			add(l.color, l.intensity*ndotl*pointFalloff(d, l.distance, l.decay)/math.Pi)
		}
	}
	return colorful.Color{R: r, G: g, B: b}
}

func pointFalloff(d, cutoff, decay float64) float64 {
	f := 1 / math.Max(math.Pow(d, decay), 0.01)
	if cutoff > 0 {
		k := 1 - math.Pow(d/cutoff, 4)
		if k <= 0 {
			return 0
		}
		f *= k * k
	}
	return f
}

// shadeMesh 计算网格表面颜色：基础色 × 光照 + 自发光，结果限幅到 [0,1]
func shadeMesh(mesh *components.MeshComponent, light colorful.Color, lampOn bool) colorful.Color {
	c := mesh.Color
	if !mesh.Unlit {
		c = colorful.Color{R: c.R * light.R, G: c.G * light.G, B: c.B * light.B}
	}
	if mesh.EmissiveIntensity > 0 && (!mesh.EmissiveFollowsLamp || lampOn) {
		k := mesh.EmissiveIntensity
		c = colorful.Color{R: c.R + mesh.Emissive.R*k, G: c.G + mesh.Emissive.G*k, B: c.B + mesh.Emissive.B*k}
	}
	return c.Clamped()
}
