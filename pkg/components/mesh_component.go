package components

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// MeshShape 网格基本体类型
type MeshShape int

const (
	// ShapeBox 长方体：Width × Height × Depth，中心对齐
	ShapeBox MeshShape = iota
	// ShapePlane 平面：Width × Height，位于局部 XY 平面，法线 +Z
	ShapePlane
	// ShapeCylinder 圆柱/圆台：RadiusTop、RadiusBottom、Height，轴向 Y
	ShapeCylinder
	// ShapeDisc 圆片：RadiusTop 为半径，位于局部 XY 平面，法线 +Z
	ShapeDisc
)

// MeshComponent 可绘制的几何体与材质
type MeshComponent struct {
	Shape MeshShape

	Width, Height, Depth    float64
	RadiusTop, RadiusBottom float64
	Segments                int // 圆柱/圆片的分段数

	// 材质
	Color             colorful.Color
	Emissive          colorful.Color
	EmissiveIntensity float64
	Opacity           float64 // 1 = 不透明
	Unlit             bool    // 不受光照影响（meshBasicMaterial）

	// EmissiveFollowsLamp 仅在台灯开启时自发光（灯泡）
	EmissiveFollowsLamp bool

	// Texture 平面贴图（仅 ShapePlane 使用，可为 nil）
	Texture *ebiten.Image

	// Hidden 不绘制（例如只用于拾取的碰撞盒）
	Hidden bool
}
