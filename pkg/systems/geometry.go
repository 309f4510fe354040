package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/deskscene/pkg/components"
	"github.com/gonewx/deskscene/pkg/utils"
)

// defaultSegments 圆柱/圆片未指定分段数时使用
const defaultSegments = 16

// face 世界坐标下的一个凸多边形面（三角形或四边形），逆时针为正面
type face struct {
	points [4]mgl64.Vec3
	uv     [4][2]float32 // 纹理坐标（0..1），仅平面使用
	n      int
	normal mgl64.Vec3
}

func (f *face) center() mgl64.Vec3 {
	c := mgl64.Vec3{}
	for i := 0; i < f.n; i++ {
		c = c.Add(f.points[i])
	}
	return c.Mul(1 / float64(f.n))
}

// appendMeshFaces 将网格展开为世界坐标下的面，追加到 dst
func appendMeshFaces(dst []face, mesh *components.MeshComponent, world mgl64.Mat4) []face {
	switch mesh.Shape {
	case components.ShapeBox:
		return appendBoxFaces(dst, mesh.Width/2, mesh.Height/2, mesh.Depth/2, world)
	case components.ShapePlane:
		return appendPlaneFace(dst, mesh.Width/2, mesh.Height/2, world)
	case components.ShapeCylinder:
		return appendCylinderFaces(dst, mesh.RadiusTop, mesh.RadiusBottom, mesh.Height/2, segments(mesh), world)
	case components.ShapeDisc:
		return appendDiscFaces(dst, mesh.RadiusTop, segments(mesh), world)
	}
	return dst
}

func segments(mesh *components.MeshComponent) int {
	if mesh.Segments < 3 {
		return defaultSegments
	}
	return mesh.Segments
}

func newFace(world mgl64.Mat4, pts ...mgl64.Vec3) face {
	f := face{n: len(pts)}
	for i, p := range pts {
		f.points[i] = utils.TransformPoint(world, p)
	}
	f.normal = f.points[1].Sub(f.points[0]).Cross(f.points[2].Sub(f.points[0])).Normalize()
	return f
}

func appendBoxFaces(dst []face, hx, hy, hz float64, world mgl64.Mat4) []face {
	v := func(x, y, z float64) mgl64.Vec3 { return mgl64.Vec3{x, y, z} }
	return append(dst,
		newFace(world, v(hx, -hy, hz), v(hx, -hy, -hz), v(hx, hy, -hz), v(hx, hy, hz)),     // +X
		newFace(world, v(-hx, -hy, -hz), v(-hx, -hy, hz), v(-hx, hy, hz), v(-hx, hy, -hz)), // -X
		newFace(world, v(-hx, hy, hz), v(hx, hy, hz), v(hx, hy, -hz), v(-hx, hy, -hz)),     // +Y
		newFace(world, v(-hx, -hy, -hz), v(hx, -hy, -hz), v(hx, -hy, hz), v(-hx, -hy, hz)), // -Y
		newFace(world, v(-hx, -hy, hz), v(hx, -hy, hz), v(hx, hy, hz), v(-hx, hy, hz)),     // +Z
		newFace(world, v(hx, -hy, -hz), v(-hx, -hy, -hz), v(-hx, hy, -hz), v(hx, hy, -hz)), // -Z
	)
}

// appendPlaneFace 局部 XY 平面，法线 +Z；纹理左上角对应 (-w/2, +h/2)
func appendPlaneFace(dst []face, hw, hh float64, world mgl64.Mat4) []face {
	f := newFace(world,
		mgl64.Vec3{-hw, -hh, 0},
		mgl64.Vec3{hw, -hh, 0},
		mgl64.Vec3{hw, hh, 0},
		mgl64.Vec3{-hw, hh, 0},
	)
	f.uv = [4][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}
	return append(dst, f)
}

// ringPoint 圆周上的点：θ=0 指向 +Z，绕 Y 轴逆时针（俯视）
func ringPoint(r, y, theta float64) mgl64.Vec3 {
	return mgl64.Vec3{r * math.Sin(theta), y, r * math.Cos(theta)}
}

func appendCylinderFaces(dst []face, rTop, rBottom, hh float64, segs int, world mgl64.Mat4) []face {
	step := 2 * math.Pi / float64(segs)
	top := mgl64.Vec3{0, hh, 0}
	bottom := mgl64.Vec3{0, -hh, 0}

	for i := 0; i < segs; i++ {
		a0, a1 := float64(i)*step, float64(i+1)*step
		b0, b1 := ringPoint(rBottom, -hh, a0), ringPoint(rBottom, -hh, a1)
		t0, t1 := ringPoint(rTop, hh, a0), ringPoint(rTop, hh, a1)

		dst = append(dst, newFace(world, b0, b1, t1, t0))
		if rTop > 0 {
			dst = append(dst, newFace(world, top, t0, t1))
		}
		if rBottom > 0 {
			dst = append(dst, newFace(world, bottom, b1, b0))
		}
	}
	return dst
}

// appendDiscFaces 局部 XY 平面上的圆片，法线 +Z
func appendDiscFaces(dst []face, r float64, segs int, world mgl64.Mat4) []face {
	step := 2 * math.Pi / float64(segs)
	center := mgl64.Vec3{}
	for i := 0; i < segs; i++ {
		a0, a1 := float64(i)*step, float64(i+1)*step
		p0 := mgl64.Vec3{r * math.Cos(a0), r * math.Sin(a0), 0}
		p1 := mgl64.Vec3{r * math.Cos(a1), r * math.Sin(a1), 0}
		dst = append(dst, newFace(world, center, p0, p1))
	}
	return dst
}
