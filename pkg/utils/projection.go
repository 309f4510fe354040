package utils

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// WorldUp 世界坐标系的上方向
var WorldUp = mgl64.Vec3{0, 1, 0}

// Projector 透视投影：世界坐标 → 屏幕像素坐标
//
// 每帧根据镜头位置构造一次，之后所有顶点共用。
type Projector struct {
	Eye      mgl64.Vec3
	View     mgl64.Mat4
	ViewProj mgl64.Mat4

	Width, Height float64
	Near          float64

	// FocalLength 单位深度处 1 个世界单位对应的像素数
	FocalLength float64
}

// NewProjector 创建透视投影
// 参数:
//   - eye, target: 镜头位置与注视点
//   - fovDeg: 垂直视角（度）
//   - near, far: 裁剪面
//   - width, height: 屏幕尺寸（像素）
func NewProjector(eye, target mgl64.Vec3, fovDeg, near, far float64, width, height int) Projector {
	w, h := float64(width), float64(height)
	fov := mgl64.DegToRad(fovDeg)

	view := mgl64.LookAtV(eye, target, WorldUp)
	proj := mgl64.Perspective(fov, w/h, near, far)

	return Projector{
		Eye:         eye,
		View:        view,
		ViewProj:    proj.Mul4(view),
		Width:       w,
		Height:      h,
		Near:        near,
		FocalLength: (h / 2) / math.Tan(fov/2),
	}
}

// Project 将世界坐标投影到屏幕
// 返回屏幕坐标、视空间深度（到镜头平面的距离），以及点是否在近裁剪面之前
func (p Projector) Project(world mgl64.Vec3) (sx, sy, depth float64, ok bool) {
	clip := p.ViewProj.Mul4x1(world.Vec4(1))
	depth = clip.W() // 透视矩阵下 w = -z_view
	if depth < p.Near {
		return 0, 0, depth, false
	}

	ndcX := clip.X() / depth
	ndcY := clip.Y() / depth
	sx = (ndcX + 1) / 2 * p.Width
	sy = (1 - ndcY) / 2 * p.Height
	return sx, sy, depth, true
}

// PixelsPerUnit 返回指定深度处 1 个世界单位对应的像素数
func (p Projector) PixelsPerUnit(depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return p.FocalLength / depth
}

// LocalMatrix 构造局部变换矩阵：T * Rx * Ry * Rz * S（欧拉角 XYZ 顺序）
func LocalMatrix(position, rotation, scale mgl64.Vec3) mgl64.Mat4 {
	t := mgl64.Translate3D(position.X(), position.Y(), position.Z())
	r := mgl64.HomogRotate3DX(rotation.X()).
		Mul4(mgl64.HomogRotate3DY(rotation.Y())).
		Mul4(mgl64.HomogRotate3DZ(rotation.Z()))
	s := mgl64.Scale3D(scale.X(), scale.Y(), scale.Z())
	return t.Mul4(r).Mul4(s)
}

// TransformPoint 用 4x4 矩阵变换一个点
func TransformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// Rect 屏幕空间矩形
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Contains 判断点是否在矩形内（含边界）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// ProjectBox 投影一个局部坐标中心对齐的长方体，返回屏幕包围矩形与最近深度
// 只要有一个角点位于镜头之后，就视为不可见
func (p Projector) ProjectBox(world mgl64.Mat4, size mgl64.Vec3) (Rect, float64, bool) {
	hx, hy, hz := size.X()/2, size.Y()/2, size.Z()/2
	rect := Rect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	nearest := math.Inf(1)

	for _, sx := range [2]float64{-hx, hx} {
		for _, sy := range [2]float64{-hy, hy} {
			for _, sz := range [2]float64{-hz, hz} {
				x, y, depth, ok := p.Project(TransformPoint(world, mgl64.Vec3{sx, sy, sz}))
				if !ok {
					return Rect{}, 0, false
				}
				rect.MinX = math.Min(rect.MinX, x)
				rect.MinY = math.Min(rect.MinY, y)
				rect.MaxX = math.Max(rect.MaxX, x)
				rect.MaxY = math.Max(rect.MaxY, y)
				nearest = math.Min(nearest, depth)
			}
		}
	}
	return rect, nearest, true
}

// LerpVec3 按系数 t 将 a 向 b 插值（three.js Vector3.lerp 语义）
func LerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// SphericalToCartesian 球坐标 → 相对于 target 的位置
// azimuth 绕 Y 轴（0 指向 +Z），polar 为与 +Y 的夹角
func SphericalToCartesian(target mgl64.Vec3, radius, azimuth, polar float64) mgl64.Vec3 {
	sinPolar := math.Sin(polar)
	return target.Add(mgl64.Vec3{
		radius * sinPolar * math.Sin(azimuth),
		radius * math.Cos(polar),
		radius * sinPolar * math.Cos(azimuth),
	})
}

// CartesianToSpherical 位置 → 相对于 target 的球坐标
func CartesianToSpherical(target, position mgl64.Vec3) (radius, azimuth, polar float64) {
	offset := position.Sub(target)
	radius = offset.Len()
	if radius == 0 {
		return 0, 0, 0
	}
	azimuth = math.Atan2(offset.X(), offset.Z())
	polar = math.Acos(mgl64.Clamp(offset.Y()/radius, -1, 1))
	return radius, azimuth, polar
}
