package systems

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/deskscene/pkg/components"
	"github.com/gonewx/deskscene/pkg/utils"
	"github.com/stretchr/testify/assert"
)

// 闭合体的每个面法线都应朝外（与面中心到几何中心的向量同向）
func assertOutward(t *testing.T, faces []face, center mgl64.Vec3) {
	t.Helper()
	for i := range faces {
		f := &faces[i]
		assert.Greater(t, f.normal.Dot(f.center().Sub(center)), 0.0, "face %d points inward", i)
		assert.InDelta(t, 1.0, f.normal.Len(), 1e-9)
	}
}

func TestAppendMeshFaces_Box(t *testing.T) {
	mesh := &components.MeshComponent{Shape: components.ShapeBox, Width: 4, Height: 0.1, Depth: 2}
	world := utils.LocalMatrix(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0, 0.7, 0}, mgl64.Vec3{1, 1, 1})

	faces := appendMeshFaces(nil, mesh, world)
	assert.Len(t, faces, 6)
	assertOutward(t, faces, mgl64.Vec3{1, 2, 3})
}

func TestAppendMeshFaces_Cylinder(t *testing.T) {
	mesh := &components.MeshComponent{Shape: components.ShapeCylinder, RadiusTop: 0.08, RadiusBottom: 0.15, Height: 0.6, Segments: 12}
	faces := appendMeshFaces(nil, mesh, mgl64.Ident4())

	// 侧面 + 顶面 + 底面
	assert.Len(t, faces, 12*3)
	assertOutward(t, faces, mgl64.Vec3{})
}

func TestAppendMeshFaces_DefaultSegments(t *testing.T) {
	mesh := &components.MeshComponent{Shape: components.ShapeDisc, RadiusTop: 1}
	faces := appendMeshFaces(nil, mesh, mgl64.Ident4())
	assert.Len(t, faces, defaultSegments)
}

func TestAppendMeshFaces_PlaneAndDiscFacePlusZ(t *testing.T) {
	plane := &components.MeshComponent{Shape: components.ShapePlane, Width: 3.1, Height: 1.4}
	faces := appendMeshFaces(nil, plane, mgl64.Ident4())
	assert.Len(t, faces, 1)
	assert.InDelta(t, 1.0, faces[0].normal.Z(), 1e-12)
	assert.Equal(t, [2]float32{0, 0}, faces[0].uv[3], "top-left corner maps to texture origin")

	disc := &components.MeshComponent{Shape: components.ShapeDisc, RadiusTop: 0.082, Segments: 32}
	for _, f := range appendMeshFaces(nil, disc, mgl64.Ident4()) {
		assert.InDelta(t, 1.0, f.normal.Z(), 1e-12)
	}
}

func TestAppendMeshFaces_CoffeeDiscFacesUp(t *testing.T) {
	// 咖啡液面绕 X 轴旋转 -π/2 后朝上
	disc := &components.MeshComponent{Shape: components.ShapeDisc, RadiusTop: 0.082, Segments: 8}
	world := utils.LocalMatrix(mgl64.Vec3{}, mgl64.Vec3{-math.Pi / 2, 0, 0}, mgl64.Vec3{1, 1, 1})
	for _, f := range appendMeshFaces(nil, disc, world) {
		assert.InDelta(t, 1.0, f.normal.Y(), 1e-9)
	}
}
