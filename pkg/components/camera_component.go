package components

import (
	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl64"
)

// CameraComponent 透视镜头与其控制状态
//
// 未拉近时由环绕控制（拖拽旋转，带阻尼）驱动；
// 拉近后每帧将 Position 向 ZoomPosition 插值，并注视 ZoomTarget。
type CameraComponent struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	FOV      float64 // 垂直视角（度）
	Near     float64
	Far      float64

	// 拉近
	Zoomed       bool
	ZoomPosition mgl64.Vec3
	ZoomTarget   mgl64.Vec3
	ZoomLerp     float64

	// 环绕控制（球坐标，相对 OrbitTarget）
	OrbitTarget mgl64.Vec3
	Radius      float64
	Azimuth     float64
	Polar       float64

	// 拖拽设定的目标角度；实际角度经弹簧阻尼逼近
	GoalAzimuth float64
	GoalPolar   float64
	AzimuthVel  float64
	PolarVel    float64
	Spring      harmonica.Spring

	MinAzimuth, MaxAzimuth float64
	MinPolar, MaxPolar     float64
	DragSpeed              float64

	// 拖拽状态
	Dragging             bool
	DragLastX, DragLastY int
}
