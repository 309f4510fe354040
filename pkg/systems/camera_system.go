package systems

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/deskscene/pkg/components"
	"github.com/gonewx/deskscene/pkg/ecs"
	"github.com/gonewx/deskscene/pkg/utils"
)

// CameraSystem 管理镜头的环绕控制与拉近动画。
//
//   - 拉近时：每帧 Position.lerp(ZoomPosition, ZoomLerp)，并注视 ZoomTarget
//   - 未拉近时：拖拽设定目标角度（限制在方位角/极角范围内），
//     实际角度由 harmonica 弹簧阻尼逼近
type CameraSystem struct {
	entityManager *ecs.EntityManager
	cameraEntity  ecs.EntityID
	wasZoomed     bool
}

// NewCameraSystem 创建镜头控制系统。
func NewCameraSystem(em *ecs.EntityManager, cameraEntity ecs.EntityID) *CameraSystem {
	return &CameraSystem{
		entityManager: em,
		cameraEntity:  cameraEntity,
	}
}

// Camera 返回镜头组件
func (cs *CameraSystem) Camera() (*components.CameraComponent, bool) {
	return ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
}

// Update 更新镜头（每帧调用一次）
func (cs *CameraSystem) Update(input utils.InputState) {
	cam, ok := cs.Camera()
	if !ok {
		return
	}

	if cam.Zoomed {
		cs.wasZoomed = true
		cam.Dragging = false
		cam.Position = utils.LerpVec3(cam.Position, cam.ZoomPosition, cam.ZoomLerp)
		cam.Target = cam.ZoomTarget
		return
	}

	if cs.wasZoomed {
		// 退出拉近：从当前位置重新推算环绕状态，镜头原地转回注视环绕中心
		cs.wasZoomed = false
		cam.Radius, cam.Azimuth, cam.Polar = utils.CartesianToSpherical(cam.OrbitTarget, cam.Position)
		cam.GoalAzimuth = mgl64.Clamp(cam.Azimuth, cam.MinAzimuth, cam.MaxAzimuth)
		cam.GoalPolar = mgl64.Clamp(cam.Polar, cam.MinPolar, cam.MaxPolar)
		cam.AzimuthVel, cam.PolarVel = 0, 0
		log.Printf("[CameraSystem] 退出拉近，半径=%.2f", cam.Radius)
	}

	cs.handleDrag(cam, input)

	cam.Azimuth, cam.AzimuthVel = cam.Spring.Update(cam.Azimuth, cam.AzimuthVel, cam.GoalAzimuth)
	cam.Polar, cam.PolarVel = cam.Spring.Update(cam.Polar, cam.PolarVel, cam.GoalPolar)

	cam.Target = cam.OrbitTarget
	cam.Position = utils.SphericalToCartesian(cam.OrbitTarget, cam.Radius, cam.Azimuth, cam.Polar)
}

// handleDrag 按拖拽距离调整目标角度（向右拖动 = 场景向右转）
func (cs *CameraSystem) handleDrag(cam *components.CameraComponent, input utils.InputState) {
	if input.JustPressed {
		cam.Dragging = true
		cam.DragLastX, cam.DragLastY = input.X, input.Y
		return
	}
	if !input.Pressed {
		cam.Dragging = false
		return
	}
	if !cam.Dragging {
		return
	}

	dx := float64(input.X - cam.DragLastX)
	dy := float64(input.Y - cam.DragLastY)
	cam.DragLastX, cam.DragLastY = input.X, input.Y

	cam.GoalAzimuth = mgl64.Clamp(cam.GoalAzimuth-dx*cam.DragSpeed, cam.MinAzimuth, cam.MaxAzimuth)
	cam.GoalPolar = mgl64.Clamp(cam.GoalPolar-dy*cam.DragSpeed, cam.MinPolar, cam.MaxPolar)
}

// Projector 根据镜头当前状态构造投影
func (cs *CameraSystem) Projector(width, height int) (utils.Projector, bool) {
	cam, ok := cs.Camera()
	if !ok {
		return utils.Projector{}, false
	}
	return ProjectorFor(cam, width, height), true
}

// ProjectorFor 根据镜头组件构造投影
func ProjectorFor(cam *components.CameraComponent, width, height int) utils.Projector {
	return utils.NewProjector(cam.Position, cam.Target, cam.FOV, cam.Near, cam.Far, width, height)
}
