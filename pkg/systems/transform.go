package systems

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/deskscene/pkg/components"
	"github.com/gonewx/deskscene/pkg/ecs"
	"github.com/gonewx/deskscene/pkg/utils"
)

// maxParentDepth 父子链最大深度，防止配置错误形成环
const maxParentDepth = 16

// WorldMatrix 计算实体的世界矩阵（沿 Parent 链向上累乘局部矩阵）
// 没有 TransformComponent 的实体返回单位矩阵
func WorldMatrix(em *ecs.EntityManager, id ecs.EntityID) mgl64.Mat4 {
	world := mgl64.Ident4()
	for depth := 0; id != 0 && depth < maxParentDepth; depth++ {
		tf, ok := ecs.GetComponent[*components.TransformComponent](em, id)
		if !ok {
			break
		}
		world = utils.LocalMatrix(tf.Position, tf.Rotation, tf.Scale).Mul4(world)
		id = tf.Parent
	}
	return world
}

// WorldPosition 返回实体原点的世界坐标
func WorldPosition(em *ecs.EntityManager, id ecs.EntityID) mgl64.Vec3 {
	return utils.TransformPoint(WorldMatrix(em, id), mgl64.Vec3{})
}

// LampOn 返回场景中台灯是否开启（没有台灯时视为开启）
func LampOn(em *ecs.EntityManager) bool {
	_, lamp, ok := ecs.First[*components.LampComponent](em)
	return !ok || lamp.On
}
