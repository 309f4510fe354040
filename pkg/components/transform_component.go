package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/deskscene/pkg/ecs"
)

// TransformComponent 实体的局部变换
//
// 与 three.js 的 group 嵌套一致：世界矩阵 = 父实体世界矩阵 × 局部矩阵。
type TransformComponent struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3 // 欧拉角（弧度，XYZ 顺序）
	Scale    mgl64.Vec3

	// Parent 父实体（0 表示挂在场景根节点）
	Parent ecs.EntityID
}
