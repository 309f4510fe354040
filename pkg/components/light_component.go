package components

import "github.com/lucasb-eyer/go-colorful"

// LightKind 光源类型
type LightKind int

const (
	LightAmbient LightKind = iota
	LightDirectional
	LightPoint
)

// LightComponent 光源
//
// 方向光的方向由 TransformComponent.Position 指向原点决定；
// 点光源位置取实体世界坐标。
type LightComponent struct {
	Name         string
	Kind         LightKind
	Color        colorful.Color
	IntensityOn  float64 // 台灯开启时强度
	IntensityOff float64 // 台灯关闭时强度
	Distance     float64 // 点光源截止距离（0 = 无限）
	Decay        float64 // 点光源衰减指数
}
