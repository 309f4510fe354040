package components

import (
	"github.com/gonewx/deskscene/internal/particle"
	"github.com/hajimehoshi/ebiten/v2"
)

// SteamComponent 咖啡杯上方的蒸汽发射器
//
// Animator 拥有粒子池；渲染层每帧只读取 Animator.Particles()，
// 按实体的世界变换把粒子放到场景中。
type SteamComponent struct {
	Animator *particle.Animator
	Texture  *ebiten.Image // 柔和圆形渐变贴图
}
