package utils

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// CloudTextureSize 蒸汽贴图尺寸（像素）
const CloudTextureSize = 32

// CloudGradient 生成蒸汽粒子使用的柔和圆形渐变
//
// 白色，中心透明度 0.4，线性衰减到半径处为 0。
func CloudGradient(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	center := float64(size) / 2
	radius := float64(size) / 2

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - center
			dy := float64(y) + 0.5 - center
			t := math.Min(math.Hypot(dx, dy)/radius, 1)
			alpha := 0.4 * (1 - t)
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: uint8(math.Round(alpha * 255))})
		}
	}
	return img
}

// NewCloudTexture 创建蒸汽粒子贴图
func NewCloudTexture() *ebiten.Image {
	return ebiten.NewImageFromImage(CloudGradient(CloudTextureSize))
}

// NoteImage 生成便利贴底图：黄色纸面、顶部略深的粘胶条、几行横线
func NoteImage(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	paper := color.NRGBA{R: 255, G: 236, B: 130, A: 255}
	glue := color.NRGBA{R: 240, G: 214, B: 100, A: 255}
	rule := color.NRGBA{R: 214, G: 190, B: 96, A: 255}

	glueHeight := size / 8
	lineGap := size / 7
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := paper
			switch {
			case y < glueHeight:
				c = glue
			case lineGap > 0 && y > glueHeight+lineGap/2 && (y-glueHeight)%lineGap == 0 && x > size/10 && x < size-size/10:
				c = rule
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

var whiteImage = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img
}()

// WhiteSubImage 返回 1x1 白色子图，用于 DrawTriangles 绘制纯色多边形
func WhiteSubImage() *ebiten.Image {
	return whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}
