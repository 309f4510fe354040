package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloudGradient(t *testing.T) {
	img := CloudGradient(CloudTextureSize)
	assert.Equal(t, CloudTextureSize, img.Bounds().Dx())

	center := img.NRGBAAt(16, 16)
	assert.Equal(t, uint8(255), center.R)
	assert.InDelta(t, 0.4*255, float64(center.A), 4, "center alpha ≈ 0.4")

	corner := img.NRGBAAt(0, 0)
	assert.Equal(t, uint8(0), corner.A, "corner lies outside the radius")

	// 透明度随半径单调递减
	prev := uint8(255)
	for x := 16; x < CloudTextureSize; x++ {
		a := img.NRGBAAt(x, 16).A
		assert.LessOrEqual(t, a, prev, "x=%d", x)
		prev = a
	}
}

func TestNoteImage(t *testing.T) {
	img := NoteImage(64)
	assert.Equal(t, 64, img.Bounds().Dy())

	glue := img.NRGBAAt(32, 2)
	paper := img.NRGBAAt(2, 40)
	assert.NotEqual(t, glue, paper)
	assert.Equal(t, uint8(255), paper.A)
}
