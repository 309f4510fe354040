package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapText(t *testing.T) {
	font, err := NewMonoFace(12)
	require.NoError(t, err)

	charWidth := measureTextWidth("M", font)
	require.Greater(t, charWidth, 0.0)

	tests := []struct {
		name     string
		input    string
		maxChars int
		want     []string
	}{
		{"短文本不换行", "ACCESS GRANTED", 40, []string{"ACCESS GRANTED"}},
		{"空文本", "", 10, []string{""}},
		{"按空格断行", "WELCOME GUEST USER", 10, []string{"WELCOME", "GUEST USER"}},
		{"长单词强制断行", "ABCDEFGHIJ", 4, []string{"ABCD", "EFGH", "IJ"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// 等宽字体：宽度取字符数的整数倍再留一点余量
			maxWidth := charWidth*float64(tt.maxChars) + charWidth/2
			lines := WrapText(tt.input, font, maxWidth)
			assert.Equal(t, tt.want, lines)
			for _, line := range lines {
				assert.LessOrEqual(t, measureTextWidth(line, font), maxWidth, "line %q too wide", line)
			}
		})
	}
}

func TestWrapText_NilFont(t *testing.T) {
	assert.Equal(t, []string{"BOOTING..."}, WrapText("BOOTING...", nil, 10))
}

func TestWrapText_PreservesWords(t *testing.T) {
	font, err := NewMonoFace(12)
	require.NoError(t, err)

	input := "CYBER-OS BIOS v2.4 BOOTING KERNEL MODULES"
	lines := WrapText(input, font, measureTextWidth("CYBER-OS BIOS", font))
	assert.Equal(t, input, strings.Join(lines, " "))
}
