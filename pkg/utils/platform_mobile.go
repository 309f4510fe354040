//go:build mobile

package utils

// IsMobile 移动端编译时恒为 true（触屏，无鼠标指针）
func IsMobile() bool {
	return true
}
