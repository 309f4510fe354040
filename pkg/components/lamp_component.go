package components

// LampComponent 台灯开关状态
//
// 场景里所有光源强度与蒸汽亮度都跟随这个开关。
type LampComponent struct {
	On bool
}
