package systems

import (
	"log"

	"github.com/gonewx/deskscene/pkg/components"
	"github.com/gonewx/deskscene/pkg/ecs"
)

// SteamSystem 驱动所有蒸汽发射器
//
// 每帧在游戏循环所在的 goroutine 中调用一次，时钟为累计的帧时间。
// 台灯状态决定发射器是否处于"活跃"（高不透明度）状态。
type SteamSystem struct {
	entityManager *ecs.EntityManager
	elapsed       float64
	paused        bool
}

// NewSteamSystem 创建蒸汽系统，并在实体销毁时释放其粒子池
func NewSteamSystem(em *ecs.EntityManager) *SteamSystem {
	s := &SteamSystem{entityManager: em}
	em.OnRemove(func(id ecs.EntityID) {
		if steam, ok := ecs.GetComponent[*components.SteamComponent](em, id); ok && steam.Animator != nil {
			steam.Animator.Teardown()
			log.Printf("[SteamSystem] 实体 %d 销毁，粒子池已释放", id)
		}
	})
	return s
}

// Update 推进时钟并更新所有蒸汽粒子
func (s *SteamSystem) Update(dt float64) {
	if s.paused {
		return
	}
	s.elapsed += dt

	active := LampOn(s.entityManager)
	for _, id := range ecs.GetEntitiesWith1[*components.SteamComponent](s.entityManager) {
		steam, ok := ecs.GetComponent[*components.SteamComponent](s.entityManager, id)
		if !ok || steam.Animator == nil {
			continue
		}
		steam.Animator.Advance(s.elapsed, active)
	}
}

// Elapsed 返回累计时钟（秒）
func (s *SteamSystem) Elapsed() float64 {
	return s.elapsed
}

// SetPaused 暂停/恢复时钟
func (s *SteamSystem) SetPaused(paused bool) {
	s.paused = paused
}

// Paused 时钟是否暂停
func (s *SteamSystem) Paused() bool {
	return s.paused
}
