// Package ecs is the small entity/component store behind the desk scene.
//
// Entities are plain IDs; components are pointers to data structs keyed by
// their dynamic type. Systems query entities by component type and mutate the
// components in place.
package ecs

import (
	"reflect"
	"sort"

	"github.com/kamstrup/intmap"
)

// EntityID 是实体的唯一标识符
type EntityID uint64

// EntityManager 管理所有实体和组件
type EntityManager struct {
	nextID uint64
	// 实体-组件映射: EntityID -> ComponentType -> Component实例
	components *intmap.Map[EntityID, map[reflect.Type]any]
	// 存活实体，按ID升序（保证查询结果与绘制顺序稳定）
	alive []EntityID
	// 待删除的实体ID列表
	entitiesToDestroy []EntityID
	// 实体真正删除时的回调（用于释放粒子池等资源）
	onRemove []func(EntityID)
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:            1, // ID从1开始,0保留为无效ID
		components:        intmap.New[EntityID, map[reflect.Type]any](64),
		alive:             make([]EntityID, 0, 64),
		entitiesToDestroy: make([]EntityID, 0),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components.Put(id, make(map[reflect.Type]any))
	em.alive = append(em.alive, id) // IDs are monotonic, so alive stays sorted
	return id
}

// Exists reports whether id refers to a live entity (including ones marked
// for destruction but not yet removed).
func (em *EntityManager) Exists(id EntityID) bool {
	return em.components.Has(id)
}

// Count returns the number of live entities.
func (em *EntityManager) Count() int {
	return em.components.Len()
}

// DestroyEntity 标记实体待删除(不立即删除)
func (em *EntityManager) DestroyEntity(id EntityID) {
	em.entitiesToDestroy = append(em.entitiesToDestroy, id)
}

// OnRemove registers fn to run for every entity removed by RemoveMarkedEntities
// or Clear, before its components are dropped.
func (em *EntityManager) OnRemove(fn func(EntityID)) {
	em.onRemove = append(em.onRemove, fn)
}

// AddComponent 为实体添加组件
func (em *EntityManager) AddComponent(id EntityID, component any) {
	componentType := reflect.TypeOf(component)
	if compMap, exists := em.components.Get(id); exists {
		compMap[componentType] = component
	}
}

// RemoveComponent 从实体移除指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if compMap, exists := em.components.Get(id); exists {
		delete(compMap, componentType)
	}
}

// GetComponent 获取实体的特定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (any, bool) {
	if compMap, exists := em.components.Get(id); exists {
		if comp, found := compMap[componentType]; found {
			return comp, true
		}
	}
	return nil, false
}

// HasComponent 检查实体是否拥有特定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	if compMap, exists := em.components.Get(id); exists {
		_, found := compMap[componentType]
		return found
	}
	return false
}

// RemoveMarkedEntities 清理所有标记删除的实体
func (em *EntityManager) RemoveMarkedEntities() {
	if len(em.entitiesToDestroy) == 0 {
		return
	}

	for _, id := range em.entitiesToDestroy {
		em.remove(id)
	}
	em.entitiesToDestroy = em.entitiesToDestroy[:0] // 清空切片
}

// Clear removes every entity immediately, running OnRemove callbacks.
func (em *EntityManager) Clear() {
	ids := append([]EntityID(nil), em.alive...)
	for _, id := range ids {
		em.remove(id)
	}
	em.entitiesToDestroy = em.entitiesToDestroy[:0]
}

func (em *EntityManager) remove(id EntityID) {
	if !em.components.Has(id) {
		return // 重复标记
	}
	for _, fn := range em.onRemove {
		fn(id)
	}
	em.components.Del(id)

	i := sort.Search(len(em.alive), func(i int) bool { return em.alive[i] >= id })
	if i < len(em.alive) && em.alive[i] == id {
		em.alive = append(em.alive[:i], em.alive[i+1:]...)
	}
}

// GetEntitiesWith 查询拥有指定组件类型组合的所有实体
// 参数: componentTypes ...reflect.Type - 需要的组件类型列表
// 返回: []EntityID - 满足条件的实体ID列表（按ID升序）
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)

	for _, id := range em.alive {
		compMap, _ := em.components.Get(id)
		hasAll := true
		for _, ct := range componentTypes {
			if _, found := compMap[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}

	return result
}
