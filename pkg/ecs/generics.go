package ecs

import "reflect"

// 泛型 API：以类型参数代替 reflect.TypeOf 调用，调用方无需类型断言。
//
//	lamp, ok := ecs.GetComponent[*components.LampComponent](em, id)

// AddComponent 为实体添加组件（泛型版本）
func AddComponent[T any](em *EntityManager, id EntityID, component T) {
	if compMap, exists := em.components.Get(id); exists {
		compMap[reflect.TypeOf((*T)(nil)).Elem()] = component
	}
}

// GetComponent 获取实体的特定类型组件（泛型版本）
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	compMap, exists := em.components.Get(id)
	if !exists {
		return zero, false
	}
	comp, found := compMap[reflect.TypeOf((*T)(nil)).Elem()]
	if !found {
		return zero, false
	}
	typed, ok := comp.(T)
	return typed, ok
}

// HasComponent 检查实体是否拥有特定类型组件（泛型版本）
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	return em.HasComponent(id, reflect.TypeOf((*T)(nil)).Elem())
}

// RemoveComponent 从实体移除指定类型的组件（泛型版本）
func RemoveComponent[T any](em *EntityManager, id EntityID) {
	em.RemoveComponent(id, reflect.TypeOf((*T)(nil)).Elem())
}

// GetEntitiesWith1 查询拥有组件 A 的所有实体
func GetEntitiesWith1[A any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(reflect.TypeOf((*A)(nil)).Elem())
}

// GetEntitiesWith2 查询同时拥有组件 A、B 的所有实体
func GetEntitiesWith2[A, B any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(reflect.TypeOf((*A)(nil)).Elem(), reflect.TypeOf((*B)(nil)).Elem())
}

// First returns the lowest-ID entity carrying component A, if any.
// Handy for singleton-style entities such as the camera.
func First[A any](em *EntityManager) (EntityID, A, bool) {
	var zero A
	t := reflect.TypeOf((*A)(nil)).Elem()
	for _, id := range em.alive {
		compMap, _ := em.components.Get(id)
		if comp, found := compMap[t]; found {
			if typed, ok := comp.(A); ok {
				return id, typed, true
			}
		}
	}
	return 0, zero, false
}
