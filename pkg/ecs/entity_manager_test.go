package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testTransformComponent struct {
	X, Y, Z float64
}

type testLampComponent struct {
	On bool
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}

	if em.Count() != 2 {
		t.Errorf("Count should be 2, got %d", em.Count())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	// 添加组件
	tr := &testTransformComponent{X: 1.0, Y: 0.05, Z: 0.3}
	em.AddComponent(id, tr)

	// 获取组件
	comp, found := em.GetComponent(id, reflect.TypeOf(&testTransformComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}

	retrieved := comp.(*testTransformComponent)
	if retrieved.X != 1.0 || retrieved.Z != 0.3 {
		t.Errorf("Component data mismatch, expected (1.0, 0.3), got (%f, %f)", retrieved.X, retrieved.Z)
	}
}

func TestHasComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	// 未添加组件前应该返回false
	if em.HasComponent(id, reflect.TypeOf(&testLampComponent{})) {
		t.Error("Should not have component before adding")
	}

	em.AddComponent(id, &testLampComponent{})

	// 添加后应该返回true
	if !em.HasComponent(id, reflect.TypeOf(&testLampComponent{})) {
		t.Error("Should have component after adding")
	}

	em.RemoveComponent(id, reflect.TypeOf(&testLampComponent{}))
	if em.HasComponent(id, reflect.TypeOf(&testLampComponent{})) {
		t.Error("Should not have component after removing")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testTransformComponent{})

	// 标记删除
	em.DestroyEntity(id)

	// 清理前实体仍存在
	if !em.Exists(id) {
		t.Error("Entity should still exist before cleanup")
	}

	// 清理后实体消失
	em.RemoveMarkedEntities()
	if em.Exists(id) || em.HasComponent(id, reflect.TypeOf(&testTransformComponent{})) {
		t.Error("Entity should be removed after cleanup")
	}
	if len(em.GetEntitiesWith()) != 0 {
		t.Error("Removed entity should not be returned by queries")
	}
}

func TestDestroyEntity_Twice(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	removed := 0
	em.OnRemove(func(EntityID) { removed++ })

	em.DestroyEntity(id)
	em.DestroyEntity(id)
	em.RemoveMarkedEntities()

	if removed != 1 {
		t.Errorf("OnRemove should run once per entity, ran %d times", removed)
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	// 创建不同组件组合的实体
	id1 := em.CreateEntity()
	em.AddComponent(id1, &testTransformComponent{})
	em.AddComponent(id1, &testLampComponent{})

	id2 := em.CreateEntity()
	em.AddComponent(id2, &testTransformComponent{})

	id3 := em.CreateEntity()
	em.AddComponent(id3, &testLampComponent{})

	entities := em.GetEntitiesWith(
		reflect.TypeOf(&testTransformComponent{}),
		reflect.TypeOf(&testLampComponent{}),
	)

	if len(entities) != 1 || entities[0] != id1 {
		t.Errorf("Query should return only id1, got %v", entities)
	}

	// 结果按ID升序
	withTransform := em.GetEntitiesWith(reflect.TypeOf(&testTransformComponent{}))
	if len(withTransform) != 2 || withTransform[0] != id1 || withTransform[1] != id2 {
		t.Errorf("Expected [%d %d], got %v", id1, id2, withTransform)
	}
}

func TestDestroyMultipleEntities(t *testing.T) {
	em := NewEntityManager()

	id1 := em.CreateEntity()
	id2 := em.CreateEntity()
	id3 := em.CreateEntity()

	em.AddComponent(id1, &testTransformComponent{})
	em.AddComponent(id2, &testTransformComponent{})
	em.AddComponent(id3, &testTransformComponent{})

	var removed []EntityID
	em.OnRemove(func(id EntityID) { removed = append(removed, id) })

	em.DestroyEntity(id1)
	em.DestroyEntity(id3)
	em.RemoveMarkedEntities()

	if em.Exists(id1) || em.Exists(id3) {
		t.Error("id1 and id3 should be removed")
	}
	if !em.Exists(id2) {
		t.Error("id2 should still exist")
	}
	if len(removed) != 2 || removed[0] != id1 || removed[1] != id3 {
		t.Errorf("OnRemove order mismatch: %v", removed)
	}

	ids := em.GetEntitiesWith(reflect.TypeOf(&testTransformComponent{}))
	if len(ids) != 1 || ids[0] != id2 {
		t.Errorf("Expected only id2, got %v", ids)
	}
}

func TestClear(t *testing.T) {
	em := NewEntityManager()
	for i := 0; i < 5; i++ {
		em.AddComponent(em.CreateEntity(), &testLampComponent{})
	}

	removed := 0
	em.OnRemove(func(EntityID) { removed++ })
	em.Clear()

	if em.Count() != 0 || removed != 5 {
		t.Errorf("Clear should remove all entities, count=%d removed=%d", em.Count(), removed)
	}
}
