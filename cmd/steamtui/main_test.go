package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/deskscene/internal/particle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid_RasterizeKeepsBrightest(t *testing.T) {
	cfg := particle.DefaultConfig()
	var g Grid
	g.Resize(10, 11)

	particles := []particle.Particle{
		{X: 0, Y: 0, Opacity: 0.3},
		{X: 0, Y: 0, Opacity: 0.6},
		{X: 0, Y: 0.5, Opacity: 0}, // 透明粒子不绘制
	}
	g.Rasterize(particles, cfg)

	// X=0 落在中间列，Y=0 落在最后一行
	assert.InDelta(t, 1.0, g.Cells[10*10+5].Intensity, 1e-12)
	assert.Zero(t, g.Cells[0*10+5].Intensity)
}

func TestGrid_RasterizeTopRow(t *testing.T) {
	cfg := particle.DefaultConfig()
	var g Grid
	g.Resize(10, 11)

	g.Rasterize([]particle.Particle{{X: 0, Y: cfg.Lifetime, Opacity: 0.15}}, cfg)
	assert.InDelta(t, 0.25, g.Cells[5].Intensity, 1e-12)
}

func TestGrid_RasterizeOutOfView(t *testing.T) {
	cfg := particle.DefaultConfig()
	var g Grid
	g.Resize(4, 4)

	g.Rasterize([]particle.Particle{{X: 1, Y: 0, Opacity: 0.6}, {X: 0, Y: 2, Opacity: 0.6}}, cfg)
	for _, c := range g.Cells {
		assert.Zero(t, c.Intensity)
	}
}

func TestGrid_ResizeClears(t *testing.T) {
	var g Grid
	g.Resize(3, 2)
	assert.Len(t, g.Cells, 6)
	g.Resize(0, 0)
	assert.Empty(t, g.Cells)
}

func TestShade(t *testing.T) {
	assert.Equal(t, ' ', Shade(0))
	assert.Equal(t, '.', Shade(0.01))
	assert.Equal(t, '@', Shade(1))
	assert.Equal(t, '@', Shade(2))
}

// scriptedEvents 依次返回预设事件，用完后返回 nil（与 Fini 之后的屏幕一致）；
// endless 为 true 时不断返回同一个按键
type scriptedEvents struct {
	events  []tcell.Event
	endless bool
}

func (s *scriptedEvents) PollEvent() tcell.Event {
	if s.endless {
		return tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)
	}
	if len(s.events) == 0 {
		return nil
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev
}

func TestPumpEvents_StopsOnNilEvent(t *testing.T) {
	src := &scriptedEvents{events: []tcell.Event{
		tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone),
	}}
	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)

	done := make(chan struct{})
	go func() {
		pumpEvents(src, events, quit)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pumpEvents did not return after PollEvent returned nil")
	}

	var got []tcell.Event
	for ev := range events {
		got = append(got, ev)
	}
	assert.Len(t, got, 2)
}

func TestPumpEvents_StopsOnQuitWhenChannelFull(t *testing.T) {
	events := make(chan tcell.Event, 1)
	quit := make(chan struct{})

	done := make(chan struct{})
	go func() {
		pumpEvents(&scriptedEvents{endless: true}, events, quit)
		close(done)
	}()

	// 通道填满后泵阻塞在发送上，关闭 quit 必须让它退出
	require.Eventually(t, func() bool { return len(events) == 1 }, time.Second, time.Millisecond)
	close(quit)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pumpEvents did not return after quit was closed")
	}
}
