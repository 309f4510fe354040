// Package main renders the coffee steam in a terminal with tcell.
//
// The same particle pool that drives the desk scene is projected side-on
// (X horizontal, Y = age vertical) onto the character grid, brightness
// following opacity.
//
// Controls:
//
//	space    - Toggle emitter (lamp on/off) with a click
//	r        - Reseed the pool
//	q / Esc  - Quit
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/deskscene/internal/particle"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	frameInterval = time.Second / 60
	sampleRate    = beep.SampleRate(44100)
	clickFreq     = 1800
	clickDuration = 30 * time.Millisecond

	// 水平方向显示的世界宽度（粒子漂移最大约 ±0.06）
	viewHalfWidth = 0.12
)

// 亮度由低到高的字符
var shades = []rune(" .:-=+*#%@")

var (
	seedFlag  = flag.Int64("seed", 0, "Random seed (0 = time based)")
	countFlag = flag.Int("count", particle.DefaultConfig().Count, "Particle count")
)

// Cell 单个字符格的亮度
type Cell struct {
	Intensity float64 // 0..1
}

// Grid 终端字符网格
type Grid struct {
	Width, Height int
	Cells         []Cell
}

// Resize 调整网格尺寸（仅在尺寸变化时重新分配）
func (g *Grid) Resize(width, height int) {
	if width == g.Width && height == g.Height {
		return
	}
	g.Width, g.Height = width, height
	g.Cells = make([]Cell, max(0, width*height))
}

// Rasterize 把粒子投影到网格，同一格取最亮值
//
// 蒸汽柱底部位于最后一行中央，顶部对应 lifetime 高度。
func (g *Grid) Rasterize(particles []particle.Particle, cfg particle.Config) {
	for i := range g.Cells {
		g.Cells[i] = Cell{}
	}
	if g.Width <= 0 || g.Height <= 0 || cfg.Lifetime <= 0 {
		return
	}
	maxOpacity := cfg.MaxOpacity()
	if maxOpacity <= 0 {
		return
	}

	for i := range particles {
		p := &particles[i]
		if p.Opacity <= 0 {
			continue
		}
		col := int((p.X/viewHalfWidth + 1) / 2 * float64(g.Width))
		row := g.Height - 1 - int(p.Y/cfg.Lifetime*float64(g.Height-1))
		if col < 0 || col >= g.Width || row < 0 || row >= g.Height {
			continue
		}
		cell := &g.Cells[row*g.Width+col]
		cell.Intensity = max(cell.Intensity, p.Opacity/maxOpacity)
	}
}

// Shade 返回亮度对应的字符
func Shade(intensity float64) rune {
	if intensity <= 0 {
		return shades[0]
	}
	idx := int(intensity * float64(len(shades)-1))
	return shades[min(max(idx, 1), len(shades)-1)]
}

// Preview 终端蒸汽预览
type Preview struct {
	screen    tcell.Screen
	animator  *particle.Animator
	config    particle.Config
	grid      Grid
	elapsed   float64
	emitting  bool
	audioInit bool
}

// NewPreview 初始化终端与粒子池
func NewPreview(seed int64, count int) (*Preview, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	cfg := particle.DefaultConfig()
	cfg.Count = max(0, count)
	p := &Preview{
		screen:   screen,
		config:   cfg,
		emitting: true,
	}
	p.reseed(seed)

	// 无声音设备时仍可运行
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Printf("Audio initialization failed: %v", err)
	} else {
		p.audioInit = true
	}
	return p, nil
}

func (p *Preview) reseed(seed int64) {
	if p.animator != nil {
		p.animator.Teardown()
	}
	p.animator = particle.NewAnimator(p.config, rand.New(rand.NewSource(seed)))
}

func (p *Preview) playClick() {
	if !p.audioInit {
		return
	}
	sine, err := generators.SineTone(sampleRate, clickFreq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(clickDuration), sine))
}

// handleInput 返回 false 表示退出
func (p *Preview) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				p.emitting = !p.emitting
				p.playClick()
			case 'r':
				p.reseed(time.Now().UnixNano())
			}
		}
	case *tcell.EventResize:
		p.screen.Sync()
	}
	return true
}

func (p *Preview) draw() {
	p.screen.Clear()
	width, height := p.screen.Size()
	// 最后一行留给状态栏
	p.grid.Resize(width, height-1)
	p.grid.Rasterize(p.animator.Particles(), p.config)

	for row := 0; row < p.grid.Height; row++ {
		for col := 0; col < p.grid.Width; col++ {
			intensity := p.grid.Cells[row*p.grid.Width+col].Intensity
			if intensity <= 0 {
				continue
			}
			level := int32(80 + intensity*175)
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(level, level, level))
			p.screen.SetContent(col, row, Shade(intensity), nil, style)
		}
	}

	emitter := "on"
	if !p.emitting {
		emitter = "off"
	}
	status := fmt.Sprintf(" steam %d particles | lamp %s | space toggle  r reseed  q quit", p.animator.Len(), emitter)
	for i, r := range status {
		if i >= width {
			break
		}
		p.screen.SetContent(i, height-1, r, nil, tcell.StyleDefault.Reverse(true))
	}
	p.screen.Show()
}

// eventSource 是 tcell.Screen 中事件轮询的部分
type eventSource interface {
	PollEvent() tcell.Event
}

// pumpEvents 把终端事件转发到 events，直到 PollEvent 返回 nil（屏幕已 Fini）或 quit 关闭
func pumpEvents(src eventSource, events chan<- tcell.Event, quit <-chan struct{}) {
	defer close(events)
	for {
		ev := src.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-quit:
			return
		}
	}
}

func (p *Preview) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go pumpEvents(p.screen, eventChan, quit)

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !p.handleInput(ev) {
				return
			}
		case <-ticker.C:
			p.elapsed += frameInterval.Seconds()
			p.animator.Advance(p.elapsed, p.emitting)
			p.draw()
		}
	}
}

func (p *Preview) cleanup() {
	p.animator.Teardown()
	if p.audioInit {
		speaker.Close()
	}
	p.screen.Fini()
}

func main() {
	flag.Parse()

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	preview, err := NewPreview(seed, *countFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer preview.cleanup()

	preview.run()
}
