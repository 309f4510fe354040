// Package main provides a steam particle viewer for tuning the coffee mug
// steam in isolation, enlarged and without the rest of the desk scene.
//
// Usage:
//
//	go run ./cmd/particles [flags]
//
// Flags:
//
//	--seed <n>      Random seed (0 = time based)
//	--count <n>     Particle count (default 35)
//	--verbose       Enable verbose logging
//
// Controls:
//
//	L          - Toggle emitter (lamp on/off)
//	R          - Reseed the pool
//	+ / -      - Change particle count by 5 (re-initialises the pool)
//	P          - Pause the clock
//	Q/Escape   - Quit
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/deskscene/internal/particle"
	"github.com/gonewx/deskscene/pkg/components"
	"github.com/gonewx/deskscene/pkg/systems"
	"github.com/gonewx/deskscene/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	screenWidth  = 1024
	screenHeight = 768

	countStep = 5
	maxCount  = 500
)

var (
	seedFlag    = flag.Int64("seed", 0, "Random seed (0 = time based)")
	countFlag   = flag.Int("count", particle.DefaultConfig().Count, "Particle count")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

var errQuit = errors.New("quit requested")

// 镜头贴近蒸汽柱，使 0.5 高的粒子柱占满大半屏幕
var (
	viewerEye    = mgl64.Vec3{0, 0.28, 0.75}
	viewerTarget = mgl64.Vec3{0, 0.22, 0}
)

// SteamViewer implements ebiten.Game for the steam viewer
type SteamViewer struct {
	config   particle.Config
	rng      *rand.Rand
	seed     int64
	steam    components.SteamComponent
	world    mgl64.Mat4
	proj     utils.Projector
	elapsed  float64
	emitting bool
	paused   bool

	vertices []ebiten.Vertex
	indices  []uint16
}

// NewSteamViewer creates a viewer with a fresh pool
func NewSteamViewer(seed int64, count int) *SteamViewer {
	v := &SteamViewer{
		config:   particle.DefaultConfig(),
		world:    mgl64.Ident4(),
		proj:     utils.NewProjector(viewerEye, viewerTarget, 45, 0.05, 10, screenWidth, screenHeight),
		emitting: true,
		steam:    components.SteamComponent{Texture: utils.NewCloudTexture()},
	}
	v.config.Count = clampCount(count)
	v.reseed(seed)
	return v
}

func clampCount(n int) int {
	return max(0, min(n, maxCount))
}

// reseed 用新的种子重建粒子池
func (v *SteamViewer) reseed(seed int64) {
	v.seed = seed
	v.rng = rand.New(rand.NewSource(seed))
	v.rebuild()
}

// rebuild 释放旧粒子池并按当前配置重新初始化
func (v *SteamViewer) rebuild() {
	if v.steam.Animator != nil {
		v.steam.Animator.Teardown()
	}
	v.steam.Animator = particle.NewAnimator(v.config, v.rng)
	log.Printf("[SteamViewer] pool rebuilt: count=%d seed=%d", v.config.Count, v.seed)
}

// Update handles keys and advances the pool
func (v *SteamViewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		v.emitting = !v.emitting
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		v.paused = !v.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.reseed(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		v.setCount(v.config.Count + countStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		v.setCount(v.config.Count - countStep)
	}

	v.step(1.0 / 60.0)
	return nil
}

// step advances the clock and the pool by one frame unless paused
func (v *SteamViewer) step(dt float64) {
	if v.paused {
		return
	}
	v.elapsed += dt
	v.steam.Animator.Advance(v.elapsed, v.emitting)
}

func (v *SteamViewer) setCount(n int) {
	n = clampCount(n)
	if n == v.config.Count {
		return
	}
	v.config.Count = n
	v.rebuild()
}

// Draw renders the steam column and the HUD
func (v *SteamViewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{18, 16, 20, 255})

	visible := 0
	drawBatch := func(vertices []ebiten.Vertex, indices []uint16) {
		if len(indices) == 0 {
			return
		}
		visible += len(indices) / 6
		screen.DrawTriangles(vertices, indices, v.steam.Texture, &ebiten.DrawTrianglesOptions{
			Blend: ebiten.BlendLighter,
		})
	}
	v.vertices, v.indices = systems.AppendSteamQuads(v.vertices[:0], v.indices[:0], &v.steam, v.world, v.proj, drawBatch)
	drawBatch(v.vertices, v.indices)

	emitter := "ON"
	if !v.emitting {
		emitter = "OFF"
	}
	ebitenutil.DebugPrintAt(screen, "Steam Viewer", 10, 10)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Particles: %d  Emitter: %s  Seed: %d", v.steam.Animator.Len(), emitter, v.seed), 10, 30)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Clock: %.2fs  Visible: %d", v.elapsed, visible), 10, 50)
	if v.paused {
		ebitenutil.DebugPrintAt(screen, "PAUSED (Press P to resume)", screenWidth-200, 10)
	}
	ebitenutil.DebugPrintAt(screen, "L = Emitter  R = Reseed  +/- = Count  P = Pause  Q = Quit", 10, screenHeight-30)
}

// Layout returns the viewer's logical screen size
func (v *SteamViewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	flag.Parse()

	// 默认静音运行；如需详细调试，传入 --verbose
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	viewer := NewSteamViewer(seed, *countFlag)

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Steam Particle Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(viewer); err != nil && !errors.Is(err, errQuit) {
		log.Fatal(err)
	}
	viewer.steam.Animator.Teardown()
	log.Println("Steam viewer closed")
}
