package systems

import (
	"strings"
	"testing"

	"github.com/gonewx/deskscene/pkg/components"
	"github.com/gonewx/deskscene/pkg/config"
	"github.com/gonewx/deskscene/pkg/ecs"
	"github.com/gonewx/deskscene/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bootFixture struct {
	em      *ecs.EntityManager
	cs      *CameraSystem
	bs      *BootSystem
	monitor *components.MonitorComponent
	cfg     config.BootConfig
}

func newBootFixture(t *testing.T) *bootFixture {
	t.Helper()
	em, scene := newTestScene(t)
	cs := NewCameraSystem(em, scene.Camera)
	cfg := config.DefaultSceneConfig().Boot
	m, ok := ecs.GetComponent[*components.MonitorComponent](em, scene.Monitor)
	require.True(t, ok)
	return &bootFixture{em: em, cs: cs, bs: NewBootSystem(em, cs, cfg), monitor: m, cfg: cfg}
}

func (f *bootFixture) zoom(on bool) {
	cam, _ := f.cs.Camera()
	cam.Zoomed = on
}

// bootToLogin 拉近并等待开机完成
func (f *bootFixture) bootToLogin(t *testing.T) {
	t.Helper()
	f.zoom(true)
	frames := int(f.cfg.Duration/frameDT) + 5
	for i := 0; i < frames; i++ {
		f.bs.Update(frameDT, utils.InputState{})
	}
	require.Equal(t, components.BootLogin, f.monitor.Phase)
}

func (f *bootFixture) typeText(s string) {
	f.bs.Update(frameDT, utils.InputState{Runes: []rune(s)})
}

func TestBootSystem_StaysOffUntilZoomed(t *testing.T) {
	f := newBootFixture(t)
	f.bs.Update(frameDT, utils.InputState{})
	assert.Equal(t, components.BootOff, f.monitor.Phase)
	assert.Empty(t, MonitorLines(f.monitor, "guest"))
}

func TestBootSystem_LoadingProgress(t *testing.T) {
	f := newBootFixture(t)
	f.zoom(true)

	f.bs.Update(frameDT, utils.InputState{})
	assert.Equal(t, components.BootLoading, f.monitor.Phase)

	quarter := int(f.cfg.Duration / 4 / frameDT)
	for i := 0; i < quarter; i++ {
		f.bs.Update(frameDT, utils.InputState{})
	}
	linear := f.monitor.Elapsed / f.cfg.Duration
	assert.InDelta(t, utils.EaseInOutCubic(linear), f.monitor.Progress, 1e-9)
	assert.Less(t, f.monitor.Progress, linear, "progress bar starts slow")

	for i := 0; i < quarter; i++ {
		f.bs.Update(frameDT, utils.InputState{})
	}
	assert.InDelta(t, 0.5, f.monitor.Progress, 0.1)
	assert.Contains(t, strings.Join(MonitorLines(f.monitor, "guest"), "\n"), "BOOTING")
}

func TestBootSystem_CorrectPassword(t *testing.T) {
	f := newBootFixture(t)
	f.bootToLogin(t)

	f.typeText("coffee")
	assert.Equal(t, "coffee", string(f.monitor.Input))
	assert.Contains(t, MonitorLines(f.monitor, "guest"), "PASSWORD: ******_")

	f.bs.Update(frameDT, utils.InputState{Enter: true})
	assert.Equal(t, components.BootDesktop, f.monitor.Phase)
	assert.Equal(t, MessageGranted, f.monitor.Message)
	assert.Contains(t, MonitorLines(f.monitor, "guest"), "WELCOME, GUEST")
}

func TestBootSystem_WrongPassword(t *testing.T) {
	f := newBootFixture(t)
	f.bootToLogin(t)

	f.typeText("tea")
	f.bs.Update(frameDT, utils.InputState{Enter: true})

	assert.Equal(t, components.BootLogin, f.monitor.Phase)
	assert.Equal(t, MessageDenied, f.monitor.Message)
	assert.Empty(t, f.monitor.Input)

	// 提示在配置的时间后消失
	frames := int(f.cfg.MessageSeconds/frameDT) + 2
	for i := 0; i < frames; i++ {
		f.bs.Update(frameDT, utils.InputState{})
	}
	assert.Empty(t, f.monitor.Message)
}

func TestBootSystem_BackspaceAndLimit(t *testing.T) {
	f := newBootFixture(t)
	f.bootToLogin(t)

	f.typeText(strings.Repeat("x", MaxPasswordLength+4))
	assert.Len(t, f.monitor.Input, MaxPasswordLength)

	f.bs.Update(frameDT, utils.InputState{Backspace: true})
	assert.Len(t, f.monitor.Input, MaxPasswordLength-1)

	f.typeText("\t")
	assert.Len(t, f.monitor.Input, MaxPasswordLength-1, "control characters are ignored")
}

func TestBootSystem_ZoomOutResets(t *testing.T) {
	f := newBootFixture(t)
	f.bootToLogin(t)
	f.typeText("cof")

	f.zoom(false)
	f.bs.Update(frameDT, utils.InputState{})

	assert.Equal(t, components.BootOff, f.monitor.Phase)
	assert.Empty(t, f.monitor.Input)
	assert.Equal(t, 0.0, f.monitor.Progress)
}
