package particle

import "math"

// Animator advances a fixed pool of steam particles once per rendered frame.
//
// It is not safe for concurrent use: Advance runs on the render goroutine and
// the renderer reads Particles after Advance returns, within the same frame.
type Animator struct {
	config    Config
	particles []Particle
	torn      bool
}

// NewAnimator allocates cfg.Count particles and draws every particle's
// Params independently from src.
func NewAnimator(cfg Config, src Source) *Animator {
	count := cfg.Count
	if count < 0 {
		count = 0
	}

	params := make([]Params, count)
	for i := range params {
		params[i] = Params{
			BaseX:       Uniform(src, cfg.BaseSpread),
			BaseZ:       Uniform(src, cfg.BaseSpread),
			RiseSpeed:   Uniform(src, cfg.RiseSpeed),
			PhaseOffset: Uniform(src, cfg.Phase),
		}
	}

	return NewAnimatorFromParams(cfg, params)
}

// NewAnimatorFromParams builds a pool from pre-computed parameters.
// The pool size is len(params); cfg.Count is overwritten to match.
func NewAnimatorFromParams(cfg Config, params []Params) *Animator {
	cfg.Count = len(params)

	a := &Animator{
		config:    cfg,
		particles: make([]Particle, len(params)),
	}
	for i, p := range params {
		a.particles[i] = Particle{Params: p}
		a.recycle(&a.particles[i])
	}
	return a
}

// Config returns the constants the pool was built with.
func (a *Animator) Config() Config {
	return a.config
}

// Len returns the pool size (0 after Teardown).
func (a *Animator) Len() int {
	return len(a.particles)
}

// Particles returns the pool itself. The slice is only valid until the next
// Advance and must not be modified by the caller.
func (a *Animator) Particles() []Particle {
	return a.particles
}

// Advance moves every particle one frame forward.
//
// elapsed is the host clock in seconds; emitterActive selects the opacity
// baseline (lamp on / off). Particles past their lifetime, or fully faded,
// are recycled in the same call.
func (a *Animator) Advance(elapsed float64, emitterActive bool) {
	if a.torn {
		return
	}

	c := &a.config
	baseOpacity := c.InactiveOpacity
	if emitterActive {
		baseOpacity = c.ActiveOpacity
	}

	// 同一帧内所有粒子共用的三角函数参数
	swayX := elapsed * c.SwayFreqX
	swayZ := elapsed * c.SwayFreqZ

	for i := range a.particles {
		p := &a.particles[i]

		p.Age += p.RiseSpeed
		p.Y = p.Age

		drift := c.DriftAmplitude * (p.Age * c.DriftGain)
		p.X = p.BaseX + math.Sin(swayX+p.PhaseOffset)*drift
		p.Z = p.BaseZ + math.Cos(swayZ+p.PhaseOffset)*drift

		p.Scale = c.BaseScale + p.Age*c.GrowthRate
		p.Opacity = math.Max(0, baseOpacity-p.Age*c.FadeRate)

		if p.Age > c.Lifetime || p.Opacity <= 0 {
			a.recycle(p)
		}
	}
}

// recycle puts a particle back at its base. Opacity is left as computed:
// it is already zero whenever the fade model triggered the reset.
func (a *Animator) recycle(p *Particle) {
	p.Age = 0
	p.X = p.BaseX
	p.Y = 0
	p.Z = p.BaseZ
	p.Scale = a.config.BaseScale
}

// Teardown releases the pool. Further Advance calls are no-ops.
// Calling Teardown more than once is safe.
func (a *Animator) Teardown() {
	a.torn = true
	a.particles = nil
}

// TornDown reports whether Teardown has been called.
func (a *Animator) TornDown() bool {
	return a.torn
}
