package particle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 35, cfg.Count)
	assert.Equal(t, Range{Min: -0.015, Max: 0.015}, cfg.BaseSpread)
	assert.Equal(t, Range{Min: 0.004, Max: 0.007}, cfg.RiseSpeed)
	assert.Equal(t, Range{Min: 0, Max: 100}, cfg.Phase)
	assert.Equal(t, 0.5, cfg.Lifetime)
	assert.Equal(t, 0.6, cfg.ActiveOpacity)
	assert.Equal(t, 0.15, cfg.InactiveOpacity)
	assert.Equal(t, 1.2, cfg.FadeRate)
	assert.Equal(t, 0.6, cfg.MaxOpacity())
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"negative count", func(c *Config) { c.Count = -1 }},
		{"inverted spread", func(c *Config) { c.BaseSpread = Range{Min: 1, Max: -1} }},
		{"inverted speed", func(c *Config) { c.RiseSpeed = Range{Min: 0.01, Max: 0.001} }},
		{"negative speed", func(c *Config) { c.RiseSpeed = Range{Min: -0.01, Max: 0.001} }},
		{"zero lifetime", func(c *Config) { c.Lifetime = 0 }},
		{"zero fade", func(c *Config) { c.FadeRate = 0 }},
		{"opacity above one", func(c *Config) { c.ActiveOpacity = 1.5 }},
		{"negative scale", func(c *Config) { c.BaseScale = -0.1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
