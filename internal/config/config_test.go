package config

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, "pinned", cfg.Logger.ServiceName)
	assert.Equal(t, "pdf", cfg.Render.Format)
	assert.InDelta(t, 0.2, cfg.Render.StrokeWidth, 1e-12)
	assert.False(t, cfg.Render.DebugRawUnits)
	require.NoError(t, cfg.Validate())
}

func TestNewConfigFromViper(t *testing.T) {
	t.Run("yaml overrides defaults", func(t *testing.T) {
		v := viper.New()
		SetDefaults(v)
		v.SetConfigType("yaml")
		err := v.ReadConfig(bytes.NewBufferString(`
logger:
  level: debug
render:
  format: svg
  stroke_width: 0.5
`))
		require.NoError(t, err)

		cfg, err := NewConfigFromViper(v)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Logger.Level)
		assert.Equal(t, "svg", cfg.Render.Format)
		assert.InDelta(t, 0.5, cfg.Render.StrokeWidth, 1e-12)
		assert.Equal(t, "console", cfg.Logger.Format)
	})

	t.Run("validation failure", func(t *testing.T) {
		v := viper.New()
		SetDefaults(v)
		v.Set("render.format", "png")

		cfg, err := NewConfigFromViper(v)
		assert.Nil(t, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
		assert.Contains(t, err.Error(), "render.format")
	})

	t.Run("negative stroke width", func(t *testing.T) {
		v := viper.New()
		SetDefaults(v)
		v.Set("render.stroke_width", -1)

		_, err := NewConfigFromViper(v)
		require.Error(t, err)
	})
}
