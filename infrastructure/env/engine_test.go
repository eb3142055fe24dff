package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"faceguard.io/application/liveness"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEngineConfigPolicies(t *testing.T) {
	t.Setenv("LIVENESS_CONFIG_FILE", "")

	for _, policy := range []string{"strict", "balanced", "permissive"} {
		t.Run(policy, func(t *testing.T) {
			cfg, err := LoadEngineConfig(policy)
			require.NoError(t, err)
			assert.Equal(t, policy, cfg.Policy)
		})
	}

	_, err := LoadEngineConfig("lenient")
	assert.Error(t, err)
}

func TestLoadEngineConfigDefaultsToEnvPolicy(t *testing.T) {
	t.Setenv("LIVENESS_POLICY", "strict")
	cfg, err := LoadEngineConfig("")
	require.NoError(t, err)
	assert.Equal(t, liveness.StrictEngineConfig().Decision.MinRealFrames, cfg.Decision.MinRealFrames)
}

func TestLoadEngineConfigFileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "liveness.yaml")
	content := []byte(`
policy: permissive
decision:
  minRealFrames: 12
  minConfidence: 9
fusion:
  penaltyTiers:
    - name: severe
      threshold: -0.5
      multiplier: 0.5
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv("LIVENESS_CONFIG_FILE", path)
	t.Setenv("LIVENESS_MIN_SPOOF_FRAMES", "4")
	t.Setenv("LIVENESS_MIN_FACE_WIDTH", "not-a-number")

	cfg, err := LoadEngineConfig("balanced")
	require.NoError(t, err)

	assert.Equal(t, "balanced", cfg.Policy)
	assert.Equal(t, 12, cfg.Decision.MinRealFrames)
	assert.Equal(t, 9.0, cfg.Decision.MinConfidence)
	assert.Equal(t, 4, cfg.Decision.MinSpoofFrames)
	assert.Equal(t, liveness.DefaultSessionConfig().MinFaceWidth, cfg.Session.MinFaceWidth)
	assert.Len(t, cfg.Fusion.PenaltyTiers, 1)
	// untouched sections keep the policy values
	assert.Equal(t, liveness.DefaultSmootherConfig(), cfg.Smoother)
}

func TestLoadEngineConfigRejectsInvalidValues(t *testing.T) {
	t.Setenv("LIVENESS_CONFIG_FILE", "")
	t.Setenv("LIVENESS_MIN_REAL_FRAMES", "0")
	_, err := LoadEngineConfig("balanced")
	assert.ErrorContains(t, err, "MinRealFrames")
}

func TestGetters(t *testing.T) {
	t.Setenv("FG_INT", "42")
	t.Setenv("FG_FLOAT", "0.25")
	t.Setenv("FG_BOOL", "true")
	t.Setenv("FG_DURATION", "90s")

	assert.Equal(t, 42, GetInt("FG_INT", 1))
	assert.Equal(t, 1, GetInt("FG_MISSING", 1))
	assert.Equal(t, 0.25, GetFloat("FG_FLOAT", 0))
	assert.True(t, GetBool("FG_BOOL", false))
	assert.Equal(t, 90*time.Second, GetDuration("FG_DURATION", time.Second))
	assert.Equal(t, "fallback", GetString("FG_MISSING", "fallback"))
}
