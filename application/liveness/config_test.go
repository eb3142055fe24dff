package liveness

import (
	"testing"

	"faceguard.io/infrastructure/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetsAreValid(t *testing.T) {
	for _, cfg := range []EngineConfig{DefaultEngineConfig(), StrictEngineConfig(), PermissiveEngineConfig()} {
		t.Run(cfg.Policy, func(t *testing.T) {
			assert.Nil(t, validator.ValidatorInstance.ValidateStruct(cfg))
		})
	}
}

func TestPresetsOrderedByStrictness(t *testing.T) {
	strict, balanced, permissive := StrictEngineConfig(), DefaultEngineConfig(), PermissiveEngineConfig()
	assert.Greater(t, strict.Decision.MinRealFrames, balanced.Decision.MinRealFrames)
	assert.Greater(t, balanced.Decision.MinRealFrames, permissive.Decision.MinRealFrames)
	assert.Less(t, strict.Decision.MinSpoofFrames, permissive.Decision.MinSpoofFrames)
}

func TestInvalidConfigFailsValidation(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.Decision.MinRealFrames = 0
	cfg.Smoother.SwapDropScore = 0.9
	errs := validator.ValidatorInstance.ValidateStruct(cfg)
	require.NotNil(t, errs)
	assert.Len(t, *errs, 2)
}

func TestEngineConfigForPolicy(t *testing.T) {
	tests := []struct {
		name    string
		policy  string
		want    string
		wantErr bool
	}{
		{name: "empty", policy: "", want: "balanced"},
		{name: "strict", policy: "strict", want: "strict"},
		{name: "uppercase", policy: " PERMISSIVE ", want: "permissive"},
		{name: "unknown", policy: "lenient", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := EngineConfigForPolicy(tt.policy)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Policy)
		})
	}
}
