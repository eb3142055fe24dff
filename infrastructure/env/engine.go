package env

import (
	"errors"
	"fmt"
	"os"

	"faceguard.io/application/constants"
	"faceguard.io/application/liveness"
	"faceguard.io/infrastructure/validator"
	"gopkg.in/yaml.v3"
)

// LoadEngineConfig resolves the engine configuration for a policy. The named
// policy is overlaid with LIVENESS_CONFIG_FILE, then with single-value env
// overrides, and the result is validated.
func LoadEngineConfig(policy string) (liveness.EngineConfig, error) {
	if policy == "" {
		policy = GetString("LIVENESS_POLICY", constants.DEFAULT_POLICY)
	}
	cfg, err := liveness.EngineConfigForPolicy(policy)
	if err != nil {
		return liveness.EngineConfig{}, err
	}

	if path := GetString("LIVENESS_CONFIG_FILE", ""); path != "" {
		cfg, err = applyConfigFile(cfg, path)
		if err != nil {
			return liveness.EngineConfig{}, err
		}
	}
	applyEnvOverrides(&cfg)

	if errs := validator.ValidatorInstance.ValidateStruct(cfg); errs != nil {
		return liveness.EngineConfig{}, fmt.Errorf("invalid liveness config: %w", errors.Join(*errs...))
	}
	return cfg, nil
}

func applyConfigFile(cfg liveness.EngineConfig, path string) (liveness.EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read liveness config file: %w", err)
	}
	// the policy name is fixed by the caller
	policy := cfg.Policy
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse liveness config file: %w", err)
	}
	cfg.Policy = policy
	return cfg, nil
}

func applyEnvOverrides(cfg *liveness.EngineConfig) {
	cfg.Decision.MinRealFrames = GetInt("LIVENESS_MIN_REAL_FRAMES", cfg.Decision.MinRealFrames)
	cfg.Decision.MinSpoofFrames = GetInt("LIVENESS_MIN_SPOOF_FRAMES", cfg.Decision.MinSpoofFrames)
	cfg.Decision.MinConfidence = GetFloat("LIVENESS_MIN_CONFIDENCE", cfg.Decision.MinConfidence)
	cfg.Session.MinFaceWidth = GetInt("LIVENESS_MIN_FACE_WIDTH", cfg.Session.MinFaceWidth)
	cfg.Session.MaxMissingFrames = GetInt("LIVENESS_MAX_MISSING_FRAMES", cfg.Session.MaxMissingFrames)
	cfg.Heuristics.ScreenEdgeEnabled = GetBool("LIVENESS_SCREEN_EDGE", cfg.Heuristics.ScreenEdgeEnabled)
	cfg.Heuristics.PoseEnabled = GetBool("LIVENESS_POSE_CHECK", cfg.Heuristics.PoseEnabled)
}
