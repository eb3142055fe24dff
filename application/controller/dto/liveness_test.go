package dto

import (
	"encoding/base64"
	"strings"
	"testing"

	"faceguard.io/infrastructure/validator"
)

func TestValidateLivenessDTOs(t *testing.T) {
	png := base64.StdEncoding.EncodeToString([]byte("\x89PNG\r\n\x1a\nfake"))

	tests := []struct {
		name    string
		payload any
		wantErr bool
		errMsg  string
	}{
		{
			name:    "empty policy uses the default",
			payload: &CreateLivenessSessionDTO{},
			wantErr: false,
		},
		{
			name:    "known policy in any case",
			payload: &CreateLivenessSessionDTO{Policy: "Strict"},
			wantErr: false,
		},
		{
			name:    "unknown policy",
			payload: &CreateLivenessSessionDTO{Policy: "paranoid"},
			wantErr: true,
			errMsg:  "liveness_policy",
		},
		{
			name:    "missing image",
			payload: &SubmitLivenessFrameDTO{},
			wantErr: true,
			errMsg:  "required",
		},
		{
			name:    "image is not base64",
			payload: &SubmitLivenessFrameDTO{Image: "not base64 !!"},
			wantErr: true,
			errMsg:  "base64_image",
		},
		{
			name:    "plain base64 image",
			payload: &SubmitLivenessFrameDTO{Image: png},
			wantErr: false,
		},
		{
			name:    "data uri image",
			payload: &SubmitLivenessFrameDTO{Image: "data:image/png;base64," + png},
			wantErr: false,
		},
		{
			name:    "valid scores",
			payload: &SubmitLivenessScoresDTO{FacePresent: true, FaceWidth: 120, RawScore: 0.92, QualityAdjustment: -0.1},
			wantErr: false,
		},
		{
			name:    "raw score above one",
			payload: &SubmitLivenessScoresDTO{FacePresent: true, FaceWidth: 120, RawScore: 1.2},
			wantErr: true,
			errMsg:  "RawScore",
		},
		{
			name:    "face present without a width",
			payload: &SubmitLivenessScoresDTO{FacePresent: true, RawScore: 0.9},
			wantErr: true,
			errMsg:  "required_if",
		},
		{
			name:    "no face and no width",
			payload: &SubmitLivenessScoresDTO{},
			wantErr: false,
		},
		{
			name:    "negative face width",
			payload: &SubmitLivenessScoresDTO{FaceWidth: -1},
			wantErr: true,
			errMsg:  "FaceWidth",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validator.ValidatorInstance.ValidateStruct(tt.payload)
			if (errs != nil) != tt.wantErr {
				t.Fatalf("ValidateStruct() errors = %v, wantErr %v", errs, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			found := false
			for _, err := range *errs {
				if strings.Contains(err.Error(), tt.errMsg) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected an error mentioning %q, got %v", tt.errMsg, *errs)
			}
		})
	}
}
