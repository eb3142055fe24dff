package validator

import (
	"strings"

	"faceguard.io/application/constants"
	"faceguard.io/application/utils"
	"github.com/go-playground/validator/v10"
)

func validateLivenessPolicy(fl validator.FieldLevel) bool {
	policy := strings.ToLower(strings.TrimSpace(fl.Field().String()))
	for _, p := range constants.AVAILABLE_POLICIES {
		if p == policy {
			return true
		}
	}
	return false
}

func validateBase64Image(fl validator.FieldLevel) bool {
	_, err := utils.DecodeBase64Image(fl.Field().String())
	return err == nil
}
