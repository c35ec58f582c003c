// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("account_type", validateAccountType)
		_ = v.RegisterValidation("account_status", validateAccountStatus)
		_ = v.RegisterValidation("payoff_strategy", validatePayoffStrategy)
		_ = v.RegisterValidation("positive_decimal", validatePositiveDecimal)
	}
}

func validateAccountType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "checking", "savings", "investment", "credit_card", "loan",
		"line_of_credit", "utility", "insurance", "subscription":
		return true
	}
	return false
}

func validateAccountStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "active", "inactive", "closed":
		return true
	}
	return false
}

func validatePayoffStrategy(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "snowball", "avalanche":
		return true
	}
	return false
}

func validatePositiveDecimal(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	return ok && d.IsPositive()
}
