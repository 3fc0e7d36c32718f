package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/bankops-oss/maker_checker_app/internal/core/domain"
)

// RegisterCustomValidators installs request-level validations on gin's
// default binding validator. Call once at startup before serving.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// txntype restricts a field to the known transaction types.
	_ = v.RegisterValidation("txntype", func(fl validator.FieldLevel) bool {
		value := domain.TransactionType(fl.Field().String())
		for _, t := range domain.AllTransactionTypes {
			if t == value {
				return true
			}
		}
		return false
	})
}
