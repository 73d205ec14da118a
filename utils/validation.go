package utils

import (
	"sync"

	"studybuddy/services/availability"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the "slot" tag to gin's validator. Use it on
// availability strings, e.g. `binding:"dive,slot"`.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("slot", validateSlot)
		}
	})
}

func validateSlot(fl validator.FieldLevel) bool {
	_, err := availability.ParseSlot(fl.Field().String())
	return err == nil
}
