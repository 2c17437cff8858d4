package booking

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"roombook/internal/room"
)

// RegisterBindings installs booking-specific rules on gin's request
// validator. Call once before the router starts binding requests.
func RegisterBindings() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("roomtype", func(fl validator.FieldLevel) bool {
		return room.ValidType(fl.Field().String())
	})
}
