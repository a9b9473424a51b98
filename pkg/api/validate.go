package api

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrymomot/notifyhub/pkg/notifications"
)

// v is the package-level singleton validator. Custom type registrations are
// made during init, before the first call to validateStruct.
var v = validator.New()

func init() {
	_ = v.RegisterValidation("notificationtype", func(fl validator.FieldLevel) bool {
		return notifications.Type(fl.Field().String()).Valid()
	})
}

// validateStruct validates s using its validate tags and returns a
// human-readable error.
func validateStruct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s'", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
