// Package validate wraps a shared validator/v10 instance for the request DTOs.
package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// v is created once at package load. Custom type or tag registrations belong
// in an init() here so they exist before the first Struct call.
var v = validator.New()

// Struct checks s against its validate tags and flattens all violations into
// one readable error, suitable for returning to the API caller as-is.
func Struct(s interface{}) error {
	if err := v.Struct(s); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		var msgs []string
		for _, fe := range ve {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s'", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return nil
}
