package binder

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// validators are the custom tags every Binder knows about.
var validators = map[string]validator.Func{
	date: dateValidator,
}

// dateValidator accepts calendar dates written as YYYY-MM-DD, so "2021-02-29"
// and "2021-00-10" fail. An empty string passes so that optional fields can be
// left blank; pair it with required when a date must be sent.
func dateValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := time.Parse(time.DateOnly, value)
	return err == nil
}
