package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance with the meeting_type tag registered
func New() *CustomValidator {
	v := validator.New()
	// errors only on an empty tag name or nil func
	_ = v.RegisterValidation("meeting_type", validateMeetingType)
	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}

// validateMeetingType accepts canonical values and display names ("1-on-1").
// Empty values pass so the tag can be combined with omitempty or required.
func validateMeetingType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := entities.ParseMeetingType(value)
	return err == nil
}
