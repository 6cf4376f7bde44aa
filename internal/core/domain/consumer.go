package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
)

type ConsumerStatus string

const (
	ConsumerActive   ConsumerStatus = "ACTIVE"
	ConsumerInactive ConsumerStatus = "INACTIVE"
)

type Consumer struct {
	ID            uuid.UUID
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Status        ConsumerStatus
	PaymentStatus string
}

func (c *Consumer) Name() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Registration is the payload for creating a new consumer at the kiosk.
// Phone is optional but must be a valid international number when present.
type Registration struct {
	FirstName string `json:"first_name" validate:"required,max=50,person_name"`
	LastName  string `json:"last_name" validate:"required,max=50,person_name"`
	Email     string `json:"email" validate:"required,email,max=100,real_email_domain"`
	Phone     string `json:"phone" validate:"omitempty,intl_phone"`
}

// FieldError is a single field-level validation failure, surfaced to the
// kiosk as-is. Validation never reaches the payment step.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "invalid registration: " + strings.Join(parts, "; ")
}

var (
	personNameRe = regexp.MustCompile(`^[A-Za-z]+(?:[ -][A-Za-z]+)*$`)

	registrationValidator = newRegistrationValidator()
)

func newRegistrationValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("person_name", func(fl validator.FieldLevel) bool {
		return personNameRe.MatchString(fl.Field().String())
	})

	// example.com is reserved for seeded test profiles and must never be
	// registered from a kiosk.
	_ = v.RegisterValidation("real_email_domain", func(fl validator.FieldLevel) bool {
		at := strings.LastIndex(fl.Field().String(), "@")
		if at < 0 {
			return false
		}
		domain := strings.ToLower(fl.Field().String()[at+1:])
		return domain != "example.com"
	})

	_ = v.RegisterValidation("intl_phone", func(fl validator.FieldLevel) bool {
		num, err := phonenumbers.Parse(fl.Field().String(), "")
		if err != nil {
			return false
		}
		return phonenumbers.IsValidNumber(num)
	})

	return v
}

// Validate checks the registration against the consumer schema and returns
// field-level errors the kiosk can show next to each input.
func (r Registration) Validate() error {
	err := registrationValidator.Struct(r)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fieldName(fe.Field()), Message: fieldMessage(fe)})
	}

	return out
}

func fieldName(structField string) string {
	switch structField {
	case "FirstName":
		return "first_name"
	case "LastName":
		return "last_name"
	case "Email":
		return "email"
	case "Phone":
		return "phone"
	}
	return strings.ToLower(structField)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "person_name":
		return "may only contain letters, spaces and hyphens"
	case "email":
		return "must be a valid email address"
	case "real_email_domain":
		return "example.com addresses are reserved"
	case "intl_phone":
		return "must be a valid international phone number"
	}
	return "is invalid"
}
