package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kioskpos/bundle_service/internal/core/domain"
)

func validRegistration() domain.Registration {
	return domain.Registration{
		FirstName: "Anna-Maria",
		LastName:  "van Dyk",
		Email:     "anna.vandyk@gmail.com",
		Phone:     "+4915123456789",
	}
}

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()

	verrs, ok := err.(domain.ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T: %v", err, err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field)
	}
	return fields
}

func TestRegistrationValidate_Valid(t *testing.T) {
	assert.NoError(t, validRegistration().Validate())
}

func TestRegistrationValidate_PhoneIsOptional(t *testing.T) {
	reg := validRegistration()
	reg.Phone = ""

	assert.NoError(t, reg.Validate())
}

func TestRegistrationValidate_NameCharset(t *testing.T) {
	reg := validRegistration()
	reg.FirstName = "R2D2"

	err := reg.Validate()
	assert.Contains(t, fieldsOf(t, err), "first_name")
}

func TestRegistrationValidate_NameLength(t *testing.T) {
	reg := validRegistration()
	reg.LastName = strings.Repeat("a", 51)

	err := reg.Validate()
	assert.Contains(t, fieldsOf(t, err), "last_name")
}

func TestRegistrationValidate_ExampleDomainRejected(t *testing.T) {
	reg := validRegistration()
	reg.Email = "tester@example.com"

	err := reg.Validate()
	assert.Contains(t, fieldsOf(t, err), "email")
}

func TestRegistrationValidate_EmailTooLong(t *testing.T) {
	reg := validRegistration()
	reg.Email = strings.Repeat("a", 95) + "@gmail.com"

	err := reg.Validate()
	assert.Contains(t, fieldsOf(t, err), "email")
}

func TestRegistrationValidate_InvalidPhone(t *testing.T) {
	reg := validRegistration()
	reg.Phone = "not-a-phone"

	err := reg.Validate()
	assert.Contains(t, fieldsOf(t, err), "phone")
}

func TestRegistrationValidate_PhoneWithoutCountryCode(t *testing.T) {
	reg := validRegistration()
	reg.Phone = "015123456789"

	err := reg.Validate()
	assert.Contains(t, fieldsOf(t, err), "phone")
}
