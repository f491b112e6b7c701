package controller

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	e "github.com/gartstein/hiringboard/internal/company/errors"
	"github.com/gartstein/hiringboard/internal/company/models"
	"github.com/go-playground/validator/v10"
)

// newValidator returns a validator that reports fields by their json name
// and knows the "status" tag.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
		return models.Status(fl.Field().String()).Valid()
	})
	return v
}

// validateCompany checks company against its field rules and returns a
// *e.ValidationError listing every failing field.
func (s *CompanyService) validateCompany(company *models.Company) error {
	err := s.validate.Struct(company)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", e.ErrInvalidInput, err)
	}

	verr := e.NewValidationError()
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), fieldMessage(fe))
	}
	return verr
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return e.MsgRequired
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "status":
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(fe.Value()))
	default:
		return "Invalid value."
	}
}
