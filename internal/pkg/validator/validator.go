package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/innovation-atlas/internal/pkg/errors"
)

var (
	validate     *validator.Validate
	phonePattern = regexp.MustCompile(`^\+?[0-9\s\-()]+$`)
)

func init() {
	validate = validator.New()

	// в деталях ошибки используем имена полей из JSON
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := validate.RegisterValidation("phone", validatePhone); err != nil {
		panic(fmt.Sprintf("register phone validation: %v", err))
	}
	if err := validate.RegisterValidation("published", validatePublished); err != nil {
		panic(fmt.Sprintf("register published validation: %v", err))
	}
}

func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

// validatePublished - в срезе структур хотя бы у одного элемента IsPublished == true
func validatePublished(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return false
	}
	for i := 0; i < field.Len(); i++ {
		item := reflect.Indirect(field.Index(i))
		if item.Kind() != reflect.Struct {
			continue
		}
		flag := item.FieldByName("IsPublished")
		if flag.IsValid() && flag.Kind() == reflect.Bool && flag.Bool() {
			return true
		}
	}
	return false
}

// Validate - валидация структуры. Ошибки превращаются в ErrValidation с описанием по полям.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.ErrInvalidRequest.Wrap(err)
	}

	details := make(map[string]interface{}, len(verrs))
	for _, fe := range verrs {
		details[fieldPath(fe)] = describe(fe)
	}
	return apperrors.ErrValidation.WithDetails(details).Wrap(err)
}

// fieldPath убирает имя корневой структуры: "CreateObjectRequest.phones[0].number" -> "phones[0].number"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s items", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at most %s items", fe.Param())
		}
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "url":
		return "must be a valid URL"
	case "email":
		return "must be a valid email"
	case "phone":
		return "must be a valid phone number"
	case "published":
		return "at least one translation must be published"
	default:
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}
