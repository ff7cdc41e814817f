package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs the custom binding validators. It must run
// once before any route using them is served.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("strongpassword", validStrongPassword); err != nil {
		return fmt.Errorf("failed to register password validator: %w", err)
	}

	if err := v.RegisterValidation("realname", validRealName); err != nil {
		return fmt.Errorf("failed to register real-name validator: %w", err)
	}

	return nil
}

// validStrongPassword requires at least 8 characters with at least one
// uppercase letter and one digit.
func validStrongPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 {
		return false
	}

	var hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	return hasUpper && hasDigit
}

// validRealName allows letters in any script, spaces, hyphens and
// apostrophes. Digits and symbols are rejected.
func validRealName(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsLetter(r), unicode.IsSpace(r), r == '-', r == '\'':
		default:
			return false
		}
	}
	return true
}

// handleBindError writes a 400 with a field-level message when the request
// payload fails binding or validation.
func handleBindError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	message := "invalid request payload"
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		message = messageForField(validationErrs[0])
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"status":  "error",
		"message": message,
	})
}

func messageForField(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "alphanum":
		return fmt.Sprintf("%s must contain only letters and digits", field)
	case "numeric":
		return fmt.Sprintf("%s must contain only digits", field)
	case "strongpassword":
		return fmt.Sprintf("%s must be at least 8 characters with an uppercase letter and a digit", field)
	case "realname":
		return fmt.Sprintf("%s must contain only letters, spaces, hyphens and apostrophes", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
