// Package validation checks request shapes before they reach a store.
// Every handler calls one of the exported functions and maps the returned
// *types.ValidationError to a 400 response.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pageza/foodtrace/backend/internal/types"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON name so errors line up with request bodies.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Register validates a registration request.
func Register(req *types.RegisterRequest) error {
	return check(req)
}

// Login validates a login request.
func Login(req *types.LoginRequest) error {
	return check(req)
}

// ChangePassword validates a password change request.
func ChangePassword(req *types.ChangePasswordRequest) error {
	return check(req)
}

// DeleteUser validates an account deletion request.
func DeleteUser(req *types.DeleteUserRequest) error {
	return check(req)
}

// Item validates the writable fields of an item.
func Item(req *types.ItemRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)
	req.CountryOfOrigin = strings.TrimSpace(req.CountryOfOrigin)
	req.CountryOfProvenance = strings.TrimSpace(req.CountryOfProvenance)
	return check(req)
}

// ImageUpload validates an image upload request.
func ImageUpload(req *types.ImageUploadRequest) error {
	return check(req)
}

func check(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate %T: %w", s, err)
	}
	out := &types.ValidationError{Fields: make([]types.FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, types.FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "eqfield":
		return "must match " + lowerFirst(fe.Param())
	case "nefield":
		return "must differ from " + lowerFirst(fe.Param())
	case "eq":
		return "must be confirmed"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
