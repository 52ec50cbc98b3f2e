package session

import (
	"fmt"
	"strings"

	pkgerrors "github.com/bookhaven/bookstore/pkg/errors"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// RegisterInput carries the credentials for a new account.
type RegisterInput struct {
	Username string `validate:"required,max=64"`
	Password string `validate:"required,max=128"`
}

// LoginInput carries the credentials for an existing account.
type LoginInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// AddToCartInput identifies a catalog book and how many copies to add.
type AddToCartInput struct {
	BookID   int64 `validate:"required,gt=0"`
	Quantity int   `validate:"gte=1"`
}

func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
	}
	for _, fieldErr := range errs {
		if fieldErr.Field() == "Quantity" {
			return pkgerrors.New(pkgerrors.CodeInvalidQuantity,
				"quantity must be at least 1")
		}
	}
	fields := make([]string, 0, len(errs))
	for _, fieldErr := range errs {
		fields = append(fields, fmt.Sprintf("%s %s", strings.ToLower(fieldErr.Field()), validationMessage(fieldErr)))
	}
	return pkgerrors.New(pkgerrors.CodeValidation, strings.Join(fields, "; "))
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	}
	return "is invalid"
}
