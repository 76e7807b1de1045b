package form

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MsgNotBlank      = "This value should not be blank."
	MsgInvalid       = "This value is not valid."
	MsgAlreadyUsed   = "This value is already used."
	MsgInvalidEmail  = "This value is not a valid email address."
	MsgUploadMissing = "Please upload an image."
	MsgNotImage      = "This file is not a valid image."
	MsgMalformed     = "The request body is not valid JSON."
)

var validate = newValidator()

// newValidator reports fields by their json name so tree keys match the payload.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate runs the struct rules of payload and returns the resulting tree,
// which is empty when the payload is valid.
func Validate(payload any) *Node {
	tree := &Node{}
	err := validate.Struct(payload)
	if err == nil {
		return tree
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			tree.AddField(fe.Field(), fieldError(fe))
		}
		return tree
	}
	tree.Add(MsgInvalid)
	return tree
}

// fieldError converts a single FieldError into a client-facing message.
func fieldError(fe validator.FieldError) string {
	text := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return MsgNotBlank
	case "email":
		return MsgInvalidEmail
	case "max":
		if text {
			return fmt.Sprintf("This value is too long. It should have %s characters or less.", fe.Param())
		}
		return fmt.Sprintf("This value should be %s or less.", fe.Param())
	case "min":
		if text {
			return fmt.Sprintf("This value is too short. It should have %s characters or more.", fe.Param())
		}
		return fmt.Sprintf("This value should be %s or more.", fe.Param())
	case "gte":
		return fmt.Sprintf("This value should be greater than or equal to %s.", fe.Param())
	case "lte":
		return fmt.Sprintf("This value should be less than or equal to %s.", fe.Param())
	default:
		return MsgInvalid
	}
}
