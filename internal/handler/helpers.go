package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"

	"posgate/internal/envelope"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// gt=0, min=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds the JSON body and runs validator tags. A body that is
// not a JSON object yields "Invalid JSON"; a body missing required fields,
// carrying a mistyped field, or carrying a non-positive total yields
// "Missing required fields" — the document parsed, the fields did not.
// Returns false after writing the response; the caller must return immediately.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if isSyntaxError(err) {
			c.JSON(http.StatusBadRequest, envelope.New("Invalid JSON"))
		} else {
			c.JSON(http.StatusBadRequest, envelope.New("Missing required fields"))
		}
		return false
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, envelope.New("Missing required fields"))
		return false
	}
	return true
}

// isSyntaxError reports whether the bind failure means the body is not a JSON
// object at all: malformed/truncated input, an empty body, or a top-level
// value of the wrong kind. A type mismatch on a named field (UnmarshalTypeError
// with a non-empty Field, or a decimal parse error) is a field problem, not a
// syntax one.
func isSyntaxError(err error) bool {
	var syn *json.SyntaxError
	if errors.As(err, &syn) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var ute *json.UnmarshalTypeError
	return errors.As(err, &ute) && ute.Field == ""
}
