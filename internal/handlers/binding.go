package handlers

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/yukikurage/acme-dashboard/internal/errors"
)

// FieldError describes one request field that failed validation.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

var jsonFieldNames sync.Once

// useJSONFieldNames makes gin's validator report fields by their JSON name.
func useJSONFieldNames() {
	jsonFieldNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// bindJSON decodes the body into req. On failure it writes a 400, listing
// the failed fields when the body was well-formed but invalid.
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		apierrors.BadRequest(c, "Invalid request body")
		return false
	}

	details := make([]FieldError, len(invalid))
	for i, fe := range invalid {
		details[i] = FieldError{Field: fe.Field(), Rule: fe.Tag()}
	}
	apierrors.BadRequestWithDetails(c, "Invalid request body", details)
	return false
}
