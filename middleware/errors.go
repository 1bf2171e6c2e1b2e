package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/pqh/blog/utils"
)

// ErrorTranslator renders the first error a handler attached to the context.
func ErrorTranslator(appName string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()

		if len(ctx.Errors) == 0 || ctx.Writer.Written() {
			return
		}
		ginErr := ctx.Errors[0]
		err := ginErr.Err

		var alert *utils.BadRequestAlert
		var verrs validator.ValidationErrors
		switch {
		case errors.As(err, &alert):
			utils.FailureAlert(ctx, appName, alert.EntityName, alert.ErrorKey)
			ctx.JSON(http.StatusBadRequest, alert.Response())
		case errors.As(err, &verrs):
			objectName, _ := ginErr.Meta.(string)
			ctx.JSON(http.StatusBadRequest, utils.ValidationFailed(fieldErrors(objectName, verrs)))
		case ginErr.IsType(gin.ErrorTypeBind):
			ctx.JSON(http.StatusBadRequest, utils.MalformedRequest())
		default:
			utils.Logger.Error("request failed",
				zap.Error(err),
				zap.String("method", ctx.Request.Method),
				zap.String("path", ctx.Request.URL.Path),
			)
			ctx.JSON(http.StatusInternalServerError, utils.InternalServerError())
		}
	}
}

func fieldErrors(objectName string, verrs validator.ValidationErrors) []utils.FieldError {
	out := make([]utils.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		// Drop the request struct name from the namespace.
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		out = append(out, utils.FieldError{
			ObjectName: objectName,
			Field:      field,
			Message:    fe.Tag(),
		})
	}
	return out
}

// UseJSONFieldNames makes validation errors name fields by their JSON key.
func UseJSONFieldNames(v *validator.Validate) {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
}
