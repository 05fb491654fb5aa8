package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware renders errors returned by handlers further down
// the chain as JSON.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		code, body := errorBody(err)
		return ctx.Status(code).JSON(body)
	}
}

func errorBody(err error) (int, ErrorResponse) {
	var verr *ValidationError
	var ferr *fiber.Error

	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fields map[string]string

	switch {
	case errors.As(err, &verr):
		code = fiber.StatusBadRequest
		message = "Validation failed"
		fields = verr.Fields
	case errors.As(err, &ferr):
		code = ferr.Code
		message = ferr.Message
	case errors.Is(err, ErrNotFound):
		code = fiber.StatusNotFound
		message = err.Error()
	case errors.Is(err, ErrBadRequest):
		code = fiber.StatusBadRequest
		message = err.Error()
	case errors.Is(err, ErrUnauthorized):
		code = fiber.StatusUnauthorized
		message = err.Error()
	}

	return code, ErrorResponse{
		Success: false,
		Code:    code,
		Message: message,
		Errors:  fields,
	}
}
