package utils

import (
	httpError "wallet-service/src/pkg/http-error"

	"github.com/gofiber/fiber/v2"
)

// Result is what every usecase method returns: either Data or Error is set.
type Result struct {
	Data  interface{}
	Error error
}

type baseResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data,omitempty"`
}

type errorResponse struct {
	Success  bool   `json:"success"`
	Code     int    `json:"code"`
	CodeName string `json:"codeName,omitempty"`
	Message  string `json:"message"`
}

func Response(data interface{}, message string, code int, ctx *fiber.Ctx) error {
	return ctx.Status(code).JSON(baseResponse{
		Success: true,
		Message: message,
		Code:    code,
		Data:    data,
	})
}

func ResponseError(err error, ctx *fiber.Ctx) error {
	if errObj, ok := err.(*httpError.CommonError); ok {
		return ctx.Status(errObj.Code).JSON(errorResponse{
			Success:  false,
			Code:     errObj.Code,
			CodeName: errObj.CodeName,
			Message:  errObj.Message,
		})
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(errorResponse{
		Success: false,
		Code:    fiber.StatusInternalServerError,
		Message: err.Error(),
	})
}
