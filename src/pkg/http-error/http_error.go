package httperror

import "github.com/gofiber/fiber/v2"

// CommonError is the error shape carried inside utils.Result and rendered by
// utils.ResponseError. Code maps one to one onto the HTTP status.
type CommonError struct {
	Code     int    `json:"code"`
	CodeName string `json:"codeName"`
	Message  string `json:"message"`
}

func (e *CommonError) Error() string {
	return e.Message
}

func NewBadRequest() *CommonError {
	return &CommonError{
		Code:     fiber.StatusBadRequest,
		CodeName: "BAD_REQUEST",
		Message:  "bad request",
	}
}

func NewUnauthorized() *CommonError {
	return &CommonError{
		Code:     fiber.StatusUnauthorized,
		CodeName: "UNAUTHORIZED",
		Message:  "unauthorized",
	}
}

func NewNotFound() *CommonError {
	return &CommonError{
		Code:     fiber.StatusNotFound,
		CodeName: "NOT_FOUND",
		Message:  "resource not found",
	}
}

func NewConflict() *CommonError {
	return &CommonError{
		Code:     fiber.StatusConflict,
		CodeName: "CONFLICT",
		Message:  "conflict",
	}
}

func NewInternalServerError() *CommonError {
	return &CommonError{
		Code:     fiber.StatusInternalServerError,
		CodeName: "INTERNAL_SERVER_ERROR",
		Message:  "internal server error",
	}
}

// NewBadGateway is used for definitive upstream failures, e.g. the payment
// gateway answered but without a checkout URL.
func NewBadGateway() *CommonError {
	return &CommonError{
		Code:     fiber.StatusBadGateway,
		CodeName: "BAD_GATEWAY",
		Message:  "upstream gateway error",
	}
}

// NewServiceUnavailable is used when the upstream timed out or was
// unreachable. A timeout is not evidence of payment failure, so it is kept
// distinct from NewBadGateway.
func NewServiceUnavailable() *CommonError {
	return &CommonError{
		Code:     fiber.StatusServiceUnavailable,
		CodeName: "SERVICE_UNAVAILABLE",
		Message:  "upstream gateway unavailable",
	}
}
