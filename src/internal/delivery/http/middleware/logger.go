package middleware

import (
	"fmt"
	"time"

	"wallet-service/src/pkg/log"

	"github.com/gofiber/fiber/v2"
)

func NewLogger() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		logger := log.GetLogger()
		logger.Info(
			"http-request",
			fmt.Sprintf("%s %s -> %d", ctx.Method(), ctx.Path(), ctx.Response().StatusCode()),
			"middleware",
			fmt.Sprintf("latency: %s, ip: %s", time.Since(start), ctx.IP()),
		)
		return err
	}
}
