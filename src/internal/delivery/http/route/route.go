package route

import (
	"wallet-service/src/internal/delivery/http"

	"github.com/gofiber/fiber/v2"
)

type RouteConfig struct {
	App               *fiber.App
	WalletController  *http.WalletController
	ReceiptController *http.ReceiptController
	PaymentController *http.PaymentController
	AuthMiddleware    fiber.Handler
	AdminMiddleware   fiber.Handler
}

func (c *RouteConfig) Setup() {
	c.App.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.SendString("OK")
	})
	c.SetupPublicRoutes()
	c.SetupUserRoutes()
	c.SetupAdminRoutes()
}

// SetupPublicRoutes registers the gateway-facing legs. Both are authenticated
// by their own mechanism (redirect carries no secrets, webhook is HMAC
// signed), never by bearer tokens.
func (c *RouteConfig) SetupPublicRoutes() {
	c.App.Get("/payments/v1/callback", c.PaymentController.Callback)
	c.App.Post("/payments/v1/webhook", c.PaymentController.Webhook)
}

func (c *RouteConfig) SetupUserRoutes() {
	user := c.App.Group("", c.AuthMiddleware)
	user.Post("/payments/v1/initialize", c.PaymentController.Initialize)
	user.Post("/receipts/v1", c.ReceiptController.Submit)
}

func (c *RouteConfig) SetupAdminRoutes() {
	admin := c.App.Group("/admin/v1", c.AdminMiddleware)
	admin.Get("/receipts", c.ReceiptController.List)
	admin.Get("/receipts/:id", c.ReceiptController.Get)
	admin.Post("/receipts/:id/approve", c.ReceiptController.Approve)
	admin.Post("/receipts/:id/reject", c.ReceiptController.Reject)
	admin.Get("/wallets/:userId", c.WalletController.GetWallet)
	admin.Post("/wallets/:userId/adjust", c.WalletController.AdjustBalance)
	admin.Get("/wallets/:userId/transactions", c.WalletController.ListTransactions)
	admin.Get("/payments", c.PaymentController.List)
	admin.Get("/payments/:txRef", c.PaymentController.Get)
}
