package http

import (
	"wallet-service/src/internal/delivery/http/middleware"
	"wallet-service/src/internal/model"
	"wallet-service/src/internal/usecase"
	"wallet-service/src/pkg/log"
	"wallet-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type PaymentController struct {
	Log     log.Log
	UseCase *usecase.ChapaUseCase
}

func NewPaymentController(useCase *usecase.ChapaUseCase, logger log.Log) *PaymentController {
	return &PaymentController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *PaymentController) Initialize(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.InitializePaymentRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("PaymentController.Initialize", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.UserID = auth.UserID

	result := c.UseCase.Initialize(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Initialize Payment", fiber.StatusOK, ctx)
}

// Callback is the browser-redirect leg. Whatever happens internally, the end
// user is redirected to the configured return URL with the reconciled status.
func (c *PaymentController) Callback(ctx *fiber.Ctx) error {
	request := &model.PaymentCallbackRequest{
		TxRef:      ctx.Query("trx_ref"),
		RefID:      ctx.Query("ref_id"),
		StatusHint: ctx.Query("status"),
	}

	redirectURL := c.UseCase.HandleCallback(ctx.Context(), request)
	return ctx.Redirect(redirectURL, fiber.StatusFound)
}

// Webhook passes the exact raw body to the usecase; signature verification
// must see the same bytes Chapa signed, so no parsing happens here.
func (c *PaymentController) Webhook(ctx *fiber.Ctx) error {
	signature := ctx.Get("chapa-signature")
	if signature == "" {
		signature = ctx.Get("x-chapa-signature")
	}

	body := ctx.Body()

	result := c.UseCase.HandleWebhook(ctx.Context(), body, signature)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Webhook", fiber.StatusOK, ctx)
}

func (c *PaymentController) Get(ctx *fiber.Ctx) error {
	request := &model.GetPaymentRequest{
		TxRef: ctx.Params("txRef"),
	}
	result := c.UseCase.Get(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Get Payment", fiber.StatusOK, ctx)
}

func (c *PaymentController) List(ctx *fiber.Ctx) error {
	request := &model.ListPaymentsRequest{
		Status: ctx.Query("status"),
		Page:   ctx.QueryInt("page", 1),
		Limit:  ctx.QueryInt("limit", 20),
	}
	result := c.UseCase.List(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "List Payments", fiber.StatusOK, ctx)
}
