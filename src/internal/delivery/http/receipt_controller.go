package http

import (
	"wallet-service/src/internal/delivery/http/middleware"
	"wallet-service/src/internal/model"
	"wallet-service/src/internal/usecase"
	"wallet-service/src/pkg/log"
	"wallet-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type ReceiptController struct {
	Log     log.Log
	UseCase *usecase.ReceiptUseCase
}

func NewReceiptController(useCase *usecase.ReceiptUseCase, logger log.Log) *ReceiptController {
	return &ReceiptController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *ReceiptController) Submit(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.SubmitReceiptRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("ReceiptController.Submit", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.UserID = auth.UserID

	result := c.UseCase.Submit(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Submit Receipt", fiber.StatusCreated, ctx)
}

func (c *ReceiptController) Approve(ctx *fiber.Ctx) error {
	admin := middleware.GetAdmin(ctx)

	request := &model.ApproveReceiptRequest{
		ReceiptID: ctx.Params("id"),
		AdminID:   admin.UserID,
	}
	result := c.UseCase.Approve(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Approve Receipt", fiber.StatusOK, ctx)
}

func (c *ReceiptController) Reject(ctx *fiber.Ctx) error {
	admin := middleware.GetAdmin(ctx)

	request := new(model.RejectReceiptRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("ReceiptController.Reject", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.ReceiptID = ctx.Params("id")
	request.AdminID = admin.UserID

	result := c.UseCase.Reject(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Reject Receipt", fiber.StatusOK, ctx)
}

func (c *ReceiptController) Get(ctx *fiber.Ctx) error {
	request := &model.GetReceiptRequest{
		ReceiptID: ctx.Params("id"),
	}
	result := c.UseCase.Get(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Get Receipt", fiber.StatusOK, ctx)
}

func (c *ReceiptController) List(ctx *fiber.Ctx) error {
	request := &model.ListReceiptsRequest{
		UserID: ctx.Query("userId"),
		Status: ctx.Query("status"),
		Page:   ctx.QueryInt("page", 1),
		Limit:  ctx.QueryInt("limit", 20),
	}
	result := c.UseCase.List(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "List Receipts", fiber.StatusOK, ctx)
}
