package http

import (
	"wallet-service/src/internal/delivery/http/middleware"
	"wallet-service/src/internal/model"
	"wallet-service/src/internal/usecase"
	"wallet-service/src/pkg/log"
	"wallet-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type WalletController struct {
	Log     log.Log
	UseCase *usecase.WalletUseCase
}

func NewWalletController(useCase *usecase.WalletUseCase, logger log.Log) *WalletController {
	return &WalletController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *WalletController) GetWallet(ctx *fiber.Ctx) error {
	request := &model.GetWalletRequest{
		UserID: ctx.Params("userId"),
	}
	result := c.UseCase.GetWallet(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Get Wallet", fiber.StatusOK, ctx)
}

func (c *WalletController) AdjustBalance(ctx *fiber.Ctx) error {
	admin := middleware.GetAdmin(ctx)

	request := new(model.AdjustBalanceRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("WalletController.AdjustBalance", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.UserID = ctx.Params("userId")
	request.AdminID = admin.UserID

	result := c.UseCase.AdjustBalance(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Adjust Balance", fiber.StatusOK, ctx)
}

func (c *WalletController) ListTransactions(ctx *fiber.Ctx) error {
	request := &model.ListTransactionsRequest{
		UserID: ctx.Params("userId"),
		Page:   ctx.QueryInt("page", 1),
		Limit:  ctx.QueryInt("limit", 20),
	}
	result := c.UseCase.ListTransactions(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "List Transactions", fiber.StatusOK, ctx)
}
