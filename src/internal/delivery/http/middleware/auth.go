package middleware

import (
	"strings"

	httpError "wallet-service/src/pkg/http-error"
	"wallet-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
)

// Auth carries the identity resolved by the edge gateway. Real authentication
// lives outside this service; these checks only keep the surface from being
// wide open in direct deployments.
type Auth struct {
	UserID string
}

func VerifyBearer(config *viper.Viper) fiber.Handler {
	apiKey := config.GetString("auth.api_key")
	return func(ctx *fiber.Ctx) error {
		header := ctx.Get(fiber.HeaderAuthorization)
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header || (apiKey != "" && token != apiKey) {
			return utils.ResponseError(httpError.NewUnauthorized(), ctx)
		}

		userID := ctx.Get("X-User-Id")
		if userID == "" {
			errObj := httpError.NewUnauthorized()
			errObj.Message = "missing user identity"
			return utils.ResponseError(errObj, ctx)
		}

		ctx.Locals("auth", &Auth{UserID: userID})
		return ctx.Next()
	}
}

func VerifyAdminKey(config *viper.Viper) fiber.Handler {
	adminKey := config.GetString("admin.api_key")
	return func(ctx *fiber.Ctx) error {
		if adminKey == "" || ctx.Get("X-Admin-Key") != adminKey {
			return utils.ResponseError(httpError.NewUnauthorized(), ctx)
		}

		adminID := ctx.Get("X-Admin-Id")
		if adminID == "" {
			errObj := httpError.NewUnauthorized()
			errObj.Message = "missing admin identity"
			return utils.ResponseError(errObj, ctx)
		}

		ctx.Locals("admin", &Auth{UserID: adminID})
		return ctx.Next()
	}
}

func GetUser(ctx *fiber.Ctx) *Auth {
	if auth, ok := ctx.Locals("auth").(*Auth); ok {
		return auth
	}
	return &Auth{}
}

func GetAdmin(ctx *fiber.Ctx) *Auth {
	if auth, ok := ctx.Locals("admin").(*Auth); ok {
		return auth
	}
	return &Auth{}
}
