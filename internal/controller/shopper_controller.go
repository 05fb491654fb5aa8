package controller

import (
	"stylista-be/internal/pkg/serverutils"
	"stylista-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IShopperController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Preferences(ctx *fiber.Ctx) error
}

type shopperController struct {
	shopperService service.IShopperService
}

func NewShopperController(shopperService service.IShopperService) IShopperController {
	return &shopperController{
		shopperService: shopperService,
	}
}

func (c *shopperController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/shopper/v1", auth)
	h.Get("preferences", c.Preferences)
}

// Preferences answers with an empty profile when the token is not linked
// to a catalog shopper.
func (c *shopperController) Preferences(ctx *fiber.Ctx) error {
	res, err := c.shopperService.GetPreferences(ctx.UserContext(), serverutils.ShopperID(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get preferences", res))
}
