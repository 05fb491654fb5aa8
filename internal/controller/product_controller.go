package controller

import (
	"fmt"
	"strconv"

	"stylista-be/internal/dto"
	"stylista-be/internal/pkg/serverutils"
	"stylista-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IProductController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Search(ctx *fiber.Ctx) error
	Trending(ctx *fiber.Ctx) error
	Availability(ctx *fiber.Ctx) error
}

type productController struct {
	productService service.IProductService
}

func NewProductController(productService service.IProductService) IProductController {
	return &productController{
		productService: productService,
	}
}

func (c *productController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/products/v1", auth)
	h.Get("search", c.Search)
	h.Get("trending", c.Trending)
	h.Get(":id/availability", c.Availability)
}

func (c *productController) Search(ctx *fiber.Ctx) error {
	var req dto.SearchProductsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fmt.Errorf("%w: malformed query", serverutils.ErrBadRequest)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.productService.Search(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search products", res))
}

func (c *productController) Trending(ctx *fiber.Ctx) error {
	var req dto.TrendingProductsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fmt.Errorf("%w: malformed query", serverutils.ErrBadRequest)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.productService.Trending(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get trending products", res))
}

func (c *productController) Availability(ctx *fiber.Ctx) error {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("%w: invalid product id", serverutils.ErrBadRequest)
	}

	res, err := c.productService.Availability(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success check availability", res))
}
