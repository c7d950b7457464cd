package handler

import (
	"github.com/gofiber/fiber/v2"

	"carcatalog/internal/service"
)

// ListCategories returns every category.
//
//	@Summary	List categories
//	@Tags		categories
//	@Produce	json
//	@Success	200	{object}	model.ResponseData[[]model.Category]
//	@Failure	500	{object}	model.ResponseData[any]
//	@Router		/api/Category [get]
func ListCategories(svc service.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res := svc.GetCategoryList(c.UserContext())
		if !res.Success {
			return c.Status(fiber.StatusInternalServerError).JSON(res)
		}
		return c.JSON(res)
	}
}
