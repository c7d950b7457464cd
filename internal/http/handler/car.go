package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"carcatalog/internal/model"
	"carcatalog/internal/service"
)

// ListCars serves every list route; category and pageNo are optional path params.
//
//	@Summary	List cars
//	@Tags		cars
//	@Produce	json
//	@Param		category	path		string	false	"category slug"
//	@Param		pageNo		path		int		false	"page number"	default(1)
//	@Param		pageSize	query		int		false	"page size"
//	@Success	200			{object}	model.ResponseData[model.ListModel[model.Car]]
//	@Failure	400			{object}	model.ResponseData[any]
//	@Router		/api/Car/{category}/{pageNo} [get]
func ListCars(svc service.CarService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pageNo := 1
		if raw := c.Params("pageNo"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return writeFail(c, fiber.StatusBadRequest, "invalid page number")
			}
			pageNo = n
		}

		pageSize := 0
		if raw := c.Query("pageSize"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return writeFail(c, fiber.StatusBadRequest, "invalid pageSize")
			}
			pageSize = n
		}

		// Params alias the request buffer, which fiber reuses after the handler returns.
		category := strings.ToLower(utils.CopyString(c.Params("category")))

		res := svc.GetCarList(c.UserContext(), category, pageNo, pageSize)
		if !res.Success {
			return c.Status(fiber.StatusBadRequest).JSON(res)
		}
		return c.JSON(res)
	}
}

// GetCar returns one car.
//
//	@Summary	Get car
//	@Tags		cars
//	@Produce	json
//	@Param		id	path		int	true	"car id"
//	@Success	200	{object}	model.ResponseData[model.Car]
//	@Failure	404	{object}	model.ResponseData[any]
//	@Router		/api/Car/car{id} [get]
func GetCar(svc service.CarService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// The car:id<int> route only matches integers; ids like car5x fall through
		// to the category list.
		id, _ := c.ParamsInt("id")
		res := svc.GetCarByID(c.UserContext(), id)
		if !res.Success {
			return c.Status(fiber.StatusNotFound).JSON(res)
		}
		return c.JSON(res)
	}
}

// CreateCar stores a new car and answers with the bare car.
//
//	@Summary	Create car
//	@Tags		cars
//	@Accept		json
//	@Produce	json
//	@Param		car	body		model.Car	true	"car"
//	@Success	200	{object}	model.Car
//	@Failure	400	{object}	model.ResponseData[any]
//	@Router		/api/Car [post]
func CreateCar(svc service.CarService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var car model.Car
		if err := c.BodyParser(&car); err != nil {
			return writeFail(c, fiber.StatusBadRequest, "invalid request body")
		}
		res := svc.CreateCar(c.UserContext(), car)
		if !res.Success {
			return c.Status(fiber.StatusBadRequest).JSON(res)
		}
		return c.JSON(res.Data)
	}
}

// UpdateCar overwrites the editable fields of a car.
//
//	@Summary	Update car
//	@Tags		cars
//	@Accept		json
//	@Produce	json
//	@Param		id	path		int			true	"car id"
//	@Param		car	body		model.Car	true	"car"
//	@Success	200	{object}	model.ResponseData[model.Car]
//	@Failure	400	{object}	model.ResponseData[any]
//	@Failure	404	{object}	model.ResponseData[any]
//	@Failure	500	{object}	model.ResponseData[any]
//	@Router		/api/Car/{id} [put]
func UpdateCar(svc service.CarService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return writeFail(c, fiber.StatusBadRequest, "invalid car id")
		}
		var car model.Car
		if err := c.BodyParser(&car); err != nil {
			return writeFail(c, fiber.StatusBadRequest, "invalid request body")
		}
		if err := svc.UpdateCar(c.UserContext(), id, car); err != nil {
			return failFromError(c, err, "failed to update car")
		}
		car.ID = id
		return c.JSON(model.OK(car))
	}
}

// DeleteCar removes a car and its picture.
//
//	@Summary	Delete car
//	@Tags		cars
//	@Param		id	path	int	true	"car id"
//	@Success	204
//	@Failure	404	{object}	model.ResponseData[any]
//	@Failure	500	{object}	model.ResponseData[any]
//	@Router		/api/Car/{id} [delete]
func DeleteCar(svc service.CarService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return writeFail(c, fiber.StatusBadRequest, "invalid car id")
		}
		if err := svc.DeleteCar(c.UserContext(), id); err != nil {
			return failFromError(c, err, "failed to delete car")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// UploadCarImage stores the multipart "file" field as the car picture.
//
//	@Summary	Upload car picture
//	@Tags		cars
//	@Accept		mpfd
//	@Produce	json
//	@Param		id		path		int		true	"car id"
//	@Param		file	formData	file	true	"image"
//	@Success	200		{object}	model.ResponseData[string]
//	@Failure	400		{object}	model.ResponseData[any]
//	@Failure	404		{object}	model.ResponseData[any]
//	@Failure	503		{object}	model.ResponseData[any]
//	@Router		/api/Car/{id} [post]
func UploadCarImage(svc service.CarService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return writeFail(c, fiber.StatusBadRequest, "invalid car id")
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeFail(c, fiber.StatusBadRequest, "file is required")
		}
		f, err := fh.Open()
		if err != nil {
			return writeFail(c, fiber.StatusBadRequest, "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		u, err := svc.SaveImage(c.UserContext(), id, f, fh.Filename, ct, fh.Size)
		if err != nil {
			return failFromError(c, err, "failed to save image")
		}
		return c.JSON(model.OK(u))
	}
}
