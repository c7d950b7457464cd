package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"carcatalog/internal/service"
)

// RegisterRoutes attaches the operational and catalog routes to app.
// apiMiddleware runs for every /api route (bearer auth in production).
//
// Fiber matches in registration order, so the detail route car{id} and the numeric
// page routes are registered before the catch-all category routes.
func RegisterRoutes(app *fiber.App, db *sql.DB, cars service.CarService, categories service.CategoryService, apiMiddleware ...fiber.Handler) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api", apiMiddleware...)

	list := ListCars(cars)
	api.Get("/Car", list)
	api.Get("/Car/car:id<int>", GetCar(cars))
	api.Get("/Car/:pageNo<int>", list)
	api.Get("/Car/:category", list)
	api.Get("/Car/:category/:pageNo<int>", list)

	api.Post("/Car", CreateCar(cars))
	api.Put("/Car/:id<int>", UpdateCar(cars))
	api.Post("/Car/:id<int>", UploadCarImage(cars))
	api.Delete("/Car/:id<int>", DeleteCar(cars))

	api.Get("/Category", ListCategories(categories))
}
