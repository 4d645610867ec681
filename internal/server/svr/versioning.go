package svr

import (
	"github.com/gofiber/fiber/v2"

	"exusiai.dev/cardrank/internal/app/appconfig"
	"exusiai.dev/cardrank/internal/pkg/middlewares"
)

type V1 struct {
	fiber.Router
}

type Meta struct {
	fiber.Router
}

type Admin struct {
	fiber.Router
}

func CreateEndpointGroups(app *fiber.App, conf *appconfig.Config) (*V1, *Meta, *Admin) {
	// admin is registered ahead of the broader groups so its key check runs
	// before anything under /api matches
	admin := app.Group("/api/_/admin", middlewares.AdminKey(conf.AdminKey), middlewares.AcceptsJSON)
	meta := app.Group("/api/_")
	v1 := app.Group("/api")

	return &V1{Router: v1}, &Meta{Router: meta}, &Admin{Router: admin}
}
