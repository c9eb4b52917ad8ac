package routes

import (
	"github.com/devgupta2601/tuition_hub/handlers"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/student/register", handlers.RegisterStudent)
	auth.Post("/student/login", handlers.LoginStudent)
	auth.Post("/tutor/register", handlers.RegisterTutor)
	auth.Post("/tutor/login", handlers.LoginTutor)
	auth.Post("/admin/login", handlers.LoginAdmin)
	auth.Post("/forgot-password", handlers.ForgotPassword)
}
