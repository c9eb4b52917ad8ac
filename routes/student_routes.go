package routes

import (
	"github.com/devgupta2601/tuition_hub/handlers"
	"github.com/devgupta2601/tuition_hub/middleware"
	"github.com/gofiber/fiber/v2"
)

func StudentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	student := api.Group("/student", middleware.Protected(), middleware.StudentRequired())
	student.Get("/me", handlers.GetStudentProfile)
	student.Get("/requests", handlers.ListStudentRequests)
	student.Get("/payment-instructions", handlers.GetPaymentInstructions)
	student.Post("/payment-requests", handlers.CreateStudentPaymentRequest)
	student.Post("/shift-requests", handlers.CreateShiftRequest)
	student.Post("/tutor-change-requests", handlers.CreateTutorChangeRequest)
}
