package routes

import (
	"github.com/devgupta2601/tuition_hub/handlers"
	"github.com/devgupta2601/tuition_hub/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	students := admin.Group("/students")
	students.Get("", handlers.AdminListStudents)
	students.Get("/:studentId", handlers.AdminGetStudentDetail)
	students.Put("/:studentId/tutor", handlers.AdminAssignTutor)
	students.Post("/:studentId/approve-payout", handlers.AdminApproveStudentPayout)

	tutors := admin.Group("/tutors")
	tutors.Get("", handlers.AdminListTutors)
	tutors.Post("/:tutorId/add-points", handlers.AdminAddPoints)

	admin.Get("/payment-requests", handlers.AdminListPaymentRequests)
	admin.Post("/payment-requests/:requestId/process", handlers.AdminProcessPaymentRequest)

	admin.Get("/shift-requests", handlers.AdminListShiftRequests)
	admin.Post("/shift-requests/:requestId/process", handlers.AdminProcessShiftRequest)

	admin.Get("/tutor-change-requests", handlers.AdminListTutorChangeRequests)
	admin.Post("/tutor-change-requests/:requestId/process", handlers.AdminProcessTutorChangeRequest)

	admin.Get("/password-reset-requests", handlers.AdminListPasswordResetRequests)
	admin.Post("/password-reset-requests/:requestId/process", handlers.AdminProcessPasswordResetRequest)

	admin.Get("/eligible-payouts", handlers.AdminListEligiblePayouts)

	admin.Get("/withdrawals", handlers.AdminListWithdrawals)
	admin.Post("/withdrawals/:requestId/process", handlers.AdminProcessWithdrawal)

	admin.Get("/settings", handlers.AdminGetSettings)
	admin.Put("/settings", handlers.AdminUpdateSettings)

	admin.Get("/dashboard", handlers.AdminGetDashboard)

	reports := admin.Group("/reports")
	reports.Get("/wallet", handlers.AdminGenerateWalletReport)
}
