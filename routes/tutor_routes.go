package routes

import (
	"github.com/devgupta2601/tuition_hub/handlers"
	"github.com/devgupta2601/tuition_hub/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func TutorRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	tutor := api.Group("/tutor", middleware.Protected(), middleware.TutorRequired())
	tutor.Get("/wallet", handlers.GetTutorWallet)
	tutor.Get("/wallet/transactions", handlers.ListTutorWalletTransactions)
	tutor.Get("/students", handlers.ListTutorStudents)
	tutor.Put("/bank-account", handlers.SaveBankAccount)
	tutor.Post("/payment-methods", handlers.AddPaymentMethod)
	tutor.Delete("/payment-methods/:index", handlers.RemovePaymentMethod)
	tutor.Post("/withdrawals", handlers.CreateWithdrawalRequest)
	tutor.Get("/withdrawals", handlers.ListTutorWithdrawals)

	api.Use("/tutor/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/tutor/ws", websocket.New(handlers.ServeWalletSocket))
}
