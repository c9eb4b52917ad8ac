package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func currentClaims(c *fiber.Ctx) jwt.MapClaims {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return jwt.MapClaims{}
	}
	return claims
}

func currentUserID(c *fiber.Ctx) uuid.UUID {
	idStr, _ := currentClaims(c)["user_id"].(string)
	id, _ := uuid.Parse(idStr)
	return id
}

func currentEmail(c *fiber.Ctx) string {
	email, _ := currentClaims(c)["email"].(string)
	return email
}
