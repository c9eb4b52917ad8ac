package handlers

import (
	"fmt"
	"log"
	"time"

	config "github.com/devgupta2601/tuition_hub/configs"
	"github.com/devgupta2601/tuition_hub/database"
	"github.com/devgupta2601/tuition_hub/services"
	"github.com/devgupta2601/tuition_hub/websocket"
	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func parseToken(tokenStr string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(config.Config("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid claims")
	}
	return claims, nil
}

// ServeWalletSocket streams live wallet snapshots to a tutor dashboard.
// The first frame must be an auth message carrying the tutor's JWT.
func ServeWalletSocket(c *websocketcontrib.Conn) {
	type AuthMessage struct {
		Type  string `json:"type"`
		Token string `json:"token"`
	}
	var authMsg AuthMessage
	if err := c.ReadJSON(&authMsg); err != nil || authMsg.Type != "auth" {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid or missing auth message"})
		c.Close()
		return
	}

	claims, err := parseToken(authMsg.Token)
	if err != nil {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid token"})
		c.Close()
		return
	}
	if claims["role"] != "tutor" {
		_ = c.WriteJSON(fiber.Map{"error": "Tutor access required"})
		c.Close()
		return
	}

	idStr, _ := claims["user_id"].(string)
	tutorID, err := uuid.Parse(idStr)
	if err != nil {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid user ID"})
		c.Close()
		return
	}

	client := &websocket.Client{TutorID: tutorID, Conn: c}
	websocket.Register <- client
	defer func() {
		websocket.Unregister <- client
		c.Close()
	}()

	// Initial snapshot so the dashboard renders without waiting for a change.
	if summary, err := services.GetWalletSummary(database.DB, tutorID, time.Now()); err == nil {
		if err := c.WriteJSON(summary); err != nil {
			return
		}
	}

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			if websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseAbnormalClosure) {
				log.Printf("Wallet socket closed for tutor %s", tutorID)
			}
			break
		}
	}
}
