package ws

import (
	authutils "hr-payroll-backend/lib/utils/auth-utils"
	wsclient "hr-payroll-backend/lib/ws/client"
	connectionhub "hr-payroll-backend/lib/ws/hub/connection-hub"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func InitWs(router fiber.Router) {
	router.Use("", func(ctx *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(ctx) {
			return fiber.ErrUpgradeRequired
		}
		ctx.Locals("userID", authutils.GetUserID(ctx))
		return ctx.Next()
	})
	router.Get("/", websocket.New(pushHandler))
}

// @Summary Уведомления и сообщения чата
// @Tags Websocket
// @Description Уведомления и сообщения чата в реальном времени
// @Param   Authorization		header		string		true		"Authorization token"
// @Success 200 {object} wsmodels.ServerMessage
// @Failure 400
// @Failure 403
// @Failure 500
// @router /api/v1/ws [get]
func pushHandler(c *websocket.Conn) {
	userID, _ := c.Locals("userID").(string)
	if userID == "" {
		_ = c.Close()
		return
	}
	client := wsclient.NewClient(userID, c)
	connectionhub.Instance.AddClient(userID, c)
	defer func() {
		connectionhub.Instance.DeleteClient(userID, c)
	}()
	client.Dispatch()
}
