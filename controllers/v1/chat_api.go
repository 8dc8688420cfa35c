package apiv1

import (
	"hr-payroll-backend/controllers"
	chathandler "hr-payroll-backend/lib/chat"
	apimodels "hr-payroll-backend/models/api"
	chatapimodels "hr-payroll-backend/models/api/chat"
	"time"

	"github.com/gofiber/fiber/v2"
)

type chatApiController struct {
	controllers.BaseAPIController
}

func InitChatApiRouters(app *fiber.App) {
	controller := chatApiController{}
	app.Route("chat", func(router fiber.Router) {
		router.Post("direct/:id", controller.startDirect)
		router.Route("rooms", func(roomsRoute fiber.Router) {
			roomsRoute.Get("", controller.rooms)
			roomsRoute.Post("", controller.createRoom)
			roomsRoute.Post("join", controller.joinRoom)
			roomsRoute.Route(":id", func(idRoute fiber.Router) {
				idRoute.Get("", controller.room)
				idRoute.Get("messages", controller.messages)
				idRoute.Post("messages", controller.send)
			})
		})
	})
}

// @Summary Мои чаты
// @Tags Чат
// @Description Чаты текущего пользователя с количеством непрочитанных и списком сотрудников
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=chatapimodels.RoomsOverview}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/chat/rooms [get]
func (c *chatApiController) rooms(ctx *fiber.Ctx) error {
	resp, err := chathandler.Instance.Rooms(c.GetActor(ctx).UserID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка чатов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Создание чата
// @Tags Чат
// @Description Групповой чат с кодом приглашения, создатель становится участником
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 chatapimodels.CreateRoomRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=chatapimodels.RoomView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/chat/rooms [post]
func (c *chatApiController) createRoom(ctx *fiber.Ctx) error {
	var payload chatapimodels.CreateRoomRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := chathandler.Instance.CreateRoom(payload, c.GetActor(ctx).UserID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания чата")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Вход по коду
// @Tags Чат
// @Description Присоединение к чату по коду приглашения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 chatapimodels.JoinRoomRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=chatapimodels.RoomView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/chat/rooms/join [post]
func (c *chatApiController) joinRoom(ctx *fiber.Ctx) error {
	var payload chatapimodels.JoinRoomRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := chathandler.Instance.JoinRoom(payload.JoinCode, c.GetActor(ctx).UserID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка входа в чат")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Личный чат
// @Tags Чат
// @Description Личный чат с сотрудником, существующий чат переиспользуется
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "ИД сотрудника"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/chat/direct/{id} [post]
func (c *chatApiController) startDirect(ctx *fiber.Ctx) error {
	otherID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	roomID, err := chathandler.Instance.StartDirect(c.GetActor(ctx).UserID, otherID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания личного чата")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(roomID))
}

// @Summary Чат
// @Tags Чат
// @Description Сообщения и участники чата, сообщения отмечаются прочитанными
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=chatapimodels.RoomDetails}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/chat/rooms/{id} [get]
func (c *chatApiController) room(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := chathandler.Instance.Room(id, c.GetActor(ctx).UserID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения чата")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Новые сообщения
// @Tags Чат
// @Description Сообщения после указанного времени (RFC3339), без параметра - все
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param   since				query		string	false	"2024-05-06T10:00:00Z"
// @Success 200 {object} apimodels.Response{data=[]chatapimodels.MessageView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/chat/rooms/{id}/messages [get]
func (c *chatApiController) messages(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var since time.Time
	if value := ctx.Query("since"); value != "" {
		since, err = time.Parse(time.RFC3339, value)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("параметр since должен быть в формате RFC3339"))
		}
	}
	list, err := chathandler.Instance.MessagesSince(id, c.GetActor(ctx).UserID, since)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения сообщений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Отправка сообщения
// @Tags Чат
// @Description Сообщение в чат, участники получают его через websocket
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 chatapimodels.SendMessageRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=chatapimodels.MessageView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/chat/rooms/{id}/messages [post]
func (c *chatApiController) send(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload chatapimodels.SendMessageRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := chathandler.Instance.Send(id, c.GetActor(ctx).UserID, payload.Message)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отправки сообщения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
