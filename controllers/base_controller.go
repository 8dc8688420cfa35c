package controllers

import (
	"hr-payroll-backend/lib/utils/apperror"
	authutils "hr-payroll-backend/lib/utils/auth-utils"
	"hr-payroll-backend/models"
	apimodels "hr-payroll-backend/models/api"
	"io"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	return c.GetParam(ctx, "id")
}

func (c *BaseAPIController) GetParam(ctx *fiber.Ctx, name string) (string, error) {
	value, err := url.PathUnescape(ctx.Params(name))
	if err != nil || strings.TrimSpace(value) == "" {
		return "", errors.Errorf("не указан параметр %s", name)
	}
	return value, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	fields := log.Fields{
		"method": ctx.Method(),
		"path":   ctx.Path(),
	}
	if requestID, ok := ctx.Locals("requestid").(string); ok && requestID != "" {
		fields["request_id"] = requestID
	}
	if userID := authutils.GetUserID(ctx); userID != "" {
		fields["user_id"] = userID
	}
	return log.WithFields(fields)
}

// GetActor пользователь из токена с адресом и клиентом запроса
func (c *BaseAPIController) GetActor(ctx *fiber.Ctx) models.Actor {
	return models.Actor{
		UserID:    authutils.GetUserID(ctx),
		Name:      authutils.GetName(ctx),
		Role:      authutils.GetRole(ctx),
		IP:        ctx.IP(),
		UserAgent: ctx.Get(fiber.HeaderUserAgent),
	}
}

// SendError ответ с кодом из apperror, внутренние ошибки пишутся в лог и скрываются за msg
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, msg string) error {
	status := apperror.Status(err)
	if status >= fiber.StatusInternalServerError {
		logger.WithError(err).Error(msg)
		return ctx.Status(status).JSON(apimodels.NewError(msg))
	}
	logger.WithError(err).Warn(msg)
	return ctx.Status(status).JSON(apimodels.NewError(err.Error()))
}

// FormFile содержимое файла из multipart формы
func (c *BaseAPIController) FormFile(ctx *fiber.Ctx, key string) (fileName, contentType string, body []byte, err error) {
	header, err := ctx.FormFile(key)
	if err != nil {
		return "", "", nil, errors.New("файл не передан")
	}
	file, err := header.Open()
	if err != nil {
		return "", "", nil, errors.Wrap(err, "ошибка чтения файла")
	}
	defer file.Close()
	body, err = io.ReadAll(file)
	if err != nil {
		return "", "", nil, errors.Wrap(err, "ошибка чтения файла")
	}
	return header.Filename, header.Header.Get(fiber.HeaderContentType), body, nil
}

// SendFile отдает файл на скачивание
func (c *BaseAPIController) SendFile(ctx *fiber.Ctx, body []byte, fileName, contentType string) error {
	if contentType == "" {
		contentType = fiber.MIMEOctetStream
	}
	ctx.Attachment(fileName)
	ctx.Set(fiber.HeaderContentType, contentType)
	return ctx.Status(fiber.StatusOK).Send(body)
}

// SendInline отдает файл для отображения (фото, логотип)
func (c *BaseAPIController) SendInline(ctx *fiber.Ctx, body []byte, contentType string) error {
	if contentType == "" {
		contentType = fiber.MIMEOctetStream
	}
	ctx.Set(fiber.HeaderContentType, contentType)
	ctx.Set(fiber.HeaderCacheControl, "private, max-age=300")
	return ctx.Status(fiber.StatusOK).Send(body)
}
