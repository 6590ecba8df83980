package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"adl-ops-backend/models"
	apimodels "adl-ops-backend/models/api"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("error interpretando el cuerpo del request")
		return errors.New("no fue posible obtener los datos del request")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	return c.GetIDByKey(ctx, "id")
}

func (c *BaseAPIController) GetIDByKey(ctx *fiber.Ctx, key string) (string, error) {
	id := ctx.Params(key)
	if id == "" {
		return "", errors.Errorf("parámetro (%v) no especificado", key)
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", errors.Errorf("identificador inválido: %v", id)
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path())
}

// SendError traduce la clase del error de dominio al código HTTP. Los errores
// sin clasificar se registran y responden 500 con un mensaje genérico.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, errMsg string) error {
	switch models.KindOf(err) {
	case models.ErrKindValidation:
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	case models.ErrKindNotFound:
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
	case models.ErrKindPermission:
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(err.Error()))
	case models.ErrKindInvalidState, models.ErrKindConcurrency:
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(err.Error()))
	case models.ErrKindDependency:
		return ctx.Status(fiber.StatusBadGateway).JSON(apimodels.NewError(err.Error()))
	}
	logger.WithError(err).Error(errMsg)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(errMsg))
}
