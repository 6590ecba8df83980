package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"adl-ops-backend/controllers"
	authhandler "adl-ops-backend/lib/auth"
	"adl-ops-backend/middleware"
	apimodels "adl-ops-backend/models/api"
)

type authApiController struct {
	controllers.BaseAPIController
}

func InitAuthApiRouters(app *fiber.App) {
	controller := authApiController{}
	app.Post("login", controller.login)
	app.Post("refresh", middleware.AuthorizationRequired(), controller.refresh)
}

// @Summary Autenticación
// @Tags Autenticación
// @Description Autenticación por email y contraseña
// @Param	body body	 apimodels.LoginData	true	"request body"
// @Success 200 {object} apimodels.Response{data=apimodels.LoginResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/login [post]
func (c *authApiController) login(ctx *fiber.Ctx) error {
	var payload apimodels.LoginData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := authhandler.Instance.Login(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error de autenticación")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Renovación de token
// @Tags Autenticación
// @Description Renovación de token con el refresh token vigente
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=apimodels.LoginResponse}
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/refresh [post]
func (c *authApiController) refresh(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	resp, err := authhandler.Instance.Refresh(userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error renovando el token")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
