package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"adl-ops-backend/controllers"
	notificationhandler "adl-ops-backend/lib/notification"
	"adl-ops-backend/middleware"
	apimodels "adl-ops-backend/models/api"
)

type notificationApiController struct {
	controllers.BaseAPIController
}

func InitNotificationApiRouters(app *fiber.App) {
	controller := notificationApiController{}
	app.Route("notificaciones", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Put(":id/dismiss", controller.dismiss)
	})
}

// @Summary Notificaciones pendientes
// @Tags Notificaciones
// @Description Notificaciones visibles del usuario autenticado
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]apimodels.NotificationView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notificaciones/list [post]
func (c *notificationApiController) list(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	list, err := notificationhandler.Instance.GetList(userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error obteniendo notificaciones")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Descartar notificación
// @Tags Notificaciones
// @Description Oculta una notificación del usuario autenticado
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notificaciones/{id}/dismiss [put]
func (c *notificationApiController) dismiss(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	userID := middleware.GetUserID(ctx)
	err = notificationhandler.Instance.Dismiss(id, userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error descartando la notificación")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
