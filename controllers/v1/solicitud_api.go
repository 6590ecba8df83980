package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"adl-ops-backend/controllers"
	orchestratorhandler "adl-ops-backend/lib/orchestrator"
	solicitudhandler "adl-ops-backend/lib/solicitud"
	"adl-ops-backend/middleware"
	apimodels "adl-ops-backend/models/api"
	solicitudapimodels "adl-ops-backend/models/api/solicitud"
)

type solicitudApiController struct {
	controllers.BaseAPIController
}

func InitSolicitudApiRouters(app *fiber.App) {
	controller := solicitudApiController{}
	app.Route("solicitudes", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Get("timeline", controller.timeline)
			idRoute.Put("approve", controller.approve)
			idRoute.Put("reject", controller.reject)
			idRoute.Put("derive", controller.derive)
			idRoute.Put("equipos/:equipoId/approve", controller.approveItem)
			idRoute.Put("equipos/:equipoId/reject", controller.rejectItem)
		})
	})
}

// @Summary Listado de solicitudes
// @Tags Solicitudes
// @Description Listado de solicitudes con filtro y paginación
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 solicitudapimodels.SolicitudFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]solicitudapimodels.SolicitudView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/solicitudes/list [post]
func (c *solicitudApiController) list(ctx *fiber.Ctx) error {
	var filter solicitudapimodels.SolicitudFilter
	if err := c.BodyParser(ctx, &filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	userID := middleware.GetUserID(ctx)
	list, rowCount, err := solicitudhandler.Instance.GetList(filter, userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error obteniendo el listado de solicitudes")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Creación de solicitud
// @Tags Solicitudes
// @Description Creación de solicitud de alta, baja o traspaso de equipos
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 solicitudapimodels.SolicitudCreateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/solicitudes [post]
func (c *solicitudApiController) create(ctx *fiber.Ctx) error {
	var payload solicitudapimodels.SolicitudCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	actor := middleware.GetActor(ctx)
	id, effects, err := solicitudhandler.Instance.Create(actor, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error creando la solicitud")
	}
	orchestratorhandler.Instance.ApplyEffects(effects)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Obtener solicitud
// @Tags Solicitudes
// @Description Obtener solicitud por ID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200 {object} apimodels.Response{data=solicitudapimodels.SolicitudView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/solicitudes/{id} [get]
func (c *solicitudApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := solicitudhandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error obteniendo la solicitud")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Bitácora de la solicitud
// @Tags Solicitudes
// @Description Bitácora de acciones sobre la solicitud
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200 {object} apimodels.Response{data=[]apimodels.TimelineEntryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/solicitudes/{id}/timeline [get]
func (c *solicitudApiController) timeline(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := solicitudhandler.Instance.GetTimeline(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error obteniendo la bitácora")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Aprobar solicitud
// @Tags Solicitudes
// @Description Aprobar la solicitud completa (solicitud de un solo equipo)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/solicitudes/{id}/approve [put]
func (c *solicitudApiController) approve(ctx *fiber.Ctx) error {
	return c.dispatch(ctx, orchestratorhandler.SolicitudApprove, "Error aprobando la solicitud")
}

// @Summary Rechazar solicitud
// @Tags Solicitudes
// @Description Rechazar la solicitud completa, el feedback es obligatorio
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 orchestratorhandler.Payload	true	"request body"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/solicitudes/{id}/reject [put]
func (c *solicitudApiController) reject(ctx *fiber.Ctx) error {
	return c.dispatch(ctx, orchestratorhandler.SolicitudReject, "Error rechazando la solicitud")
}

// @Summary Derivar a calidad
// @Tags Solicitudes
// @Description Derivar la solicitud de revisión técnica a revisión de calidad
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 orchestratorhandler.Payload	true	"request body"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/solicitudes/{id}/derive [put]
func (c *solicitudApiController) derive(ctx *fiber.Ctx) error {
	return c.dispatch(ctx, orchestratorhandler.SolicitudDerive, "Error derivando la solicitud")
}

// @Summary Aprobar equipo de la solicitud
// @Tags Solicitudes
// @Description Aprobar un equipo individual de una solicitud masiva
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true    "rec ID"
// @Param   equipoId          	path    string  	true    "equipo rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/solicitudes/{id}/equipos/{equipoId}/approve [put]
func (c *solicitudApiController) approveItem(ctx *fiber.Ctx) error {
	return c.dispatchItem(ctx, orchestratorhandler.SolicitudApproveItem, "Error aprobando el equipo de la solicitud")
}

// @Summary Rechazar equipo de la solicitud
// @Tags Solicitudes
// @Description Rechazar un equipo individual de una solicitud masiva, el feedback es obligatorio
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 orchestratorhandler.Payload	true	"request body"
// @Param   id          		path    string  	true    "rec ID"
// @Param   equipoId          	path    string  	true    "equipo rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/solicitudes/{id}/equipos/{equipoId}/reject [put]
func (c *solicitudApiController) rejectItem(ctx *fiber.Ctx) error {
	return c.dispatchItem(ctx, orchestratorhandler.SolicitudRejectItem, "Error rechazando el equipo de la solicitud")
}

func (c *solicitudApiController) dispatch(ctx *fiber.Ctx, action orchestratorhandler.Action, errMsg string) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload orchestratorhandler.Payload
	if len(ctx.Body()) > 0 {
		if err = c.BodyParser(ctx, &payload); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
	}

	actor := middleware.GetActor(ctx)
	err = orchestratorhandler.Instance.Dispatch(ctx.UserContext(), actor, action, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, errMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

func (c *solicitudApiController) dispatchItem(ctx *fiber.Ctx, action orchestratorhandler.Action, errMsg string) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	equipoID, err := c.GetIDByKey(ctx, "equipoId")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload orchestratorhandler.Payload
	if len(ctx.Body()) > 0 {
		if err = c.BodyParser(ctx, &payload); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
	}
	payload.EquipoID = equipoID

	actor := middleware.GetActor(ctx)
	err = orchestratorhandler.Instance.Dispatch(ctx.UserContext(), actor, action, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, errMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
