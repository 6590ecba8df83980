package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"adl-ops-backend/controllers"
	fichahandler "adl-ops-backend/lib/ficha"
	orchestratorhandler "adl-ops-backend/lib/orchestrator"
	"adl-ops-backend/middleware"
	apimodels "adl-ops-backend/models/api"
	fichaapimodels "adl-ops-backend/models/api/ficha"
)

type fichaApiController struct {
	controllers.BaseAPIController
}

func InitFichaApiRouters(app *fiber.App) {
	controller := fichaApiController{}
	app.Route("fichas", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Get("timeline", controller.timeline)
			idRoute.Put("agenda", controller.saveAgenda)
			idRoute.Put("tecnica/approve", controller.technicalApprove)
			idRoute.Put("tecnica/reject", controller.technicalReject)
			idRoute.Put("coordinacion/accept", controller.coordinationAccept)
			idRoute.Put("coordinacion/return", controller.coordinationReturn)
			idRoute.Put("coordinacion/reject", controller.coordinationReject)
			idRoute.Put("annul", controller.annul)
		})
	})
}

// @Summary Listado de fichas
// @Tags Fichas
// @Description Listado de fichas de sistema particular con filtro y paginación
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 fichaapimodels.FichaFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]fichaapimodels.FichaView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/fichas/list [post]
func (c *fichaApiController) list(ctx *fiber.Ctx) error {
	var filter fichaapimodels.FichaFilter
	if err := c.BodyParser(ctx, &filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	list, rowCount, err := fichahandler.Instance.GetList(filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error obteniendo el listado de fichas")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Creación de ficha
// @Tags Fichas
// @Description Creación de ficha por el área comercial
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 fichaapimodels.FichaCreateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/fichas [post]
func (c *fichaApiController) create(ctx *fiber.Ctx) error {
	var payload fichaapimodels.FichaCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	actor := middleware.GetActor(ctx)
	id, effects, err := fichahandler.Instance.Create(actor, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error creando la ficha")
	}
	orchestratorhandler.Instance.ApplyEffects(effects)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Obtener ficha
// @Tags Fichas
// @Description Obtener ficha por ID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200 {object} apimodels.Response{data=fichaapimodels.FichaView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/fichas/{id} [get]
func (c *fichaApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := fichahandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error obteniendo la ficha")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Actualización de ficha
// @Tags Fichas
// @Description Actualización de la ficha, disponible mientras siga editable por comercial
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 fichaapimodels.FichaCreateData	true	"request body"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/fichas/{id} [put]
func (c *fichaApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload fichaapimodels.FichaCreateData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	actor := middleware.GetActor(ctx)
	err = fichahandler.Instance.Update(actor, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error actualizando la ficha")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Bitácora de la ficha
// @Tags Fichas
// @Description Bitácora de acciones sobre la ficha
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200 {object} apimodels.Response{data=[]apimodels.TimelineEntryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/fichas/{id}/timeline [get]
func (c *fichaApiController) timeline(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := fichahandler.Instance.GetTimeline(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error obteniendo la bitácora")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Agendar muestreo
// @Tags Fichas
// @Description Registrar o actualizar la agenda de muestreo de la ficha
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 fichaapimodels.AgendaData	true	"request body"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/fichas/{id}/agenda [put]
func (c *fichaApiController) saveAgenda(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload fichaapimodels.AgendaData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	actor := middleware.GetActor(ctx)
	err = fichahandler.Instance.SaveAgenda(actor, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error registrando la agenda")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Aprobación técnica
// @Tags Fichas
// @Description Aprobación de la ficha por jefatura técnica
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 fichaapimodels.StageActionData	true	"request body"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/fichas/{id}/tecnica/approve [put]
func (c *fichaApiController) technicalApprove(ctx *fiber.Ctx) error {
	return c.dispatchStage(ctx, orchestratorhandler.FichaTecnicaApprove, false, "Error en la aprobación técnica")
}

// @Summary Rechazo técnico
// @Tags Fichas
// @Description Rechazo de la ficha por jefatura técnica, la observación es obligatoria
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 fichaapimodels.StageActionData	true	"request body"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/fichas/{id}/tecnica/reject [put]
func (c *fichaApiController) technicalReject(ctx *fiber.Ctx) error {
	return c.dispatchStage(ctx, orchestratorhandler.FichaTecnicaReject, true, "Error en el rechazo técnico")
}

// @Summary Aceptar ficha
// @Tags Fichas
// @Description Aceptación final por coordinación, queda procesada con o sin agenda
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 fichaapimodels.StageActionData	true	"request body"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/fichas/{id}/coordinacion/accept [put]
func (c *fichaApiController) coordinationAccept(ctx *fiber.Ctx) error {
	return c.dispatchStage(ctx, orchestratorhandler.FichaCoordAccept, false, "Error aceptando la ficha")
}

// @Summary Devolver a revisión
// @Tags Fichas
// @Description Devolución de la ficha a revisión, la observación es obligatoria
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 fichaapimodels.StageActionData	true	"request body"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/fichas/{id}/coordinacion/return [put]
func (c *fichaApiController) coordinationReturn(ctx *fiber.Ctx) error {
	return c.dispatchStage(ctx, orchestratorhandler.FichaCoordReturn, true, "Error devolviendo la ficha a revisión")
}

// @Summary Rechazar ficha
// @Tags Fichas
// @Description Rechazo final por coordinación, la observación es obligatoria
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 fichaapimodels.StageActionData	true	"request body"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/fichas/{id}/coordinacion/reject [put]
func (c *fichaApiController) coordinationReject(ctx *fiber.Ctx) error {
	return c.dispatchStage(ctx, orchestratorhandler.FichaCoordReject, true, "Error rechazando la ficha")
}

// @Summary Anular ficha
// @Tags Fichas
// @Description Anulación de la ficha por coordinación
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 fichaapimodels.StageActionData	true	"request body"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/fichas/{id}/annul [put]
func (c *fichaApiController) annul(ctx *fiber.Ctx) error {
	return c.dispatchStage(ctx, orchestratorhandler.FichaAnnul, false, "Error anulando la ficha")
}

func (c *fichaApiController) dispatchStage(ctx *fiber.Ctx, action orchestratorhandler.Action, mandatoryObs bool, errMsg string) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload fichaapimodels.StageActionData
	if len(ctx.Body()) > 0 {
		if err = c.BodyParser(ctx, &payload); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
	}

	if mandatoryObs {
		err = payload.ValidateMandatory()
	} else {
		err = payload.Validate()
	}
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	actor := middleware.GetActor(ctx)
	err = orchestratorhandler.Instance.Dispatch(ctx.UserContext(), actor, action, id,
		orchestratorhandler.Payload{Observacion: payload.Observacion})
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, errMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
