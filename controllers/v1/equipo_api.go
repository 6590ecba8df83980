package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"adl-ops-backend/controllers"
	equipohandler "adl-ops-backend/lib/equipo"
	"adl-ops-backend/middleware"
	apimodels "adl-ops-backend/models/api"
	equipoapimodels "adl-ops-backend/models/api/equipo"
)

type equipoApiController struct {
	controllers.BaseAPIController
}

func InitEquipoApiRouters(app *fiber.App) {
	controller := equipoApiController{}
	app.Route("equipos", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Get("next-code", controller.nextCode)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Get("historial", controller.historial)
		})
	})
}

// @Summary Listado de equipos
// @Tags Equipos
// @Description Listado de equipos con filtro y paginación
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 equipoapimodels.EquipoFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]equipoapimodels.EquipoView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/equipos/list [post]
func (c *equipoApiController) list(ctx *fiber.Ctx) error {
	var filter equipoapimodels.EquipoFilter
	if err := c.BodyParser(ctx, &filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	list, rowCount, err := equipohandler.Instance.GetList(filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error obteniendo el listado de equipos")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Siguiente código disponible
// @Tags Equipos
// @Description Sugerencia del siguiente código correlativo para el prefijo indicado
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   prefix          	query   string  	true    "prefijo de código, ej: BAL"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/equipos/next-code [get]
func (c *equipoApiController) nextCode(ctx *fiber.Ctx) error {
	prefix := ctx.Query("prefix")
	if prefix == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("parámetro (prefix) no especificado"))
	}

	code, err := equipohandler.Instance.SuggestNextCodigo(prefix)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error sugiriendo el siguiente código")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(code))
}

// @Summary Registro de equipo
// @Tags Equipos
// @Description Registro directo de un equipo por el administrador de medio ambiente
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 equipoapimodels.EquipoCreateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/equipos [post]
func (c *equipoApiController) create(ctx *fiber.Ctx) error {
	var payload equipoapimodels.EquipoCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	userID := middleware.GetUserID(ctx)
	id, err := equipohandler.Instance.Create(payload, userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error registrando el equipo")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Obtener equipo
// @Tags Equipos
// @Description Obtener equipo por ID con su versión vigente
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200 {object} apimodels.Response{data=equipoapimodels.EquipoView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/equipos/{id} [get]
func (c *equipoApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := equipohandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error obteniendo el equipo")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Actualización de equipo
// @Tags Equipos
// @Description Actualización del equipo generando una nueva versión vigente
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 equipoapimodels.EquipoUpdateData	true	"request body"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/equipos/{id} [put]
func (c *equipoApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload equipoapimodels.EquipoUpdateData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	userID := middleware.GetUserID(ctx)
	err = equipohandler.Instance.Update(id, payload, userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error actualizando el equipo")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Historial de versiones
// @Tags Equipos
// @Description Historial completo de versiones del equipo, la vigente marcada
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200 {object} apimodels.Response{data=[]equipoapimodels.HistorialView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/equipos/{id}/historial [get]
func (c *equipoApiController) historial(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := equipohandler.Instance.GetHistorial(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error obteniendo el historial del equipo")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
