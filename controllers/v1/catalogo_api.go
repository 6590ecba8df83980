package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"adl-ops-backend/controllers"
	catalogoshandler "adl-ops-backend/lib/catalogos"
	apimodels "adl-ops-backend/models/api"
	catalogoapimodels "adl-ops-backend/models/api/catalogo"
)

type catalogoApiController struct {
	controllers.BaseAPIController
}

func InitCatalogoApiRouters(app *fiber.App) {
	controller := catalogoApiController{}
	app.Route("catalogos", func(router fiber.Router) {
		router.Get("clientes", controller.clientes)
		router.Get("clientes/:id/fuentes", controller.fuentes)
		router.Get("clientes/:id/contactos", controller.contactos)
		router.Get("clientes/:id/objetivos", controller.objetivos)
		router.Get("componentes", controller.componentes)
		router.Get("componentes/:id/sub-areas", controller.subAreas)
		router.Get("tipos-muestreo", controller.tiposMuestreo)
		router.Get("tipos-muestreo/:id/tipos-muestra", controller.tiposMuestra)
		router.Get("tipos-muestra/:id/actividades", controller.actividades)
		router.Get("lugares-analisis", controller.lugaresAnalisis)
		router.Get("frecuencias", controller.frecuencias)
		router.Post("draft/restore", controller.restoreDraft)
	})
}

// @Summary Clientes
// @Tags Catálogos
// @Description Catálogo de clientes empresa
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]catalogoapimodels.Option}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/catalogos/clientes [get]
func (c *catalogoApiController) clientes(ctx *fiber.Ctx) error {
	list, err := catalogoshandler.Instance.Clientes(ctx.UserContext())
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error obteniendo clientes")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Fuentes emisoras del cliente
// @Tags Catálogos
// @Description Fuentes emisoras asociadas al cliente, con datos de autocompletado
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true    "cliente rec ID"
// @Success 200 {object} apimodels.Response{data=[]catalogoapimodels.FuenteOption}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/catalogos/clientes/{id}/fuentes [get]
func (c *catalogoApiController) fuentes(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	list, err := catalogoshandler.Instance.FuentesByCliente(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error obteniendo fuentes emisoras")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Contactos del cliente
// @Tags Catálogos
// @Description Contactos asociados al cliente
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true    "cliente rec ID"
// @Success 200 {object} apimodels.Response{data=[]catalogoapimodels.Option}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/catalogos/clientes/{id}/contactos [get]
func (c *catalogoApiController) contactos(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	list, err := catalogoshandler.Instance.ContactosByCliente(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error obteniendo contactos")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Objetivos de muestreo del cliente
// @Tags Catálogos
// @Description Objetivos de muestreo asociados al cliente
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true    "cliente rec ID"
// @Success 200 {object} apimodels.Response{data=[]catalogoapimodels.Option}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/catalogos/clientes/{id}/objetivos [get]
func (c *catalogoApiController) objetivos(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	list, err := catalogoshandler.Instance.ObjetivosByCliente(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error obteniendo objetivos de muestreo")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Componentes ambientales
// @Tags Catálogos
// @Description Catálogo de componentes ambientales
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]catalogoapimodels.Option}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/catalogos/componentes [get]
func (c *catalogoApiController) componentes(ctx *fiber.Ctx) error {
	list, err := catalogoshandler.Instance.Componentes(ctx.UserContext())
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error obteniendo componentes")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Sub áreas del componente
// @Tags Catálogos
// @Description Sub áreas asociadas al componente ambiental
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true    "componente rec ID"
// @Success 200 {object} apimodels.Response{data=[]catalogoapimodels.Option}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/catalogos/componentes/{id}/sub-areas [get]
func (c *catalogoApiController) subAreas(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	list, err := catalogoshandler.Instance.SubAreasByComponente(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error obteniendo sub áreas")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Tipos de muestreo
// @Tags Catálogos
// @Description Catálogo de tipos de muestreo
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]catalogoapimodels.Option}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/catalogos/tipos-muestreo [get]
func (c *catalogoApiController) tiposMuestreo(ctx *fiber.Ctx) error {
	list, err := catalogoshandler.Instance.TiposMuestreo(ctx.UserContext())
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error obteniendo tipos de muestreo")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Tipos de muestra
// @Tags Catálogos
// @Description Tipos de muestra asociados al tipo de muestreo
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true    "tipo muestreo rec ID"
// @Success 200 {object} apimodels.Response{data=[]catalogoapimodels.Option}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/catalogos/tipos-muestreo/{id}/tipos-muestra [get]
func (c *catalogoApiController) tiposMuestra(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	list, err := catalogoshandler.Instance.TiposMuestraByTipoMuestreo(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error obteniendo tipos de muestra")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Actividades
// @Tags Catálogos
// @Description Actividades asociadas al tipo de muestra
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true    "tipo muestra rec ID"
// @Success 200 {object} apimodels.Response{data=[]catalogoapimodels.Option}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/catalogos/tipos-muestra/{id}/actividades [get]
func (c *catalogoApiController) actividades(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	list, err := catalogoshandler.Instance.ActividadesByTipoMuestra(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error obteniendo actividades")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Lugares de análisis
// @Tags Catálogos
// @Description Catálogo de lugares de análisis
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]catalogoapimodels.Option}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/catalogos/lugares-analisis [get]
func (c *catalogoApiController) lugaresAnalisis(ctx *fiber.Ctx) error {
	list, err := catalogoshandler.Instance.LugaresAnalisis(ctx.UserContext())
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error obteniendo lugares de análisis")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Frecuencias
// @Tags Catálogos
// @Description Catálogo de frecuencias de muestreo
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]catalogoapimodels.Option}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/catalogos/frecuencias [get]
func (c *catalogoApiController) frecuencias(ctx *fiber.Ctx) error {
	list, err := catalogoshandler.Instance.Frecuencias(ctx.UserContext())
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error obteniendo frecuencias")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Restaurar borrador de ficha
// @Tags Catálogos
// @Description Hidrata el borrador de una ficha: restaura los valores de la cascada y resuelve las opciones de cada selector en orden de dependencia
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 catalogoapimodels.DraftRestoreData	true	"request body"
// @Success 200 {object} apimodels.Response{data=catalogoshandler.DraftState}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/catalogos/draft/restore [post]
func (c *catalogoApiController) restoreDraft(ctx *fiber.Ctx) error {
	var payload catalogoapimodels.DraftRestoreData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	state, err := catalogoshandler.Instance.RestoreFichaDraft(ctx.UserContext(), payload.Values)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error restaurando el borrador")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(state))
}
