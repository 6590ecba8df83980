package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"adl-ops-backend/controllers"
	usuariohandler "adl-ops-backend/lib/usuario"
	apimodels "adl-ops-backend/models/api"
)

type usuarioApiController struct {
	controllers.BaseAPIController
}

func InitUsuarioApiRouters(app *fiber.App) {
	controller := usuarioApiController{}
	app.Route("usuarios", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Get(":id", controller.get)
	})
}

// @Summary Listado de usuarios
// @Tags Usuarios
// @Description Listado de usuarios con paginación
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 apimodels.Pagination	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]apimodels.UsuarioView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/usuarios/list [post]
func (c *usuarioApiController) list(ctx *fiber.Ctx) error {
	var filter apimodels.Pagination
	if err := c.BodyParser(ctx, &filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	list, rowCount, err := usuariohandler.Instance.GetList(filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error obteniendo el listado de usuarios")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Obtener usuario
// @Tags Usuarios
// @Description Obtener usuario por ID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200 {object} apimodels.Response{data=apimodels.UsuarioView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/usuarios/{id} [get]
func (c *usuarioApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := usuariohandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error obteniendo el usuario")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
