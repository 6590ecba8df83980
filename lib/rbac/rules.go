package rbac

import (
	"adl-ops-backend/models"
)

var (
	AllRoles = []models.UserRole{
		models.ComercialRole,
		models.TecnicaRole,
		models.CalidadRole,
		models.CoordinacionRole,
		models.AdminMaRole,
	}
	ComercialRoleSet    = []models.UserRole{models.ComercialRole}
	TecnicaRoleSet      = []models.UserRole{models.TecnicaRole}
	CoordinacionRoleSet = []models.UserRole{models.CoordinacionRole}
	AdminMaRoleSet      = []models.UserRole{models.AdminMaRole}
	// roles que revisan solicitudes según la etapa en que estén
	RevisoresRoleSet = []models.UserRole{models.AdminMaRole, models.TecnicaRole, models.CalidadRole}
)

func (i *impl) initRules() {
	i.addSolicitudesRbac()
	i.addFichasRbac()
	i.addEquiposRbac()
	i.addCatalogosRbac()
	i.addNotificacionesRbac()
	i.addUsuariosRbac()
}

func (i *impl) addSolicitudesRbac() {
	//VIEW
	i.RegisterRule(models.SolicitudModule, models.ViewPermission, AllRoles, "/api/v1/solicitudes/list [post]", nil)
	i.RegisterRule(models.SolicitudModule, models.ViewPermission, AllRoles, "/api/v1/solicitudes/{id} [get]", nil)
	i.RegisterRule(models.SolicitudModule, models.ViewPermission, AllRoles, "/api/v1/solicitudes/{id}/timeline [get]", nil)
	//CREATE
	i.RegisterRule(models.SolicitudModule, models.CreatePermission, AllRoles, "/api/v1/solicitudes [post]", nil)
	//FLOW: la etapa concreta que puede resolver cada rol la valida el flujo
	i.RegisterRule(models.SolicitudModule, models.FlowPermission, RevisoresRoleSet, "/api/v1/solicitudes/{id}/approve [put]", nil)
	i.RegisterRule(models.SolicitudModule, models.FlowPermission, RevisoresRoleSet, "/api/v1/solicitudes/{id}/reject [put]", nil)
	i.RegisterRule(models.SolicitudModule, models.FlowPermission, RevisoresRoleSet, "/api/v1/solicitudes/{id}/equipos/{equipoId}/approve [put]", nil)
	i.RegisterRule(models.SolicitudModule, models.FlowPermission, RevisoresRoleSet, "/api/v1/solicitudes/{id}/equipos/{equipoId}/reject [put]", nil)
	i.RegisterRule(models.SolicitudModule, models.FlowPermission, TecnicaRoleSet, "/api/v1/solicitudes/{id}/derive [put]", nil)
}

func (i *impl) addFichasRbac() {
	//VIEW
	i.RegisterRule(models.FichaModule, models.ViewPermission, AllRoles, "/api/v1/fichas/list [post]", nil)
	i.RegisterRule(models.FichaModule, models.ViewPermission, AllRoles, "/api/v1/fichas/{id} [get]", nil)
	i.RegisterRule(models.FichaModule, models.ViewPermission, AllRoles, "/api/v1/fichas/{id}/timeline [get]", nil)
	//CREATE/EDIT
	i.RegisterRule(models.FichaModule, models.CreatePermission, ComercialRoleSet, "/api/v1/fichas [post]", nil)
	i.RegisterRule(models.FichaModule, models.EditPermission, ComercialRoleSet, "/api/v1/fichas/{id} [put]", nil)
	i.RegisterRule(models.FichaModule, models.EditPermission, CoordinacionRoleSet, "/api/v1/fichas/{id}/agenda [put]", nil)
	//FLOW etapa técnica
	i.RegisterRule(models.FichaModule, models.FlowPermission, TecnicaRoleSet, "/api/v1/fichas/{id}/tecnica/approve [put]", nil)
	i.RegisterRule(models.FichaModule, models.FlowPermission, TecnicaRoleSet, "/api/v1/fichas/{id}/tecnica/reject [put]", nil)
	//FLOW etapa coordinación
	i.RegisterRule(models.FichaModule, models.FlowPermission, CoordinacionRoleSet, "/api/v1/fichas/{id}/coordinacion/accept [put]", nil)
	i.RegisterRule(models.FichaModule, models.FlowPermission, CoordinacionRoleSet, "/api/v1/fichas/{id}/coordinacion/return [put]", nil)
	i.RegisterRule(models.FichaModule, models.FlowPermission, CoordinacionRoleSet, "/api/v1/fichas/{id}/coordinacion/reject [put]", nil)
	i.RegisterRule(models.FichaModule, models.FlowPermission, CoordinacionRoleSet, "/api/v1/fichas/{id}/annul [put]", nil)
}

func (i *impl) addEquiposRbac() {
	//VIEW
	i.RegisterRule(models.EquipoModule, models.ViewPermission, AllRoles, "/api/v1/equipos/list [post]", nil)
	i.RegisterRule(models.EquipoModule, models.ViewPermission, AllRoles, "/api/v1/equipos/{id} [get]", nil)
	i.RegisterRule(models.EquipoModule, models.ViewPermission, AllRoles, "/api/v1/equipos/{id}/historial [get]", nil)
	//MANAGE
	i.RegisterRule(models.EquipoModule, models.ManagePermission, AdminMaRoleSet, "/api/v1/equipos/next-code [get]", nil)
	i.RegisterRule(models.EquipoModule, models.ManagePermission, AdminMaRoleSet, "/api/v1/equipos [post]", nil)
	i.RegisterRule(models.EquipoModule, models.ManagePermission, AdminMaRoleSet, "/api/v1/equipos/{id} [put]", nil)
}

func (i *impl) addCatalogosRbac() {
	//VIEW
	i.RegisterRule(models.CatalogoModule, models.ViewPermission, AllRoles, "/api/v1/catalogos/* [get]", nil)
	//EDIT: rehidratación del borrador de una ficha devuelta a revisión
	i.RegisterRule(models.CatalogoModule, models.EditPermission, ComercialRoleSet, "/api/v1/catalogos/draft/restore [post]", nil)
}

func (i *impl) addNotificacionesRbac() {
	i.RegisterRule(models.NotificationModule, models.ViewPermission, AllRoles, "/api/v1/notificaciones/list [post]", nil)
	i.RegisterRule(models.NotificationModule, models.EditPermission, AllRoles, "/api/v1/notificaciones/{id}/dismiss [put]", nil)
}

func (i *impl) addUsuariosRbac() {
	i.RegisterRule(models.UsersModule, models.ViewPermission, AllRoles, "/api/v1/usuarios/list [post]", nil)
	i.RegisterRule(models.UsersModule, models.ViewPermission, AllRoles, "/api/v1/usuarios/{id} [get]", nil)
}
