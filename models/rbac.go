package models

type RbacFunc func(userID string, role UserRole, path string) bool

type Module string

const (
	SolicitudModule    Module = "SOLICITUDES"
	FichaModule        Module = "FICHAS"
	EquipoModule       Module = "EQUIPOS"
	CatalogoModule     Module = "CATALOGOS"
	NotificationModule Module = "NOTIFICACIONES"
	UsersModule        Module = "USUARIOS"
)

type Permission string

const (
	CreatePermission Permission = "CREATE"
	EditPermission   Permission = "EDIT"
	ViewPermission   Permission = "VIEW"
	ManagePermission Permission = "MANAGE"
	FlowPermission   Permission = "FLOW"
)
