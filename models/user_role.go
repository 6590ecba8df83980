package models

type UserRole string

const (
	ComercialRole    UserRole = "COMERCIAL"
	TecnicaRole      UserRole = "TECNICA"
	CalidadRole      UserRole = "CALIDAD"
	CoordinacionRole UserRole = "COORDINACION"
	AdminMaRole      UserRole = "ADMIN_MA"
	SuperAdminRole   UserRole = "SUPER_ADMIN"
)

var roleHumanName = map[UserRole]string{
	ComercialRole:    "Área Comercial",
	TecnicaRole:      "Jefatura Técnica",
	CalidadRole:      "Área Calidad",
	CoordinacionRole: "Coordinación",
	AdminMaRole:      "Administrador MA",
	SuperAdminRole:   "Superadministrador",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsSuper() bool {
	return r == SuperAdminRole
}

const SystemUser = "Sistema"

// Actor identifica al usuario que ejecuta una transición de workflow.
type Actor struct {
	UserID string
	Name   string
	Role   UserRole
}
