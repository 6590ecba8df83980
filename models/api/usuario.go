package apimodels

import (
	"adl-ops-backend/models"
	dbmodels "adl-ops-backend/models/db"
)

type UsuarioView struct {
	ID     string          `json:"id"`
	Nombre string          `json:"nombre"`
	Email  string          `json:"email"`
	Role   models.UserRole `json:"role"`
	Activo bool            `json:"activo"`
}

func UsuarioConvert(rec dbmodels.Usuario) UsuarioView {
	return UsuarioView{
		ID:     rec.ID,
		Nombre: rec.Nombre,
		Email:  rec.Email,
		Role:   rec.Role,
		Activo: rec.Activo,
	}
}
