package dbmodels

import (
	"adl-ops-backend/models"
)

type Usuario struct {
	BaseModel
	Nombre       string          `gorm:"type:varchar(255)"`
	Email        string          `gorm:"type:varchar(255);uniqueIndex"`
	PasswordHash string          `gorm:"type:varchar(255)"`
	Role         models.UserRole `gorm:"type:varchar(50)"`
	Activo       bool            `gorm:"default:true"`
}

func (u Usuario) GetFullName() string {
	return u.Nombre
}
