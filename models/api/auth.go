package apimodels

import (
	"strings"

	"adl-ops-backend/models"
)

type LoginData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d LoginData) Validate() error {
	if strings.TrimSpace(d.Email) == "" {
		return models.NewValidationError("email es obligatorio")
	}
	if d.Password == "" {
		return models.NewValidationError("contraseña es obligatoria")
	}
	return nil
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	Role         models.UserRole `json:"role"`
	Nombre       string          `json:"nombre"`
}
