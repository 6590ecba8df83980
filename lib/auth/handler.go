package authhandler

import (
	log "github.com/sirupsen/logrus"

	"adl-ops-backend/db"
	usuariostore "adl-ops-backend/lib/usuario/store"
	authutils "adl-ops-backend/lib/utils/auth-utils"
	"adl-ops-backend/models"
	apimodels "adl-ops-backend/models/api"
	dbmodels "adl-ops-backend/models/db"
)

type Provider interface {
	Login(data apimodels.LoginData) (*apimodels.LoginResponse, error)
	Refresh(userID string) (*apimodels.LoginResponse, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		usuarioStore: usuariostore.NewInstance(db.DB),
	}
}

type impl struct {
	usuarioStore usuariostore.Provider
}

func (i impl) Login(data apimodels.LoginData) (*apimodels.LoginResponse, error) {
	logger := log.WithField("email", data.Email)
	if err := data.Validate(); err != nil {
		return nil, err
	}
	user, err := i.usuarioStore.FindByEmail(data.Email)
	if err != nil {
		logger.WithError(err).Error("error buscando usuario")
		return nil, err
	}
	if user == nil || !user.Activo {
		return nil, models.NewPermissionError("credenciales inválidas")
	}
	if authutils.GetMD5Hash(data.Password) != user.PasswordHash {
		return nil, models.NewPermissionError("credenciales inválidas")
	}
	return i.buildResponse(*user)
}

func (i impl) Refresh(userID string) (*apimodels.LoginResponse, error) {
	user, err := i.usuarioStore.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Activo {
		return nil, models.NewPermissionError("usuario no disponible")
	}
	return i.buildResponse(*user)
}

func (i impl) buildResponse(user dbmodels.Usuario) (*apimodels.LoginResponse, error) {
	accessToken, err := authutils.GetToken(user.ID, user.GetFullName(), user.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := authutils.GetRefreshToken(user.ID, user.GetFullName())
	if err != nil {
		return nil, err
	}
	return &apimodels.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Role:         user.Role,
		Nombre:       user.GetFullName(),
	}, nil
}
