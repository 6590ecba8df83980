package usuariohandler

import (
	"adl-ops-backend/db"
	usuariostore "adl-ops-backend/lib/usuario/store"
	"adl-ops-backend/models"
	apimodels "adl-ops-backend/models/api"
)

type Provider interface {
	GetByID(userID string) (*apimodels.UsuarioView, error)
	GetList(filter apimodels.Pagination) ([]apimodels.UsuarioView, int64, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: usuariostore.NewInstance(db.DB),
	}
}

type impl struct {
	store usuariostore.Provider
}

func (i impl) GetByID(userID string) (*apimodels.UsuarioView, error) {
	rec, err := i.store.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, models.NewNotFoundError("usuario no encontrado")
	}
	view := apimodels.UsuarioConvert(*rec)
	return &view, nil
}

func (i impl) GetList(filter apimodels.Pagination) ([]apimodels.UsuarioView, int64, error) {
	list, rowCount, err := i.store.GetList(filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]apimodels.UsuarioView, 0, len(list))
	for _, rec := range list {
		result = append(result, apimodels.UsuarioConvert(rec))
	}
	return result, rowCount, nil
}
