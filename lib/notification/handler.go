package notificationhandler

import (
	log "github.com/sirupsen/logrus"

	"adl-ops-backend/db"
	notificationstore "adl-ops-backend/lib/notification/store"
	apimodels "adl-ops-backend/models/api"
	dbmodels "adl-ops-backend/models/db"
)

type Provider interface {
	Notify(usuarioID, key, mensaje string) error
	GetList(usuarioID string) ([]apimodels.NotificationView, error)
	DismissByKey(key string) error
	Dismiss(id, usuarioID string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: notificationstore.NewInstance(db.DB),
	}
}

type impl struct {
	store notificationstore.Provider
}

func (i impl) Notify(usuarioID, key, mensaje string) error {
	_, err := i.store.Create(dbmodels.Notification{
		Key:       key,
		UsuarioID: usuarioID,
		Mensaje:   mensaje,
	})
	if err != nil {
		log.WithError(err).
			WithField("usuario_id", usuarioID).
			Error("error creando notificación")
		return err
	}
	return nil
}

func (i impl) GetList(usuarioID string) ([]apimodels.NotificationView, error) {
	list, err := i.store.GetListByUser(usuarioID)
	if err != nil {
		return nil, err
	}
	result := make([]apimodels.NotificationView, 0, len(list))
	for _, rec := range list {
		result = append(result, apimodels.NotificationConvert(rec))
	}
	return result, nil
}

func (i impl) DismissByKey(key string) error {
	return i.store.DismissByKey(key)
}

func (i impl) Dismiss(id, usuarioID string) error {
	return i.store.DismissByID(id, usuarioID)
}
