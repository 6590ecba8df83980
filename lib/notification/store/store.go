package notificationstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "adl-ops-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Notification) (string, error)
	GetListByUser(usuarioID string) (list []dbmodels.Notification, err error)
	DismissByKey(key string) error
	DismissByID(id, usuarioID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Notification) (string, error) {
	err := i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetListByUser(usuarioID string) (list []dbmodels.Notification, err error) {
	err = i.db.Model(dbmodels.Notification{}).
		Where("usuario_id = ?", usuarioID).
		Where("oculta = false").
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

// DismissByKey oculta todas las notificaciones con la clave dada. Es
// idempotente: descartar una clave sin notificaciones visibles no es error.
func (i impl) DismissByKey(key string) error {
	return i.db.
		Model(&dbmodels.Notification{}).
		Where("key = ?", key).
		Update("oculta", true).
		Error
}

func (i impl) DismissByID(id, usuarioID string) error {
	return i.db.
		Model(&dbmodels.Notification{}).
		Where("id = ?", id).
		Where("usuario_id = ?", usuarioID).
		Update("oculta", true).
		Error
}
