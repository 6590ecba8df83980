package usuariostore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"adl-ops-backend/models"
	apimodels "adl-ops-backend/models/api"
	dbmodels "adl-ops-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Usuario) (string, error)
	Update(userID string, updMap map[string]interface{}) error
	GetByID(userID string) (rec *dbmodels.Usuario, err error)
	FindByEmail(email string) (rec *dbmodels.Usuario, err error)
	GetList(filter apimodels.Pagination) (list []dbmodels.Usuario, rowCount int64, err error)
	ListByRole(role models.UserRole) (list []dbmodels.Usuario, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Usuario) (string, error) {
	err := i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(userID string, updMap map[string]interface{}) error {
	return i.db.
		Model(&dbmodels.Usuario{}).
		Where("id = ?", userID).
		Updates(updMap).
		Error
}

func (i impl) GetByID(userID string) (rec *dbmodels.Usuario, err error) {
	err = i.db.Model(dbmodels.Usuario{}).
		Where("id = ?", userID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) FindByEmail(email string) (rec *dbmodels.Usuario, err error) {
	err = i.db.Model(dbmodels.Usuario{}).
		Where("email = ?", email).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) GetList(filter apimodels.Pagination) (list []dbmodels.Usuario, rowCount int64, err error) {
	tx := i.db.Model(dbmodels.Usuario{}).
		Where("activo = true")
	err = tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	err = tx.
		Order("nombre").
		Offset(offset).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, nil
		}
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) ListByRole(role models.UserRole) (list []dbmodels.Usuario, err error) {
	err = i.db.Model(dbmodels.Usuario{}).
		Where("role = ?", role).
		Where("activo = true").
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
