package fichastore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"adl-ops-backend/models"
	fichaapimodels "adl-ops-backend/models/api/ficha"
	dbmodels "adl-ops-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Ficha) (string, error)
	GetByID(id string) (rec *dbmodels.Ficha, err error)
	GetList(filter fichaapimodels.FichaFilter) (list []dbmodels.Ficha, rowCount int64, err error)
	Update(id string, updMap map[string]interface{}) error
	UpdateWithVersion(id string, rowVersion int, updMap map[string]interface{}) error
	GetLastCorrelativo() (correlativo string, err error)
	SaveAgenda(rec dbmodels.FichaAgenda) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Ficha) (string, error) {
	err := i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (rec *dbmodels.Ficha, err error) {
	err = i.db.Model(dbmodels.Ficha{}).
		Where("id = ?", id).
		Preload(clause.Associations).
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

func (i impl) GetList(filter fichaapimodels.FichaFilter) (list []dbmodels.Ficha, rowCount int64, err error) {
	tx := i.db.Model(dbmodels.Ficha{})
	if filter.Validacion != nil {
		tx = tx.Where("validacion = ?", *filter.Validacion)
	}
	if filter.ClienteID != "" {
		tx = tx.Where("cliente_id = ?", filter.ClienteID)
	}
	err = tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	err = tx.
		Preload(clause.Associations).
		Order("created_at desc").
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

func (i impl) Update(id string, updMap map[string]interface{}) error {
	return i.db.
		Model(&dbmodels.Ficha{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

// UpdateWithVersion aplica la transición sólo si la ficha conserva la versión
// leída; ver el contrato de concurrencia en el flujo de revisión.
func (i impl) UpdateWithVersion(id string, rowVersion int, updMap map[string]interface{}) error {
	updMap["row_version"] = rowVersion + 1
	result := i.db.
		Model(&dbmodels.Ficha{}).
		Where("id = ?", id).
		Where("row_version = ?", rowVersion).
		Updates(updMap)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.NewConcurrencyError("la ficha fue modificada por otro usuario, recargue e intente de nuevo")
	}
	return nil
}

func (i impl) GetLastCorrelativo() (correlativo string, err error) {
	var rec dbmodels.Ficha
	err = i.db.Model(dbmodels.Ficha{}).
		Order("correlativo desc").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return rec.Correlativo, nil
}

// SaveAgenda crea o reemplaza la agenda de la ficha.
func (i impl) SaveAgenda(rec dbmodels.FichaAgenda) error {
	return i.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ficha_id"}},
			UpdateAll: true,
		}).
		Create(&rec).
		Error
}
