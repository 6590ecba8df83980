package solicitudstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"adl-ops-backend/models"
	solicitudapimodels "adl-ops-backend/models/api/solicitud"
	dbmodels "adl-ops-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Solicitud) (string, error)
	GetByID(id string) (rec *dbmodels.Solicitud, err error)
	GetList(filter solicitudapimodels.SolicitudFilter, usuarioID string) (list []dbmodels.Solicitud, rowCount int64, err error)
	UpdateWithVersion(id string, rowVersion int, updMap map[string]interface{}) error
	UpdateItem(itemID string, updMap map[string]interface{}) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Solicitud) (string, error) {
	err := i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (rec *dbmodels.Solicitud, err error) {
	err = i.db.Model(dbmodels.Solicitud{}).
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

func (i impl) GetList(filter solicitudapimodels.SolicitudFilter, usuarioID string) (list []dbmodels.Solicitud, rowCount int64, err error) {
	tx := i.db.Model(dbmodels.Solicitud{})
	if filter.Estado != "" {
		tx = tx.Where("estado = ?", filter.Estado)
	}
	if filter.Kind != "" {
		tx = tx.Where("kind = ?", filter.Kind)
	}
	if filter.SoloMias {
		tx = tx.Where("solicitante_id = ?", usuarioID)
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

// UpdateWithVersion aplica la actualización sólo si la fila conserva la
// versión leída; una versión distinta significa que otra transición ganó la
// carrera y el llamador debe recargar.
func (i impl) UpdateWithVersion(id string, rowVersion int, updMap map[string]interface{}) error {
	updMap["row_version"] = rowVersion + 1
	result := i.db.
		Model(&dbmodels.Solicitud{}).
		Where("id = ?", id).
		Where("row_version = ?", rowVersion).
		Updates(updMap)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.NewConcurrencyError("la solicitud fue modificada por otro usuario, recargue e intente de nuevo")
	}
	return nil
}

func (i impl) UpdateItem(itemID string, updMap map[string]interface{}) error {
	return i.db.
		Model(&dbmodels.SolicitudItem{}).
		Where("id = ?", itemID).
		Updates(updMap).
		Error
}
