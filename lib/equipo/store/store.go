package equipostore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	equipoapimodels "adl-ops-backend/models/api/equipo"
	dbmodels "adl-ops-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Equipo) (string, error)
	Update(equipoID string, updMap map[string]interface{}) error
	GetByID(equipoID string) (rec *dbmodels.Equipo, err error)
	GetByCodigo(codigo string) (rec *dbmodels.Equipo, err error)
	GetList(filter equipoapimodels.EquipoFilter) (list []dbmodels.Equipo, rowCount int64, err error)
	GetLastCodigo(prefix string) (codigo string, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Equipo) (string, error) {
	err := i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(equipoID string, updMap map[string]interface{}) error {
	return i.db.
		Model(&dbmodels.Equipo{}).
		Where("id = ?", equipoID).
		Updates(updMap).
		Error
}

func (i impl) GetByID(equipoID string) (rec *dbmodels.Equipo, err error) {
	err = i.db.Model(dbmodels.Equipo{}).
		Where("id = ?", equipoID).
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

func (i impl) GetByCodigo(codigo string) (rec *dbmodels.Equipo, err error) {
	err = i.db.Model(dbmodels.Equipo{}).
		Where("codigo = ?", codigo).
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

func (i impl) GetList(filter equipoapimodels.EquipoFilter) (list []dbmodels.Equipo, rowCount int64, err error) {
	tx := i.db.Model(dbmodels.Equipo{})
	if filter.Estado != "" {
		tx = tx.Where("estado = ?", filter.Estado)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		tx = tx.Where("codigo ilike ? or nombre ilike ?", like, like)
	}
	err = tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	err = tx.
		Preload("Responsable").
		Order("codigo").
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

// GetLastCodigo devuelve el código más alto con el prefijo dado, para sugerir
// el correlativo siguiente al dar de alta un equipo.
func (i impl) GetLastCodigo(prefix string) (codigo string, err error) {
	var rec dbmodels.Equipo
	err = i.db.Model(dbmodels.Equipo{}).
		Where("codigo like ?", prefix+"%").
		Order("codigo desc").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return rec.Codigo, nil
}
