package equipohistorystore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "adl-ops-backend/models/db"
)

type Provider interface {
	Append(rec dbmodels.EquipoHistorial) (string, error)
	ClearVigente(equipoID string) error
	ListByEquipo(equipoID string) (list []dbmodels.EquipoHistorial, err error)
	GetByID(id string) (rec *dbmodels.EquipoHistorial, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Append(rec dbmodels.EquipoHistorial) (string, error) {
	err := i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

// ClearVigente desmarca la entrada vigente; se llama antes de agregar la
// nueva para conservar a lo más una entrada vigente por equipo.
func (i impl) ClearVigente(equipoID string) error {
	return i.db.
		Model(&dbmodels.EquipoHistorial{}).
		Where("equipo_id = ?", equipoID).
		Where("vigente = true").
		Update("vigente", false).
		Error
}

func (i impl) ListByEquipo(equipoID string) (list []dbmodels.EquipoHistorial, err error) {
	err = i.db.Model(dbmodels.EquipoHistorial{}).
		Where("equipo_id = ?", equipoID).
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

func (i impl) GetByID(id string) (rec *dbmodels.EquipoHistorial, err error) {
	err = i.db.Model(dbmodels.EquipoHistorial{}).
		Where("id = ?", id).
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
