package timelinestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "adl-ops-backend/models/db"
)

type Provider interface {
	Append(rec dbmodels.TimelineEntry) (string, error)
	GetByRecord(recordType, recordID string) (list []dbmodels.TimelineEntry, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Append(rec dbmodels.TimelineEntry) (string, error) {
	err := i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByRecord(recordType, recordID string) (list []dbmodels.TimelineEntry, err error) {
	err = i.db.Model(dbmodels.TimelineEntry{}).
		Where("record_type = ?", recordType).
		Where("record_id = ?", recordID).
		Order("created_at").
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
