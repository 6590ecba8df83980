package apimodels

import (
	"time"

	dbmodels "adl-ops-backend/models/db"
)

type NotificationView struct {
	ID      string    `json:"id"`
	Mensaje string    `json:"mensaje"`
	Fecha   time.Time `json:"fecha"`
}

func NotificationConvert(rec dbmodels.Notification) NotificationView {
	return NotificationView{
		ID:      rec.ID,
		Mensaje: rec.Mensaje,
		Fecha:   rec.CreatedAt,
	}
}
