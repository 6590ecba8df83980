package apimodels

import (
	"time"

	dbmodels "adl-ops-backend/models/db"
)

type TimelineEntryView struct {
	Timestamp   time.Time `json:"timestamp"`
	Actor       string    `json:"actor"`
	Accion      string    `json:"accion"`
	Desde       string    `json:"desde,omitempty"`
	Hasta       string    `json:"hasta,omitempty"`
	Observacion string    `json:"observacion,omitempty"`
}

func TimelineConvert(rec dbmodels.TimelineEntry) TimelineEntryView {
	return TimelineEntryView{
		Timestamp:   rec.CreatedAt,
		Actor:       rec.ActorNombre,
		Accion:      rec.Accion,
		Desde:       rec.Desde,
		Hasta:       rec.Hasta,
		Observacion: rec.Observacion,
	}
}
