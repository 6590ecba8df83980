package solicitudapimodels

import (
	"strings"
	"time"

	"adl-ops-backend/models"
	apimodels "adl-ops-backend/models/api"
	dbmodels "adl-ops-backend/models/db"
)

type EquipoRef struct {
	EquipoID string `json:"id_equipo"`
	Nombre   string `json:"nombre"`
}

// SolicitudCreateData es el cuerpo de creación; Datos es la unión etiquetada
// por Kind y Equipos sólo viene en bajas masivas o reactivaciones.
type SolicitudCreateData struct {
	Kind    models.RequestKind      `json:"tipo_solicitud"`
	Datos   dbmodels.SolicitudDatos `json:"datos"`
	Equipos []EquipoRef             `json:"equipos,omitempty"`
}

func (d SolicitudCreateData) Validate() error {
	if !d.Kind.Valid() {
		return models.NewValidationError("tipo de solicitud desconocido: %v", d.Kind)
	}
	switch d.Kind {
	case models.RequestKindAlta:
		if d.Datos.Alta == nil {
			return models.NewValidationError("faltan los datos de alta")
		}
		if d.Datos.Alta.IsReactivation {
			if len(d.Equipos) == 0 {
				return models.NewValidationError("una reactivación requiere al menos un equipo")
			}
		} else if strings.TrimSpace(d.Datos.Alta.Nombre) == "" {
			return models.NewValidationError("nombre del equipo es obligatorio")
		}
	case models.RequestKindBaja:
		if d.Datos.Baja == nil {
			return models.NewValidationError("faltan los datos de baja")
		}
		if strings.TrimSpace(d.Datos.Baja.Motivo) == "" {
			return models.NewValidationError("motivo de la baja es obligatorio")
		}
		if len(d.Equipos) == 0 {
			return models.NewValidationError("una baja requiere al menos un equipo")
		}
	case models.RequestKindTraspaso:
		if d.Datos.Traspaso == nil {
			return models.NewValidationError("faltan los datos de traspaso")
		}
		if d.Datos.Traspaso.EquipoID == "" {
			return models.NewValidationError("equipo a traspasar es obligatorio")
		}
		if d.Datos.Traspaso.NuevaUbicacion == "" && d.Datos.Traspaso.NuevoResponsableID == "" && d.Datos.Traspaso.NuevaVigencia == "" {
			return models.NewValidationError("el traspaso no modifica ningún campo")
		}
	}
	return nil
}

type ItemDecisionData struct {
	EquipoID string `json:"id_equipo"`
	Feedback string `json:"feedback"`
}

func (d ItemDecisionData) Validate() error {
	if d.EquipoID == "" {
		return models.NewValidationError("id de equipo es obligatorio")
	}
	return nil
}

func (d ItemDecisionData) ValidateReject() error {
	if err := d.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(d.Feedback) == "" {
		return models.NewValidationError("el rechazo requiere un motivo")
	}
	return nil
}

type SolicitudFilter struct {
	apimodels.Pagination
	Estado   models.RequestState `json:"estado,omitempty"`
	Kind     models.RequestKind  `json:"tipo_solicitud,omitempty"`
	SoloMias bool                `json:"solo_mias,omitempty"`
}

type ItemView struct {
	EquipoID  string `json:"id_equipo"`
	Nombre    string `json:"nombre"`
	Procesado bool   `json:"procesado"`
	Rechazado bool   `json:"rechazado"`
}

type SolicitudView struct {
	ID            string                  `json:"id"`
	Kind          models.RequestKind      `json:"tipo_solicitud"`
	Estado        models.RequestState     `json:"estado"`
	EstadoHuman   string                  `json:"estado_nombre"`
	Datos         dbmodels.SolicitudDatos `json:"datos"`
	Items         []ItemView              `json:"items,omitempty"`
	Solicitante   string                  `json:"solicitante"`
	Revisor       string                  `json:"revisor,omitempty"`
	Feedback      string                  `json:"feedback,omitempty"`
	FechaCreacion time.Time               `json:"fecha_creacion"`
	FechaRevision *time.Time              `json:"fecha_revision,omitempty"`
}

func SolicitudConvert(rec dbmodels.Solicitud) SolicitudView {
	view := SolicitudView{
		ID:            rec.ID,
		Kind:          rec.Kind,
		Estado:        rec.Estado,
		EstadoHuman:   rec.Estado.ToHuman(),
		Datos:         rec.Datos,
		Feedback:      rec.Feedback,
		FechaCreacion: rec.CreatedAt,
		FechaRevision: rec.FechaRevision,
	}
	if rec.Solicitante != nil {
		view.Solicitante = rec.Solicitante.GetFullName()
	}
	if rec.Revisor != nil {
		view.Revisor = rec.Revisor.GetFullName()
	}
	for _, item := range rec.Items {
		view.Items = append(view.Items, ItemView{
			EquipoID:  item.EquipoID,
			Nombre:    item.EquipoNombre,
			Procesado: item.Procesado,
			Rechazado: item.Rechazado,
		})
	}
	return view
}
