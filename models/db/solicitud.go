package dbmodels

import (
	"time"

	"adl-ops-backend/models"
)

// DatosAlta es el borrador de equipo que acompaña una solicitud de alta.
type DatosAlta struct {
	Codigo         string `json:"codigo"`
	Nombre         string `json:"nombre"`
	Tipo           string `json:"tipo"`
	Ubicacion      string `json:"ubicacion"`
	Responsable    string `json:"responsable"`
	MuestreadorID  string `json:"id_muestreador"`
	Vigencia       string `json:"vigencia"`
	Motivo         string `json:"motivo"`
	IsReactivation bool   `json:"is_reactivation"`
}

type DatosBaja struct {
	Motivo string `json:"motivo"`
}

type DatosTraspaso struct {
	EquipoID           string `json:"id_equipo"`
	NuevaUbicacion     string `json:"nueva_ubicacion"`
	NuevoResponsableID string `json:"nuevo_responsable_id"`
	NuevaVigencia      string `json:"nueva_vigencia"`
	Motivo             string `json:"motivo"`
}

// SolicitudDatos es la unión etiquetada por tipo de solicitud; sólo el campo
// que corresponde al tipo viene poblado.
type SolicitudDatos struct {
	Alta     *DatosAlta     `json:"alta,omitempty"`
	Baja     *DatosBaja     `json:"baja,omitempty"`
	Traspaso *DatosTraspaso `json:"traspaso,omitempty"`
}

type Solicitud struct {
	BaseModel
	Kind          models.RequestKind  `gorm:"type:varchar(20);index"`
	Estado        models.RequestState `gorm:"type:varchar(30);index"`
	Datos         SolicitudDatos      `gorm:"serializer:json"`
	SolicitanteID string              `gorm:"type:varchar(36);index"`
	Solicitante   *Usuario            `gorm:"foreignKey:SolicitanteID"`
	RevisorID     *string             `gorm:"type:varchar(36)"`
	Revisor       *Usuario            `gorm:"foreignKey:RevisorID"`
	Feedback      string
	FechaRevision *time.Time
	// RowVersion respalda el control optimista de concurrencia de las
	// transiciones; no confundir con la versión vN de los equipos.
	RowVersion int             `gorm:"default:0"`
	Items      []SolicitudItem `gorm:"foreignKey:SolicitudID"`
}

// SolicitudItem es un equipo dentro de una solicitud masiva de baja o de
// reactivación. Las solicitudes simples no tienen ítems.
type SolicitudItem struct {
	BaseModel
	SolicitudID  string `gorm:"index"`
	EquipoID     string `gorm:"type:varchar(36);index"`
	EquipoNombre string `gorm:"type:varchar(255)"`
	Procesado    bool
	Rechazado    bool
}

func (s Solicitud) IsBulk() bool {
	return len(s.Items) > 0
}

// Progress proyecta los ítems al agregado puro sobre el que se deriva el
// estado terminal.
func (s Solicitud) Progress() models.RequestProgress {
	progress := make(models.RequestProgress, 0, len(s.Items))
	for _, item := range s.Items {
		progress = append(progress, models.ItemProgress{
			EquipoID:  item.EquipoID,
			Procesado: item.Procesado,
			Rechazado: item.Rechazado,
		})
	}
	return progress
}

func (s Solicitud) FindItem(equipoID string) *SolicitudItem {
	for idx := range s.Items {
		if s.Items[idx].EquipoID == equipoID {
			return &s.Items[idx]
		}
	}
	return nil
}
