package dbmodels

import (
	"time"

	"adl-ops-backend/models"
)

// Ficha es la ficha de ingreso de servicio ambiental. Avanza por el circuito
// Comercial → Técnica → Coordinación según su código de validación.
type Ficha struct {
	BaseModel
	Correlativo string                `gorm:"type:varchar(20);uniqueIndex"`
	Validacion  models.ValidationCode `gorm:"index"`

	ClienteID   *string            `gorm:"type:varchar(36)"`
	Cliente     *CatClienteEmpresa `gorm:"foreignKey:ClienteID"`
	FuenteID    *string            `gorm:"type:varchar(36)"`
	Fuente      *CatFuenteEmisora  `gorm:"foreignKey:FuenteID"`
	SubAreaID   *string            `gorm:"type:varchar(36)"`
	ObjetivoID  *string            `gorm:"type:varchar(36)"`
	Responsable string             `gorm:"type:varchar(255)"`

	// Observaciones por etapa: cada etapa escribe una sola vez su casilla.
	ObservacionComercial    string `gorm:"type:varchar(250)"`
	ObservacionTecnica      string `gorm:"type:varchar(250)"`
	ObservacionCoordinacion string `gorm:"type:varchar(250)"`

	UsuarioID  string   `gorm:"type:varchar(36)"`
	Usuario    *Usuario `gorm:"foreignKey:UsuarioID"`
	RowVersion int      `gorm:"default:0"`

	Agenda *FichaAgenda `gorm:"foreignKey:FichaID"`
}

// FichaAgenda es la programación de muestreo asociada a una ficha aprobada.
type FichaAgenda struct {
	BaseModel
	FichaID       string  `gorm:"uniqueIndex"`
	MuestreadorID *string `gorm:"type:varchar(36)"`
	FechaMuestreo *time.Time
	Frecuencia    string  `gorm:"type:varchar(100)"`
	Factor        int     `gorm:"default:1"`
	CoordinadorID *string `gorm:"type:varchar(36)"`
}

func (f Ficha) HasAgendaAssigned() bool {
	return f.Agenda != nil && f.Agenda.MuestreadorID != nil && f.Agenda.FechaMuestreo != nil
}

// StageObservation devuelve la observación escrita por una etapa.
func (f Ficha) StageObservation(stage models.ReviewStage) string {
	switch stage {
	case models.StageComercial:
		return f.ObservacionComercial
	case models.StageTecnica:
		return f.ObservacionTecnica
	case models.StageCoordinacion:
		return f.ObservacionCoordinacion
	}
	return ""
}
