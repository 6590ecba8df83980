package fichaapimodels

import (
	"strings"
	"time"

	"adl-ops-backend/models"
	apimodels "adl-ops-backend/models/api"
	dbmodels "adl-ops-backend/models/db"
)

type FichaCreateData struct {
	ClienteID   string `json:"id_cliente"`
	FuenteID    string `json:"id_fuente"`
	SubAreaID   string `json:"id_subarea"`
	ObjetivoID  string `json:"id_objetivo"`
	Responsable string `json:"responsable"`
	Observacion string `json:"observacion_comercial"`
}

func (d FichaCreateData) Validate() error {
	if d.ClienteID == "" {
		return models.NewValidationError("cliente es obligatorio")
	}
	if d.FuenteID == "" {
		return models.NewValidationError("fuente emisora es obligatoria")
	}
	return nil
}

// StageActionData acompaña las acciones de revisión técnica y coordinación.
type StageActionData struct {
	Observacion string `json:"observacion"`
}

func (d StageActionData) Validate() error {
	return nil
}

// ValidateMandatory exige observación: rechazos y devoluciones siempre
// llevan motivo.
func (d StageActionData) ValidateMandatory() error {
	if strings.TrimSpace(d.Observacion) == "" {
		return models.NewValidationError("la observación es obligatoria para esta acción")
	}
	return nil
}

type AgendaData struct {
	MuestreadorID string `json:"id_muestreador"`
	FechaMuestreo string `json:"fecha_muestreo"`
	Frecuencia    string `json:"frecuencia"`
	Factor        int    `json:"factor"`
}

func (d AgendaData) Validate() error {
	if d.MuestreadorID == "" {
		return models.NewValidationError("muestreador es obligatorio")
	}
	if _, err := time.Parse("2006-01-02", d.FechaMuestreo); err != nil {
		return models.NewValidationError("fecha de muestreo inválida: %v", d.FechaMuestreo)
	}
	return nil
}

type FichaFilter struct {
	apimodels.Pagination
	Validacion *models.ValidationCode `json:"validacion,omitempty"`
	ClienteID  string                 `json:"id_cliente,omitempty"`
}

type AgendaView struct {
	MuestreadorID string     `json:"id_muestreador,omitempty"`
	FechaMuestreo *time.Time `json:"fecha_muestreo,omitempty"`
	Frecuencia    string     `json:"frecuencia,omitempty"`
	Factor        int        `json:"factor,omitempty"`
}

type FichaView struct {
	ID              string                `json:"id"`
	Correlativo     string                `json:"correlativo"`
	Validacion      models.ValidationCode `json:"validacion"`
	ValidacionHuman string                `json:"validacion_nombre"`
	Cliente         string                `json:"cliente,omitempty"`
	Fuente          string                `json:"fuente,omitempty"`
	Responsable     string                `json:"responsable,omitempty"`
	Observaciones   map[string]string     `json:"observaciones"`
	Agenda          *AgendaView           `json:"agenda,omitempty"`
	FechaCreacion   time.Time             `json:"fecha_creacion"`
}

func FichaConvert(rec dbmodels.Ficha) FichaView {
	view := FichaView{
		ID:              rec.ID,
		Correlativo:     rec.Correlativo,
		Validacion:      rec.Validacion,
		ValidacionHuman: rec.Validacion.ToHuman(),
		Responsable:     rec.Responsable,
		FechaCreacion:   rec.CreatedAt,
		Observaciones: map[string]string{
			string(models.StageComercial):    rec.ObservacionComercial,
			string(models.StageTecnica):      rec.ObservacionTecnica,
			string(models.StageCoordinacion): rec.ObservacionCoordinacion,
		},
	}
	if rec.Cliente != nil {
		view.Cliente = rec.Cliente.Nombre
	}
	if rec.Fuente != nil {
		view.Fuente = rec.Fuente.Nombre
	}
	if rec.Agenda != nil {
		agenda := AgendaView{
			FechaMuestreo: rec.Agenda.FechaMuestreo,
			Frecuencia:    rec.Agenda.Frecuencia,
			Factor:        rec.Agenda.Factor,
		}
		if rec.Agenda.MuestreadorID != nil {
			agenda.MuestreadorID = *rec.Agenda.MuestreadorID
		}
		view.Agenda = &agenda
	}
	return view
}
