package equipoapimodels

import (
	"strings"
	"time"

	"adl-ops-backend/models"
	apimodels "adl-ops-backend/models/api"
	dbmodels "adl-ops-backend/models/db"
)

type EquipoView struct {
	ID          string     `json:"id"`
	Codigo      string     `json:"codigo"`
	Nombre      string     `json:"nombre"`
	Tipo        string     `json:"tipo"`
	Estado      string     `json:"estado"`
	Ubicacion   string     `json:"ubicacion"`
	Responsable string     `json:"responsable,omitempty"`
	Vigencia    *time.Time `json:"vigencia,omitempty"`
	Version     string     `json:"version"`
}

type HistorialView struct {
	Version     string    `json:"version"`
	Vigente     bool      `json:"vigente"`
	Estado      string    `json:"estado"`
	Ubicacion   string    `json:"ubicacion"`
	FechaCambio time.Time `json:"fecha_cambio"`
}

func EquipoConvert(rec dbmodels.Equipo) EquipoView {
	view := EquipoView{
		ID:        rec.ID,
		Codigo:    rec.Codigo,
		Nombre:    rec.Nombre,
		Tipo:      rec.Tipo,
		Estado:    string(rec.Estado),
		Ubicacion: rec.Ubicacion,
		Vigencia:  rec.Vigencia,
		Version:   rec.Version,
	}
	if rec.Responsable != nil {
		view.Responsable = rec.Responsable.GetFullName()
	}
	return view
}

func HistorialConvert(rec dbmodels.EquipoHistorial) HistorialView {
	return HistorialView{
		Version:     rec.Version,
		Vigente:     rec.Vigente,
		Estado:      string(rec.Estado),
		Ubicacion:   rec.Ubicacion,
		FechaCambio: rec.FechaCambio,
	}
}

type EquipoFilter struct {
	apimodels.Pagination
	Estado string `json:"estado,omitempty"`
	Search string `json:"search,omitempty"`
}

type EquipoCreateData struct {
	Codigo                  string `json:"codigo"`
	Nombre                  string `json:"nombre"`
	Tipo                    string `json:"tipo"`
	Ubicacion               string `json:"ubicacion"`
	ResponsableID           string `json:"id_responsable"`
	MuestreadorID           string `json:"id_muestreador"`
	Vigencia                string `json:"vigencia"`
	RequiereRevisionTecnica bool   `json:"requiere_revision_tecnica"`
}

func (d EquipoCreateData) Validate() error {
	if strings.TrimSpace(d.Codigo) == "" {
		return models.NewValidationError("código del equipo es obligatorio")
	}
	if strings.TrimSpace(d.Nombre) == "" {
		return models.NewValidationError("nombre del equipo es obligatorio")
	}
	if d.Vigencia != "" {
		if _, err := time.Parse("2006-01-02", d.Vigencia); err != nil {
			return models.NewValidationError("vigencia inválida: %v", d.Vigencia)
		}
	}
	return nil
}

type EquipoUpdateData struct {
	Nombre        string `json:"nombre,omitempty"`
	Tipo          string `json:"tipo,omitempty"`
	Ubicacion     string `json:"ubicacion,omitempty"`
	ResponsableID string `json:"id_responsable,omitempty"`
	Vigencia      string `json:"vigencia,omitempty"`
}
