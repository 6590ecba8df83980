package equipohandler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"adl-ops-backend/db"
	equipohistorystore "adl-ops-backend/lib/equipo/history-store"
	equipostore "adl-ops-backend/lib/equipo/store"
	"adl-ops-backend/models"
	equipoapimodels "adl-ops-backend/models/api/equipo"
	dbmodels "adl-ops-backend/models/db"
)

type Provider interface {
	Create(data equipoapimodels.EquipoCreateData, actorID string) (string, error)
	Update(equipoID string, data equipoapimodels.EquipoUpdateData, actorID string) error
	RestoreVersion(equipoID, historialID, actorID string) error
	Deactivate(equipoID, actorID string) error
	Activate(equipoID, actorID string) error
	CreateFromAlta(alta dbmodels.DatosAlta, actorID string) (string, error)
	ApplyTraspaso(traspaso dbmodels.DatosTraspaso, actorID string) error
	GetByID(equipoID string) (*equipoapimodels.EquipoView, error)
	GetList(filter equipoapimodels.EquipoFilter) ([]equipoapimodels.EquipoView, int64, error)
	GetHistorial(equipoID string) ([]equipoapimodels.HistorialView, error)
	SuggestNextCodigo(prefix string) (string, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		db:           db.DB,
		store:        equipostore.NewInstance(db.DB),
		historyStore: equipohistorystore.NewInstance(db.DB),
	}
}

// NewHandlerWithTx permite ejecutar las mutaciones de equipo dentro de la
// transacción de una solicitud, para que el cambio de estado y el efecto sobre
// el equipo se confirmen juntos o no se confirmen.
func NewHandlerWithTx(tx *gorm.DB) Provider {
	return impl{
		db:           tx,
		store:        equipostore.NewInstance(tx),
		historyStore: equipohistorystore.NewInstance(tx),
	}
}

type impl struct {
	db           *gorm.DB
	store        equipostore.Provider
	historyStore equipohistorystore.Provider
}

func (i impl) GetLogger(equipoID string) *log.Entry {
	return log.WithField("equipo_id", equipoID)
}

// nextVersion avanza la etiqueta vN; una etiqueta ilegible reinicia en v1.
func nextVersion(version string) string {
	n, err := strconv.Atoi(strings.TrimPrefix(version, "v"))
	if err != nil || n < 1 {
		return "v1"
	}
	return fmt.Sprintf("v%v", n+1)
}

func parseVigencia(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, models.NewValidationError("vigencia inválida: %v", value)
	}
	return &parsed, nil
}

func (i impl) Create(data equipoapimodels.EquipoCreateData, actorID string) (string, error) {
	if err := data.Validate(); err != nil {
		return "", err
	}
	existing, err := i.store.GetByCodigo(data.Codigo)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", models.NewValidationError("ya existe un equipo con el código %v", data.Codigo)
	}
	vigencia, err := parseVigencia(data.Vigencia)
	if err != nil {
		return "", err
	}
	rec := dbmodels.Equipo{
		Codigo:                  data.Codigo,
		Nombre:                  data.Nombre,
		Tipo:                    data.Tipo,
		Estado:                  dbmodels.EquipoActivo,
		Ubicacion:               data.Ubicacion,
		Vigencia:                vigencia,
		RequiereRevisionTecnica: data.RequiereRevisionTecnica,
		Version:                 "v1",
	}
	if data.ResponsableID != "" {
		rec.ResponsableID = &data.ResponsableID
	}
	if data.MuestreadorID != "" {
		rec.MuestreadorID = &data.MuestreadorID
	}

	var equipoID string
	err = i.db.Transaction(func(tx *gorm.DB) error {
		h := NewHandlerWithTx(tx).(impl)
		equipoID, err = h.store.Create(rec)
		if err != nil {
			return err
		}
		rec.ID = equipoID
		return h.appendVigente(rec, actorID)
	})
	if err != nil {
		log.WithError(err).Error("error creando equipo")
		return "", err
	}
	return equipoID, nil
}

func (i impl) Update(equipoID string, data equipoapimodels.EquipoUpdateData, actorID string) error {
	updMap := map[string]interface{}{}
	if data.Nombre != "" {
		updMap["nombre"] = data.Nombre
	}
	if data.Tipo != "" {
		updMap["tipo"] = data.Tipo
	}
	if data.Ubicacion != "" {
		updMap["ubicacion"] = data.Ubicacion
	}
	if data.ResponsableID != "" {
		updMap["responsable_id"] = data.ResponsableID
	}
	if data.Vigencia != "" {
		vigencia, err := parseVigencia(data.Vigencia)
		if err != nil {
			return err
		}
		updMap["vigencia"] = vigencia
	}
	if len(updMap) == 0 {
		return models.NewValidationError("la actualización no modifica ningún campo")
	}
	return i.commitNewVersion(equipoID, actorID, updMap)
}

// commitNewVersion aplica la actualización con la disciplina copiar y luego
// reemplazar: la versión anterior ya está en el historial, la nueva se graba
// y queda como única entrada vigente.
func (i impl) commitNewVersion(equipoID, actorID string, updMap map[string]interface{}) error {
	logger := i.GetLogger(equipoID)
	return i.db.Transaction(func(tx *gorm.DB) error {
		h := NewHandlerWithTx(tx).(impl)
		rec, err := h.store.GetByID(equipoID)
		if err != nil {
			logger.WithError(err).Error("error obteniendo equipo")
			return err
		}
		if rec == nil {
			return models.NewNotFoundError("equipo no encontrado")
		}
		updMap["version"] = nextVersion(rec.Version)
		if err = h.store.Update(equipoID, updMap); err != nil {
			logger.WithError(err).Error("error actualizando equipo")
			return err
		}
		updated, err := h.store.GetByID(equipoID)
		if err != nil {
			return err
		}
		return h.appendVigente(*updated, actorID)
	})
}

func (i impl) appendVigente(rec dbmodels.Equipo, actorID string) error {
	if err := i.historyStore.ClearVigente(rec.ID); err != nil {
		return err
	}
	snap := rec.Snapshot(actorID)
	snap.Vigente = true
	_, err := i.historyStore.Append(snap)
	return err
}

func (i impl) RestoreVersion(equipoID, historialID, actorID string) error {
	logger := i.GetLogger(equipoID)
	return i.db.Transaction(func(tx *gorm.DB) error {
		h := NewHandlerWithTx(tx).(impl)
		entry, err := h.historyStore.GetByID(historialID)
		if err != nil {
			return err
		}
		if entry == nil || entry.EquipoID != equipoID {
			return models.NewNotFoundError("versión no encontrada")
		}
		rec, err := h.store.GetByID(equipoID)
		if err != nil {
			return err
		}
		if rec == nil {
			return models.NewNotFoundError("equipo no encontrado")
		}
		updMap := map[string]interface{}{
			"nombre":         entry.Nombre,
			"tipo":           entry.Tipo,
			"estado":         entry.Estado,
			"ubicacion":      entry.Ubicacion,
			"responsable_id": entry.ResponsableID,
			"muestreador_id": entry.MuestreadorID,
			"vigencia":       entry.Vigencia,
			"version":        nextVersion(rec.Version),
		}
		if err = h.store.Update(equipoID, updMap); err != nil {
			logger.WithError(err).Error("error restaurando versión")
			return err
		}
		updated, err := h.store.GetByID(equipoID)
		if err != nil {
			return err
		}
		return h.appendVigente(*updated, actorID)
	})
}

func (i impl) Deactivate(equipoID, actorID string) error {
	return i.commitNewVersion(equipoID, actorID, map[string]interface{}{
		"estado": dbmodels.EquipoInactivo,
	})
}

func (i impl) Activate(equipoID, actorID string) error {
	return i.commitNewVersion(equipoID, actorID, map[string]interface{}{
		"estado": dbmodels.EquipoActivo,
	})
}

// altaCreateData traslada el borrador de alta completo; el equipo creado no
// puede perder campos respecto de lo que se aprobó.
func altaCreateData(alta dbmodels.DatosAlta) equipoapimodels.EquipoCreateData {
	return equipoapimodels.EquipoCreateData{
		Codigo:        alta.Codigo,
		Nombre:        alta.Nombre,
		Tipo:          alta.Tipo,
		Ubicacion:     alta.Ubicacion,
		ResponsableID: alta.Responsable,
		MuestreadorID: alta.MuestreadorID,
		Vigencia:      alta.Vigencia,
	}
}

// CreateFromAlta materializa el borrador de equipo aprobado en una solicitud
// de alta.
func (i impl) CreateFromAlta(alta dbmodels.DatosAlta, actorID string) (string, error) {
	return i.Create(altaCreateData(alta), actorID)
}

// ApplyTraspaso aplica al equipo los cambios de ubicación, responsable y
// vigencia de un traspaso aprobado.
func (i impl) ApplyTraspaso(traspaso dbmodels.DatosTraspaso, actorID string) error {
	updMap := map[string]interface{}{}
	if traspaso.NuevaUbicacion != "" {
		updMap["ubicacion"] = traspaso.NuevaUbicacion
	}
	if traspaso.NuevoResponsableID != "" {
		updMap["responsable_id"] = traspaso.NuevoResponsableID
	}
	if traspaso.NuevaVigencia != "" {
		vigencia, err := parseVigencia(traspaso.NuevaVigencia)
		if err != nil {
			return err
		}
		updMap["vigencia"] = vigencia
	}
	if len(updMap) == 0 {
		return models.NewValidationError("el traspaso no modifica ningún campo")
	}
	return i.commitNewVersion(traspaso.EquipoID, actorID, updMap)
}

func (i impl) GetByID(equipoID string) (*equipoapimodels.EquipoView, error) {
	rec, err := i.store.GetByID(equipoID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, models.NewNotFoundError("equipo no encontrado")
	}
	view := equipoapimodels.EquipoConvert(*rec)
	return &view, nil
}

func (i impl) GetList(filter equipoapimodels.EquipoFilter) ([]equipoapimodels.EquipoView, int64, error) {
	list, rowCount, err := i.store.GetList(filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]equipoapimodels.EquipoView, 0, len(list))
	for _, rec := range list {
		result = append(result, equipoapimodels.EquipoConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) GetHistorial(equipoID string) ([]equipoapimodels.HistorialView, error) {
	list, err := i.historyStore.ListByEquipo(equipoID)
	if err != nil {
		return nil, err
	}
	result := make([]equipoapimodels.HistorialView, 0, len(list))
	for _, rec := range list {
		result = append(result, equipoapimodels.HistorialConvert(rec))
	}
	return result, nil
}

// SuggestNextCodigo propone el correlativo siguiente al último código con el
// prefijo dado, por ejemplo BAL-007 → BAL-008.
func (i impl) SuggestNextCodigo(prefix string) (string, error) {
	last, err := i.store.GetLastCodigo(prefix)
	if err != nil {
		return "", err
	}
	if last == "" {
		return fmt.Sprintf("%v-001", prefix), nil
	}
	idx := strings.LastIndex(last, "-")
	if idx < 0 {
		return fmt.Sprintf("%v-001", prefix), nil
	}
	n, err := strconv.Atoi(last[idx+1:])
	if err != nil {
		return fmt.Sprintf("%v-001", prefix), nil
	}
	return fmt.Sprintf("%v-%03d", last[:idx], n+1), nil
}
