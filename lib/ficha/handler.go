package fichahandler

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"adl-ops-backend/db"
	fichastore "adl-ops-backend/lib/ficha/store"
	timelinestore "adl-ops-backend/lib/timeline/store"
	usuariostore "adl-ops-backend/lib/usuario/store"
	"adl-ops-backend/models"
	apimodels "adl-ops-backend/models/api"
	fichaapimodels "adl-ops-backend/models/api/ficha"
	dbmodels "adl-ops-backend/models/db"
)

const recordType = "ficha"

type Provider interface {
	Create(actor models.Actor, data fichaapimodels.FichaCreateData) (string, []models.Effect, error)
	Update(actor models.Actor, fichaID string, data fichaapimodels.FichaCreateData) error
	TechnicalApprove(actor models.Actor, fichaID, observacion string) ([]models.Effect, error)
	TechnicalReject(actor models.Actor, fichaID, observacion string) ([]models.Effect, error)
	CoordinationAccept(actor models.Actor, fichaID, observacion string) ([]models.Effect, error)
	CoordinationReturn(actor models.Actor, fichaID, observacion string) ([]models.Effect, error)
	CoordinationReject(actor models.Actor, fichaID, observacion string) ([]models.Effect, error)
	Annul(actor models.Actor, fichaID, observacion string) ([]models.Effect, error)
	SaveAgenda(actor models.Actor, fichaID string, data fichaapimodels.AgendaData) error
	GetByID(fichaID string) (*fichaapimodels.FichaView, error)
	GetList(filter fichaapimodels.FichaFilter) ([]fichaapimodels.FichaView, int64, error)
	GetTimeline(fichaID string) ([]apimodels.TimelineEntryView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:         fichastore.NewInstance(db.DB),
		usuarioStore:  usuariostore.NewInstance(db.DB),
		timelineStore: timelinestore.NewInstance(db.DB),
	}
}

type impl struct {
	store         fichastore.Provider
	usuarioStore  usuariostore.Provider
	timelineStore timelinestore.Provider
}

func (i impl) GetLogger(fichaID string) *log.Entry {
	return log.WithField("ficha_id", fichaID)
}

func notificationKey(fichaID string) string {
	return fmt.Sprintf("ficha:%v", fichaID)
}

func (i impl) Create(actor models.Actor, data fichaapimodels.FichaCreateData) (string, []models.Effect, error) {
	if err := data.Validate(); err != nil {
		return "", nil, err
	}
	rec := dbmodels.Ficha{
		Validacion:           models.ValidationPendiente,
		ClienteID:            &data.ClienteID,
		FuenteID:             &data.FuenteID,
		Responsable:          data.Responsable,
		ObservacionComercial: data.Observacion,
		UsuarioID:            actor.UserID,
	}
	if data.SubAreaID != "" {
		rec.SubAreaID = &data.SubAreaID
	}
	if data.ObjetivoID != "" {
		rec.ObjetivoID = &data.ObjetivoID
	}

	// El correlativo se calcula dentro de la misma transacción que el insert;
	// dos creaciones simultáneas no deben poder leer el mismo último folio y,
	// si aun así colisionan en el índice único, el perdedor recibe un
	// conflicto de concurrencia y no un error genérico.
	var fichaID string
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		txStore := fichastore.NewInstance(tx)
		last, txErr := txStore.GetLastCorrelativo()
		if txErr != nil {
			return txErr
		}
		rec.Correlativo = nextCorrelativo(last)
		fichaID, txErr = txStore.Create(rec)
		if txErr != nil {
			return classifyCreate(txErr)
		}
		_, txErr = timelinestore.NewInstance(tx).Append(dbmodels.TimelineEntry{
			RecordID:    fichaID,
			RecordType:  recordType,
			ActorID:     actor.UserID,
			ActorNombre: actor.Name,
			Accion:      "creación",
			Hasta:       models.ValidationPendiente.ToHuman(),
		})
		return txErr
	})
	if err != nil {
		log.WithError(err).Error("error creando ficha")
		return "", nil, err
	}

	effects, err := i.stageEffects(models.TecnicaRole, fichaID, rec.Correlativo, "pendiente de revisión técnica")
	if err != nil {
		i.GetLogger(fichaID).WithError(err).Warn("no se pudo preparar la notificación a técnica")
	}
	return fichaID, effects, nil
}

func (i impl) stageEffects(role models.UserRole, fichaID, correlativo, detalle string) ([]models.Effect, error) {
	reviewers, err := i.usuarioStore.ListByRole(role)
	if err != nil {
		return nil, err
	}
	mensaje := fmt.Sprintf("Ficha %v %v", correlativo, detalle)
	effects := make([]models.Effect, 0, len(reviewers))
	for _, reviewer := range reviewers {
		effects = append(effects, models.NotifyEffect(reviewer.ID, notificationKey(fichaID), mensaje))
	}
	return effects, nil
}

func (i impl) Update(actor models.Actor, fichaID string, data fichaapimodels.FichaCreateData) error {
	if err := data.Validate(); err != nil {
		return err
	}
	ficha, err := i.load(fichaID)
	if err != nil {
		return err
	}
	if err = guardEdit(*ficha, actor); err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"cliente_id":  data.ClienteID,
		"fuente_id":   data.FuenteID,
		"responsable": data.Responsable,
	}
	if data.SubAreaID != "" {
		updMap["sub_area_id"] = data.SubAreaID
	}
	if data.ObjetivoID != "" {
		updMap["objetivo_id"] = data.ObjetivoID
	}
	if data.Observacion != "" {
		updMap["observacion_comercial"] = data.Observacion
	}
	return i.store.UpdateWithVersion(fichaID, ficha.RowVersion, updMap)
}

func (i impl) load(fichaID string) (*dbmodels.Ficha, error) {
	ficha, err := i.store.GetByID(fichaID)
	if err != nil {
		i.GetLogger(fichaID).WithError(err).Error("error obteniendo ficha")
		return nil, err
	}
	if ficha == nil {
		return nil, models.NewNotFoundError("ficha no encontrada")
	}
	return ficha, nil
}

// commit aplica la transición con control de versión y deja la entrada en la
// bitácora. La observación se escribe sólo en la casilla de la etapa que
// actúa; las de etapas anteriores no se tocan.
func (i impl) commit(actor models.Actor, ficha dbmodels.Ficha, newCode models.ValidationCode, accion, observacion, obsColumn string) error {
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		updMap := map[string]interface{}{
			"validacion": newCode,
		}
		if observacion != "" && obsColumn != "" {
			updMap[obsColumn] = observacion
		}
		if txErr := fichastore.NewInstance(tx).UpdateWithVersion(ficha.ID, ficha.RowVersion, updMap); txErr != nil {
			return txErr
		}
		_, txErr := timelinestore.NewInstance(tx).Append(dbmodels.TimelineEntry{
			RecordID:    ficha.ID,
			RecordType:  recordType,
			ActorID:     actor.UserID,
			ActorNombre: actor.Name,
			Accion:      accion,
			Desde:       ficha.Validacion.ToHuman(),
			Hasta:       newCode.ToHuman(),
			Observacion: observacion,
		})
		return txErr
	})
	if err != nil {
		i.GetLogger(ficha.ID).WithError(err).Error("error aplicando transición de ficha")
	}
	return err
}

func (i impl) TechnicalApprove(actor models.Actor, fichaID, observacion string) ([]models.Effect, error) {
	ficha, err := i.load(fichaID)
	if err != nil {
		return nil, err
	}
	newCode, err := decideTechnical(*ficha, actor, observacion, false)
	if err != nil {
		return nil, err
	}
	if err = i.commit(actor, *ficha, newCode, "aprobación técnica", observacion, "observacion_tecnica"); err != nil {
		return nil, err
	}
	effects, err := i.stageEffects(models.CoordinacionRole, ficha.ID, ficha.Correlativo, "lista para coordinación")
	if err != nil {
		i.GetLogger(fichaID).WithError(err).Warn("no se pudo preparar la notificación a coordinación")
	}
	return effects, nil
}

func (i impl) TechnicalReject(actor models.Actor, fichaID, observacion string) ([]models.Effect, error) {
	ficha, err := i.load(fichaID)
	if err != nil {
		return nil, err
	}
	newCode, err := decideTechnical(*ficha, actor, observacion, true)
	if err != nil {
		return nil, err
	}
	if err = i.commit(actor, *ficha, newCode, "rechazo técnico", observacion, "observacion_tecnica"); err != nil {
		return nil, err
	}
	return i.creatorEffects(*ficha, fmt.Sprintf("Ficha %v rechazada por técnica: %v", ficha.Correlativo, observacion)), nil
}

func (i impl) creatorEffects(ficha dbmodels.Ficha, mensaje string) []models.Effect {
	effects := []models.Effect{
		models.DismissEffect(notificationKey(ficha.ID)),
		models.NotifyEffect(ficha.UsuarioID, notificationKey(ficha.ID)+":resultado", mensaje),
	}
	if ficha.Usuario != nil && ficha.Usuario.Email != "" {
		effects = append(effects, models.EmailEffect(ficha.Usuario.Email, "Ficha "+ficha.Correlativo, mensaje))
	}
	return effects
}

func (i impl) CoordinationAccept(actor models.Actor, fichaID, observacion string) ([]models.Effect, error) {
	ficha, err := i.load(fichaID)
	if err != nil {
		return nil, err
	}
	newCode, err := decideCoordination(*ficha, actor, observacion, coordinationAccept)
	if err != nil {
		return nil, err
	}
	if err = i.commit(actor, *ficha, newCode, "aceptación coordinación", observacion, "observacion_coordinacion"); err != nil {
		return nil, err
	}
	return i.creatorEffects(*ficha, fmt.Sprintf("Ficha %v procesada por coordinación", ficha.Correlativo)), nil
}

func (i impl) CoordinationReturn(actor models.Actor, fichaID, observacion string) ([]models.Effect, error) {
	ficha, err := i.load(fichaID)
	if err != nil {
		return nil, err
	}
	newCode, err := decideCoordination(*ficha, actor, observacion, coordinationReturn)
	if err != nil {
		return nil, err
	}
	if err = i.commit(actor, *ficha, newCode, "devolución a revisión", observacion, "observacion_coordinacion"); err != nil {
		return nil, err
	}
	return i.creatorEffects(*ficha, fmt.Sprintf("Ficha %v devuelta a revisión: %v", ficha.Correlativo, observacion)), nil
}

func (i impl) CoordinationReject(actor models.Actor, fichaID, observacion string) ([]models.Effect, error) {
	ficha, err := i.load(fichaID)
	if err != nil {
		return nil, err
	}
	newCode, err := decideCoordination(*ficha, actor, observacion, coordinationReject)
	if err != nil {
		return nil, err
	}
	if err = i.commit(actor, *ficha, newCode, "rechazo coordinación", observacion, "observacion_coordinacion"); err != nil {
		return nil, err
	}
	return i.creatorEffects(*ficha, fmt.Sprintf("Ficha %v rechazada por coordinación: %v", ficha.Correlativo, observacion)), nil
}

func (i impl) Annul(actor models.Actor, fichaID, observacion string) ([]models.Effect, error) {
	ficha, err := i.load(fichaID)
	if err != nil {
		return nil, err
	}
	newCode, err := decideAnnul(*ficha, actor)
	if err != nil {
		return nil, err
	}
	if err = i.commit(actor, *ficha, newCode, "anulación", observacion, "observacion_coordinacion"); err != nil {
		return nil, err
	}
	return i.creatorEffects(*ficha, fmt.Sprintf("Ficha %v anulada", ficha.Correlativo)), nil
}

// SaveAgenda asigna el muestreo; se decide antes de aceptar en coordinación
// para que el cierre distinga procesada con o sin agenda.
func (i impl) SaveAgenda(actor models.Actor, fichaID string, data fichaapimodels.AgendaData) error {
	if err := data.Validate(); err != nil {
		return err
	}
	ficha, err := i.load(fichaID)
	if err != nil {
		return err
	}
	if err = guardStage(actor, models.CoordinacionRole); err != nil {
		return err
	}
	if !ficha.Validacion.AllowsCoordination() {
		return models.NewInvalidStateError("la agenda sólo puede asignarse con la ficha en coordinación")
	}
	fecha, _ := time.Parse("2006-01-02", data.FechaMuestreo)
	rec := dbmodels.FichaAgenda{
		FichaID:       fichaID,
		MuestreadorID: &data.MuestreadorID,
		FechaMuestreo: &fecha,
		Frecuencia:    data.Frecuencia,
		Factor:        data.Factor,
		CoordinadorID: &actor.UserID,
	}
	if rec.Factor < 1 {
		rec.Factor = 1
	}
	return i.store.SaveAgenda(rec)
}

func (i impl) GetByID(fichaID string) (*fichaapimodels.FichaView, error) {
	ficha, err := i.load(fichaID)
	if err != nil {
		return nil, err
	}
	view := fichaapimodels.FichaConvert(*ficha)
	return &view, nil
}

func (i impl) GetList(filter fichaapimodels.FichaFilter) ([]fichaapimodels.FichaView, int64, error) {
	list, rowCount, err := i.store.GetList(filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]fichaapimodels.FichaView, 0, len(list))
	for _, rec := range list {
		result = append(result, fichaapimodels.FichaConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) GetTimeline(fichaID string) ([]apimodels.TimelineEntryView, error) {
	list, err := i.timelineStore.GetByRecord(recordType, fichaID)
	if err != nil {
		return nil, err
	}
	result := make([]apimodels.TimelineEntryView, 0, len(list))
	for _, rec := range list {
		result = append(result, apimodels.TimelineConvert(rec))
	}
	return result, nil
}
