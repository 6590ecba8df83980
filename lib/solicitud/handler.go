package solicitudhandler

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"adl-ops-backend/db"
	equipohandler "adl-ops-backend/lib/equipo"
	equipostore "adl-ops-backend/lib/equipo/store"
	solicitudstore "adl-ops-backend/lib/solicitud/store"
	timelinestore "adl-ops-backend/lib/timeline/store"
	usuariostore "adl-ops-backend/lib/usuario/store"
	"adl-ops-backend/models"
	apimodels "adl-ops-backend/models/api"
	solicitudapimodels "adl-ops-backend/models/api/solicitud"
	dbmodels "adl-ops-backend/models/db"
)

const recordType = "solicitud"

type Provider interface {
	Create(actor models.Actor, data solicitudapimodels.SolicitudCreateData) (string, []models.Effect, error)
	Approve(actor models.Actor, solicitudID string) ([]models.Effect, error)
	Reject(actor models.Actor, solicitudID, feedback string) ([]models.Effect, error)
	ApproveItem(actor models.Actor, solicitudID, equipoID string) ([]models.Effect, error)
	RejectItem(actor models.Actor, solicitudID, equipoID, feedback string) ([]models.Effect, error)
	DeriveToQuality(actor models.Actor, solicitudID, feedback string) ([]models.Effect, error)
	GetByID(solicitudID string) (*solicitudapimodels.SolicitudView, error)
	GetList(filter solicitudapimodels.SolicitudFilter, usuarioID string) ([]solicitudapimodels.SolicitudView, int64, error)
	GetTimeline(solicitudID string) ([]apimodels.TimelineEntryView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:         solicitudstore.NewInstance(db.DB),
		equipoStore:   equipostore.NewInstance(db.DB),
		usuarioStore:  usuariostore.NewInstance(db.DB),
		timelineStore: timelinestore.NewInstance(db.DB),
	}
}

type impl struct {
	store         solicitudstore.Provider
	equipoStore   equipostore.Provider
	usuarioStore  usuariostore.Provider
	timelineStore timelinestore.Provider
}

func (i impl) GetLogger(solicitudID string) *log.Entry {
	return log.WithField("solicitud_id", solicitudID)
}

func notificationKey(solicitudID string) string {
	return fmt.Sprintf("solicitud:%v", solicitudID)
}

func (i impl) Create(actor models.Actor, data solicitudapimodels.SolicitudCreateData) (string, []models.Effect, error) {
	if err := data.Validate(); err != nil {
		return "", nil, err
	}

	requiresTecnica := false
	items := make([]dbmodels.SolicitudItem, 0, len(data.Equipos))
	for _, ref := range data.Equipos {
		equipo, err := i.equipoStore.GetByID(ref.EquipoID)
		if err != nil {
			return "", nil, err
		}
		if equipo == nil {
			return "", nil, models.NewNotFoundError("equipo %v no encontrado", ref.EquipoID)
		}
		if equipo.RequiereRevisionTecnica {
			requiresTecnica = true
		}
		items = append(items, dbmodels.SolicitudItem{
			EquipoID:     equipo.ID,
			EquipoNombre: equipo.Nombre,
		})
	}
	if data.Kind == models.RequestKindTraspaso {
		equipo, err := i.equipoStore.GetByID(data.Datos.Traspaso.EquipoID)
		if err != nil {
			return "", nil, err
		}
		if equipo == nil {
			return "", nil, models.NewNotFoundError("equipo %v no encontrado", data.Datos.Traspaso.EquipoID)
		}
		if equipo.RequiereRevisionTecnica {
			requiresTecnica = true
		}
	}

	rec := dbmodels.Solicitud{
		Kind:          data.Kind,
		Estado:        initialState(requiresTecnica),
		Datos:         data.Datos,
		SolicitanteID: actor.UserID,
		Items:         items,
	}

	var solicitudID string
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		solicitudID, txErr = solicitudstore.NewInstance(tx).Create(rec)
		if txErr != nil {
			return txErr
		}
		_, txErr = timelinestore.NewInstance(tx).Append(dbmodels.TimelineEntry{
			RecordID:    solicitudID,
			RecordType:  recordType,
			ActorID:     actor.UserID,
			ActorNombre: actor.Name,
			Accion:      "creación",
			Hasta:       string(rec.Estado),
		})
		return txErr
	})
	if err != nil {
		log.WithError(err).Error("error creando solicitud")
		return "", nil, err
	}

	effects, err := i.reviewerEffects(rec.Estado, solicitudID, data.Kind)
	if err != nil {
		i.GetLogger(solicitudID).WithError(err).Warn("no se pudo preparar la notificación a revisores")
	}
	return solicitudID, effects, nil
}

// reviewerEffects arma las notificaciones para la bandeja que recibe la
// solicitud según su estado.
func (i impl) reviewerEffects(estado models.RequestState, solicitudID string, kind models.RequestKind) ([]models.Effect, error) {
	var role models.UserRole
	switch estado {
	case models.RequestStatePendiente:
		role = models.AdminMaRole
	case models.RequestStatePendienteTecnica:
		role = models.TecnicaRole
	case models.RequestStatePendienteCalidad:
		role = models.CalidadRole
	default:
		return nil, nil
	}
	reviewers, err := i.usuarioStore.ListByRole(role)
	if err != nil {
		return nil, err
	}
	mensaje := fmt.Sprintf("Nueva solicitud de %v pendiente de revisión", kind)
	effects := make([]models.Effect, 0, len(reviewers))
	for _, reviewer := range reviewers {
		effects = append(effects, models.NotifyEffect(reviewer.ID, notificationKey(solicitudID), mensaje))
	}
	return effects, nil
}

func (i impl) Approve(actor models.Actor, solicitudID string) ([]models.Effect, error) {
	return i.resolveSingle(actor, solicitudID, "", false)
}

func (i impl) Reject(actor models.Actor, solicitudID, feedback string) ([]models.Effect, error) {
	if feedback == "" {
		return nil, models.NewValidationError("el rechazo requiere un motivo")
	}
	return i.resolveSingle(actor, solicitudID, feedback, true)
}

func (i impl) resolveSingle(actor models.Actor, solicitudID, feedback string, reject bool) ([]models.Effect, error) {
	logger := i.GetLogger(solicitudID)
	sol, err := i.store.GetByID(solicitudID)
	if err != nil {
		logger.WithError(err).Error("error obteniendo solicitud")
		return nil, err
	}
	if sol == nil {
		return nil, models.NewNotFoundError("solicitud no encontrada")
	}
	newState, err := decideSingle(*sol, actor, reject)
	if err != nil {
		return nil, err
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		// el efecto sobre el equipo va primero: si falla, la transición no
		// se confirma
		if !reject {
			if txErr := i.applySingleApproveEffect(tx, *sol, actor.UserID); txErr != nil {
				return txErr
			}
		}
		now := time.Now()
		updMap := map[string]interface{}{
			"estado":         newState,
			"revisor_id":     actor.UserID,
			"fecha_revision": &now,
		}
		if feedback != "" {
			updMap["feedback"] = feedback
		}
		if txErr := solicitudstore.NewInstance(tx).UpdateWithVersion(sol.ID, sol.RowVersion, updMap); txErr != nil {
			return txErr
		}
		_, txErr := timelinestore.NewInstance(tx).Append(dbmodels.TimelineEntry{
			RecordID:    sol.ID,
			RecordType:  recordType,
			ActorID:     actor.UserID,
			ActorNombre: actor.Name,
			Accion:      decisionName(reject),
			Desde:       string(sol.Estado),
			Hasta:       string(newState),
			Observacion: feedback,
		})
		return txErr
	})
	if err != nil {
		logger.WithError(err).Error("error resolviendo solicitud")
		return nil, err
	}
	return i.terminalEffects(*sol, newState, feedback), nil
}

func decisionName(reject bool) string {
	if reject {
		return "rechazo"
	}
	return "aprobación"
}

func (i impl) applySingleApproveEffect(tx *gorm.DB, sol dbmodels.Solicitud, actorID string) error {
	equipos := equipohandler.NewHandlerWithTx(tx)
	switch sol.Kind {
	case models.RequestKindAlta:
		_, err := equipos.CreateFromAlta(*sol.Datos.Alta, actorID)
		return err
	case models.RequestKindTraspaso:
		return equipos.ApplyTraspaso(*sol.Datos.Traspaso, actorID)
	}
	return nil
}

func (i impl) ApproveItem(actor models.Actor, solicitudID, equipoID string) ([]models.Effect, error) {
	return i.resolveItem(actor, solicitudID, equipoID, "", false)
}

func (i impl) RejectItem(actor models.Actor, solicitudID, equipoID, feedback string) ([]models.Effect, error) {
	if feedback == "" {
		return nil, models.NewValidationError("el rechazo requiere un motivo")
	}
	return i.resolveItem(actor, solicitudID, equipoID, feedback, true)
}

func (i impl) resolveItem(actor models.Actor, solicitudID, equipoID, feedback string, reject bool) ([]models.Effect, error) {
	logger := i.GetLogger(solicitudID).WithField("equipo_id", equipoID)
	sol, err := i.store.GetByID(solicitudID)
	if err != nil {
		logger.WithError(err).Error("error obteniendo solicitud")
		return nil, err
	}
	if sol == nil {
		return nil, models.NewNotFoundError("solicitud no encontrada")
	}
	item, newState, err := decideItem(*sol, actor, equipoID, reject)
	if err != nil {
		return nil, err
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if !reject {
			if txErr := i.applyItemApproveEffect(tx, *sol, equipoID, actor.UserID); txErr != nil {
				return txErr
			}
		}
		txStore := solicitudstore.NewInstance(tx)
		if txErr := txStore.UpdateItem(item.ID, map[string]interface{}{
			"procesado": true,
			"rechazado": reject,
		}); txErr != nil {
			return txErr
		}
		now := time.Now()
		updMap := map[string]interface{}{
			"revisor_id":     actor.UserID,
			"fecha_revision": &now,
		}
		if newState != sol.Estado {
			updMap["estado"] = newState
		}
		if feedback != "" {
			updMap["feedback"] = feedback
		}
		// la actualización versionada serializa las decisiones concurrentes
		// sobre la misma solicitud
		if txErr := txStore.UpdateWithVersion(sol.ID, sol.RowVersion, updMap); txErr != nil {
			return txErr
		}
		_, txErr := timelinestore.NewInstance(tx).Append(dbmodels.TimelineEntry{
			RecordID:    sol.ID,
			RecordType:  recordType,
			ActorID:     actor.UserID,
			ActorNombre: actor.Name,
			Accion:      fmt.Sprintf("%v equipo %v", decisionName(reject), item.EquipoNombre),
			Desde:       string(sol.Estado),
			Hasta:       string(newState),
			Observacion: feedback,
		})
		return txErr
	})
	if err != nil {
		logger.WithError(err).Error("error resolviendo equipo de la solicitud")
		return nil, err
	}
	if !newState.IsTerminal() {
		return nil, nil
	}
	return i.terminalEffects(*sol, newState, feedback), nil
}

func (i impl) applyItemApproveEffect(tx *gorm.DB, sol dbmodels.Solicitud, equipoID, actorID string) error {
	equipos := equipohandler.NewHandlerWithTx(tx)
	switch sol.Kind {
	case models.RequestKindBaja:
		return equipos.Deactivate(equipoID, actorID)
	case models.RequestKindAlta:
		// masiva sólo en reactivaciones
		return equipos.Activate(equipoID, actorID)
	}
	return nil
}

// terminalEffects arma los efectos de cierre: descartar la notificación de la
// bandeja de revisión y avisar el resultado al solicitante.
func (i impl) terminalEffects(sol dbmodels.Solicitud, newState models.RequestState, feedback string) []models.Effect {
	if !newState.IsTerminal() {
		return nil
	}
	mensaje := fmt.Sprintf("Su solicitud de %v fue %v", sol.Kind, newState.ToHuman())
	if feedback != "" {
		mensaje = fmt.Sprintf("%v: %v", mensaje, feedback)
	}
	effects := []models.Effect{
		models.DismissEffect(notificationKey(sol.ID)),
		models.NotifyEffect(sol.SolicitanteID, notificationKey(sol.ID)+":resultado", mensaje),
	}
	if sol.Solicitante != nil && sol.Solicitante.Email != "" {
		effects = append(effects, models.EmailEffect(sol.Solicitante.Email, "Resultado de solicitud", mensaje))
	}
	return effects
}

func (i impl) DeriveToQuality(actor models.Actor, solicitudID, feedback string) ([]models.Effect, error) {
	logger := i.GetLogger(solicitudID)
	sol, err := i.store.GetByID(solicitudID)
	if err != nil {
		logger.WithError(err).Error("error obteniendo solicitud")
		return nil, err
	}
	if sol == nil {
		return nil, models.NewNotFoundError("solicitud no encontrada")
	}
	newState, err := decideDerive(*sol, actor)
	if err != nil {
		return nil, err
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		updMap := map[string]interface{}{
			"estado": newState,
		}
		if feedback != "" {
			updMap["feedback"] = feedback
		}
		if txErr := solicitudstore.NewInstance(tx).UpdateWithVersion(sol.ID, sol.RowVersion, updMap); txErr != nil {
			return txErr
		}
		_, txErr := timelinestore.NewInstance(tx).Append(dbmodels.TimelineEntry{
			RecordID:    sol.ID,
			RecordType:  recordType,
			ActorID:     actor.UserID,
			ActorNombre: actor.Name,
			Accion:      "derivación a calidad",
			Desde:       string(sol.Estado),
			Hasta:       string(newState),
			Observacion: feedback,
		})
		return txErr
	})
	if err != nil {
		logger.WithError(err).Error("error derivando solicitud")
		return nil, err
	}
	effects, err := i.reviewerEffects(newState, sol.ID, sol.Kind)
	if err != nil {
		logger.WithError(err).Warn("no se pudo preparar la notificación a calidad")
	}
	return effects, nil
}

func (i impl) GetByID(solicitudID string) (*solicitudapimodels.SolicitudView, error) {
	rec, err := i.store.GetByID(solicitudID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, models.NewNotFoundError("solicitud no encontrada")
	}
	view := solicitudapimodels.SolicitudConvert(*rec)
	return &view, nil
}

func (i impl) GetList(filter solicitudapimodels.SolicitudFilter, usuarioID string) ([]solicitudapimodels.SolicitudView, int64, error) {
	list, rowCount, err := i.store.GetList(filter, usuarioID)
	if err != nil {
		return nil, 0, err
	}
	result := make([]solicitudapimodels.SolicitudView, 0, len(list))
	for _, rec := range list {
		result = append(result, solicitudapimodels.SolicitudConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) GetTimeline(solicitudID string) ([]apimodels.TimelineEntryView, error) {
	list, err := i.timelineStore.GetByRecord(recordType, solicitudID)
	if err != nil {
		return nil, err
	}
	result := make([]apimodels.TimelineEntryView, 0, len(list))
	for _, rec := range list {
		result = append(result, apimodels.TimelineConvert(rec))
	}
	return result, nil
}
