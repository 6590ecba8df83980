package orchestrator

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	fichahandler "adl-ops-backend/lib/ficha"
	notificationhandler "adl-ops-backend/lib/notification"
	"adl-ops-backend/lib/smtp"
	solicitudhandler "adl-ops-backend/lib/solicitud"
	"adl-ops-backend/lib/utils/lock"
	"adl-ops-backend/models"
)

// Action identifica una transición de workflow despachable.
type Action string

const (
	SolicitudApprove     Action = "solicitud.approve"
	SolicitudReject      Action = "solicitud.reject"
	SolicitudApproveItem Action = "solicitud.approve_item"
	SolicitudRejectItem  Action = "solicitud.reject_item"
	SolicitudDerive      Action = "solicitud.derive"
	FichaTecnicaApprove  Action = "ficha.tecnica.approve"
	FichaTecnicaReject   Action = "ficha.tecnica.reject"
	FichaCoordAccept     Action = "ficha.coordinacion.accept"
	FichaCoordReturn     Action = "ficha.coordinacion.return"
	FichaCoordReject     Action = "ficha.coordinacion.reject"
	FichaAnnul           Action = "ficha.annul"
)

func (a Action) isSolicitud() bool {
	switch a {
	case SolicitudApprove, SolicitudReject, SolicitudApproveItem, SolicitudRejectItem, SolicitudDerive:
		return true
	}
	return false
}

type Payload struct {
	EquipoID    string `json:"id_equipo,omitempty"`
	Observacion string `json:"observacion,omitempty"`
	Feedback    string `json:"feedback,omitempty"`
}

type SolicitudFlow interface {
	Approve(actor models.Actor, solicitudID string) ([]models.Effect, error)
	Reject(actor models.Actor, solicitudID, feedback string) ([]models.Effect, error)
	ApproveItem(actor models.Actor, solicitudID, equipoID string) ([]models.Effect, error)
	RejectItem(actor models.Actor, solicitudID, equipoID, feedback string) ([]models.Effect, error)
	DeriveToQuality(actor models.Actor, solicitudID, feedback string) ([]models.Effect, error)
}

type FichaFlow interface {
	TechnicalApprove(actor models.Actor, fichaID, observacion string) ([]models.Effect, error)
	TechnicalReject(actor models.Actor, fichaID, observacion string) ([]models.Effect, error)
	CoordinationAccept(actor models.Actor, fichaID, observacion string) ([]models.Effect, error)
	CoordinationReturn(actor models.Actor, fichaID, observacion string) ([]models.Effect, error)
	CoordinationReject(actor models.Actor, fichaID, observacion string) ([]models.Effect, error)
	Annul(actor models.Actor, fichaID, observacion string) ([]models.Effect, error)
}

type Notifier interface {
	Notify(usuarioID, key, mensaje string) error
	DismissByKey(key string) error
}

type Mailer interface {
	SendEMail(to, message, subject string) error
}

type Provider interface {
	Dispatch(ctx context.Context, actor models.Actor, action Action, recordID string, payload Payload) error
	ApplyEffects(effects []models.Effect)
}

var Instance Provider

func NewHandler() {
	Instance = &impl{
		solicitudes: solicitudhandler.Instance,
		fichas:      fichahandler.Instance,
		notifier:    notificationhandler.Instance,
		mailer:      smtp.Instance,
		lockWait:    5 * time.Second,
	}
}

type impl struct {
	solicitudes SolicitudFlow
	fichas      FichaFlow
	notifier    Notifier
	mailer      Mailer
	lockWait    time.Duration
}

// Dispatch ejecuta una transición serializada por registro: la exclusión por
// id garantiza que dos decisiones concurrentes sobre la misma solicitud nunca
// lean el mismo avance. Los efectos se aplican sólo tras confirmar la
// transición.
func (i *impl) Dispatch(ctx context.Context, actor models.Actor, action Action, recordID string, payload Payload) error {
	if actor.UserID == "" || actor.Role == "" {
		return models.NewPermissionError("actor no identificado")
	}
	lockKey := "ficha:" + recordID
	if action.isSolicitud() {
		lockKey = "solicitud:" + recordID
	}

	var effects []models.Effect
	locked, err := lock.WithDelay(ctx, lockKey, i.lockWait, func() error {
		var txErr error
		effects, txErr = i.run(actor, action, recordID, payload)
		return txErr
	})
	if err != nil {
		return err
	}
	if !locked {
		return models.NewConcurrencyError("el registro está siendo procesado por otra operación")
	}
	i.ApplyEffects(effects)
	return nil
}

func (i *impl) run(actor models.Actor, action Action, recordID string, payload Payload) ([]models.Effect, error) {
	switch action {
	case SolicitudApprove:
		return i.solicitudes.Approve(actor, recordID)
	case SolicitudReject:
		return i.solicitudes.Reject(actor, recordID, payload.Feedback)
	case SolicitudApproveItem:
		return i.solicitudes.ApproveItem(actor, recordID, payload.EquipoID)
	case SolicitudRejectItem:
		return i.solicitudes.RejectItem(actor, recordID, payload.EquipoID, payload.Feedback)
	case SolicitudDerive:
		return i.solicitudes.DeriveToQuality(actor, recordID, payload.Feedback)
	case FichaTecnicaApprove:
		return i.fichas.TechnicalApprove(actor, recordID, payload.Observacion)
	case FichaTecnicaReject:
		return i.fichas.TechnicalReject(actor, recordID, payload.Observacion)
	case FichaCoordAccept:
		return i.fichas.CoordinationAccept(actor, recordID, payload.Observacion)
	case FichaCoordReturn:
		return i.fichas.CoordinationReturn(actor, recordID, payload.Observacion)
	case FichaCoordReject:
		return i.fichas.CoordinationReject(actor, recordID, payload.Observacion)
	case FichaAnnul:
		return i.fichas.Annul(actor, recordID, payload.Observacion)
	}
	return nil, models.NewValidationError("acción desconocida: %v", action)
}

// ApplyEffects aplica los efectos en orden. Un efecto que falla se registra y
// no detiene a los siguientes: la transición ya está confirmada y los efectos
// son reintentables desde la bitácora.
func (i *impl) ApplyEffects(effects []models.Effect) {
	for _, effect := range effects {
		var err error
		switch effect.Type {
		case models.EffectNotifyUser:
			err = i.notifier.Notify(effect.UserID, effect.Key, effect.Message)
		case models.EffectDismissNotification:
			err = i.notifier.DismissByKey(effect.Key)
		case models.EffectSendEmail:
			if i.mailer != nil {
				err = i.mailer.SendEMail(effect.Email, effect.Message, effect.Subject)
			}
		}
		if err != nil {
			log.WithError(err).
				WithField("effect", effect.Type).
				Warn("error aplicando efecto de transición")
		}
	}
}
