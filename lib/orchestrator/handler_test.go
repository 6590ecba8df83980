package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"adl-ops-backend/models"
)

type fakeSolicitudFlow struct {
	effects []models.Effect
	err     error
	calls   []string
}

func (f *fakeSolicitudFlow) Approve(actor models.Actor, id string) ([]models.Effect, error) {
	f.calls = append(f.calls, "approve:"+id)
	return f.effects, f.err
}

func (f *fakeSolicitudFlow) Reject(actor models.Actor, id, feedback string) ([]models.Effect, error) {
	f.calls = append(f.calls, "reject:"+id)
	return f.effects, f.err
}

func (f *fakeSolicitudFlow) ApproveItem(actor models.Actor, id, equipoID string) ([]models.Effect, error) {
	f.calls = append(f.calls, "approve_item:"+id+":"+equipoID)
	return f.effects, f.err
}

func (f *fakeSolicitudFlow) RejectItem(actor models.Actor, id, equipoID, feedback string) ([]models.Effect, error) {
	f.calls = append(f.calls, "reject_item:"+id+":"+equipoID)
	return f.effects, f.err
}

func (f *fakeSolicitudFlow) DeriveToQuality(actor models.Actor, id, feedback string) ([]models.Effect, error) {
	f.calls = append(f.calls, "derive:"+id)
	return f.effects, f.err
}

type fakeFichaFlow struct {
	effects []models.Effect
	err     error
	calls   []string
}

func (f *fakeFichaFlow) record(name, id string) ([]models.Effect, error) {
	f.calls = append(f.calls, name+":"+id)
	return f.effects, f.err
}

func (f *fakeFichaFlow) TechnicalApprove(actor models.Actor, id, obs string) ([]models.Effect, error) {
	return f.record("tecnica_approve", id)
}

func (f *fakeFichaFlow) TechnicalReject(actor models.Actor, id, obs string) ([]models.Effect, error) {
	return f.record("tecnica_reject", id)
}

func (f *fakeFichaFlow) CoordinationAccept(actor models.Actor, id, obs string) ([]models.Effect, error) {
	return f.record("coord_accept", id)
}

func (f *fakeFichaFlow) CoordinationReturn(actor models.Actor, id, obs string) ([]models.Effect, error) {
	return f.record("coord_return", id)
}

func (f *fakeFichaFlow) CoordinationReject(actor models.Actor, id, obs string) ([]models.Effect, error) {
	return f.record("coord_reject", id)
}

func (f *fakeFichaFlow) Annul(actor models.Actor, id, obs string) ([]models.Effect, error) {
	return f.record("annul", id)
}

type fakeNotifier struct {
	notified  []string
	dismissed []string
}

func (f *fakeNotifier) Notify(usuarioID, key, mensaje string) error {
	f.notified = append(f.notified, usuarioID+":"+key)
	return nil
}

func (f *fakeNotifier) DismissByKey(key string) error {
	f.dismissed = append(f.dismissed, key)
	return nil
}

type fakeMailer struct {
	sent []string
}

func (f *fakeMailer) SendEMail(to, message, subject string) error {
	f.sent = append(f.sent, to)
	return nil
}

func newTestOrchestrator() (*impl, *fakeSolicitudFlow, *fakeFichaFlow, *fakeNotifier, *fakeMailer) {
	solicitudes := &fakeSolicitudFlow{}
	fichas := &fakeFichaFlow{}
	notifier := &fakeNotifier{}
	mailer := &fakeMailer{}
	orch := &impl{
		solicitudes: solicitudes,
		fichas:      fichas,
		notifier:    notifier,
		mailer:      mailer,
		lockWait:    time.Second,
	}
	return orch, solicitudes, fichas, notifier, mailer
}

var actor = models.Actor{UserID: "u1", Name: "Admin", Role: models.AdminMaRole}

func TestDispatch(t *testing.T) {
	ctx := context.Background()

	t.Run(`aplica los efectos en orden tras una transición exitosa`, func(t *testing.T) {
		orch, solicitudes, _, notifier, mailer := newTestOrchestrator()
		solicitudes.effects = []models.Effect{
			models.DismissEffect("solicitud:s1"),
			models.NotifyEffect("u-sol", "solicitud:s1:resultado", "aprobada"),
			models.EmailEffect("sol@adl.cl", "Resultado", "aprobada"),
		}

		err := orch.Dispatch(ctx, actor, SolicitudApprove, "s1", Payload{})
		require.Nil(t, err)
		require.Equal(t, []string{"approve:s1"}, solicitudes.calls)
		require.Equal(t, []string{"solicitud:s1"}, notifier.dismissed)
		require.Equal(t, []string{"u-sol:solicitud:s1:resultado"}, notifier.notified)
		require.Equal(t, []string{"sol@adl.cl"}, mailer.sent)
	})

	t.Run(`una transición fallida no aplica ningún efecto`, func(t *testing.T) {
		orch, solicitudes, _, notifier, mailer := newTestOrchestrator()
		solicitudes.err = models.NewInvalidStateError("ya resuelta")
		solicitudes.effects = []models.Effect{models.DismissEffect("solicitud:s1")}

		err := orch.Dispatch(ctx, actor, SolicitudApprove, "s1", Payload{})
		require.Equal(t, models.ErrKindInvalidState, models.KindOf(err))
		require.Empty(t, notifier.dismissed)
		require.Empty(t, notifier.notified)
		require.Empty(t, mailer.sent)
	})

	t.Run(`el error tipado del flujo llega sin envolver`, func(t *testing.T) {
		orch, _, fichas, _, _ := newTestOrchestrator()
		fichas.err = models.NewPermissionError("rol incorrecto")

		err := orch.Dispatch(ctx, actor, FichaTecnicaApprove, "f1", Payload{Observacion: "ok"})
		require.Equal(t, models.ErrKindPermission, models.KindOf(err))
	})

	t.Run(`enruta cada acción a su flujo`, func(t *testing.T) {
		orch, solicitudes, fichas, _, _ := newTestOrchestrator()

		require.Nil(t, orch.Dispatch(ctx, actor, SolicitudApproveItem, "s1", Payload{EquipoID: "E1"}))
		require.Nil(t, orch.Dispatch(ctx, actor, SolicitudRejectItem, "s1", Payload{EquipoID: "E2", Feedback: "dañado"}))
		require.Nil(t, orch.Dispatch(ctx, actor, FichaCoordAccept, "f1", Payload{}))
		require.Nil(t, orch.Dispatch(ctx, actor, FichaAnnul, "f2", Payload{}))

		require.Equal(t, []string{"approve_item:s1:E1", "reject_item:s1:E2"}, solicitudes.calls)
		require.Equal(t, []string{"coord_accept:f1", "annul:f2"}, fichas.calls)
	})

	t.Run(`acción desconocida falla con ValidationError`, func(t *testing.T) {
		orch, _, _, _, _ := newTestOrchestrator()
		err := orch.Dispatch(ctx, actor, Action("no.existe"), "x", Payload{})
		require.Equal(t, models.ErrKindValidation, models.KindOf(err))
	})

	t.Run(`actor sin identificar es rechazado antes de tocar el flujo`, func(t *testing.T) {
		orch, solicitudes, _, _, _ := newTestOrchestrator()
		err := orch.Dispatch(ctx, models.Actor{}, SolicitudApprove, "s1", Payload{})
		require.Equal(t, models.ErrKindPermission, models.KindOf(err))
		require.Empty(t, solicitudes.calls)
	})
}
