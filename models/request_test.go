package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestProgressDerive(t *testing.T) {
	t.Run(`sigue pendiente mientras quede un ítem sin procesar`, func(t *testing.T) {
		progress := RequestProgress{
			{EquipoID: "E1", Procesado: true},
			{EquipoID: "E2"},
			{EquipoID: "E3"},
		}
		require.Equal(t, RequestStatePendiente, progress.Derive(RequestStatePendiente))
		require.Equal(t, false, progress.AllProcessed())
	})

	t.Run(`resultados mixtos mantienen el estado no terminal`, func(t *testing.T) {
		progress := RequestProgress{
			{EquipoID: "E1", Procesado: true},
			{EquipoID: "E2", Procesado: true, Rechazado: true},
			{EquipoID: "E3"},
		}
		derived := progress.Derive(RequestStatePendienteTecnica)
		require.Equal(t, RequestStatePendienteTecnica, derived)
		require.Equal(t, false, derived.IsTerminal())
	})

	t.Run(`terminal APROBADO si al menos un procesado no fue rechazado`, func(t *testing.T) {
		progress := RequestProgress{
			{EquipoID: "E1", Procesado: true},
			{EquipoID: "E2", Procesado: true, Rechazado: true},
			{EquipoID: "E3", Procesado: true},
		}
		require.Equal(t, RequestStateAprobado, progress.Derive(RequestStatePendiente))
	})

	t.Run(`terminal RECHAZADO si todos fueron rechazados`, func(t *testing.T) {
		progress := RequestProgress{
			{EquipoID: "E1", Procesado: true, Rechazado: true},
			{EquipoID: "E2", Procesado: true, Rechazado: true},
		}
		require.Equal(t, RequestStateRechazado, progress.Derive(RequestStatePendiente))
	})

	t.Run(`sin ítems no hay derivación`, func(t *testing.T) {
		require.Equal(t, RequestStatePendiente, RequestProgress{}.Derive(RequestStatePendiente))
	})
}

func TestRequestStateCanReview(t *testing.T) {
	cases := []struct {
		state   RequestState
		role    UserRole
		allowed bool
	}{
		{RequestStatePendiente, AdminMaRole, true},
		{RequestStatePendiente, TecnicaRole, false},
		{RequestStatePendienteTecnica, TecnicaRole, true},
		{RequestStatePendienteTecnica, AdminMaRole, false},
		{RequestStatePendienteCalidad, CalidadRole, true},
		{RequestStatePendienteCalidad, TecnicaRole, false},
		{RequestStateAprobado, AdminMaRole, false},
		{RequestStateRechazado, SuperAdminRole, false},
		{RequestStatePendiente, SuperAdminRole, true},
		{RequestStatePendienteCalidad, SuperAdminRole, true},
	}
	for _, c := range cases {
		require.Equal(t, c.allowed, c.state.CanReview(c.role),
			"estado %v, rol %v", c.state, c.role)
	}
}

func TestRequestKindValid(t *testing.T) {
	require.Equal(t, true, RequestKindAlta.Valid())
	require.Equal(t, true, RequestKindBaja.Valid())
	require.Equal(t, true, RequestKindTraspaso.Valid())
	require.Equal(t, false, RequestKind("PRESTAMO").Valid())
}
