package solicitudhandler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"adl-ops-backend/models"
	dbmodels "adl-ops-backend/models/db"
)

func newBulkBaja(estado models.RequestState) dbmodels.Solicitud {
	sol := dbmodels.Solicitud{
		Kind:   models.RequestKindBaja,
		Estado: estado,
		Datos: dbmodels.SolicitudDatos{
			Baja: &dbmodels.DatosBaja{Motivo: "equipos fuera de servicio"},
		},
		Items: []dbmodels.SolicitudItem{
			{EquipoID: "E1", EquipoNombre: "Balanza 1"},
			{EquipoID: "E2", EquipoNombre: "Balanza 2"},
			{EquipoID: "E3", EquipoNombre: "Balanza 3"},
		},
	}
	sol.ID = "sol-1"
	return sol
}

var adminMa = models.Actor{UserID: "u-admin", Name: "Admin MA", Role: models.AdminMaRole}

func TestDecideItem(t *testing.T) {
	t.Run(`baja masiva: la solicitud sigue pendiente hasta procesar todos los equipos`, func(t *testing.T) {
		sol := newBulkBaja(models.RequestStatePendiente)

		// aprobar E1: queda pendiente
		item, newState, err := decideItem(sol, adminMa, "E1", false)
		require.Nil(t, err)
		require.Equal(t, "E1", item.EquipoID)
		require.Equal(t, models.RequestStatePendiente, newState)
		sol.Items[0].Procesado = true

		// rechazar E2: sigue pendiente
		_, newState, err = decideItem(sol, adminMa, "E2", true)
		require.Nil(t, err)
		require.Equal(t, models.RequestStatePendiente, newState)
		sol.Items[1].Procesado = true
		sol.Items[1].Rechazado = true

		// aprobar E3: todos procesados, resultado APROBADO porque E1 y E3 no
		// fueron rechazados
		_, newState, err = decideItem(sol, adminMa, "E3", false)
		require.Nil(t, err)
		require.Equal(t, models.RequestStateAprobado, newState)
	})

	t.Run(`todos los equipos rechazados dejan la solicitud RECHAZADO`, func(t *testing.T) {
		sol := newBulkBaja(models.RequestStatePendiente)
		sol.Items = sol.Items[:2]
		sol.Items[0].Procesado = true
		sol.Items[0].Rechazado = true

		_, newState, err := decideItem(sol, adminMa, "E2", true)
		require.Nil(t, err)
		require.Equal(t, models.RequestStateRechazado, newState)
	})

	t.Run(`un equipo ya procesado no puede decidirse de nuevo`, func(t *testing.T) {
		sol := newBulkBaja(models.RequestStatePendiente)
		sol.Items[0].Procesado = true

		_, _, err := decideItem(sol, adminMa, "E1", false)
		require.Equal(t, models.ErrKindInvalidState, models.KindOf(err))
	})

	t.Run(`un equipo ajeno a la solicitud falla`, func(t *testing.T) {
		sol := newBulkBaja(models.RequestStatePendiente)

		_, _, err := decideItem(sol, adminMa, "E9", false)
		require.Equal(t, models.ErrKindNotFound, models.KindOf(err))
	})

	t.Run(`el rol equivocado no puede resolver y no hay efecto`, func(t *testing.T) {
		sol := newBulkBaja(models.RequestStatePendiente)
		comercial := models.Actor{UserID: "u-com", Role: models.ComercialRole}

		_, _, err := decideItem(sol, comercial, "E1", false)
		require.Equal(t, models.ErrKindPermission, models.KindOf(err))
		require.Equal(t, false, sol.Items[0].Procesado)
	})

	t.Run(`en revisión técnica sólo decide la jefatura técnica o el super`, func(t *testing.T) {
		sol := newBulkBaja(models.RequestStatePendienteTecnica)

		_, _, err := decideItem(sol, adminMa, "E1", false)
		require.Equal(t, models.ErrKindPermission, models.KindOf(err))

		tecnica := models.Actor{UserID: "u-tec", Role: models.TecnicaRole}
		_, _, err = decideItem(sol, tecnica, "E1", false)
		require.Nil(t, err)

		super := models.Actor{UserID: "u-root", Role: models.SuperAdminRole}
		_, _, err = decideItem(sol, super, "E1", false)
		require.Nil(t, err)
	})

	t.Run(`una solicitud terminal queda congelada`, func(t *testing.T) {
		sol := newBulkBaja(models.RequestStateAprobado)

		_, _, err := decideItem(sol, adminMa, "E1", false)
		require.Equal(t, models.ErrKindInvalidState, models.KindOf(err))
	})
}

func TestDecideSingle(t *testing.T) {
	newTraspaso := func() dbmodels.Solicitud {
		sol := dbmodels.Solicitud{
			Kind:   models.RequestKindTraspaso,
			Estado: models.RequestStatePendiente,
			Datos: dbmodels.SolicitudDatos{
				Traspaso: &dbmodels.DatosTraspaso{EquipoID: "E1", NuevaUbicacion: "Laboratorio 2"},
			},
		}
		sol.ID = "sol-2"
		return sol
	}

	t.Run(`aprobar una solicitud simple la deja APROBADO de una vez`, func(t *testing.T) {
		newState, err := decideSingle(newTraspaso(), adminMa, false)
		require.Nil(t, err)
		require.Equal(t, models.RequestStateAprobado, newState)
	})

	t.Run(`rechazar la deja RECHAZADO`, func(t *testing.T) {
		newState, err := decideSingle(newTraspaso(), adminMa, true)
		require.Nil(t, err)
		require.Equal(t, models.RequestStateRechazado, newState)
	})

	t.Run(`una solicitud masiva no admite resolución directa`, func(t *testing.T) {
		sol := newBulkBaja(models.RequestStatePendiente)
		_, err := decideSingle(sol, adminMa, false)
		require.Equal(t, models.ErrKindValidation, models.KindOf(err))
	})
}

func TestDecideDerive(t *testing.T) {
	tecnica := models.Actor{UserID: "u-tec", Role: models.TecnicaRole}

	t.Run(`derivar a calidad sólo desde revisión técnica`, func(t *testing.T) {
		sol := newBulkBaja(models.RequestStatePendienteTecnica)
		newState, err := decideDerive(sol, tecnica)
		require.Nil(t, err)
		require.Equal(t, models.RequestStatePendienteCalidad, newState)

		sol.Estado = models.RequestStatePendiente
		_, err = decideDerive(sol, tecnica)
		require.Equal(t, models.ErrKindInvalidState, models.KindOf(err))
	})

	t.Run(`otro rol no puede derivar`, func(t *testing.T) {
		sol := newBulkBaja(models.RequestStatePendienteTecnica)
		_, err := decideDerive(sol, adminMa)
		require.Equal(t, models.ErrKindPermission, models.KindOf(err))
	})
}

func TestInitialState(t *testing.T) {
	require.Equal(t, models.RequestStatePendiente, initialState(false))
	require.Equal(t, models.RequestStatePendienteTecnica, initialState(true))
}
