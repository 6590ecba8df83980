package fichahandler

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"adl-ops-backend/models"
	dbmodels "adl-ops-backend/models/db"
)

var (
	tecnica      = models.Actor{UserID: "u-tec", Name: "Jefa Técnica", Role: models.TecnicaRole}
	coordinacion = models.Actor{UserID: "u-coord", Name: "Coordinadora", Role: models.CoordinacionRole}
	comercial    = models.Actor{UserID: "u-com", Name: "Ejecutivo", Role: models.ComercialRole}
)

func newFicha(code models.ValidationCode) dbmodels.Ficha {
	ficha := dbmodels.Ficha{
		Correlativo: "F-00042",
		Validacion:  code,
		UsuarioID:   "u-com",
	}
	ficha.ID = "ficha-1"
	return ficha
}

func TestDecideTechnical(t *testing.T) {
	t.Run(`aprueba desde pendiente y desde devuelta a revisión`, func(t *testing.T) {
		for _, code := range []models.ValidationCode{models.ValidationPendiente, models.ValidationDevueltaRevision} {
			newCode, err := decideTechnical(newFicha(code), tecnica, "todo en orden", false)
			require.Nil(t, err)
			require.Equal(t, models.ValidationAprobadaTecnica, newCode)
		}
	})

	t.Run(`rechaza con observación obligatoria`, func(t *testing.T) {
		newCode, err := decideTechnical(newFicha(models.ValidationPendiente), tecnica, "faltan antecedentes", true)
		require.Nil(t, err)
		require.Equal(t, models.ValidationRechazadaTecnica, newCode)

		_, err = decideTechnical(newFicha(models.ValidationPendiente), tecnica, "  ", true)
		require.Equal(t, models.ErrKindValidation, models.KindOf(err))
	})

	t.Run(`falla con InvalidState fuera de los códigos 0 y 3`, func(t *testing.T) {
		frozen := []models.ValidationCode{
			models.ValidationAprobadaTecnica,
			models.ValidationRechazadaTecnica,
			models.ValidationRechazadaCoordinacion,
			models.ValidationProcesadaConAgenda,
			models.ValidationProcesadaSinAgenda,
			models.ValidationAnulada,
		}
		for _, code := range frozen {
			_, err := decideTechnical(newFicha(code), tecnica, "obs", false)
			require.Equal(t, models.ErrKindInvalidState, models.KindOf(err), "código %v", code)
			_, err = decideTechnical(newFicha(code), tecnica, "obs", true)
			require.Equal(t, models.ErrKindInvalidState, models.KindOf(err), "código %v", code)
		}
	})

	t.Run(`otro rol no puede actuar en la etapa técnica`, func(t *testing.T) {
		_, err := decideTechnical(newFicha(models.ValidationPendiente), coordinacion, "obs", false)
		require.Equal(t, models.ErrKindPermission, models.KindOf(err))
	})
}

func TestDecideCoordination(t *testing.T) {
	t.Run(`acepta sólo con aprobación técnica previa`, func(t *testing.T) {
		newCode, err := decideCoordination(newFicha(models.ValidationAprobadaTecnica), coordinacion, "", coordinationAccept)
		require.Nil(t, err)
		require.Equal(t, models.ValidationProcesadaSinAgenda, newCode)

		for _, code := range []models.ValidationCode{
			models.ValidationPendiente,
			models.ValidationRechazadaTecnica,
			models.ValidationDevueltaRevision,
			models.ValidationProcesadaConAgenda,
		} {
			_, err = decideCoordination(newFicha(code), coordinacion, "", coordinationAccept)
			require.Equal(t, models.ErrKindInvalidState, models.KindOf(err), "código %v", code)
		}
	})

	t.Run(`con agenda asignada queda procesada con agenda`, func(t *testing.T) {
		ficha := newFicha(models.ValidationAprobadaTecnica)
		muestreador := "u-muestreador"
		fecha := ficha.CreatedAt
		ficha.Agenda = &dbmodels.FichaAgenda{
			MuestreadorID: &muestreador,
			FechaMuestreo: &fecha,
		}
		newCode, err := decideCoordination(ficha, coordinacion, "", coordinationAccept)
		require.Nil(t, err)
		require.Equal(t, models.ValidationProcesadaConAgenda, newCode)
	})

	t.Run(`devolución y rechazo exigen observación`, func(t *testing.T) {
		newCode, err := decideCoordination(newFicha(models.ValidationAprobadaTecnica), coordinacion, "falta programación", coordinationReturn)
		require.Nil(t, err)
		require.Equal(t, models.ValidationDevueltaRevision, newCode)

		_, err = decideCoordination(newFicha(models.ValidationAprobadaTecnica), coordinacion, "", coordinationReturn)
		require.Equal(t, models.ErrKindValidation, models.KindOf(err))

		newCode, err = decideCoordination(newFicha(models.ValidationAprobadaTecnica), coordinacion, "fuera de alcance", coordinationReject)
		require.Nil(t, err)
		require.Equal(t, models.ValidationRechazadaCoordinacion, newCode)

		_, err = decideCoordination(newFicha(models.ValidationAprobadaTecnica), coordinacion, "", coordinationReject)
		require.Equal(t, models.ErrKindValidation, models.KindOf(err))
	})

	t.Run(`escenario: rechazo técnico congela la coordinación`, func(t *testing.T) {
		ficha := newFicha(models.ValidationPendiente)
		newCode, err := decideTechnical(ficha, tecnica, "necesita corrección", true)
		require.Nil(t, err)
		require.Equal(t, models.ValidationRechazadaTecnica, newCode)

		ficha.Validacion = newCode
		_, err = decideCoordination(ficha, coordinacion, "", coordinationAccept)
		require.Equal(t, models.ErrKindInvalidState, models.KindOf(err))
	})
}

func TestDecideAnnul(t *testing.T) {
	t.Run(`anula fichas no procesadas`, func(t *testing.T) {
		newCode, err := decideAnnul(newFicha(models.ValidationPendiente), coordinacion)
		require.Nil(t, err)
		require.Equal(t, models.ValidationAnulada, newCode)
	})

	t.Run(`una ficha procesada o anulada no se anula de nuevo`, func(t *testing.T) {
		for _, code := range []models.ValidationCode{
			models.ValidationProcesadaConAgenda,
			models.ValidationProcesadaSinAgenda,
			models.ValidationAnulada,
		} {
			_, err := decideAnnul(newFicha(code), coordinacion)
			require.Equal(t, models.ErrKindInvalidState, models.KindOf(err))
		}
	})
}

func TestGuardEdit(t *testing.T) {
	require.Nil(t, guardEdit(newFicha(models.ValidationPendiente), comercial))
	require.Nil(t, guardEdit(newFicha(models.ValidationDevueltaRevision), comercial))

	err := guardEdit(newFicha(models.ValidationAprobadaTecnica), comercial)
	require.Equal(t, models.ErrKindInvalidState, models.KindOf(err))

	err = guardEdit(newFicha(models.ValidationPendiente), tecnica)
	require.Equal(t, models.ErrKindPermission, models.KindOf(err))
}

func TestNextCorrelativo(t *testing.T) {
	require.Equal(t, "F-00001", nextCorrelativo(""))
	require.Equal(t, "F-00043", nextCorrelativo("F-00042"))
	require.Equal(t, "F-00100", nextCorrelativo("F-00099"))
	require.Equal(t, "F-00001", nextCorrelativo("basura"))
}

func TestClassifyCreate(t *testing.T) {
	t.Run(`un correlativo duplicado es un conflicto de concurrencia`, func(t *testing.T) {
		err := classifyCreate(gorm.ErrDuplicatedKey)
		require.Equal(t, models.ErrKindConcurrency, models.KindOf(err))

		err = classifyCreate(errors.Wrap(gorm.ErrDuplicatedKey, "insertando ficha"))
		require.Equal(t, models.ErrKindConcurrency, models.KindOf(err))
	})

	t.Run(`cualquier otro error pasa sin cambios`, func(t *testing.T) {
		original := errors.New("se cayó la base")
		require.Equal(t, original, classifyCreate(original))
		require.Nil(t, classifyCreate(nil))
	})
}
