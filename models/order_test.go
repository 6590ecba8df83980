package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidationCodeGates(t *testing.T) {
	t.Run(`técnica sólo actúa sobre 0 y 3`, func(t *testing.T) {
		for code := ValidationPendiente; code <= ValidationAnulada; code++ {
			expected := code == ValidationPendiente || code == ValidationDevueltaRevision
			require.Equal(t, expected, code.AllowsTechnical(), "código %v", code)
		}
	})

	t.Run(`coordinación sólo actúa sobre 1`, func(t *testing.T) {
		for code := ValidationPendiente; code <= ValidationAnulada; code++ {
			require.Equal(t, code == ValidationAprobadaTecnica, code.AllowsCoordination(), "código %v", code)
		}
	})

	t.Run(`los demás códigos quedan congelados para ambas etapas`, func(t *testing.T) {
		for _, code := range []ValidationCode{
			ValidationRechazadaTecnica,
			ValidationRechazadaCoordinacion,
			ValidationProcesadaConAgenda,
			ValidationProcesadaSinAgenda,
			ValidationAnulada,
		} {
			require.Equal(t, true, code.IsFrozen(), "código %v", code)
		}
		require.Equal(t, false, ValidationPendiente.IsFrozen())
		require.Equal(t, false, ValidationAprobadaTecnica.IsFrozen())
	})

	t.Run(`procesada con y sin agenda`, func(t *testing.T) {
		require.Equal(t, true, ValidationProcesadaConAgenda.IsProcessed())
		require.Equal(t, true, ValidationProcesadaSinAgenda.IsProcessed())
		require.Equal(t, false, ValidationAprobadaTecnica.IsProcessed())
	})
}

func TestStageForRole(t *testing.T) {
	stage, ok := TecnicaRole.Stage()
	require.Equal(t, true, ok)
	require.Equal(t, StageTecnica, stage)

	stage, ok = CoordinacionRole.Stage()
	require.Equal(t, true, ok)
	require.Equal(t, StageCoordinacion, stage)

	_, ok = AdminMaRole.Stage()
	require.Equal(t, false, ok)
}
