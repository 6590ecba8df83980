package equipohandler

import (
	"testing"

	"github.com/stretchr/testify/require"

	equipoapimodels "adl-ops-backend/models/api/equipo"
	dbmodels "adl-ops-backend/models/db"
)

func TestAltaCreateData(t *testing.T) {
	t.Run(`el borrador aprobado se traslada completo al equipo`, func(t *testing.T) {
		alta := dbmodels.DatosAlta{
			Codigo:        "BAL-009",
			Nombre:        "Balanza analítica",
			Tipo:          "Balanza",
			Ubicacion:     "Laboratorio central",
			Responsable:   "u-resp",
			MuestreadorID: "u-muestreador",
			Vigencia:      "2027-01-31",
			Motivo:        "equipo nuevo",
		}
		require.Equal(t, equipoapimodels.EquipoCreateData{
			Codigo:        "BAL-009",
			Nombre:        "Balanza analítica",
			Tipo:          "Balanza",
			Ubicacion:     "Laboratorio central",
			ResponsableID: "u-resp",
			MuestreadorID: "u-muestreador",
			Vigencia:      "2027-01-31",
		}, altaCreateData(alta))
	})

	t.Run(`un borrador sin responsable ni muestreador sigue siendo válido`, func(t *testing.T) {
		data := altaCreateData(dbmodels.DatosAlta{Codigo: "BAL-010", Nombre: "Balanza"})
		require.Equal(t, "", data.ResponsableID)
		require.Equal(t, "", data.MuestreadorID)
		require.Nil(t, data.Validate())
	})
}

func TestNextVersion(t *testing.T) {
	require.Equal(t, "v2", nextVersion("v1"))
	require.Equal(t, "v8", nextVersion("v7"))
	require.Equal(t, "v1", nextVersion(""))
	require.Equal(t, "v1", nextVersion("vX"))
	require.Equal(t, "v1", nextVersion("v0"))
}
