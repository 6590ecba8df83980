package rbac

import (
	"testing"

	"github.com/stretchr/testify/require"

	"adl-ops-backend/models"
)

func TestRbac(t *testing.T) {
	t.Run(`pathToRegex check`, func(t *testing.T) {
		path, method, err := parseSwaggerPattern("/api/v1/fichas/{id}/tecnica/approve [put]")
		require.Nil(t, err)
		require.Equal(t, PUT, method)
		r1 := pathToRegex(path)

		validUri := "/api/v1/fichas/123-321/tecnica/approve"
		isMatch := r1.MatchString(validUri)
		require.Equal(t, true, isMatch)

		invalidUri := "/api/v1/fichas/tecnica/approve"
		isMatch = r1.MatchString(invalidUri)
		require.Equal(t, false, isMatch)

		path, method, err = parseSwaggerPattern("/api/v1/solicitudes/{id}/equipos/{equipoId}/approve [put]")
		require.Nil(t, err)
		require.Equal(t, PUT, method)
		r2 := pathToRegex(path)

		validUri = "/api/v1/solicitudes/123-321/equipos/qwe-ewr123-wr-12/approve"
		isMatch = r2.MatchString(validUri)
		require.Equal(t, true, isMatch)

		invalidUri = "/api/v1/solicitudes/we-ewr123-wr-12/approve"
		isMatch = r2.MatchString(invalidUri)
		require.Equal(t, false, isMatch)
	})

	t.Run(`rule lookup by role`, func(t *testing.T) {
		NewHandler()

		handler, found := Instance.GetRuleFunc("PUT", "/api/v1/fichas/abc-123/tecnica/approve")
		require.Equal(t, true, found)
		require.Equal(t, true, handler("u1", models.TecnicaRole, "/api/v1/fichas/abc-123/tecnica/approve"))
		require.Equal(t, false, handler("u1", models.ComercialRole, "/api/v1/fichas/abc-123/tecnica/approve"))
		// el superadministrador pasa cualquier regla
		require.Equal(t, true, handler("u1", models.SuperAdminRole, "/api/v1/fichas/abc-123/tecnica/approve"))

		handler, found = Instance.GetRuleFunc("GET", "/api/v1/catalogos/clientes")
		require.Equal(t, true, found)
		require.Equal(t, true, handler("u1", models.ComercialRole, "/api/v1/catalogos/clientes"))

		_, found = Instance.GetRuleFunc("DELETE", "/api/v1/fichas/abc-123")
		require.Equal(t, false, found)
	})

	t.Run(`permissions map for front`, func(t *testing.T) {
		NewHandler()

		perms := Instance.GetPermissions(models.CoordinacionRole)
		require.Contains(t, perms[models.FichaModule], models.FlowPermission)
		require.Contains(t, perms[models.FichaModule], models.EditPermission)
		require.NotContains(t, perms[models.FichaModule], models.CreatePermission)
	})
}
