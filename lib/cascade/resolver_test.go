package cascade

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"adl-ops-backend/models"
)

func optionsLoader(prefix string, parent FieldID) Loader {
	return func(ctx context.Context, parents map[FieldID]Value) ([]Option, error) {
		parentValue := parents[parent]
		return []Option{
			{ID: Value(fmt.Sprintf("%v-%v-1", prefix, parentValue)), Label: "opción 1"},
			{ID: Value(fmt.Sprintf("%v-%v-2", prefix, parentValue)), Label: "opción 2"},
		}, nil
	}
}

func TestResolverInteractive(t *testing.T) {
	ctx := context.Background()

	t.Run(`un cambio de padre limpia todos los descendientes`, func(t *testing.T) {
		r, err := New(
			FieldSpec{ID: "tipoMuestreo"},
			FieldSpec{ID: "tipoMuestra", Parents: []FieldID{"tipoMuestreo"}, Loader: optionsLoader("tm", "tipoMuestreo")},
			FieldSpec{ID: "actividad", Parents: []FieldID{"tipoMuestra"}, Loader: optionsLoader("act", "tipoMuestra")},
		)
		require.Nil(t, err)

		_, err = r.SetValue(ctx, "tipoMuestreo", "1")
		require.Nil(t, err)
		r.WaitForLoads()
		require.Len(t, r.GetOptions("tipoMuestra"), 2)

		_, err = r.SetValue(ctx, "tipoMuestra", "tm-1-1")
		require.Nil(t, err)
		_, err = r.SetValue(ctx, "actividad", "act-tm-1-1-2")
		require.Nil(t, err)
		r.WaitForLoads()

		// nuevo valor del padre sin coincidencia de snapshot
		_, err = r.SetValue(ctx, "tipoMuestreo", "2")
		require.Nil(t, err)
		r.WaitForLoads()

		require.Equal(t, Value(""), r.GetValue("tipoMuestra"))
		require.Equal(t, Value(""), r.GetValue("actividad"))
		require.Empty(t, r.GetOptions("actividad"))
	})

	t.Run(`padre vacío deja al hijo sin opciones y sin carga`, func(t *testing.T) {
		loads := atomic.Int32{}
		r, err := New(
			FieldSpec{ID: "cliente"},
			FieldSpec{ID: "fuente", Parents: []FieldID{"cliente"}, Loader: func(ctx context.Context, parents map[FieldID]Value) ([]Option, error) {
				loads.Add(1)
				return []Option{{ID: "f1"}}, nil
			}},
		)
		require.Nil(t, err)

		_, err = r.SetValue(ctx, "cliente", "7")
		require.Nil(t, err)
		r.WaitForLoads()
		require.Equal(t, int32(1), loads.Load())

		scheduled, err := r.SetValue(ctx, "cliente", "")
		require.Nil(t, err)
		require.Empty(t, scheduled)
		r.WaitForLoads()
		require.Equal(t, int32(1), loads.Load())
		require.Empty(t, r.GetOptions("fuente"))
	})

	t.Run(`campo con varios padres carga solo con todos resueltos`, func(t *testing.T) {
		loads := atomic.Int32{}
		r, err := New(
			FieldSpec{ID: "componente"},
			FieldSpec{ID: "lugar"},
			FieldSpec{ID: "subArea", Parents: []FieldID{"componente", "lugar"}, Loader: func(ctx context.Context, parents map[FieldID]Value) ([]Option, error) {
				loads.Add(1)
				return []Option{{ID: "sa1"}}, nil
			}},
		)
		require.Nil(t, err)

		scheduled, err := r.SetValue(ctx, "componente", "3")
		require.Nil(t, err)
		require.Empty(t, scheduled)
		r.WaitForLoads()
		require.Equal(t, int32(0), loads.Load())

		scheduled, err = r.SetValue(ctx, "lugar", "2")
		require.Nil(t, err)
		require.Equal(t, []FieldID{"subArea"}, scheduled)
		r.WaitForLoads()
		require.Equal(t, int32(1), loads.Load())
	})

	t.Run(`el error de un loader no afecta a los hermanos`, func(t *testing.T) {
		r, err := New(
			FieldSpec{ID: "cliente"},
			FieldSpec{ID: "fuente", Parents: []FieldID{"cliente"}, Loader: func(ctx context.Context, parents map[FieldID]Value) ([]Option, error) {
				return nil, fmt.Errorf("catálogo caído")
			}},
			FieldSpec{ID: "objetivo", Parents: []FieldID{"cliente"}, Loader: optionsLoader("obj", "cliente")},
		)
		require.Nil(t, err)

		_, err = r.SetValue(ctx, "cliente", "7")
		require.Nil(t, err)
		r.WaitForLoads()

		require.NotNil(t, r.GetFieldError("fuente"))
		require.Equal(t, models.ErrKindDependency, models.KindOf(r.GetFieldError("fuente")))
		require.Empty(t, r.GetOptions("fuente"))
		require.Nil(t, r.GetFieldError("objetivo"))
		require.Len(t, r.GetOptions("objetivo"), 2)
	})

	t.Run(`una carga en vuelo obsoleta se descarta`, func(t *testing.T) {
		release := make(chan struct{})
		r, err := New(
			FieldSpec{ID: "cliente"},
			FieldSpec{ID: "fuente", Parents: []FieldID{"cliente"}, Loader: func(ctx context.Context, parents map[FieldID]Value) ([]Option, error) {
				<-release
				return []Option{{ID: Value("fuente-" + parents["cliente"])}}, nil
			}},
		)
		require.Nil(t, err)

		_, err = r.SetValue(ctx, "cliente", "A")
		require.Nil(t, err)
		_, err = r.SetValue(ctx, "cliente", "B")
		require.Nil(t, err)
		close(release)
		r.WaitForLoads()

		options := r.GetOptions("fuente")
		require.Len(t, options, 1)
		require.Equal(t, Value("fuente-B"), options[0].ID)
	})

	t.Run(`el grafo rechaza ciclos`, func(t *testing.T) {
		_, err := New(
			FieldSpec{ID: "a", Parents: []FieldID{"b"}},
			FieldSpec{ID: "b", Parents: []FieldID{"a"}},
		)
		require.NotNil(t, err)
	})
}

func TestResolverRestore(t *testing.T) {
	ctx := context.Background()

	newFichaGraph := func(t *testing.T) *Resolver {
		r, err := New(
			FieldSpec{ID: "selectedCliente"},
			FieldSpec{ID: "selectedFuente", Parents: []FieldID{"selectedCliente"}, Loader: optionsLoader("fuente", "selectedCliente")},
			FieldSpec{ID: "selectedContacto", Parents: []FieldID{"selectedCliente"}, Loader: optionsLoader("contacto", "selectedCliente")},
			FieldSpec{ID: "selectedObjetivo", Parents: []FieldID{"selectedCliente"}, Loader: optionsLoader("objetivo", "selectedCliente")},
		)
		require.Nil(t, err)
		return r
	}

	t.Run(`restaurar un borrador guardado conserva los valores dependientes`, func(t *testing.T) {
		r := newFichaGraph(t)

		r.EnterRestoreMode(map[FieldID]Value{
			"selectedCliente":  "7",
			"selectedFuente":   "fuente-7-1",
			"selectedObjetivo": "objetivo-7-2",
		})
		err := r.ResolveRestore(ctx)
		require.Nil(t, err)

		// cada campo termina con su valor del snapshot, sin limpieza intermedia
		require.Equal(t, Value("7"), r.GetValue("selectedCliente"))
		require.Equal(t, Value("fuente-7-1"), r.GetValue("selectedFuente"))
		require.Equal(t, Value("objetivo-7-2"), r.GetValue("selectedObjetivo"))
		require.Equal(t, []Option{
			{ID: "fuente-7-1", Label: "opción 1"},
			{ID: "fuente-7-2", Label: "opción 2"},
		}, r.GetOptions("selectedFuente"))
		require.Equal(t, false, r.IsRestoring())
	})

	t.Run(`SetValue durante la restauración se rechaza`, func(t *testing.T) {
		r := newFichaGraph(t)

		r.EnterRestoreMode(map[FieldID]Value{"selectedCliente": "7"})
		_, err := r.SetValue(ctx, "selectedCliente", "9")
		require.Equal(t, models.ErrKindInvalidState, models.KindOf(err))

		err = r.ResolveRestore(ctx)
		require.Nil(t, err)
		_, err = r.SetValue(ctx, "selectedCliente", "9")
		require.Nil(t, err)
	})

	t.Run(`coincidencia con el snapshot omite la limpieza del hijo`, func(t *testing.T) {
		r := newFichaGraph(t)

		r.EnterRestoreMode(map[FieldID]Value{
			"selectedCliente": "7",
			"selectedFuente":  "fuente-7-1",
		})
		require.Nil(t, r.ResolveRestore(ctx))

		// repetir el mismo valor del padre no borra la fuente ya restaurada
		_, err := r.SetValue(ctx, "selectedCliente", "7")
		require.Nil(t, err)
		r.WaitForLoads()
		require.Equal(t, Value("fuente-7-1"), r.GetValue("selectedFuente"))

		// un valor distinto sí la limpia
		_, err = r.SetValue(ctx, "selectedCliente", "9")
		require.Nil(t, err)
		r.WaitForLoads()
		require.Equal(t, Value(""), r.GetValue("selectedFuente"))
	})

	t.Run(`ResolveRestore sin restauración activa falla`, func(t *testing.T) {
		r := newFichaGraph(t)
		err := r.ResolveRestore(ctx)
		require.Equal(t, models.ErrKindInvalidState, models.KindOf(err))
	})

	t.Run(`ExitRestoreMode es idempotente`, func(t *testing.T) {
		r := newFichaGraph(t)
		r.ExitRestoreMode()
		r.ExitRestoreMode()
		require.Equal(t, false, r.IsRestoring())
	})

	t.Run(`un loader caído durante la restauración queda acotado a su campo`, func(t *testing.T) {
		r, err := New(
			FieldSpec{ID: "selectedCliente"},
			FieldSpec{ID: "selectedFuente", Parents: []FieldID{"selectedCliente"}, Loader: func(ctx context.Context, parents map[FieldID]Value) ([]Option, error) {
				return nil, fmt.Errorf("catálogo caído")
			}},
			FieldSpec{ID: "selectedContacto", Parents: []FieldID{"selectedCliente"}, Loader: optionsLoader("contacto", "selectedCliente")},
		)
		require.Nil(t, err)

		r.EnterRestoreMode(map[FieldID]Value{
			"selectedCliente":  "7",
			"selectedFuente":   "f1",
			"selectedContacto": "contacto-7-1",
		})
		err = r.ResolveRestore(ctx)
		require.Equal(t, models.ErrKindDependency, models.KindOf(err))

		require.Empty(t, r.GetOptions("selectedFuente"))
		require.Len(t, r.GetOptions("selectedContacto"), 2)
		// el valor del snapshot se conserva aunque las opciones no hayan cargado
		require.Equal(t, Value("f1"), r.GetValue("selectedFuente"))
		require.Equal(t, false, r.IsRestoring())
	})
}
