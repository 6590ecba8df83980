package catalogoshandler

import (
	"context"
	"fmt"
	"time"

	"adl-ops-backend/config"
	"adl-ops-backend/db"
	"adl-ops-backend/lib/cache"
	"adl-ops-backend/lib/cascade"
	catalogosstore "adl-ops-backend/lib/catalogos/store"
	"adl-ops-backend/models"
	catalogoapimodels "adl-ops-backend/models/api/catalogo"
	dbmodels "adl-ops-backend/models/db"
)

// Identificadores de los campos en cascada del formulario de ficha. Coinciden
// con los nombres de estado que usa el frontend al guardar borradores.
const (
	FieldCliente      cascade.FieldID = "selectedCliente"
	FieldFuente       cascade.FieldID = "selectedFuente"
	FieldContacto     cascade.FieldID = "selectedContacto"
	FieldObjetivo     cascade.FieldID = "selectedObjetivo"
	FieldComponente   cascade.FieldID = "selectedComponente"
	FieldSubArea      cascade.FieldID = "selectedSubArea"
	FieldTipoMuestreo cascade.FieldID = "selectedTipoMuestreo"
	FieldTipoMuestra  cascade.FieldID = "selectedTipoMuestra"
	FieldActividad    cascade.FieldID = "selectedActividad"
)

type Provider interface {
	Clientes(ctx context.Context) ([]catalogoapimodels.Option, error)
	FuentesByCliente(ctx context.Context, clienteID string) ([]catalogoapimodels.FuenteOption, error)
	ContactosByCliente(ctx context.Context, clienteID string) ([]catalogoapimodels.Option, error)
	ObjetivosByCliente(ctx context.Context, clienteID string) ([]catalogoapimodels.Option, error)
	Componentes(ctx context.Context) ([]catalogoapimodels.Option, error)
	SubAreasByComponente(ctx context.Context, componenteID string) ([]catalogoapimodels.Option, error)
	TiposMuestreo(ctx context.Context) ([]catalogoapimodels.Option, error)
	TiposMuestraByTipoMuestreo(ctx context.Context, tipoMuestreoID string) ([]catalogoapimodels.Option, error)
	ActividadesByTipoMuestra(ctx context.Context, tipoMuestraID string) ([]catalogoapimodels.Option, error)
	LugaresAnalisis(ctx context.Context) ([]catalogoapimodels.Option, error)
	Frecuencias(ctx context.Context) ([]catalogoapimodels.Option, error)
	NewFichaResolver() (*cascade.Resolver, error)
	RestoreFichaDraft(ctx context.Context, snapshot map[string]string) (*DraftState, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:    catalogosstore.NewInstance(db.DB),
		cacheTTL: time.Duration(config.Conf.Redis.CacheTTL) * time.Second,
	}
}

type impl struct {
	store    catalogosstore.Provider
	cacheTTL time.Duration
}

func toOptions[T any](list []T, convert func(T) catalogoapimodels.Option) []catalogoapimodels.Option {
	result := make([]catalogoapimodels.Option, 0, len(list))
	for _, rec := range list {
		result = append(result, convert(rec))
	}
	return result
}

// cached sirve el catálogo desde redis cuando está disponible; un fallo del
// caché degrada a lectura directa de la base.
func cached[T any](ctx context.Context, i impl, key string, fetch func() (T, error)) (T, error) {
	var result T
	err := cache.CacheAside(ctx, key, &result, i.cacheTTL, func() error {
		fetched, err := fetch()
		if err != nil {
			return err
		}
		result = fetched
		return nil
	})
	return result, err
}

func (i impl) Clientes(ctx context.Context) ([]catalogoapimodels.Option, error) {
	return cached(ctx, i, "catalogo:clientes", func() ([]catalogoapimodels.Option, error) {
		list, err := i.store.ListClientes()
		if err != nil {
			return nil, err
		}
		return toOptions(list, func(rec dbmodels.CatClienteEmpresa) catalogoapimodels.Option {
			return catalogoapimodels.Option{ID: rec.ID, Nombre: rec.Nombre}
		}), nil
	})
}

func (i impl) FuentesByCliente(ctx context.Context, clienteID string) ([]catalogoapimodels.FuenteOption, error) {
	key := fmt.Sprintf("catalogo:fuentes:%v", clienteID)
	return cached(ctx, i, key, func() ([]catalogoapimodels.FuenteOption, error) {
		list, err := i.store.ListFuentesByCliente(clienteID)
		if err != nil {
			return nil, err
		}
		result := make([]catalogoapimodels.FuenteOption, 0, len(list))
		for _, rec := range list {
			result = append(result, catalogoapimodels.FuenteOption{
				Option:    catalogoapimodels.Option{ID: rec.ID, Nombre: rec.Nombre},
				Codigo:    rec.Codigo,
				Direccion: rec.Direccion,
				Comuna:    rec.Comuna,
				Region:    rec.Region,
				TipoAgua:  rec.TipoAgua,
			})
		}
		return result, nil
	})
}

func (i impl) ContactosByCliente(ctx context.Context, clienteID string) ([]catalogoapimodels.Option, error) {
	key := fmt.Sprintf("catalogo:contactos:%v", clienteID)
	return cached(ctx, i, key, func() ([]catalogoapimodels.Option, error) {
		list, err := i.store.ListContactosByCliente(clienteID)
		if err != nil {
			return nil, err
		}
		return toOptions(list, func(rec dbmodels.CatContacto) catalogoapimodels.Option {
			return catalogoapimodels.Option{ID: rec.ID, Nombre: rec.Nombre}
		}), nil
	})
}

func (i impl) ObjetivosByCliente(ctx context.Context, clienteID string) ([]catalogoapimodels.Option, error) {
	key := fmt.Sprintf("catalogo:objetivos:%v", clienteID)
	return cached(ctx, i, key, func() ([]catalogoapimodels.Option, error) {
		list, err := i.store.ListObjetivosByCliente(clienteID)
		if err != nil {
			return nil, err
		}
		return toOptions(list, func(rec dbmodels.CatObjetivoMuestreo) catalogoapimodels.Option {
			return catalogoapimodels.Option{ID: rec.ID, Nombre: rec.Nombre}
		}), nil
	})
}

func (i impl) Componentes(ctx context.Context) ([]catalogoapimodels.Option, error) {
	return cached(ctx, i, "catalogo:componentes", func() ([]catalogoapimodels.Option, error) {
		list, err := i.store.ListComponentes()
		if err != nil {
			return nil, err
		}
		return toOptions(list, func(rec dbmodels.CatComponente) catalogoapimodels.Option {
			return catalogoapimodels.Option{ID: rec.ID, Nombre: rec.Nombre}
		}), nil
	})
}

func (i impl) SubAreasByComponente(ctx context.Context, componenteID string) ([]catalogoapimodels.Option, error) {
	key := fmt.Sprintf("catalogo:subareas:%v", componenteID)
	return cached(ctx, i, key, func() ([]catalogoapimodels.Option, error) {
		list, err := i.store.ListSubAreasByComponente(componenteID)
		if err != nil {
			return nil, err
		}
		return toOptions(list, func(rec dbmodels.CatSubArea) catalogoapimodels.Option {
			return catalogoapimodels.Option{ID: rec.ID, Nombre: rec.Nombre}
		}), nil
	})
}

func (i impl) TiposMuestreo(ctx context.Context) ([]catalogoapimodels.Option, error) {
	return cached(ctx, i, "catalogo:tipos_muestreo", func() ([]catalogoapimodels.Option, error) {
		list, err := i.store.ListTiposMuestreo()
		if err != nil {
			return nil, err
		}
		return toOptions(list, func(rec dbmodels.CatTipoMuestreo) catalogoapimodels.Option {
			return catalogoapimodels.Option{ID: rec.ID, Nombre: rec.Nombre}
		}), nil
	})
}

func (i impl) TiposMuestraByTipoMuestreo(ctx context.Context, tipoMuestreoID string) ([]catalogoapimodels.Option, error) {
	key := fmt.Sprintf("catalogo:tipos_muestra:%v", tipoMuestreoID)
	return cached(ctx, i, key, func() ([]catalogoapimodels.Option, error) {
		list, err := i.store.ListTiposMuestraByTipoMuestreo(tipoMuestreoID)
		if err != nil {
			return nil, err
		}
		return toOptions(list, func(rec dbmodels.CatTipoMuestra) catalogoapimodels.Option {
			return catalogoapimodels.Option{ID: rec.ID, Nombre: rec.Nombre}
		}), nil
	})
}

func (i impl) ActividadesByTipoMuestra(ctx context.Context, tipoMuestraID string) ([]catalogoapimodels.Option, error) {
	key := fmt.Sprintf("catalogo:actividades:%v", tipoMuestraID)
	return cached(ctx, i, key, func() ([]catalogoapimodels.Option, error) {
		list, err := i.store.ListActividadesByTipoMuestra(tipoMuestraID)
		if err != nil {
			return nil, err
		}
		return toOptions(list, func(rec dbmodels.CatActividad) catalogoapimodels.Option {
			return catalogoapimodels.Option{ID: rec.ID, Nombre: rec.Nombre}
		}), nil
	})
}

func (i impl) LugaresAnalisis(ctx context.Context) ([]catalogoapimodels.Option, error) {
	return cached(ctx, i, "catalogo:lugares_analisis", func() ([]catalogoapimodels.Option, error) {
		list, err := i.store.ListLugaresAnalisis()
		if err != nil {
			return nil, err
		}
		return toOptions(list, func(rec dbmodels.CatLugarAnalisis) catalogoapimodels.Option {
			return catalogoapimodels.Option{ID: rec.ID, Nombre: rec.Nombre}
		}), nil
	})
}

func (i impl) Frecuencias(ctx context.Context) ([]catalogoapimodels.Option, error) {
	return cached(ctx, i, "catalogo:frecuencias", func() ([]catalogoapimodels.Option, error) {
		list, err := i.store.ListFrecuencias()
		if err != nil {
			return nil, err
		}
		return toOptions(list, func(rec dbmodels.CatFrecuencia) catalogoapimodels.Option {
			return catalogoapimodels.Option{ID: rec.ID, Nombre: rec.Nombre}
		}), nil
	})
}

func optionLoader(fetch func(ctx context.Context, parentID string) ([]catalogoapimodels.Option, error), parent cascade.FieldID) cascade.Loader {
	return func(ctx context.Context, parents map[cascade.FieldID]cascade.Value) ([]cascade.Option, error) {
		options, err := fetch(ctx, string(parents[parent]))
		if err != nil {
			return nil, err
		}
		result := make([]cascade.Option, 0, len(options))
		for _, option := range options {
			result = append(result, cascade.Option{ID: cascade.Value(option.ID), Label: option.Nombre})
		}
		return result, nil
	}
}

// NewFichaResolver arma el grafo de selectores dependientes del formulario de
// ficha con loaders respaldados por los catálogos.
func (i impl) NewFichaResolver() (*cascade.Resolver, error) {
	fuenteLoader := func(ctx context.Context, clienteID string) ([]catalogoapimodels.Option, error) {
		fuentes, err := i.FuentesByCliente(ctx, clienteID)
		if err != nil {
			return nil, err
		}
		result := make([]catalogoapimodels.Option, 0, len(fuentes))
		for _, fuente := range fuentes {
			result = append(result, fuente.Option)
		}
		return result, nil
	}
	return cascade.New(
		cascade.FieldSpec{ID: FieldCliente},
		cascade.FieldSpec{ID: FieldFuente, Parents: []cascade.FieldID{FieldCliente}, Loader: optionLoader(fuenteLoader, FieldCliente)},
		cascade.FieldSpec{ID: FieldContacto, Parents: []cascade.FieldID{FieldCliente}, Loader: optionLoader(i.ContactosByCliente, FieldCliente)},
		cascade.FieldSpec{ID: FieldObjetivo, Parents: []cascade.FieldID{FieldCliente}, Loader: optionLoader(i.ObjetivosByCliente, FieldCliente)},
		cascade.FieldSpec{ID: FieldComponente},
		cascade.FieldSpec{ID: FieldSubArea, Parents: []cascade.FieldID{FieldComponente}, Loader: optionLoader(i.SubAreasByComponente, FieldComponente)},
		cascade.FieldSpec{ID: FieldTipoMuestreo},
		cascade.FieldSpec{ID: FieldTipoMuestra, Parents: []cascade.FieldID{FieldTipoMuestreo}, Loader: optionLoader(i.TiposMuestraByTipoMuestreo, FieldTipoMuestreo)},
		cascade.FieldSpec{ID: FieldActividad, Parents: []cascade.FieldID{FieldTipoMuestra}, Loader: optionLoader(i.ActividadesByTipoMuestra, FieldTipoMuestra)},
	)
}

// DraftState es el resultado de hidratar un borrador: valores y opciones por
// campo, listos para montar el formulario sin limpiezas intermedias.
type DraftState struct {
	Values  map[string]string           `json:"values"`
	Options map[string][]cascade.Option `json:"options"`
	Errors  map[string]string           `json:"errors,omitempty"`
}

// RestoreFichaDraft hidrata un borrador guardado: restaura todos los valores
// de una vez y resuelve las opciones en orden de dependencia.
func (i impl) RestoreFichaDraft(ctx context.Context, snapshot map[string]string) (*DraftState, error) {
	resolver, err := i.NewFichaResolver()
	if err != nil {
		return nil, err
	}
	restore := map[cascade.FieldID]cascade.Value{}
	for field, value := range snapshot {
		restore[cascade.FieldID(field)] = cascade.Value(value)
	}
	resolver.EnterRestoreMode(restore)
	resolveErr := resolver.ResolveRestore(ctx)

	fields := []cascade.FieldID{
		FieldCliente, FieldFuente, FieldContacto, FieldObjetivo,
		FieldComponente, FieldSubArea,
		FieldTipoMuestreo, FieldTipoMuestra, FieldActividad,
	}
	state := &DraftState{
		Values:  map[string]string{},
		Options: map[string][]cascade.Option{},
	}
	for _, field := range fields {
		state.Values[string(field)] = string(resolver.GetValue(field))
		state.Options[string(field)] = resolver.GetOptions(field)
		if fieldErr := resolver.GetFieldError(field); fieldErr != nil {
			if state.Errors == nil {
				state.Errors = map[string]string{}
			}
			state.Errors[string(field)] = fieldErr.Error()
		}
	}
	if resolveErr != nil && models.KindOf(resolveErr) != models.ErrKindDependency {
		return nil, resolveErr
	}
	return state, nil
}
