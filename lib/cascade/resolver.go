package cascade

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"adl-ops-backend/models"
)

type FieldID string

// Value es el valor seleccionado de un campo; cadena vacía significa sin selección.
type Value string

func (v Value) IsEmpty() bool {
	return v == ""
}

type Option struct {
	ID    Value  `json:"id"`
	Label string `json:"label"`
}

// Loader carga las opciones de un campo a partir de los valores resueltos de
// sus padres. Debe ser una función pura de esos valores.
type Loader func(ctx context.Context, parents map[FieldID]Value) ([]Option, error)

type FieldSpec struct {
	ID      FieldID
	Parents []FieldID
	Loader  Loader
}

type fieldState struct {
	spec    FieldSpec
	value   Value
	options []Option
	loadErr error
	// generación de carga: un resultado que llega con una generación vieja
	// se descarta en lugar de aplicarse
	gen uint64
}

// Resolver mantiene un grafo acíclico de campos dependientes y la consistencia
// entre el valor de cada padre y las opciones de sus hijos. El modo de
// restauración es explícito: hidratar un registro guardado no se distingue por
// heurísticas de igualdad de valores sino por una fase atómica propia.
type Resolver struct {
	mu        sync.Mutex
	fields    map[FieldID]*fieldState
	children  map[FieldID][]FieldID
	order     []FieldID
	restoring bool
	snapshot  map[FieldID]Value

	loadWg sync.WaitGroup
}

func New(specs ...FieldSpec) (*Resolver, error) {
	r := &Resolver{
		fields:   map[FieldID]*fieldState{},
		children: map[FieldID][]FieldID{},
	}
	for _, spec := range specs {
		if _, exists := r.fields[spec.ID]; exists {
			return nil, errors.Errorf("campo duplicado en el grafo (%v)", spec.ID)
		}
		r.fields[spec.ID] = &fieldState{spec: spec}
	}
	for _, spec := range specs {
		for _, parent := range spec.Parents {
			if _, exists := r.fields[parent]; !exists {
				return nil, errors.Errorf("campo %v depende de un padre no declarado (%v)", spec.ID, parent)
			}
			r.children[parent] = append(r.children[parent], spec.ID)
		}
	}
	order, err := topoSort(specs)
	if err != nil {
		return nil, err
	}
	r.order = order
	return r, nil
}

// orden topológico por Kahn; padres antes que hijos
func topoSort(specs []FieldSpec) ([]FieldID, error) {
	inDegree := map[FieldID]int{}
	children := map[FieldID][]FieldID{}
	for _, spec := range specs {
		inDegree[spec.ID] += 0
		for _, parent := range spec.Parents {
			inDegree[spec.ID]++
			children[parent] = append(children[parent], spec.ID)
		}
	}
	queue := []FieldID{}
	for _, spec := range specs {
		if inDegree[spec.ID] == 0 {
			queue = append(queue, spec.ID)
		}
	}
	order := make([]FieldID, 0, len(specs))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)
		for _, child := range children[id] {
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}
	if len(order) != len(specs) {
		return nil, errors.New("el grafo de campos contiene un ciclo")
	}
	return order, nil
}

// SetValue registra el nuevo valor de un campo en modo interactivo. Limpia
// valor y opciones de todos los descendientes, salvo los hijos cuyo valor
// actual coincide con el del snapshot retenido de la última restauración, y
// agenda la recarga de los hijos directos cuyos padres estén todos resueltos.
// Devuelve los campos cuya carga quedó agendada.
func (r *Resolver) SetValue(ctx context.Context, id FieldID, value Value) ([]FieldID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.restoring {
		return nil, models.NewInvalidStateError("hay una restauración en curso, intente nuevamente")
	}
	st, exists := r.fields[id]
	if !exists {
		return nil, models.NewValidationError("el campo %v no existe en el formulario", id)
	}
	st.value = value

	scheduled := []FieldID{}
	for _, childID := range r.children[id] {
		child := r.fields[childID]
		if !r.matchesSnapshot(child) {
			r.clearSubtree(childID)
		}
		if value.IsEmpty() {
			continue
		}
		if r.parentsResolved(child) {
			r.scheduleLoad(ctx, child)
			scheduled = append(scheduled, childID)
		}
	}
	return scheduled, nil
}

// coincidencia de restauración: el valor actual del hijo es justo el que el
// snapshot espera, así que la limpieza en cascada se omite
func (r *Resolver) matchesSnapshot(child *fieldState) bool {
	if r.snapshot == nil {
		return false
	}
	expected, ok := r.snapshot[child.spec.ID]
	return ok && !expected.IsEmpty() && child.value == expected
}

func (r *Resolver) clearSubtree(id FieldID) {
	st := r.fields[id]
	st.value = ""
	st.options = nil
	st.loadErr = nil
	st.gen++
	for _, childID := range r.children[id] {
		r.clearSubtree(childID)
	}
}

func (r *Resolver) parentsResolved(st *fieldState) bool {
	for _, parent := range st.spec.Parents {
		if r.fields[parent].value.IsEmpty() {
			return false
		}
	}
	return true
}

func (r *Resolver) parentValues(st *fieldState) map[FieldID]Value {
	values := map[FieldID]Value{}
	for _, parent := range st.spec.Parents {
		values[parent] = r.fields[parent].value
	}
	return values
}

// scheduleLoad lanza el loader en segundo plano; se invoca con r.mu tomado.
// Si el padre vuelve a cambiar antes de que la carga resuelva, el resultado
// obsoleto se descarta por número de generación.
func (r *Resolver) scheduleLoad(ctx context.Context, st *fieldState) {
	if st.spec.Loader == nil {
		return
	}
	st.gen++
	gen := st.gen
	parents := r.parentValues(st)
	r.loadWg.Add(1)
	go func() {
		defer r.loadWg.Done()
		options, err := st.spec.Loader(ctx, parents)

		r.mu.Lock()
		defer r.mu.Unlock()
		if st.gen != gen {
			return
		}
		if err != nil {
			st.options = nil
			st.loadErr = models.NewDependencyError(err, "no se pudieron cargar las opciones de %v", st.spec.ID)
			return
		}
		st.options = options
		st.loadErr = nil
	}()
}

// EnterRestoreMode asigna a cada campo del grafo su valor del snapshot sin
// disparar limpiezas ni cargas. Los campos ausentes del snapshot quedan vacíos.
func (r *Resolver) EnterRestoreMode(snapshot map[FieldID]Value) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.restoring = true
	r.snapshot = map[FieldID]Value{}
	for id, value := range snapshot {
		r.snapshot[id] = value
	}
	for id, st := range r.fields {
		st.value = snapshot[id]
		st.options = nil
		st.loadErr = nil
		st.gen++
	}
}

// ResolveRestore ejecuta los loaders en orden topológico usando los valores ya
// restaurados de los padres y sale del modo de restauración. La fase es
// atómica respecto de SetValue: ninguna edición interactiva se intercala. Un
// loader que falla deja su campo sin opciones y no afecta a los demás.
func (r *Resolver) ResolveRestore(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.restoring {
		return models.NewInvalidStateError("no hay una restauración en curso")
	}
	defer func() {
		r.restoring = false
	}()

	var firstErr error
	for _, id := range r.order {
		st := r.fields[id]
		if st.spec.Loader == nil {
			continue
		}
		if len(st.spec.Parents) > 0 && !r.parentsResolved(st) {
			// queda pendiente hasta que el usuario complete los padres
			continue
		}
		options, err := st.spec.Loader(ctx, r.parentValues(st))
		if err != nil {
			st.options = nil
			st.loadErr = models.NewDependencyError(err, "no se pudieron cargar las opciones de %v", id)
			if firstErr == nil {
				firstErr = st.loadErr
			}
			continue
		}
		st.options = options
		st.loadErr = nil
	}
	return firstErr
}

// ExitRestoreMode es idempotente; es seguro llamarla sin restauración activa.
func (r *Resolver) ExitRestoreMode() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.restoring = false
}

func (r *Resolver) IsRestoring() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.restoring
}

func (r *Resolver) GetValue(id FieldID) Value {
	r.mu.Lock()
	defer r.mu.Unlock()
	if st, exists := r.fields[id]; exists {
		return st.value
	}
	return ""
}

func (r *Resolver) GetOptions(id FieldID) []Option {
	r.mu.Lock()
	defer r.mu.Unlock()
	if st, exists := r.fields[id]; exists {
		return st.options
	}
	return nil
}

// GetFieldError devuelve el error de carga del campo, si lo hay. El error de
// un campo no inhabilita a sus hermanos.
func (r *Resolver) GetFieldError(id FieldID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if st, exists := r.fields[id]; exists {
		return st.loadErr
	}
	return nil
}

// WaitForLoads espera a que terminen las cargas en segundo plano agendadas
// hasta el momento.
func (r *Resolver) WaitForLoads() {
	r.loadWg.Wait()
}
