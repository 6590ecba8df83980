package solicitudhandler

import (
	"adl-ops-backend/models"
	dbmodels "adl-ops-backend/models/db"
)

// Lógica pura de transición de solicitudes. No toca almacenamiento: recibe el
// registro leído y devuelve la decisión, para poder probarla sin base.

// guardReview valida que el actor pueda resolver la solicitud en su estado
// actual. Falla sin efecto alguno.
func guardReview(sol dbmodels.Solicitud, actor models.Actor) error {
	if sol.Estado.IsTerminal() {
		return models.NewInvalidStateError("la solicitud ya fue resuelta (%v)", sol.Estado.ToHuman())
	}
	if !sol.Estado.CanReview(actor.Role) {
		return models.NewPermissionError("el rol %v no puede resolver una solicitud en estado %v",
			actor.Role.ToHuman(), sol.Estado.ToHuman())
	}
	return nil
}

// decideItem calcula el resultado de aprobar o rechazar un equipo de una
// solicitud masiva: el ítem afectado y el estado agregado que queda tras
// procesarlo. La solicitud sólo se vuelve terminal cuando todos los ítems
// quedaron procesados.
func decideItem(sol dbmodels.Solicitud, actor models.Actor, equipoID string, reject bool) (*dbmodels.SolicitudItem, models.RequestState, error) {
	if err := guardReview(sol, actor); err != nil {
		return nil, "", err
	}
	if !sol.IsBulk() {
		return nil, "", models.NewValidationError("la solicitud no es masiva, use la resolución directa")
	}
	item := sol.FindItem(equipoID)
	if item == nil {
		return nil, "", models.NewNotFoundError("el equipo %v no pertenece a la solicitud", equipoID)
	}
	if item.Procesado {
		return nil, "", models.NewInvalidStateError("el equipo %v ya fue procesado", equipoID)
	}

	progress := sol.Progress()
	for idx := range progress {
		if progress[idx].EquipoID == equipoID {
			progress[idx].Procesado = true
			progress[idx].Rechazado = reject
		}
	}
	return item, progress.Derive(sol.Estado), nil
}

// decideSingle resuelve una solicitud sin ítems de una vez: el estado queda
// terminal según la decisión.
func decideSingle(sol dbmodels.Solicitud, actor models.Actor, reject bool) (models.RequestState, error) {
	if err := guardReview(sol, actor); err != nil {
		return "", err
	}
	if sol.IsBulk() {
		return "", models.NewValidationError("la solicitud es masiva, resuelva equipo por equipo")
	}
	if reject {
		return models.RequestStateRechazado, nil
	}
	return models.RequestStateAprobado, nil
}

// decideDerive pasa una solicitud de la revisión técnica a la de calidad.
func decideDerive(sol dbmodels.Solicitud, actor models.Actor) (models.RequestState, error) {
	if sol.Estado != models.RequestStatePendienteTecnica {
		return "", models.NewInvalidStateError("sólo una solicitud en revisión técnica puede derivarse a calidad")
	}
	if actor.Role != models.TecnicaRole && !actor.Role.IsSuper() {
		return "", models.NewPermissionError("sólo la jefatura técnica puede derivar a calidad")
	}
	return models.RequestStatePendienteCalidad, nil
}

// initialState decide dónde entra la solicitud al circuito: las que tocan
// equipos con revisión técnica obligatoria parten en la bandeja técnica.
func initialState(requiresTecnica bool) models.RequestState {
	if requiresTecnica {
		return models.RequestStatePendienteTecnica
	}
	return models.RequestStatePendiente
}
