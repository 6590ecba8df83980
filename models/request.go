package models

type RequestKind string

const (
	RequestKindAlta     RequestKind = "ALTA"
	RequestKindBaja     RequestKind = "BAJA"
	RequestKindTraspaso RequestKind = "TRASPASO"
)

func (k RequestKind) Valid() bool {
	switch k {
	case RequestKindAlta, RequestKindBaja, RequestKindTraspaso:
		return true
	}
	return false
}

type RequestState string

const (
	RequestStatePendiente        RequestState = "PENDIENTE"
	RequestStatePendienteTecnica RequestState = "PENDIENTE_TECNICA"
	RequestStatePendienteCalidad RequestState = "PENDIENTE_CALIDAD"
	RequestStateAprobado         RequestState = "APROBADO"
	RequestStateRechazado        RequestState = "RECHAZADO"
)

var requestStateHumanName = map[RequestState]string{
	RequestStatePendiente:        "Pendiente",
	RequestStatePendienteTecnica: "Pendiente revisión técnica",
	RequestStatePendienteCalidad: "Pendiente revisión calidad",
	RequestStateAprobado:         "Aprobada",
	RequestStateRechazado:        "Rechazada",
}

func (s RequestState) ToHuman() string {
	if human, exist := requestStateHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s RequestState) IsTerminal() bool {
	return s == RequestStateAprobado || s == RequestStateRechazado
}

// reviewRoles define qué rol puede resolver una solicitud según su estado
// actual. El superadministrador siempre puede actuar.
var reviewRoles = map[RequestState][]UserRole{
	RequestStatePendiente:        {AdminMaRole},
	RequestStatePendienteTecnica: {TecnicaRole},
	RequestStatePendienteCalidad: {CalidadRole},
}

func (s RequestState) CanReview(role UserRole) bool {
	if role.IsSuper() {
		return !s.IsTerminal()
	}
	for _, allowed := range reviewRoles[s] {
		if allowed == role {
			return true
		}
	}
	return false
}

// ItemProgress es el avance de un equipo dentro de una solicitud masiva.
type ItemProgress struct {
	EquipoID  string
	Procesado bool
	Rechazado bool
}

type RequestProgress []ItemProgress

func (p RequestProgress) AllProcessed() bool {
	for _, item := range p {
		if !item.Procesado {
			return false
		}
	}
	return true
}

// Derive calcula el estado agregado de una solicitud masiva: mientras quede
// un ítem sin procesar la solicitud sigue pendiente; al completarse queda
// APROBADO si al menos un ítem procesado no fue rechazado.
func (p RequestProgress) Derive(current RequestState) RequestState {
	if len(p) == 0 || !p.AllProcessed() {
		return current
	}
	for _, item := range p {
		if !item.Rechazado {
			return RequestStateAprobado
		}
	}
	return RequestStateRechazado
}
