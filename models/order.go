package models

// ValidationCode replica los códigos históricos de id_validacion de la ficha
// de ingreso de servicio. Los valores numéricos vienen de la base legada y no
// deben renumerarse.
type ValidationCode int

const (
	ValidationPendiente             ValidationCode = 0
	ValidationAprobadaTecnica       ValidationCode = 1
	ValidationRechazadaTecnica      ValidationCode = 2
	ValidationDevueltaRevision      ValidationCode = 3
	ValidationRechazadaCoordinacion ValidationCode = 4
	ValidationProcesadaConAgenda    ValidationCode = 5
	ValidationProcesadaSinAgenda    ValidationCode = 6
	ValidationAnulada               ValidationCode = 7
)

var validationHumanName = map[ValidationCode]string{
	ValidationPendiente:             "Pendiente",
	ValidationAprobadaTecnica:       "Aprobada técnica",
	ValidationRechazadaTecnica:      "Rechazada técnica",
	ValidationDevueltaRevision:      "Devuelta a revisión",
	ValidationRechazadaCoordinacion: "Rechazada coordinación",
	ValidationProcesadaConAgenda:    "Procesada",
	ValidationProcesadaSinAgenda:    "Procesada sin agenda",
	ValidationAnulada:               "Anulada",
}

func (c ValidationCode) ToHuman() string {
	if human, exist := validationHumanName[c]; exist {
		return human
	}
	return "Desconocido"
}

// AllowsTechnical indica si la jefatura técnica puede actuar: sólo sobre
// fichas pendientes o devueltas a revisión por coordinación.
func (c ValidationCode) AllowsTechnical() bool {
	return c == ValidationPendiente || c == ValidationDevueltaRevision
}

// AllowsCoordination indica si coordinación puede actuar: sólo sobre fichas
// ya aprobadas por la jefatura técnica.
func (c ValidationCode) AllowsCoordination() bool {
	return c == ValidationAprobadaTecnica
}

func (c ValidationCode) IsProcessed() bool {
	return c == ValidationProcesadaConAgenda || c == ValidationProcesadaSinAgenda
}

func (c ValidationCode) IsFrozen() bool {
	return !c.AllowsTechnical() && !c.AllowsCoordination()
}

// ReviewStage nombra las etapas del circuito de revisión de fichas. Cada
// etapa escribe únicamente su propia observación.
type ReviewStage string

const (
	StageComercial    ReviewStage = "comercial"
	StageTecnica      ReviewStage = "tecnica"
	StageCoordinacion ReviewStage = "coordinacion"
)

var stageForRole = map[UserRole]ReviewStage{
	ComercialRole:    StageComercial,
	TecnicaRole:      StageTecnica,
	CoordinacionRole: StageCoordinacion,
}

func (r UserRole) Stage() (ReviewStage, bool) {
	stage, ok := stageForRole[r]
	return stage, ok
}
