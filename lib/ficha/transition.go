package fichahandler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"adl-ops-backend/models"
	dbmodels "adl-ops-backend/models/db"
)

// Lógica pura del circuito de validación de fichas. Cada decisión devuelve el
// código de validación resultante sin tocar almacenamiento.

func guardStage(actor models.Actor, stage models.UserRole) error {
	if actor.Role.IsSuper() {
		return nil
	}
	if actor.Role != stage {
		return models.NewPermissionError("el rol %v no puede actuar en esta etapa", actor.Role.ToHuman())
	}
	return nil
}

// decideTechnical resuelve la etapa técnica: sólo fichas pendientes o
// devueltas a revisión (códigos 0 y 3) admiten la acción.
func decideTechnical(ficha dbmodels.Ficha, actor models.Actor, observacion string, reject bool) (models.ValidationCode, error) {
	if err := guardStage(actor, models.TecnicaRole); err != nil {
		return 0, err
	}
	if !ficha.Validacion.AllowsTechnical() {
		return 0, models.NewInvalidStateError("la ficha %v no admite revisión técnica en estado %v",
			ficha.Correlativo, ficha.Validacion.ToHuman())
	}
	if reject {
		if strings.TrimSpace(observacion) == "" {
			return 0, models.NewValidationError("el rechazo técnico requiere observación")
		}
		return models.ValidationRechazadaTecnica, nil
	}
	return models.ValidationAprobadaTecnica, nil
}

type coordinationAction int

const (
	coordinationAccept coordinationAction = iota
	coordinationReturn
	coordinationReject
)

// decideCoordination resuelve la etapa de coordinación: sólo una ficha ya
// aprobada por técnica (código 1) admite estas acciones. Al aceptar, la ficha
// queda procesada con o sin agenda según tenga muestreo asignado.
func decideCoordination(ficha dbmodels.Ficha, actor models.Actor, observacion string, action coordinationAction) (models.ValidationCode, error) {
	if err := guardStage(actor, models.CoordinacionRole); err != nil {
		return 0, err
	}
	if !ficha.Validacion.AllowsCoordination() {
		return 0, models.NewInvalidStateError("la ficha %v no admite coordinación en estado %v",
			ficha.Correlativo, ficha.Validacion.ToHuman())
	}
	switch action {
	case coordinationAccept:
		if ficha.HasAgendaAssigned() {
			return models.ValidationProcesadaConAgenda, nil
		}
		return models.ValidationProcesadaSinAgenda, nil
	case coordinationReturn:
		if strings.TrimSpace(observacion) == "" {
			return 0, models.NewValidationError("la devolución requiere observación")
		}
		return models.ValidationDevueltaRevision, nil
	case coordinationReject:
		if strings.TrimSpace(observacion) == "" {
			return 0, models.NewValidationError("el rechazo requiere observación")
		}
		return models.ValidationRechazadaCoordinacion, nil
	}
	return 0, models.NewValidationError("acción de coordinación desconocida")
}

// decideAnnul anula una ficha que todavía no fue procesada.
func decideAnnul(ficha dbmodels.Ficha, actor models.Actor) (models.ValidationCode, error) {
	if err := guardStage(actor, models.CoordinacionRole); err != nil {
		return 0, err
	}
	if ficha.Validacion.IsProcessed() || ficha.Validacion == models.ValidationAnulada {
		return 0, models.NewInvalidStateError("la ficha %v ya no puede anularse", ficha.Correlativo)
	}
	return models.ValidationAnulada, nil
}

// guardEdit controla la edición comercial: sólo mientras la ficha está
// pendiente o devuelta a revisión.
func guardEdit(ficha dbmodels.Ficha, actor models.Actor) error {
	if err := guardStage(actor, models.ComercialRole); err != nil {
		return err
	}
	if !ficha.Validacion.AllowsTechnical() {
		return models.NewInvalidStateError("la ficha %v ya no es editable en estado %v",
			ficha.Correlativo, ficha.Validacion.ToHuman())
	}
	return nil
}

// nextCorrelativo avanza el folio F-00001, F-00002, ...
func nextCorrelativo(last string) string {
	if last == "" {
		return "F-00001"
	}
	idx := strings.LastIndex(last, "-")
	if idx < 0 {
		return "F-00001"
	}
	n, err := strconv.Atoi(last[idx+1:])
	if err != nil {
		return "F-00001"
	}
	return fmt.Sprintf("F-%05d", n+1)
}

// classifyCreate traduce la colisión del índice único de correlativo en un
// conflicto de concurrencia, para que el llamador reintente en vez de recibir
// un error genérico.
func classifyCreate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.NewConcurrencyError("otro usuario creó una ficha con el mismo correlativo; reintente")
	}
	return err
}
