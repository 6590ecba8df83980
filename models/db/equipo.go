package dbmodels

import (
	"time"
)

type EquipoEstado string

const (
	EquipoActivo   EquipoEstado = "Activo"
	EquipoInactivo EquipoEstado = "Inactivo"
)

type Equipo struct {
	BaseModel
	Codigo                  string       `gorm:"type:varchar(50);uniqueIndex"`
	Nombre                  string       `gorm:"type:varchar(255)"`
	Tipo                    string       `gorm:"type:varchar(100)"`
	Estado                  EquipoEstado `gorm:"type:varchar(20)"`
	Ubicacion               string       `gorm:"type:varchar(255)"`
	ResponsableID           *string      `gorm:"type:varchar(36)"`
	Responsable             *Usuario     `gorm:"foreignKey:ResponsableID"`
	MuestreadorID           *string      `gorm:"type:varchar(36)"`
	Vigencia                *time.Time
	RequiereRevisionTecnica bool
	// Version es la etiqueta vN visible; cada actualización mueve el estado
	// vigente al historial antes de sobreescribir.
	Version   string            `gorm:"type:varchar(10)"`
	Historial []EquipoHistorial `gorm:"foreignKey:EquipoID"`
}

// EquipoHistorial conserva versiones anteriores del equipo. A lo más una
// entrada queda marcada como vigente.
type EquipoHistorial struct {
	BaseModel
	EquipoID      string `gorm:"index"`
	Version       string `gorm:"type:varchar(10)"`
	Vigente       bool
	Codigo        string       `gorm:"type:varchar(50)"`
	Nombre        string       `gorm:"type:varchar(255)"`
	Tipo          string       `gorm:"type:varchar(100)"`
	Estado        EquipoEstado `gorm:"type:varchar(20)"`
	Ubicacion     string       `gorm:"type:varchar(255)"`
	ResponsableID *string      `gorm:"type:varchar(36)"`
	MuestreadorID *string      `gorm:"type:varchar(36)"`
	Vigencia      *time.Time
	UsuarioCambio string `gorm:"type:varchar(36)"`
	FechaCambio   time.Time
}

// Snapshot copia los campos versionables del equipo a una entrada de
// historial sin tocar el registro principal.
func (e Equipo) Snapshot(usuarioCambio string) EquipoHistorial {
	return EquipoHistorial{
		EquipoID:      e.ID,
		Version:       e.Version,
		Codigo:        e.Codigo,
		Nombre:        e.Nombre,
		Tipo:          e.Tipo,
		Estado:        e.Estado,
		Ubicacion:     e.Ubicacion,
		ResponsableID: e.ResponsableID,
		MuestreadorID: e.MuestreadorID,
		Vigencia:      e.Vigencia,
		UsuarioCambio: usuarioCambio,
		FechaCambio:   time.Now(),
	}
}
