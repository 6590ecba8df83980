package dbmodels

// TimelineEntry es una entrada de la bitácora de transiciones. Se agrega una
// por cada transición exitosa y nunca se edita.
type TimelineEntry struct {
	BaseModel
	RecordID    string `gorm:"type:varchar(36);index"`
	RecordType  string `gorm:"type:varchar(20)"` // solicitud | ficha
	ActorID     string `gorm:"type:varchar(36)"`
	ActorNombre string `gorm:"type:varchar(255)"`
	Accion      string `gorm:"type:varchar(50)"`
	Desde       string `gorm:"type:varchar(50)"`
	Hasta       string `gorm:"type:varchar(50)"`
	Observacion string `gorm:"type:varchar(500)"`
}
