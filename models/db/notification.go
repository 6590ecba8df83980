package dbmodels

type Notification struct {
	BaseModel
	// Key permite descartar la notificación de forma idempotente desde el
	// orquestador (p. ej. "solicitud:<id>").
	Key       string `gorm:"type:varchar(100);index"`
	UsuarioID string `gorm:"type:varchar(36);index"`
	Mensaje   string `gorm:"type:varchar(500)"`
	Oculta    bool   `gorm:"default:false"`
}
