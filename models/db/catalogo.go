package dbmodels

// Catálogos maestros que alimentan los selectores en cascada de los
// formularios de ficha. Las dependencias (cliente → fuente/contacto/objetivo,
// componente → subárea, tipo muestreo → tipo muestra → actividad) se modelan
// con claves foráneas al padre.

type CatClienteEmpresa struct {
	BaseModel
	Nombre string `gorm:"type:varchar(255)"`
	Rut    string `gorm:"type:varchar(20)"`
	Activo bool   `gorm:"default:true"`
}

type CatFuenteEmisora struct {
	BaseModel
	ClienteID string `gorm:"type:varchar(36);index"`
	Nombre    string `gorm:"type:varchar(255)"`
	Codigo    string `gorm:"type:varchar(50)"`
	Direccion string `gorm:"type:varchar(255)"`
	Comuna    string `gorm:"type:varchar(100)"`
	Region    string `gorm:"type:varchar(100)"`
	TipoAgua  string `gorm:"type:varchar(100)"`
}

type CatContacto struct {
	BaseModel
	ClienteID string `gorm:"type:varchar(36);index"`
	Nombre    string `gorm:"type:varchar(255)"`
	Email     string `gorm:"type:varchar(255)"`
	Telefono  string `gorm:"type:varchar(50)"`
}

type CatObjetivoMuestreo struct {
	BaseModel
	ClienteID string `gorm:"type:varchar(36);index"`
	Nombre    string `gorm:"type:varchar(255)"`
}

type CatComponente struct {
	BaseModel
	Nombre string `gorm:"type:varchar(255)"`
}

type CatSubArea struct {
	BaseModel
	ComponenteID string `gorm:"type:varchar(36);index"`
	Nombre       string `gorm:"type:varchar(255)"`
}

type CatTipoMuestreo struct {
	BaseModel
	Nombre string `gorm:"type:varchar(255)"`
}

type CatTipoMuestra struct {
	BaseModel
	TipoMuestreoID string `gorm:"type:varchar(36);index"`
	Nombre         string `gorm:"type:varchar(255)"`
}

type CatActividad struct {
	BaseModel
	TipoMuestraID string `gorm:"type:varchar(36);index"`
	Nombre        string `gorm:"type:varchar(255)"`
}

type CatLugarAnalisis struct {
	BaseModel
	Nombre string `gorm:"type:varchar(255)"`
}

type CatFrecuencia struct {
	BaseModel
	Nombre string `gorm:"type:varchar(100)"`
	Dias   int
}
