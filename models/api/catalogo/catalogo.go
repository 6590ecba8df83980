package catalogoapimodels

// Option es la forma única en que los catálogos llegan a los selectores en
// cascada del frontend.
type Option struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}

// FuenteOption agrega los campos de autocompletado de dirección que el
// formulario rellena al elegir una fuente emisora.
type FuenteOption struct {
	Option
	Codigo    string `json:"codigo,omitempty"`
	Direccion string `json:"direccion,omitempty"`
	Comuna    string `json:"comuna,omitempty"`
	Region    string `json:"region,omitempty"`
	TipoAgua  string `json:"tipo_agua,omitempty"`
}

// DraftRestoreData es el borrador guardado de una ficha: valores por campo de
// la cascada, tal como quedaron al momento de guardar.
type DraftRestoreData struct {
	Values map[string]string `json:"values"`
}
