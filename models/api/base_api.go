package apimodels

type Response struct {
	Status  string      `json:"status"`            //resultado fail/success
	Message string      `json:"message,omitempty"` //mensaje de error
	Data    interface{} `json:"data,omitempty"`    //datos de respuesta
}

type ScrollerResponse struct {
	Response
	RowCount int64 `json:"row_count,omitempty"` //total de registros considerando el filtro
}

func NewError(message string) Response {
	return Response{
		Status:  "fail",
		Message: message,
	}
}

func NewResponse(data interface{}) Response {
	return Response{
		Status: "success",
		Data:   data,
	}
}

type Pagination struct {
	Limit int `json:"limit"` // Registros por página
	Page  int `json:"page"`  // Página (1,2,3..)
}

func (r Pagination) GetPage() (page, limit int) {
	page = 1
	limit = 10
	if r.Page > 0 {
		page = r.Page
	}
	if r.Limit > 0 {
		limit = r.Limit
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func NewScrollerResponse(data interface{}, rowCount int64) ScrollerResponse {
	return ScrollerResponse{
		Response: Response{
			Status: "success",
			Data:   data,
		},
		RowCount: rowCount,
	}
}
