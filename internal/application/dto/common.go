package dto

// Respuesta envelope JSON de toda la API:
// { "success": bool, "data"?, "message"?, "error"? }.
type Respuesta struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ErrorDetalle payload opcional de errores con datos estructurados
// (ej. stock insuficiente).
type ErrorDetalle struct {
	Codigo  string      `json:"codigo"`
	Mensaje string      `json:"mensaje"`
	Detalle interface{} `json:"detalle,omitempty"`
}

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}
