package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	"github.com/tu-usuario/pos-backoffice/internal/application/stock"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
)

// StockHandler maneja las consultas de stock y del log de movimientos (protegido).
type StockHandler struct {
	ledger *stock.Ledger
}

// NewStockHandler construye el handler.
func NewStockHandler(ledger *stock.Ledger) *StockHandler {
	return &StockHandler{ledger: ledger}
}

// sucursalDe la sucursal pedida por query o, por defecto, la del contexto.
func sucursalDe(c *fiber.Ctx) string {
	if s := c.Query("sucursal_id"); s != "" {
		return s
	}
	return GetContexto(c).SucursalID
}

// Listar GET /api/stock?sucursal_id=
func (h *StockHandler) Listar(c *fiber.Ctx) error {
	sucursalID := sucursalDe(c)
	if sucursalID == "" {
		return responderError(c, domain.ErrSinSucursal)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return cuerpoInvalido(c)
	}
	page.DefaultPage()

	list, err := h.ledger.ListarStock(c.Context(), sucursalID, page.Limit, page.Offset)
	if err != nil {
		return responderError(c, err)
	}
	return ok(c, aStockResponses(list))
}

// ListarBajo GET /api/stock/bajo?sucursal_id=
func (h *StockHandler) ListarBajo(c *fiber.Ctx) error {
	sucursalID := sucursalDe(c)
	if sucursalID == "" {
		return responderError(c, domain.ErrSinSucursal)
	}
	list, err := h.ledger.ListarStockBajo(c.Context(), sucursalID)
	if err != nil {
		return responderError(c, err)
	}
	return ok(c, aStockResponses(list))
}

// Movimientos GET /api/stock/movimientos?sucursal_id=&desde=&hasta=
func (h *StockHandler) Movimientos(c *fiber.Ctx) error {
	sucursalID := sucursalDe(c)
	if sucursalID == "" {
		return responderError(c, domain.ErrSinSucursal)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return cuerpoInvalido(c)
	}
	page.DefaultPage()

	var desde, hasta *time.Time
	if f, ok := parseFecha(c.Query("desde")); ok {
		desde = &f
	}
	if f, ok := parseFecha(c.Query("hasta")); ok {
		hasta = &f
	}

	list, err := h.ledger.ListarMovimientos(c.Context(), sucursalID, desde, hasta, page.Limit, page.Offset)
	if err != nil {
		return responderError(c, err)
	}

	out := make([]dto.MovimientoStockResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.MovimientoStockResponse{
			ID:             m.ID,
			SucursalID:     m.SucursalID,
			ProductoID:     m.ProductoID,
			Tipo:           m.Tipo,
			Cantidad:       m.Cantidad,
			Motivo:         m.Motivo,
			ReferenciaTipo: m.ReferenciaTipo,
			ReferenciaID:   m.ReferenciaID,
			ActorID:        m.ActorID,
			CreatedAt:      m.CreatedAt,
		})
	}
	return ok(c, out)
}

func aStockResponses(list []*entity.StockSucursal) []dto.StockResponse {
	out := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.StockResponse{
			ProductoID:     s.ProductoID,
			SucursalID:     s.SucursalID,
			Cantidad:       s.Cantidad,
			CantidadMinima: s.CantidadMinima,
			UpdatedAt:      s.UpdatedAt,
		})
	}
	return out
}
