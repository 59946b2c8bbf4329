package repository

import (
	"time"

	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
)

// FiltroVentas criterios de listado de ventas.
type FiltroVentas struct {
	SucursalID string
	Estado     string
	EstadoPago string
	Desde      *time.Time
	Hasta      *time.Time
	Limit      int
	Offset     int
}

// VentaRepository define el puerto de persistencia para ventas (cabecera + ítems).
type VentaRepository interface {
	Create(venta *entity.Venta) error
	// GetByID devuelve nil, nil si no existe. Incluye ítems.
	GetByID(id string) (*entity.Venta, error)
	// GetForUpdate bloquea la cabecera (SELECT FOR UPDATE). Incluye ítems.
	GetForUpdate(id string) (*entity.Venta, error)
	// Update persiste la cabecera (totales, estados, montos).
	Update(venta *entity.Venta) error
	// ReplaceItems reemplaza el detalle completo de la venta.
	ReplaceItems(ventaID string, items []entity.ItemVenta) error
	List(filtro FiltroVentas) ([]*entity.Venta, error)
	ListEliminadas(limit, offset int) ([]*entity.Venta, error)
	// Buscar por prefijo de ID o nombre de cliente.
	Buscar(q string, limit int) ([]*entity.Venta, error)
	SoftDelete(id string) error
	ResumenDia(fecha time.Time) (*entity.ResumenDiaVentas, error)
}
