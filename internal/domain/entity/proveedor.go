package entity

import "time"

// Proveedor representa un proveedor de compras.
type Proveedor struct {
	ID        string
	Nombre    string
	Contacto  string
	Telefono  string
	Email     string
	Activo    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
