package entity

import "time"

// Cliente representa un cliente registrado. Las ventas de mostrador
// no llevan cliente (ClienteID vacío en Venta).
type Cliente struct {
	ID        string
	Nombre    string
	Documento string
	Telefono  string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
