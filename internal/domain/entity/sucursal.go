package entity

import "time"

// Sucursal representa un local con stock propio e independiente.
// Se espera exactamente una con Principal = true; la recepción de compras
// sin sucursal propia cae sobre ella.
type Sucursal struct {
	ID        string
	Nombre    string
	Direccion string
	Principal bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
