package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// prefijarColumnas antepone el alias de tabla a cada columna de una lista SELECT.
func prefijarColumnas(alias, columnas string) string {
	partes := strings.Split(columnas, ",")
	for i, p := range partes {
		partes[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(partes, ", ")
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}
