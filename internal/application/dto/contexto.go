package dto

// ContextoSolicitud identifica quién opera y desde qué sucursal.
// Se construye en el middleware de auth a partir de los claims del JWT
// y se pasa por valor a cada caso de uso; no hay estado ambiente.
type ContextoSolicitud struct {
	ActorID    string
	SucursalID string
}

// Valido indica si el contexto trae al menos el actor.
func (c ContextoSolicitud) Valido() bool {
	return c.ActorID != ""
}
