package historial

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
	"github.com/tu-usuario/pos-backoffice/pkg/logger"
)

// DeltaRegistro delta crudo por producto tal como se audita.
// Cantidad positiva = stock restaurado, negativa = stock consumido.
type DeltaRegistro struct {
	ProductoID string          `json:"producto_id"`
	Cantidad   decimal.Decimal `json:"cantidad"`
}

// Evento cambio de una venta a registrar en el historial.
type Evento struct {
	Tipo          string // "edicion" | "devolucion"
	VentaID       string
	ActorID       string
	TotalAnterior decimal.Decimal
	TotalNuevo    decimal.Decimal
	ItemsAntes    int
	ItemsDespues  int
	Deltas        []DeltaRegistro
	Fecha         time.Time
}

// Outbox canal desacoplado para el historial de ediciones. La escritura es
// best-effort por diseño: la edición de la venta ya está confirmada cuando
// el evento llega aquí, y una falla del historial se registra como dead
// letter en el log en vez de revertir nada.
type Outbox struct {
	repo repository.HistorialVentaRepository
	log  *logger.Logger
	ch   chan Evento
	wg   sync.WaitGroup
}

// NewOutbox arranca el consumidor. buffer acota los eventos en vuelo;
// con el buffer lleno, Publicar descarta y deja dead letter.
func NewOutbox(repo repository.HistorialVentaRepository, log *logger.Logger, buffer int) *Outbox {
	if buffer <= 0 {
		buffer = 64
	}
	o := &Outbox{
		repo: repo,
		log:  log,
		ch:   make(chan Evento, buffer),
	}
	o.wg.Add(1)
	go o.consumir()
	return o
}

// Publicar encola el evento sin bloquear al caller.
func (o *Outbox) Publicar(ev Evento) {
	select {
	case o.ch <- ev:
	default:
		o.deadLetter(ev, nil, "outbox lleno, evento de historial descartado")
	}
}

// Close deja de aceptar eventos y espera a que se drene la cola.
func (o *Outbox) Close() {
	close(o.ch)
	o.wg.Wait()
}

func (o *Outbox) consumir() {
	defer o.wg.Done()
	for ev := range o.ch {
		if err := o.persistir(ev); err != nil {
			o.deadLetter(ev, err, "no se pudo guardar el historial de la venta")
		}
	}
}

func (o *Outbox) persistir(ev Evento) error {
	deltas, err := json.Marshal(ev.Deltas)
	if err != nil {
		return err
	}
	registro := &entity.HistorialVenta{
		ID:            uuid.New().String(),
		VentaID:       ev.VentaID,
		Tipo:          ev.Tipo,
		ActorID:       ev.ActorID,
		TotalAnterior: ev.TotalAnterior,
		TotalNuevo:    ev.TotalNuevo,
		ItemsAntes:    ev.ItemsAntes,
		ItemsDespues:  ev.ItemsDespues,
		Deltas:        deltas,
		CreatedAt:     ev.Fecha,
	}
	return o.repo.Create(registro)
}

// deadLetter registra el evento completo para reproceso manual.
func (o *Outbox) deadLetter(ev Evento, err error, msg string) {
	payload, _ := json.Marshal(ev)
	evt := o.log.Error()
	if err != nil {
		evt = evt.Err(err)
	}
	evt.Str("venta_id", ev.VentaID).
		Str("tipo", ev.Tipo).
		RawJSON("evento", payload).
		Msg(msg)
}
