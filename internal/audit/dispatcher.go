package audit

import (
	"github.com/BruksfildServices01/salon-comanda/internal/logging"
)

// Change guarda o antes/depois de uma entidade alterada.
type Change struct {
	Before any `json:"before,omitempty"`
	After  any `json:"after,omitempty"`
}

type Event struct {
	SalonID  uint
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

type Dispatcher struct {
	logger *Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100), // buffer seguro
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	log := logging.WithComponent("audit")

	for ev := range d.queue {
		if err := d.logger.Log(
			ev.SalonID,
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			log.Warn().Err(err).Str("action", ev.Action).Msg("audit write failed")
		}
	}
}

// Dispatch nunca bloqueia: auditoria é efeito secundário e não pode
// derrubar a operação principal. Dispatcher nil descarta tudo.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		logging.WithComponent("audit").Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}
