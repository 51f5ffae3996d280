package comanda

import "github.com/BruksfildServices01/salon-comanda/internal/httperr"

// ===============================
// Comanda Status
// ===============================

type Status string

const (
	StatusOpen     Status = "open"
	StatusClosed   Status = "closed"
	StatusCanceled Status = "canceled"
)

// CanMutateItems: itens só mudam com a comanda aberta.
func CanMutateItems(current Status) error {
	if current != StatusOpen {
		return httperr.ErrConflict("comanda_not_open", "A comanda não está aberta.")
	}
	return nil
}

func CanClose(current Status) error {
	if current != StatusOpen {
		return httperr.ErrConflict("comanda_not_open", "Só é possível fechar uma comanda aberta.")
	}
	return nil
}

func CanReopen(current Status) error {
	if current != StatusClosed {
		return httperr.ErrConflict("comanda_not_closed", "Só é possível reabrir uma comanda fechada.")
	}
	return nil
}

func CanCancel(current Status) error {
	if current != StatusOpen {
		return httperr.ErrConflict("comanda_not_open", "Só é possível cancelar uma comanda aberta.")
	}
	return nil
}

func InitialStatus() Status {
	return StatusOpen
}
