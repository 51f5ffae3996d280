package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-comanda/internal/domain/appointment"
)

type CheckConflictInput struct {
	EmployeeID uint
	Start      time.Time
	End        time.Time

	// ExcludeAppointmentID ignora o próprio agendamento em reagendamento.
	ExcludeAppointmentID uint
}

// CheckConflict responde se um intervalo proposto colide com a agenda do
// profissional. Conflito é resultado, não erro: o ConflictSet volta
// preenchido e cabe ao chamador decidir.
type CheckConflict struct {
	repo domain.Repository
}

func NewCheckConflict(repo domain.Repository) *CheckConflict {
	return &CheckConflict{repo: repo}
}

func (uc *CheckConflict) Execute(
	ctx context.Context,
	in CheckConflictInput,
) (domain.ConflictSet, error) {

	conflicts, err := uc.repo.FindConflicts(
		ctx,
		in.EmployeeID,
		in.Start,
		in.End,
		in.ExcludeAppointmentID,
	)
	if err != nil {
		return domain.ConflictSet{}, err
	}

	return domain.ConflictSet{Conflicts: conflicts}, nil
}
