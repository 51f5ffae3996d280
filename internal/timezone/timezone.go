package timezone

import "time"

// DefaultTimezone é o fuso usado quando o salão não define o seu.
const DefaultTimezone = "America/Sao_Paulo"

var defaultLoc = func() *time.Location {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}()

// Location resolve o fuso do salão, caindo no padrão quando o valor é
// vazio ou desconhecido.
func Location(tz string) *time.Location {
	if tz == "" {
		return defaultLoc
	}
	if loc, err := time.LoadLocation(tz); err == nil {
		return loc
	}
	return defaultLoc
}

// NowIn é o relógio do salão: timestamps de negócio (fechamento,
// cancelamento) são carimbados no fuso dele.
func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}
