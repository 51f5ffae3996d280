package validators

import (
	"net"
	"net/mail"
	"strings"
)

// IsEmailDomainValid confere o formato do endereço e se o domínio resolve
// (MX ou A). Falha de DNS transitória conta como inválido.
func IsEmailDomainValid(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}

	_, domain, found := strings.Cut(addr.Address, "@")
	if !found || domain == "" {
		return false
	}

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	ips, err := net.LookupIP(domain)
	return err == nil && len(ips) > 0
}
