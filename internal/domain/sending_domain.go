package domain

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

//go:generate mockgen -destination mocks/mock_domain_repository.go -package mocks github.com/wsdmailer/wsdmailer/internal/domain DomainRepository

// UnknownDomainName is used when the sender address has no domain part
const UnknownDomainName = "unknown"

// SendingDomain is a domain mail is sent from
type SendingDomain struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DomainFromAddress returns the lowercased part after the first "@" of a
// sender address, or UnknownDomainName. "Name <a@b.com>" yields "b.com".
func DomainFromAddress(address string) string {
	_, rest, found := strings.Cut(address, "@")
	if !found {
		return UnknownDomainName
	}
	rest, _, _ = strings.Cut(rest, "@")
	name := strings.ToLower(strings.TrimSpace(rest))
	name = strings.TrimSuffix(name, ">")
	if name == "" {
		return UnknownDomainName
	}
	return name
}

// NormalizeDomainName lowercases and trims a domain name
func NormalizeDomainName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

type DomainRepository interface {
	// UpsertByNameTx returns the domain, creating it if needed. An existing row is left as is.
	UpsertByNameTx(ctx context.Context, tx *sql.Tx, name string, now time.Time) (*SendingDomain, error)

	// Touch creates the domain or bumps its updated_at, reporting whether it was created
	Touch(ctx context.Context, name string, now time.Time) (*SendingDomain, bool, error)

	GetByName(ctx context.Context, name string) (*SendingDomain, error)
	List(ctx context.Context) ([]*SendingDomain, error)
}
