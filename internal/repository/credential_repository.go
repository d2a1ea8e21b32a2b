package repository

import (
	"fmt"
	"strings"

	"github.com/schadenscheck/admin-api/internal/model"
)

// CredentialRepo holds the fixed set of administrator credentials.  It is
// built once from configuration at process start and read-only afterwards,
// so lookups are safe for arbitrary concurrent use without locking.
type CredentialRepo struct {
	creds  []model.Credential          // configured order, for List
	byName map[string]model.Credential // username -> record, case-sensitive
}

// NewCredentialRepo validates the configured records and builds the lookup
// index.  Every record must carry a non-empty password hash: a slot missing
// its hash means an operator misconfigured the environment, and serving
// traffic with such a record would make the account silently unusable (or
// worse, if an empty hash ever compared as valid).  The error names every
// offending username so one restart fixes the whole set.
func NewCredentialRepo(creds []model.Credential) (*CredentialRepo, error) {
	var missing []string
	byName := make(map[string]model.Credential, len(creds))
	for _, c := range creds {
		if strings.TrimSpace(c.PasswordHash) == "" {
			missing = append(missing, c.Username)
			continue
		}
		byName[c.Username] = c
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("credentials missing password hash for: %s", strings.Join(missing, ", "))
	}
	return &CredentialRepo{creds: creds, byName: byName}, nil
}

// List returns the credentials in configured order.  Callers must treat the
// returned slice as read-only.
func (r *CredentialRepo) List() []model.Credential {
	return r.creds
}

// FindByUsername returns the record for an exact username match.  The
// second return value reports whether a record exists; callers that care
// about enumeration resistance must not branch on it before hashing
// (see service.Authenticator).
func (r *CredentialRepo) FindByUsername(name string) (model.Credential, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// Count reports how many administrator accounts are configured.
func (r *CredentialRepo) Count() int {
	return len(r.creds)
}
