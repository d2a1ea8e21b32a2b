// Package service implements the authentication decision logic, keeping
// credential lookup and password comparison out of the HTTP handlers.
package service

import (
	"github.com/schadenscheck/admin-api/internal/model"
	"github.com/schadenscheck/admin-api/internal/utils"
)

// CredentialStore is the lookup contract the authenticator needs.  It is
// satisfied by repository.CredentialRepo and by test fakes.
type CredentialStore interface {
	// FindByUsername returns the record for an exact username match and
	// whether one exists.
	FindByUsername(name string) (model.Credential, bool)
}

// Authenticator decides whether a submitted username/password pair matches
// a stored credential.  It is stateless apart from its immutable
// dependencies and safe for concurrent use.
type Authenticator struct {
	creds CredentialStore
	// dummyHash is compared against when the username is unknown, so that
	// a miss costs the same bcrypt work as a hit with a wrong password.
	dummyHash string
}

// NewAuthenticator constructs an Authenticator.  The dummy hash is
// precomputed once at the given bcrypt cost; generating it per request
// would double the work on the miss path and skew timing the other way.
func NewAuthenticator(creds CredentialStore, bcryptCost int) (*Authenticator, error) {
	dummy, err := utils.DummyHash(bcryptCost)
	if err != nil {
		return nil, err
	}
	return &Authenticator{creds: creds, dummyHash: dummy}, nil
}

// Authenticate returns the principal for a valid username/password pair,
// or ok=false for anything else.  It performs exactly one bcrypt
// comparison whether or not the username exists: short-circuiting on an
// unknown username would let an attacker distinguish "no such user" from
// "wrong password" by response latency, since the hash comparison
// dominates the request time.  Do not reorder these steps.
func (a *Authenticator) Authenticate(username, password string) (model.Principal, bool) {
	cred, found := a.creds.FindByUsername(username)

	hash := a.dummyHash
	if found {
		hash = cred.PasswordHash
	}
	matched := utils.VerifyPassword(hash, password)

	if !found || !matched {
		return model.Principal{}, false
	}
	return model.Principal{Username: cred.Username, Role: cred.Role}, true
}
