package model

// Credential represents one administrator account as configured at process
// start.  The set of credentials is fixed: records are built once from the
// environment and never mutated, so there is no ID, no timestamps and no
// active flag; an account exists exactly as long as it is configured.
//
// Fields:
//  Username     – unique, case-sensitive login name.
//  PasswordHash – bcrypt hash of the password, salt and cost embedded.
//  Role         – the account's role; only RoleAdmin exists today.
type Credential struct {
	Username     string // unique login name, compared case-sensitively
	PasswordHash string // bcrypt hash, produced by cmd/hashgen
	Role         string // role tag carried into issued tokens
}

// Principal is the identity asserted for a request.  It is derived either
// from a successful login (before a token is minted) or from a verified
// token, lives only for the duration of the request and is never persisted.
type Principal struct {
	Username string `json:"username"` // the token's subject
	Role     string `json:"role"`     // role as embedded in the token
}

// RoleAdmin is the only privileged role in the system.  Protected routes
// require it; there is no role hierarchy.
const RoleAdmin = "admin"
