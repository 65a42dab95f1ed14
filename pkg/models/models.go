package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Role identifies one of the two back-office identities.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleManager    Role = "manager"
)

// NormalizeRole maps server role spellings onto the canonical
// identifiers. Older backends report the admin role as "super admin"
// (with a space); both spellings must compare equal.
func NormalizeRole(raw string) Role {
	switch strings.TrimSpace(strings.ToLower(raw)) {
	case "super admin", "super_admin":
		return RoleSuperAdmin
	case "manager":
		return RoleManager
	default:
		return Role(raw)
	}
}

// Known reports whether the role is one this client recognizes.
func (r Role) Known() bool {
	return r == RoleSuperAdmin || r == RoleManager
}

// Tokens is the credential pair issued at login.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Session couples an identity with its credential pair. A session is
// valid only when the role and both tokens are present together;
// anything partial is treated as no session at all.
type Session struct {
	Role   Role   `json:"role"`
	Tokens Tokens `json:"tokens"`
}

func (s Session) Valid() bool {
	return s.Role.Known() && s.Tokens.AccessToken != "" && s.Tokens.RefreshToken != ""
}

// FlexID is the canonical identifier type for server entities. The
// backend is inconsistent about id typing (numeric in some payloads,
// string in others); FlexID accepts either on the wire and the rest
// of the client only ever sees a string.
type FlexID string

func (id FlexID) String() string { return string(id) }

func (id *FlexID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = FlexID(n.String())
	return nil
}

func (id FlexID) MarshalJSON() ([]byte, error) {
	// Numeric ids go back on the wire as numbers, which is what the
	// backend sends and expects for branch and balance references.
	// Ids like "007" stay strings: stripping the leading zeros would
	// change the id, and the raw bytes are not valid JSON.
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// Status is the lifecycle state of an income, outcome or transaction
// entry. Entries without a status are treated as completed.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
	StatusFailed    Status = "failed"
)

// OrCompleted resolves an absent status to completed.
func (s Status) OrCompleted() Status {
	if s == "" {
		return StatusCompleted
	}
	return s
}

// IncomeEntry records gold added to the main balance. Append-only from
// the client's perspective.
type IncomeEntry struct {
	ID        FlexID    `json:"id"`
	Amount    float64   `json:"amount"`
	Status    Status    `json:"status"`
	BalanceID FlexID    `json:"balanceId"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// OutcomeEntry records gold removed from the main balance.
type OutcomeEntry struct {
	ID        FlexID    `json:"id"`
	Amount    float64   `json:"amount"`
	Status    Status    `json:"status"`
	BalanceID FlexID    `json:"balanceId"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Balance is the central gold balance. The deployment has exactly one;
// the first record the server returns is "the" balance.
type Balance struct {
	ID       FlexID         `json:"id"`
	Amount   float64        `json:"balance"`
	Incomes  []IncomeEntry  `json:"incomes,omitempty"`
	Outcomes []OutcomeEntry `json:"outcomes,omitempty"`
}

// Branch is a named branch holding its own gold balance.
type Branch struct {
	ID          FlexID    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Amount      float64   `json:"balance"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
}

// Manager is a manager account. The client never reads or writes a
// manager's password after creation.
type Manager struct {
	ID         FlexID    `json:"id"`
	FirstName  string    `json:"first_name"`
	SecondName string    `json:"second_name"`
	ThirdName  string    `json:"third_name,omitempty"`
	Username   string    `json:"username"`
	Role       Role      `json:"role"`
	CreatedAt  time.Time `json:"createdAt,omitzero"`
}

// SuperAdmin is the administrator profile.
type SuperAdmin struct {
	ID         FlexID `json:"id"`
	FirstName  string `json:"first_name"`
	SecondName string `json:"second_name"`
	Username   string `json:"username"`
	Role       Role   `json:"role"`
}
