package billing

import "github.com/freshline/backend/internal/domain/shared"

// StaffRole classifies what a roster member may be assigned to do
type StaffRole string

const (
	RoleSalesperson StaffRole = "SALESPERSON"
	RoleDriver      StaffRole = "DRIVER"
	RoleCollector   StaffRole = "COLLECTOR"
)

// Roster is the configurable set of valid staff identifiers per role.
// Attribution fields on orders and ledger entries (salesperson, driver,
// spender, collector) are validated against it so adding or removing
// staff is a configuration change, not a code change.
type Roster struct {
	members map[StaffRole]map[string]struct{}
}

// NewRoster creates a roster from per-role name lists
func NewRoster(salespersons, drivers, collectors []string) (*Roster, error) {
	if len(salespersons) == 0 {
		return nil, shared.NewDomainError("EMPTY_ROSTER", "Roster must contain at least one salesperson")
	}
	r := &Roster{members: map[StaffRole]map[string]struct{}{
		RoleSalesperson: {},
		RoleDriver:      {},
		RoleCollector:   {},
	}}
	for _, n := range salespersons {
		if n == "" {
			return nil, shared.NewDomainError("INVALID_STAFF_NAME", "Staff name cannot be empty")
		}
		r.members[RoleSalesperson][n] = struct{}{}
	}
	for _, n := range drivers {
		if n == "" {
			return nil, shared.NewDomainError("INVALID_STAFF_NAME", "Staff name cannot be empty")
		}
		r.members[RoleDriver][n] = struct{}{}
	}
	for _, n := range collectors {
		if n == "" {
			return nil, shared.NewDomainError("INVALID_STAFF_NAME", "Staff name cannot be empty")
		}
		r.members[RoleCollector][n] = struct{}{}
	}
	return r, nil
}

// Has reports whether name holds the given role
func (r *Roster) Has(role StaffRole, name string) bool {
	set, ok := r.members[role]
	if !ok {
		return false
	}
	_, ok = set[name]
	return ok
}

// Validate returns ErrUnknownStaff when name does not hold the role
func (r *Roster) Validate(role StaffRole, name string) error {
	if !r.Has(role, name) {
		return shared.ErrUnknownStaff
	}
	return nil
}

// Names returns the members holding a role
func (r *Roster) Names(role StaffRole) []string {
	set := r.members[role]
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	return names
}
