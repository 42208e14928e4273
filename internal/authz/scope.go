// Package authz centralizes role-based access decisions. Every handler
// and service resolves what an actor may see or mutate through ScopeFor
// instead of branching on role strings at each call site.
package authz

import "errors"

// Role is the single authorization axis of the system
type Role string

const (
	RoleAdmin         Role = "admin"
	RoleHospitalAdmin Role = "hospital_admin"
	RoleStaff         Role = "staff"
	RolePatient       Role = "patient"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleHospitalAdmin, RoleStaff, RolePatient:
		return true
	}
	return false
}

// Actor is an authenticated user making a request. HospitalID is nil
// for admin and patient roles, and for staff accounts that have not
// been assigned to a hospital yet.
type Actor struct {
	UserID     uint
	Role       Role
	HospitalID *uint
}

// Resource kinds an actor can query
type Resource string

const (
	ResourceDoctors      Resource = "doctors"
	ResourceServices     Resource = "services"
	ResourceAppointments Resource = "appointments"
	ResourceBlockedSlots Resource = "blocked_slots"
	ResourceHospitals    Resource = "hospitals"
	ResourceUsers        Resource = "users"
)

// ScopeKind classifies the record set an actor may read
type ScopeKind int

const (
	// ScopeNone denies access entirely (fails closed)
	ScopeNone ScopeKind = iota
	// ScopeAll grants unfiltered access across hospitals
	ScopeAll
	// ScopeHospital limits access to one hospital's records
	ScopeHospital
	// ScopeCatalog grants read access to the public catalog only
	ScopeCatalog
)

// Scope is the filter an actor's query must apply
type Scope struct {
	Kind       ScopeKind
	HospitalID uint
	// ExcludeUserID is set for user listings where the actor must not
	// see their own account
	ExcludeUserID uint
	// IncludeUnassigned extends a hospital-scoped user listing with
	// staff/patient accounts that have no hospital yet
	IncludeUnassigned bool
}

// ErrPermissionDenied is returned whenever the scope table denies access
var ErrPermissionDenied = errors.New("permission denied")

// ScopeFor resolves the read scope for an actor and resource kind.
//
//	role           | doctors/services/appointments/blocked slots | users
//	admin          | all                                         | all except self
//	hospital_admin | own hospital                                | own hospital + unassigned
//	staff          | own hospital                                | none
//	patient        | public catalog only                         | none
//
// A hospital_admin or staff actor with no assigned hospital gets an
// empty set, never a widened one. Unknown roles are denied outright.
func ScopeFor(actor Actor, resource Resource) (Scope, error) {
	if !actor.Role.Valid() {
		return Scope{Kind: ScopeNone}, ErrPermissionDenied
	}

	switch resource {
	case ResourceDoctors, ResourceServices, ResourceAppointments, ResourceBlockedSlots:
		switch actor.Role {
		case RoleAdmin:
			return Scope{Kind: ScopeAll}, nil
		case RoleHospitalAdmin, RoleStaff:
			if actor.HospitalID == nil {
				return Scope{Kind: ScopeNone}, nil
			}
			return Scope{Kind: ScopeHospital, HospitalID: *actor.HospitalID}, nil
		case RolePatient:
			if resource == ResourceDoctors || resource == ResourceServices {
				return Scope{Kind: ScopeCatalog}, nil
			}
			return Scope{Kind: ScopeNone}, ErrPermissionDenied
		}

	case ResourceHospitals:
		// Reads of the hospital catalog are public; this scope governs
		// the dashboard listing.
		switch actor.Role {
		case RoleAdmin:
			return Scope{Kind: ScopeAll}, nil
		case RoleHospitalAdmin:
			if actor.HospitalID == nil {
				return Scope{Kind: ScopeNone}, nil
			}
			return Scope{Kind: ScopeHospital, HospitalID: *actor.HospitalID}, nil
		default:
			return Scope{Kind: ScopeCatalog}, nil
		}

	case ResourceUsers:
		switch actor.Role {
		case RoleAdmin:
			return Scope{Kind: ScopeAll, ExcludeUserID: actor.UserID}, nil
		case RoleHospitalAdmin:
			if actor.HospitalID == nil {
				return Scope{Kind: ScopeNone}, nil
			}
			return Scope{
				Kind:              ScopeHospital,
				HospitalID:        *actor.HospitalID,
				IncludeUnassigned: true,
			}, nil
		default:
			return Scope{Kind: ScopeNone}, ErrPermissionDenied
		}
	}

	return Scope{Kind: ScopeNone}, ErrPermissionDenied
}

// CanWriteHospitals reports whether the actor may create, update or
// delete hospital records. Only system admins hold full hospital CRUD.
func CanWriteHospitals(actor Actor) bool {
	return actor.Role == RoleAdmin
}

// CanManageHospital reports whether the actor may mutate records
// (doctors, services, blocked slots, appointment status) belonging to
// the given hospital.
func CanManageHospital(actor Actor, hospitalID uint) bool {
	switch actor.Role {
	case RoleAdmin:
		return true
	case RoleHospitalAdmin, RoleStaff:
		return actor.HospitalID != nil && *actor.HospitalID == hospitalID
	}
	return false
}
