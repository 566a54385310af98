// Package actor implements the pure authorization predicates consulted
// by every mutation path and privileged read. The actor itself is
// transient: rebuilt per request from JWT claims, never persisted.
package actor

import (
	"context"

	"github.com/avpavlenko/jobboard/internal/platform/apperror"
)

// Type is the resolved caller kind.
type Type string

const (
	Admin     Type = "admin"
	Company   Type = "company"
	Candidate Type = "candidate"
)

// Actor is the resolved identity of the caller for one request.
type Actor struct {
	Type        Type
	UserID      int64
	CompanyID   *int64
	CandidateID *int64
}

// RequireActor fails with UNAUTHORIZED when actor is nil.
func RequireActor(a *Actor) *apperror.Error {
	if a == nil {
		return apperror.Unauthorized("")
	}
	return nil
}

// RequireType fails with FORBIDDEN when actor.Type is not in allowed.
func RequireType(a *Actor, allowed ...Type) *apperror.Error {
	if err := RequireActor(a); err != nil {
		return err
	}
	for _, t := range allowed {
		if a.Type == t {
			return nil
		}
	}
	return apperror.Forbidden("")
}

// RequireSelfCandidate admits admin unconditionally; admits a candidate
// actor only when its CandidateID matches candidateID.
func RequireSelfCandidate(a *Actor, candidateID int64) *apperror.Error {
	if err := RequireActor(a); err != nil {
		return err
	}
	if a.Type == Admin {
		return nil
	}
	if a.Type == Candidate && a.CandidateID != nil && *a.CandidateID == candidateID {
		return nil
	}
	return apperror.Forbidden("")
}

// RequireSelfCompany admits admin unconditionally; admits a company
// actor only when its CompanyID matches companyID.
func RequireSelfCompany(a *Actor, companyID int64) *apperror.Error {
	if err := RequireActor(a); err != nil {
		return err
	}
	if a.Type == Admin {
		return nil
	}
	if a.Type == Company && a.CompanyID != nil && *a.CompanyID == companyID {
		return nil
	}
	return apperror.Forbidden("")
}

// ApplicationOwnership is the subset of an Application this package
// needs to judge ownership, kept independent of the applications
// module's model to avoid an import cycle.
type ApplicationOwnership struct {
	CandidateID int64
	CompanyID   int64
}

// RequireApplicationOwnership admits admin, the owning candidate, or
// the company matching app.CompanyID.
func RequireApplicationOwnership(a *Actor, app ApplicationOwnership) *apperror.Error {
	if err := RequireActor(a); err != nil {
		return err
	}
	switch a.Type {
	case Admin:
		return nil
	case Candidate:
		if a.CandidateID != nil && *a.CandidateID == app.CandidateID {
			return nil
		}
	case Company:
		if a.CompanyID != nil && *a.CompanyID == app.CompanyID {
			return nil
		}
	}
	return apperror.Forbidden("")
}

// ApplicationExistenceChecker is the one suspension point
// CompanyCanViewCandidate needs: whether an Application row exists for
// the given (companyID, candidateID) pair.
type ApplicationExistenceChecker interface {
	ApplicationExists(ctx context.Context, companyID, candidateID int64) (bool, error)
}

// CompanyCanViewCandidate returns true iff at least one Application
// exists for the (companyID, candidateID) pair.
func CompanyCanViewCandidate(ctx context.Context, checker ApplicationExistenceChecker, companyID, candidateID int64) (bool, error) {
	return checker.ApplicationExists(ctx, companyID, candidateID)
}
