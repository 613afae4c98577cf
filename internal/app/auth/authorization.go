// Package auth evaluates role and ownership rules on the server.
// Handlers never assume a client hid a button; every mutation asks the
// policy first and a denial is always a 403.
package auth

import (
	"github.com/nvera/donaescuela/internal/app/models"
	"github.com/nvera/donaescuela/internal/pkg/apperrors"
)

// Actor is the authenticated principal extracted from the access token.
type Actor struct {
	UserID int64
	Role   models.RoleType
}

// IsMEC reports whether the actor holds the supervising ministry role.
func (a Actor) IsMEC() bool {
	return a.Role == models.RoleMEC
}

// Policy evaluates authorization rules
type Policy struct{}

// NewPolicy creates the authorization policy
func NewPolicy() *Policy {
	return &Policy{}
}

// CanCreateSchool allows representatives to register schools
func (p *Policy) CanCreateSchool(actor Actor) error {
	if actor.Role != models.RoleSchoolRep {
		return apperrors.NewForbiddenError("only school representatives can register schools")
	}
	return nil
}

// CanManageSchool allows the owning representative or MEC to modify a
// school.
func (p *Policy) CanManageSchool(actor Actor, school *models.School) error {
	if actor.IsMEC() {
		return nil
	}
	if actor.Role == models.RoleSchoolRep && school.OwnerID == actor.UserID {
		return nil
	}
	return apperrors.NewForbiddenError("not allowed to manage this school")
}

// CanCreateListing allows the owning representative of a school to
// publish listings for it.
func (p *Policy) CanCreateListing(actor Actor, school *models.School) error {
	if actor.Role != models.RoleSchoolRep {
		return apperrors.NewForbiddenError("only school representatives can publish listings")
	}
	if school.OwnerID != actor.UserID {
		return apperrors.NewForbiddenError("not allowed to publish listings for this school")
	}
	return nil
}

// CanManageListing allows the owning representative or MEC to modify a
// listing.
func (p *Policy) CanManageListing(actor Actor, listing *models.Listing) error {
	if actor.IsMEC() {
		return nil
	}
	if actor.Role == models.RoleSchoolRep && listing.OwnerID == actor.UserID {
		return nil
	}
	return apperrors.NewForbiddenError("not allowed to manage this listing")
}

// CanCommit allows donors to commit to listing items
func (p *Policy) CanCommit(actor Actor) error {
	if actor.Role != models.RoleDonor {
		return apperrors.NewForbiddenError("only donors can commit to items")
	}
	return nil
}

// CanDecideMatch allows the representative who owns the matched listing
// to accept, reject, fulfill or cancel a match.
func (p *Policy) CanDecideMatch(actor Actor, match *models.Match) error {
	if actor.Role != models.RoleSchoolRep || match.RepresentativeID != actor.UserID {
		return apperrors.NewForbiddenError("not allowed to decide this match")
	}
	return nil
}

// CanWithdrawMatch allows the committing donor to withdraw an undecided
// commitment.
func (p *Policy) CanWithdrawMatch(actor Actor, match *models.Match) error {
	if actor.Role != models.RoleDonor || match.DonorID != actor.UserID {
		return apperrors.NewForbiddenError("not allowed to withdraw this match")
	}
	return nil
}

// CanViewMatch allows participants and MEC to read a match
func (p *Policy) CanViewMatch(actor Actor, match *models.Match) error {
	if actor.IsMEC() || match.DonorID == actor.UserID || match.RepresentativeID == actor.UserID {
		return nil
	}
	return apperrors.NewForbiddenError("not allowed to view this match")
}
