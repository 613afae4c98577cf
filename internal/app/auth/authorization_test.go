package auth

import (
	"testing"

	"github.com/nvera/donaescuela/internal/app/models"
)

var (
	donor = Actor{UserID: 1, Role: models.RoleDonor}
	rep   = Actor{UserID: 2, Role: models.RoleSchoolRep}
	other = Actor{UserID: 3, Role: models.RoleSchoolRep}
	mec   = Actor{UserID: 4, Role: models.RoleMEC}
)

func TestCanCreateSchool(t *testing.T) {
	p := NewPolicy()

	if err := p.CanCreateSchool(rep); err != nil {
		t.Errorf("representative must be allowed: %v", err)
	}
	if err := p.CanCreateSchool(donor); err == nil {
		t.Error("donor must not register schools")
	}
	if err := p.CanCreateSchool(mec); err == nil {
		t.Error("mec must not register schools")
	}
}

func TestCanManageSchool(t *testing.T) {
	p := NewPolicy()
	school := &models.School{ID: 10, OwnerID: rep.UserID}

	if err := p.CanManageSchool(rep, school); err != nil {
		t.Errorf("owner must be allowed: %v", err)
	}
	if err := p.CanManageSchool(mec, school); err != nil {
		t.Errorf("mec must be allowed: %v", err)
	}
	if err := p.CanManageSchool(other, school); err == nil {
		t.Error("non-owning representative must be denied")
	}
	if err := p.CanManageSchool(donor, school); err == nil {
		t.Error("donor must be denied")
	}
}

func TestCanCreateListing(t *testing.T) {
	p := NewPolicy()
	school := &models.School{ID: 10, OwnerID: rep.UserID}

	if err := p.CanCreateListing(rep, school); err != nil {
		t.Errorf("owner must be allowed: %v", err)
	}
	if err := p.CanCreateListing(other, school); err == nil {
		t.Error("non-owning representative must be denied")
	}
	if err := p.CanCreateListing(donor, school); err == nil {
		t.Error("donor must be denied")
	}
}

func TestCanManageListing(t *testing.T) {
	p := NewPolicy()
	listing := &models.Listing{ID: 20, OwnerID: rep.UserID}

	if err := p.CanManageListing(rep, listing); err != nil {
		t.Errorf("owner must be allowed: %v", err)
	}
	if err := p.CanManageListing(mec, listing); err != nil {
		t.Errorf("mec must be allowed: %v", err)
	}
	if err := p.CanManageListing(other, listing); err == nil {
		t.Error("non-owning representative must be denied")
	}
}

func TestCanCommit(t *testing.T) {
	p := NewPolicy()

	if err := p.CanCommit(donor); err != nil {
		t.Errorf("donor must be allowed: %v", err)
	}
	if err := p.CanCommit(rep); err == nil {
		t.Error("representative must not commit")
	}
}

func TestCanDecideMatch(t *testing.T) {
	p := NewPolicy()
	match := &models.Match{ID: 30, DonorID: donor.UserID, RepresentativeID: rep.UserID}

	if err := p.CanDecideMatch(rep, match); err != nil {
		t.Errorf("owning representative must be allowed: %v", err)
	}
	if err := p.CanDecideMatch(other, match); err == nil {
		t.Error("non-owning representative must be denied")
	}
	if err := p.CanDecideMatch(donor, match); err == nil {
		t.Error("donor must not decide matches")
	}
	if err := p.CanDecideMatch(mec, match); err == nil {
		t.Error("mec must not decide matches")
	}
}

func TestCanWithdrawMatch(t *testing.T) {
	p := NewPolicy()
	match := &models.Match{ID: 30, DonorID: donor.UserID, RepresentativeID: rep.UserID}

	if err := p.CanWithdrawMatch(donor, match); err != nil {
		t.Errorf("committing donor must be allowed: %v", err)
	}
	if err := p.CanWithdrawMatch(Actor{UserID: 99, Role: models.RoleDonor}, match); err == nil {
		t.Error("other donor must be denied")
	}
	if err := p.CanWithdrawMatch(rep, match); err == nil {
		t.Error("representative must not withdraw a donor's match")
	}
}

func TestCanViewMatch(t *testing.T) {
	p := NewPolicy()
	match := &models.Match{ID: 30, DonorID: donor.UserID, RepresentativeID: rep.UserID}

	for _, actor := range []Actor{donor, rep, mec} {
		if err := p.CanViewMatch(actor, match); err != nil {
			t.Errorf("actor %d must view the match: %v", actor.UserID, err)
		}
	}
	if err := p.CanViewMatch(other, match); err == nil {
		t.Error("outsider must be denied")
	}
}
