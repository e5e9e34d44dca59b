package domain

import (
	"errors"
	"testing"
)

func TestCanPerform(t *testing.T) {
	cases := []struct {
		requester Role
		action    Action
		target    Role
		want      bool
	}{
		{RoleSuperAdmin, ActionView, RoleSuperAdmin, true},
		{RoleAdmin, ActionView, RoleSuperAdmin, false},
		{RoleAdmin, ActionView, RoleAdmin, true},
		{RoleUser, ActionView, RoleAdmin, false},
		{RoleUser, ActionView, RoleUser, true},

		{RoleSuperAdmin, ActionCreate, "", true},
		{RoleAdmin, ActionCreate, "", true},
		{RoleUser, ActionCreate, "", false},
		{RoleSuperAdmin, ActionCreate, RoleAdmin, true},
		{RoleSuperAdmin, ActionCreate, RoleSuperAdmin, false},
		{RoleAdmin, ActionCreate, RoleAdmin, false},
		{RoleAdmin, ActionCreate, RoleUser, true},

		{RoleAdmin, ActionUpdate, RoleSuperAdmin, false},
		{RoleSuperAdmin, ActionUpdate, RoleSuperAdmin, true},
		{RoleAdmin, ActionUpdate, RoleUser, true},

		{RoleSuperAdmin, ActionChangeRole, RoleAdmin, true},
		{RoleAdmin, ActionChangeRole, RoleUser, false},
		{RoleUser, ActionChangeRole, RoleUser, false},

		{RoleSuperAdmin, ActionDelete, RoleAdmin, true},
		{RoleSuperAdmin, ActionDelete, RoleSuperAdmin, false},
		{RoleAdmin, ActionDelete, RoleUser, false},
		{RoleUser, ActionDelete, RoleUser, false},

		{Role("guest"), ActionList, "", false},
	}

	for _, tc := range cases {
		got := CanPerform(tc.requester, tc.action, tc.target)
		if got != tc.want {
			t.Errorf("CanPerform(%s, %s, %s) = %v, want %v", tc.requester, tc.action, tc.target, got, tc.want)
		}
	}
}

func TestAuthorize_UserOnlyTouchesOwnRecord(t *testing.T) {
	self := &User{ID: "5", Role: RoleUser}
	other := &User{ID: "7", Role: RoleUser}

	if err := Authorize(self, ActionView, self); err != nil {
		t.Fatalf("expected own record to be visible, got %v", err)
	}
	for _, action := range []Action{ActionView, ActionUpdate} {
		if err := Authorize(self, action, other); !errors.Is(err, ErrForbidden) {
			t.Fatalf("%s: expected ErrForbidden, got %v", action, err)
		}
	}
}

func TestAuthorize_DeleteReasons(t *testing.T) {
	super := &User{ID: "1", Role: RoleSuperAdmin}
	admin := &User{ID: "2", Role: RoleAdmin}
	user := &User{ID: "3", Role: RoleUser}

	err := Authorize(admin, ActionDelete, user)
	var fe *ForbiddenError
	if !errors.As(err, &fe) || fe.Reason != "Unauthorized to delete users" {
		t.Fatalf("unexpected denial: %v", err)
	}

	err = Authorize(super, ActionDelete, super)
	if !errors.As(err, &fe) || fe.Reason != "Super admin users cannot be deleted" {
		t.Fatalf("unexpected denial: %v", err)
	}

	if err := Authorize(super, ActionDelete, admin); err != nil {
		t.Fatalf("expected delete to be allowed, got %v", err)
	}
}

func TestScopeFor(t *testing.T) {
	if s := ScopeFor(&User{Role: RoleSuperAdmin}); len(s.ExcludeRoles) != 0 || s.OnlyID != "" {
		t.Fatalf("super_admin scope should be unrestricted: %+v", s)
	}
	if s := ScopeFor(&User{Role: RoleAdmin}); len(s.ExcludeRoles) != 1 || s.ExcludeRoles[0] != RoleSuperAdmin {
		t.Fatalf("admin scope should hide super_admin: %+v", s)
	}
	if s := ScopeFor(&User{ID: "9", Role: RoleUser}); s.OnlyID != "9" {
		t.Fatalf("user scope should be self only: %+v", s)
	}
}

func TestValidationError(t *testing.T) {
	ve := NewValidationError()
	if ve.OrNil() != nil {
		t.Fatalf("empty validation error should be nil")
	}
	ve.Add("email", "email is required")
	ve.Add("email", "ignored")
	ve.Add("name", "name is required")

	err := ve.OrNil()
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if ve.Fields["email"] != "email is required" {
		t.Fatalf("first message should win, got %q", ve.Fields["email"])
	}
	if err.Error() != "email is required; name is required" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
