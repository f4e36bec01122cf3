package domain

import "testing"

func TestValidGroup(t *testing.T) {
	tests := []struct {
		name  string
		group string
		valid bool
	}{
		{"super admin", "su", true},
		{"professor", "pf", true},
		{"student", "st", true},
		{"empty", "", false},
		{"unknown", "admin", false},
		{"capitalized", "SU", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidGroup(tt.group); got != tt.valid {
				t.Errorf("ValidGroup(%q) = %v, want %v", tt.group, got, tt.valid)
			}
		})
	}
}

func TestPartitionUsersDisjointUnion(t *testing.T) {
	users := []User{
		{UserID: 1, Username: "root", PermissionGroup: GroupSuperAdmin},
		{UserID: 2, Username: "prof", PermissionGroup: GroupProfessor},
		{UserID: 3, Username: "alice", PermissionGroup: GroupStudent},
		{UserID: 4, Username: "bob", PermissionGroup: GroupStudent},
	}

	p := PartitionUsers(users)

	if len(p.SuperAdmins) != 1 || len(p.Professors) != 1 || len(p.Students) != 2 {
		t.Fatalf("partition sizes = %d/%d/%d, want 1/1/2",
			len(p.SuperAdmins), len(p.Professors), len(p.Students))
	}

	// Disjoint and union == input: every input user lands in exactly one group.
	seen := map[int]int{}
	for _, g := range [][]User{p.SuperAdmins, p.Professors, p.Students} {
		for _, u := range g {
			seen[u.UserID]++
		}
	}
	if len(seen) != len(users) {
		t.Errorf("union covers %d users, want %d", len(seen), len(users))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("user %d appears in %d groups, want 1", id, n)
		}
	}
}

func TestPartitionUsersDropsUnknownGroup(t *testing.T) {
	p := PartitionUsers([]User{{UserID: 9, Username: "ghost", PermissionGroup: "ta"}})
	if len(p.SuperAdmins)+len(p.Professors)+len(p.Students) != 0 {
		t.Error("expected user with unknown group to be dropped from all partitions")
	}
}

func TestFilterByUsername(t *testing.T) {
	users := []User{
		{UserID: 1, Username: "alice"},
		{UserID: 2, Username: "bob"},
		{UserID: 3, Username: "carol"},
	}

	got := FilterByUsername(users, "a")
	if len(got) != 2 || got[0].Username != "alice" || got[1].Username != "carol" {
		t.Errorf("FilterByUsername(%q) = %v, want [alice carol]", "a", got)
	}

	// Case-insensitive.
	got = FilterByUsername(users, "ALI")
	if len(got) != 1 || got[0].Username != "alice" {
		t.Errorf("FilterByUsername(%q) = %v, want [alice]", "ALI", got)
	}

	// Empty query matches everyone.
	if got := FilterByUsername(users, ""); len(got) != 3 {
		t.Errorf("FilterByUsername(\"\") returned %d users, want 3", len(got))
	}

	// No match.
	if got := FilterByUsername(users, "zzz"); len(got) != 0 {
		t.Errorf("FilterByUsername(%q) returned %d users, want 0", "zzz", len(got))
	}
}

func TestEligibleForPromotion(t *testing.T) {
	p := Partition{
		SuperAdmins: []User{{UserID: 1, Username: "root", PermissionGroup: GroupSuperAdmin}},
		Professors:  []User{{UserID: 2, Username: "prof", PermissionGroup: GroupProfessor}},
		Students:    []User{{UserID: 3, Username: "stud", PermissionGroup: GroupStudent}},
	}

	su := p.EligibleForPromotion(GroupSuperAdmin)
	if len(su) != 2 {
		t.Fatalf("eligible for su = %d users, want 2 (professors + students)", len(su))
	}
	if su[0].UserID != 2 || su[1].UserID != 3 {
		t.Errorf("eligible for su = %v, want professors before students", su)
	}

	pf := p.EligibleForPromotion(GroupProfessor)
	if len(pf) != 1 || pf[0].UserID != 3 {
		t.Errorf("eligible for pf = %v, want students only", pf)
	}

	if got := p.EligibleForPromotion(GroupStudent); got != nil {
		t.Errorf("eligible for st = %v, want nil", got)
	}
}

func TestGroupName(t *testing.T) {
	if got := GroupName(GroupProfessor); got != "Professors" {
		t.Errorf("GroupName(pf) = %q, want Professors", got)
	}
	if got := GroupName("xy"); got != "xy" {
		t.Errorf("GroupName(xy) = %q, want passthrough", got)
	}
}
