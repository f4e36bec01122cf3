package domain

import "strings"

// Permission groups, as tagged by the backend.
const (
	GroupSuperAdmin = "su"
	GroupProfessor  = "pf"
	GroupStudent    = "st"
)

// User represents a registered platform user.
type User struct {
	UserID          int    `json:"userID"`
	Username        string `json:"username"`
	PermissionGroup string `json:"permissionGroup"`
}

// GroupName returns the display name for a permission group tag.
func GroupName(group string) string {
	switch group {
	case GroupSuperAdmin:
		return "Super Admins"
	case GroupProfessor:
		return "Professors"
	case GroupStudent:
		return "Students"
	}
	return group
}

// ValidGroup returns true if the given tag is a known permission group.
func ValidGroup(group string) bool {
	switch group {
	case GroupSuperAdmin, GroupProfessor, GroupStudent:
		return true
	}
	return false
}

// Partition splits users into the three permission groups. Users carrying an
// unknown tag are dropped; within each group the input order is preserved.
type Partition struct {
	SuperAdmins []User
	Professors  []User
	Students    []User
}

// PartitionUsers partitions a user list by permission group. Both the initial
// load and the post-elevate refresh go through this one function so the two
// call sites can never diverge.
func PartitionUsers(users []User) Partition {
	var p Partition
	for _, u := range users {
		switch u.PermissionGroup {
		case GroupSuperAdmin:
			p.SuperAdmins = append(p.SuperAdmins, u)
		case GroupProfessor:
			p.Professors = append(p.Professors, u)
		case GroupStudent:
			p.Students = append(p.Students, u)
		}
	}
	return p
}

// Group returns the partition slice for a permission group tag.
func (p Partition) Group(group string) []User {
	switch group {
	case GroupSuperAdmin:
		return p.SuperAdmins
	case GroupProfessor:
		return p.Professors
	case GroupStudent:
		return p.Students
	}
	return nil
}

// FilterByUsername returns the users whose username contains the query,
// case-insensitive, preserving input order. An empty query matches everyone.
func FilterByUsername(users []User, query string) []User {
	if query == "" {
		return users
	}
	q := strings.ToLower(query)
	var out []User
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Username), q) {
			out = append(out, u)
		}
	}
	return out
}

// EligibleForPromotion returns the users who may be promoted to the target
// group: professors and students for super admin, students only for
// professor. No group can be promoted to student.
func (p Partition) EligibleForPromotion(target string) []User {
	switch target {
	case GroupSuperAdmin:
		out := make([]User, 0, len(p.Professors)+len(p.Students))
		out = append(out, p.Professors...)
		out = append(out, p.Students...)
		return out
	case GroupProfessor:
		return append([]User(nil), p.Students...)
	}
	return nil
}
