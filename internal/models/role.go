package models

import (
	"fmt"
	"strings"
)

// Role is the starting profile a player picks before the trail begins.
type Role string

const (
	RoleDeveloper  Role = "developer"
	RoleResearcher Role = "researcher"
	RoleExecutive  Role = "executive"
)

// Roles lists the roles in the order they are offered.
var Roles = []Role{RoleDeveloper, RoleResearcher, RoleExecutive}

// ParseRole converts user input to a Role. Matching ignores case and surrounding space.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Roles {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Multiplier scales the final score for the role.
func (r Role) Multiplier() float64 {
	switch r {
	case RoleResearcher:
		return 1.5
	case RoleExecutive:
		return 0.8
	default:
		return 1.0
	}
}

// Profile describes a role: its blurb and the stats a session starts with.
type Profile struct {
	Role  Role   `yaml:"role"`
	Title string `yaml:"title"`
	Icon  string `yaml:"icon"`
	Blurb string `yaml:"blurb"`
	Stats Stats  `yaml:"stats"`
}
