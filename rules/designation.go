package rules

import (
	"github.com/vesta-ai/estate/client"
	"github.com/vesta-ai/estate/input"
)

// Designation flags and fields as they appear in client records.
const (
	fieldRelationship      = "relationship"
	fieldName              = "name"
	fieldIsCurrentlySpouse = "is_currently_spouse"
	fieldIsCurrentlyAlive  = "is_currently_alive"
)

// named reports whether the account carries a designation in role.
func named(a *client.Account, role client.Role) bool {
	return input.Lookup(a, string(role)).IsPresent()
}

// exSpouse reports whether the designation in role is explicitly marked as
// no longer the client's spouse. An unrecorded flag is not a match.
func exSpouse(a *client.Account, role client.Role) bool {
	return input.Lookup(a, string(role), fieldIsCurrentlySpouse).IsFalse()
}

// deceased reports whether the designation in role is explicitly marked as
// no longer alive. An unrecorded flag is not a match.
func deceased(a *client.Account, role client.Role) bool {
	return input.Lookup(a, string(role), fieldIsCurrentlyAlive).IsFalse()
}

// related reports whether the designation in role has relationship rel.
func related(a *client.Account, role client.Role, rel client.Relationship) bool {
	return input.Lookup(a, string(role), fieldRelationship).Equals(rel.String())
}

// hasAnyDesignation reports whether the account names anyone as successor
// holder, successor annuitant or primary beneficiary.
func hasAnyDesignation(a *client.Account) bool {
	for _, role := range client.DesignationRoles {
		if named(a, role) {
			return true
		}
	}
	return false
}

// anyDesignation reports whether match holds for some designation role on
// some account of the client.
func anyDesignation(c *client.Client, match func(a *client.Account, role client.Role) bool) bool {
	for i := range c.Accounts {
		for _, role := range client.DesignationRoles {
			if match(&c.Accounts[i], role) {
				return true
			}
		}
	}
	return false
}
