package client

import "time"

// DateLayout is the layout of every calendar date in a client record.
const DateLayout = "2006-01-02"

// MaritalStatus is the client's current marital status.
type MaritalStatus string

const (
	MaritalSingle    MaritalStatus = "single"
	MaritalMarried   MaritalStatus = "married"
	MaritalDivorced  MaritalStatus = "divorced"
	MaritalWidowed   MaritalStatus = "widowed"
	MaritalCommonLaw MaritalStatus = "common-law"
	MaritalSeparated MaritalStatus = "separated"
)

// IsValid returns true if the status is one of the known values. The empty
// status (not recorded) is also accepted.
func (m MaritalStatus) IsValid() bool {
	switch m {
	case "", MaritalSingle, MaritalMarried, MaritalDivorced, MaritalWidowed, MaritalCommonLaw, MaritalSeparated:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
func (m MaritalStatus) String() string {
	return string(m)
}

// AccountType identifies the tax treatment of an account.
//
// Unknown types are kept as-is so the engine can skip them rather than
// rejecting the whole client.
type AccountType string

const (
	// AccountTFSA is a tax-free savings account.
	AccountTFSA AccountType = "TFSA"

	// AccountRRSP is a registered retirement savings plan.
	AccountRRSP AccountType = "RRSP"

	// AccountRRIF is a registered retirement income fund.
	AccountRRIF AccountType = "RRIF"

	// AccountNonRegistered is a taxable investment account with no
	// designation support.
	AccountNonRegistered AccountType = "non-registered"

	// AccountOther covers anything else held for the client.
	AccountOther AccountType = "other"
)

// IsRegistered returns true for the tax-sheltered account types handled by
// the per-account rule sets.
func (t AccountType) IsRegistered() bool {
	switch t {
	case AccountTFSA, AccountRRSP, AccountRRIF:
		return true
	default:
		return false
	}
}

// String returns the string representation of the account type.
func (t AccountType) String() string {
	return string(t)
}

// Relationship is the designated person's relationship to the client.
type Relationship string

const (
	RelationshipSpouse    Relationship = "spouse"
	RelationshipExSpouse  Relationship = "ex-spouse"
	RelationshipCommonLaw Relationship = "common-law"
	RelationshipChild     Relationship = "child"
	RelationshipSon       Relationship = "son"
	RelationshipDaughter  Relationship = "daughter"
	RelationshipSibling   Relationship = "sibling"
	RelationshipBrother   Relationship = "brother"
	RelationshipSister    Relationship = "sister"
	RelationshipParent    Relationship = "parent"
	RelationshipMother    Relationship = "mother"
	RelationshipFather    Relationship = "father"
	RelationshipFriend    Relationship = "friend"
	RelationshipOther     Relationship = "other"
)

// IsValid returns true if the relationship is known or empty.
func (r Relationship) IsValid() bool {
	switch r {
	case "", RelationshipSpouse, RelationshipExSpouse, RelationshipCommonLaw,
		RelationshipChild, RelationshipSon, RelationshipDaughter,
		RelationshipSibling, RelationshipBrother, RelationshipSister,
		RelationshipParent, RelationshipMother, RelationshipFather,
		RelationshipFriend, RelationshipOther:
		return true
	default:
		return false
	}
}

// IsChild returns true for child, son and daughter.
func (r Relationship) IsChild() bool {
	return r == RelationshipChild || r == RelationshipSon || r == RelationshipDaughter
}

// String returns the string representation of the relationship.
func (r Relationship) String() string {
	return string(r)
}

// Role is the capacity in which a person is designated on an account.
type Role string

const (
	RoleSuccessorHolder       Role = "successor_holder"
	RoleSuccessorAnnuitant    Role = "successor_annuitant"
	RoleBeneficiaryPrimary    Role = "beneficiary_primary"
	RoleBeneficiaryContingent Role = "beneficiary_contingent"
)

// DesignationRoles are the roles that count as "a designation" on an
// account. The contingent beneficiary is a backup and is not included.
var DesignationRoles = []Role{
	RoleSuccessorHolder,
	RoleSuccessorAnnuitant,
	RoleBeneficiaryPrimary,
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// Designation names a person who receives or takes over an account on the
// client's death. Nil booleans mean the flag was not recorded.
type Designation struct {
	Name              string       `json:"name,omitempty"`
	Relationship      Relationship `json:"relationship,omitempty"`
	IsCurrentlySpouse *bool        `json:"is_currently_spouse,omitempty"`
	IsCurrentlyAlive  *bool        `json:"is_currently_alive,omitempty"`
}

// Account is one financial account held by the client.
type Account struct {
	ID                    string       `json:"account_id"`
	Type                  AccountType  `json:"type"`
	Balance               float64      `json:"balance"`
	SuccessorHolder       *Designation `json:"successor_holder,omitempty"`
	SuccessorAnnuitant    *Designation `json:"successor_annuitant,omitempty"`
	BeneficiaryPrimary    *Designation `json:"beneficiary_primary,omitempty"`
	BeneficiaryContingent *Designation `json:"beneficiary_contingent,omitempty"`
}

// Designation returns the designation held in role, or nil.
func (a *Account) Designation(role Role) *Designation {
	if a == nil {
		return nil
	}
	switch role {
	case RoleSuccessorHolder:
		return a.SuccessorHolder
	case RoleSuccessorAnnuitant:
		return a.SuccessorAnnuitant
	case RoleBeneficiaryPrimary:
		return a.BeneficiaryPrimary
	case RoleBeneficiaryContingent:
		return a.BeneficiaryContingent
	default:
		return nil
	}
}

// UnrecognizedRelationship is a designation whose relationship label is
// outside the known set, such as "niece" or "charity". No rule matches such
// a label, so it is evaluated like RelationshipOther.
type UnrecognizedRelationship struct {
	AccountID    string
	Role         Role
	Relationship Relationship
}

// UnrecognizedRelationships lists designations with unknown relationship
// labels in account and role order.
func (c *Client) UnrecognizedRelationships() []UnrecognizedRelationship {
	if c == nil {
		return nil
	}
	var out []UnrecognizedRelationship
	for i := range c.Accounts {
		a := &c.Accounts[i]
		for _, role := range []Role{RoleSuccessorHolder, RoleSuccessorAnnuitant, RoleBeneficiaryPrimary, RoleBeneficiaryContingent} {
			if d := a.Designation(role); d != nil && !d.Relationship.IsValid() {
				out = append(out, UnrecognizedRelationship{AccountID: a.ID, Role: role, Relationship: d.Relationship})
			}
		}
	}
	return out
}

// Child is a child of the client.
type Child struct {
	Name      string `json:"name"`
	IsMinor   *bool  `json:"is_minor,omitempty"`
	AgeMonths *int   `json:"age_months,omitempty"`
}

// Partner is a cohabiting partner the client is not married to.
type Partner struct {
	Name                 string `json:"name,omitempty"`
	MonthsLivingTogether int    `json:"months_living_together,omitempty"`
	CohabitationStart    string `json:"cohabitation_start,omitempty"`
}

// Client is the record the engine evaluates. The engine never mutates it.
type Client struct {
	Name            string        `json:"name"`
	MaritalStatus   MaritalStatus `json:"marital_status,omitempty"`
	HasWill         bool          `json:"has_will"`
	Province        string        `json:"province,omitempty"`
	MarriageDate    string        `json:"marriage_date,omitempty"`
	WillLastUpdated string        `json:"will_last_updated,omitempty"`
	Children        []Child       `json:"children,omitempty"`
	CurrentPartner  *Partner      `json:"current_partner,omitempty"`
	Accounts        []Account     `json:"accounts"`
}

// Account returns the account with the given id.
func (c *Client) Account(id string) (*Account, bool) {
	if c == nil {
		return nil, false
	}
	for i := range c.Accounts {
		if c.Accounts[i].ID == id {
			return &c.Accounts[i], true
		}
	}
	return nil, false
}

// TotalBalance sums the balances of every account of type t.
func (c *Client) TotalBalance(t AccountType) float64 {
	if c == nil {
		return 0
	}
	var total float64
	for _, a := range c.Accounts {
		if a.Type == t {
			total += a.Balance
		}
	}
	return total
}

// WillUpdatedAt parses WillLastUpdated. ok is false when it is unset.
func (c *Client) WillUpdatedAt() (time.Time, bool) {
	return parseDate(c.WillLastUpdated)
}

// CohabitingSince parses the partner's cohabitation start. ok is false when
// there is no partner or no start date.
func (p *Partner) CohabitingSince() (time.Time, bool) {
	if p == nil {
		return time.Time{}, false
	}
	return parseDate(p.CohabitationStart)
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Bool returns a pointer to b. It is a convenience for building designations.
func Bool(b bool) *bool {
	return &b
}
