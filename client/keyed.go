package client

// Field exposes the account's fields by their record keys for input.Lookup.
// Unset designations report (nil, false).
func (a *Account) Field(key string) (any, bool) {
	if a == nil {
		return nil, false
	}
	switch key {
	case "account_id":
		return a.ID, true
	case "type":
		return a.Type, true
	case "balance":
		return a.Balance, true
	}
	if d := a.Designation(Role(key)); d != nil {
		return d, true
	}
	return nil, false
}

// Field exposes the designation's fields by their record keys for
// input.Lookup. Unrecorded flags report (nil, false).
func (d *Designation) Field(key string) (any, bool) {
	if d == nil {
		return nil, false
	}
	switch key {
	case "name":
		if d.Name == "" {
			return nil, false
		}
		return d.Name, true
	case "relationship":
		if d.Relationship == "" {
			return nil, false
		}
		return d.Relationship, true
	case "is_currently_spouse":
		return optionalBool(d.IsCurrentlySpouse)
	case "is_currently_alive":
		return optionalBool(d.IsCurrentlyAlive)
	default:
		return nil, false
	}
}

// Field exposes the client's scalar fields by their record keys.
func (c *Client) Field(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	switch key {
	case "name":
		return c.Name, true
	case "marital_status":
		return c.MaritalStatus, true
	case "has_will":
		return c.HasWill, true
	case "province":
		return c.Province, true
	case "current_partner":
		if c.CurrentPartner == nil {
			return nil, false
		}
		return c.CurrentPartner, true
	default:
		return nil, false
	}
}

// Field exposes the partner's fields by their record keys.
func (p *Partner) Field(key string) (any, bool) {
	if p == nil {
		return nil, false
	}
	switch key {
	case "name":
		return p.Name, true
	case "months_living_together":
		return p.MonthsLivingTogether, true
	case "cohabitation_start":
		if p.CohabitationStart == "" {
			return nil, false
		}
		return p.CohabitationStart, true
	default:
		return nil, false
	}
}

func optionalBool(b *bool) (any, bool) {
	if b == nil {
		return nil, false
	}
	return *b, true
}
