package policy

import "github.com/vesta-ai/estate/client"

// clientActivation exposes a client to CEL under the same keys as client
// records. Unrecorded optional values are left out so expressions can test
// them with has().
func clientActivation(c *client.Client) map[string]any {
	accounts := make([]any, 0, len(c.Accounts))
	var total float64
	for i := range c.Accounts {
		accounts = append(accounts, accountActivation(&c.Accounts[i]))
		total += c.Accounts[i].Balance
	}

	children := make([]any, 0, len(c.Children))
	for _, child := range c.Children {
		m := map[string]any{"name": child.Name}
		if child.IsMinor != nil {
			m["is_minor"] = *child.IsMinor
		}
		if child.AgeMonths != nil {
			m["age_months"] = int64(*child.AgeMonths)
		}
		children = append(children, m)
	}

	m := map[string]any{
		"name":           c.Name,
		"marital_status": c.MaritalStatus.String(),
		"has_will":       c.HasWill,
		"province":       c.Province,
		"accounts":       accounts,
		"children":       children,
		"total_balance":  total,
	}
	if c.WillLastUpdated != "" {
		m["will_last_updated"] = c.WillLastUpdated
	}
	if c.MarriageDate != "" {
		m["marriage_date"] = c.MarriageDate
	}
	if p := c.CurrentPartner; p != nil {
		m["current_partner"] = map[string]any{
			"name":                   p.Name,
			"months_living_together": int64(p.MonthsLivingTogether),
		}
	}
	return m
}

func accountActivation(a *client.Account) map[string]any {
	m := map[string]any{
		"account_id": a.ID,
		"type":       a.Type.String(),
		"balance":    a.Balance,
	}
	for _, role := range []client.Role{
		client.RoleSuccessorHolder,
		client.RoleSuccessorAnnuitant,
		client.RoleBeneficiaryPrimary,
		client.RoleBeneficiaryContingent,
	} {
		if d := a.Designation(role); d != nil {
			m[role.String()] = designationActivation(d)
		}
	}
	return m
}

func designationActivation(d *client.Designation) map[string]any {
	m := map[string]any{
		"name":         d.Name,
		"relationship": d.Relationship.String(),
	}
	if d.IsCurrentlySpouse != nil {
		m["is_currently_spouse"] = *d.IsCurrentlySpouse
	}
	if d.IsCurrentlyAlive != nil {
		m["is_currently_alive"] = *d.IsCurrentlyAlive
	}
	return m
}
