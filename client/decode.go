package client

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vesta-ai/estate"
	"github.com/vesta-ai/estate/input"
)

const opDecode = "client.Decode"

// Parse decodes a single client record from JSON or YAML.
func Parse(data []byte) (*Client, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, estate.NewValidationError(opDecode, fmt.Errorf("parse client record: %w", err))
	}
	return Decode(raw)
}

// Decode builds a Client from a decoded JSON/YAML record and validates it.
//
// Optional fields may be missing or null. Fields that are present with the
// wrong shape (accounts that are not a list, a designation that is not an
// object, a non-numeric balance) fail fast with an error matching
// estate.ErrInvalidInput rather than producing a partial client.
func Decode(raw map[string]any) (*Client, error) {
	if raw == nil {
		return nil, estate.NewValidationError(opDecode, errors.New("client record is empty"))
	}

	c := &Client{
		Name:            input.GetString(raw, "name", ""),
		MaritalStatus:   MaritalStatus(strings.ToLower(strings.TrimSpace(input.GetString(raw, "marital_status", "")))),
		Province:        input.GetString(raw, "province", ""),
		MarriageDate:    input.GetString(raw, "marriage_date", ""),
		WillLastUpdated: input.GetString(raw, "will_last_updated", ""),
	}

	hasWill, err := optionalBoolField(raw, "has_will")
	if err != nil {
		return nil, decodeError(c, err)
	}
	c.HasWill = hasWill != nil && *hasWill

	accounts, err := listField(raw, "accounts")
	if err != nil {
		return nil, decodeError(c, err)
	}
	for i, item := range accounts {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, decodeError(c, fmt.Errorf("account %d must be an object, got %T", i, item))
		}
		a, err := decodeAccount(m)
		if err != nil {
			return nil, decodeError(c, fmt.Errorf("account %d: %w", i, err))
		}
		c.Accounts = append(c.Accounts, a)
	}

	children, err := listField(raw, "children")
	if err != nil {
		return nil, decodeError(c, err)
	}
	for i, item := range children {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, decodeError(c, fmt.Errorf("child %d must be an object, got %T", i, item))
		}
		child, err := decodeChild(m)
		if err != nil {
			return nil, decodeError(c, fmt.Errorf("child %d: %w", i, err))
		}
		c.Children = append(c.Children, child)
	}

	if v := input.Lookup(raw, "current_partner"); v.IsPresent() {
		m, ok := v.Raw().(map[string]any)
		if !ok {
			return nil, decodeError(c, fmt.Errorf("current_partner must be an object, got %T", v.Raw()))
		}
		c.CurrentPartner = &Partner{
			Name:                 input.GetString(m, "name", ""),
			MonthsLivingTogether: input.GetInt(m, "months_living_together", 0),
			CohabitationStart:    input.GetString(m, "cohabitation_start", ""),
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func decodeAccount(m map[string]any) (Account, error) {
	var a Account
	id, err := stringField(m, "account_id")
	if err != nil {
		return a, err
	}
	accountType, err := stringField(m, "type")
	if err != nil {
		return a, err
	}
	a.ID = id
	a.Type = AccountType(strings.TrimSpace(accountType))

	if v := input.Lookup(m, "balance"); v.IsPresent() {
		f, ok := v.Float64()
		if !ok {
			return a, fmt.Errorf("balance must be a number, got %T", v.Raw())
		}
		a.Balance = f
	}

	for _, role := range []Role{RoleSuccessorHolder, RoleSuccessorAnnuitant, RoleBeneficiaryPrimary, RoleBeneficiaryContingent} {
		d, err := decodeDesignation(m, role)
		if err != nil {
			return a, err
		}
		switch role {
		case RoleSuccessorHolder:
			a.SuccessorHolder = d
		case RoleSuccessorAnnuitant:
			a.SuccessorAnnuitant = d
		case RoleBeneficiaryPrimary:
			a.BeneficiaryPrimary = d
		case RoleBeneficiaryContingent:
			a.BeneficiaryContingent = d
		}
	}
	return a, nil
}

func decodeDesignation(account map[string]any, role Role) (*Designation, error) {
	v := input.Lookup(account, string(role))
	if !v.IsPresent() {
		return nil, nil
	}
	m, ok := v.Raw().(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s must be an object, got %T", role, v.Raw())
	}

	d := &Designation{
		Name:         input.GetString(m, "name", ""),
		Relationship: Relationship(strings.ToLower(strings.TrimSpace(input.GetString(m, "relationship", "")))),
	}
	var err error
	if d.IsCurrentlySpouse, err = optionalBoolField(m, "is_currently_spouse"); err != nil {
		return nil, fmt.Errorf("%s: %w", role, err)
	}
	if d.IsCurrentlyAlive, err = optionalBoolField(m, "is_currently_alive"); err != nil {
		return nil, fmt.Errorf("%s: %w", role, err)
	}
	return d, nil
}

func decodeChild(m map[string]any) (Child, error) {
	child := Child{Name: input.GetString(m, "name", "")}

	var err error
	if child.IsMinor, err = optionalBoolField(m, "is_minor"); err != nil {
		return child, err
	}
	if v := input.Lookup(m, "age_months"); v.IsPresent() {
		f, ok := v.Float64()
		if !ok {
			return child, fmt.Errorf("age_months must be a number, got %T", v.Raw())
		}
		months := int(f)
		child.AgeMonths = &months
	}
	return child, nil
}

// optionalBoolField returns nil when key is absent or null and an error
// when it holds something other than a bool.
func optionalBoolField(m map[string]any, key string) (*bool, error) {
	v := input.Lookup(m, key)
	if !v.IsPresent() {
		return nil, nil
	}
	if _, ok := v.Bool(); !ok {
		return nil, fmt.Errorf("%s must be a boolean, got %T", key, v.Raw())
	}
	return input.GetOptionalBool(m, key), nil
}

// stringField returns "" when key is absent or null and an error when it
// holds something other than a string.
func stringField(m map[string]any, key string) (string, error) {
	v := input.Lookup(m, key)
	if !v.IsPresent() {
		return "", nil
	}
	s, ok := v.AsString()
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %T", key, v.Raw())
	}
	return s, nil
}

// listField returns nil when key is absent or null and an error when it
// holds something other than a list.
func listField(m map[string]any, key string) ([]any, error) {
	v := input.Lookup(m, key)
	if !v.IsPresent() {
		return nil, nil
	}
	list, ok := v.Raw().([]any)
	if !ok {
		return nil, fmt.Errorf("%s must be a list, got %T", key, v.Raw())
	}
	return list, nil
}

func decodeError(c *Client, err error) error {
	return estate.NewValidationError(opDecode, err).WithContext(map[string]any{"client": c.Name})
}
