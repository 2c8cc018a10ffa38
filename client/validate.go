package client

import (
	"errors"
	"fmt"
	"math"

	"github.com/vesta-ai/estate"
)

// Validate checks that the client can be evaluated: enumerations hold known
// values, account ids are present and unique, balances are finite and
// non-negative and dates parse. Unknown account types and relationship
// labels are allowed; see UnrecognizedRelationships.
//
// The returned error matches estate.ErrInvalidInput.
func (c *Client) Validate() error {
	if c == nil {
		return estate.NewValidationError("client.Validate", errors.New("client is nil"))
	}

	var errs []error
	if !c.MaritalStatus.IsValid() {
		errs = append(errs, fmt.Errorf("unknown marital status %q", c.MaritalStatus))
	}
	if err := validateDate("marriage_date", c.MarriageDate); err != nil {
		errs = append(errs, err)
	}
	if err := validateDate("will_last_updated", c.WillLastUpdated); err != nil {
		errs = append(errs, err)
	}
	if c.CurrentPartner != nil {
		if err := validateDate("current_partner.cohabitation_start", c.CurrentPartner.CohabitationStart); err != nil {
			errs = append(errs, err)
		}
		if c.CurrentPartner.MonthsLivingTogether < 0 {
			errs = append(errs, errors.New("current_partner.months_living_together cannot be negative"))
		}
	}

	seen := make(map[string]int, len(c.Accounts))
	for i := range c.Accounts {
		a := &c.Accounts[i]
		if a.ID == "" {
			errs = append(errs, fmt.Errorf("account %d: account_id is required", i))
		} else if prev, dup := seen[a.ID]; dup {
			errs = append(errs, fmt.Errorf("account %d: duplicate account_id %q (first seen at %d)", i, a.ID, prev))
		} else {
			seen[a.ID] = i
		}
		if math.IsNaN(a.Balance) || math.IsInf(a.Balance, 0) {
			errs = append(errs, fmt.Errorf("account %q: balance must be a finite number", a.ID))
		} else if a.Balance < 0 {
			errs = append(errs, fmt.Errorf("account %q: balance cannot be negative, got %v", a.ID, a.Balance))
		}
	}

	if len(errs) > 0 {
		return estate.NewValidationError("client.Validate", errors.Join(errs...)).
			WithContext(map[string]any{"client": c.Name})
	}
	return nil
}

func validateDate(field, value string) error {
	if value == "" {
		return nil
	}
	if _, ok := parseDate(value); !ok {
		return fmt.Errorf("%s: %q is not a %s date", field, value, DateLayout)
	}
	return nil
}
