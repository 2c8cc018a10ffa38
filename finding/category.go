package finding

import "fmt"

// Category classifies the kind of estate-planning gap a finding reports.
type Category string

const (
	// CategoryMissingDesignation indicates an account with nobody named.
	// Examples: TFSA without successor holder or beneficiary
	CategoryMissingDesignation Category = "missing_designation"

	// CategoryStaleDesignation indicates a designation that no longer
	// reflects the client's relationships.
	// Examples: Ex-spouse still named as successor annuitant
	CategoryStaleDesignation Category = "stale_designation"

	// CategoryFailedDesignation indicates the designated person has died.
	CategoryFailedDesignation Category = "failed_designation"

	// CategoryDesignationQuality indicates a valid designation that could be
	// structured better.
	// Examples: Spouse named beneficiary instead of successor, no contingent
	CategoryDesignationQuality Category = "designation_quality"

	// CategoryLiquidity indicates the estate may not have cash to cover the
	// tax due on death.
	CategoryLiquidity Category = "liquidity"

	// CategoryLifeEvent indicates designations not updated after a marriage,
	// divorce, birth or new partner.
	CategoryLifeEvent Category = "life_event"

	// CategoryEstateDocuments indicates a missing or outdated will.
	CategoryEstateDocuments Category = "estate_documents"

	// CategoryPortfolio indicates a gap spanning every account.
	CategoryPortfolio Category = "portfolio"

	// CategoryCustom marks findings produced by advisor-defined policies.
	CategoryCustom Category = "custom"
)

// IsValid returns true if the category is valid.
func (c Category) IsValid() bool {
	switch c {
	case CategoryMissingDesignation,
		CategoryStaleDesignation,
		CategoryFailedDesignation,
		CategoryDesignationQuality,
		CategoryLiquidity,
		CategoryLifeEvent,
		CategoryEstateDocuments,
		CategoryPortfolio,
		CategoryCustom:
		return true
	default:
		return false
	}
}

// String returns the string representation of the category.
func (c Category) String() string {
	return string(c)
}

// DisplayName returns a human-readable display name for the category.
func (c Category) DisplayName() string {
	switch c {
	case CategoryMissingDesignation:
		return "Missing Designation"
	case CategoryStaleDesignation:
		return "Stale Designation"
	case CategoryFailedDesignation:
		return "Failed Designation"
	case CategoryDesignationQuality:
		return "Designation Quality"
	case CategoryLiquidity:
		return "Estate Liquidity"
	case CategoryLifeEvent:
		return "Life Event"
	case CategoryEstateDocuments:
		return "Estate Documents"
	case CategoryPortfolio:
		return "Portfolio"
	case CategoryCustom:
		return "Custom"
	default:
		return string(c)
	}
}

// ParseCategory parses a string into a Category value.
// Returns an error if the string is not a valid category.
func ParseCategory(s string) (Category, error) {
	category := Category(s)
	if !category.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return category, nil
}

// AllCategories returns all valid categories.
func AllCategories() []Category {
	return []Category{
		CategoryMissingDesignation,
		CategoryStaleDesignation,
		CategoryFailedDesignation,
		CategoryDesignationQuality,
		CategoryLiquidity,
		CategoryLifeEvent,
		CategoryEstateDocuments,
		CategoryPortfolio,
		CategoryCustom,
	}
}
