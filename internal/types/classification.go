package types

import (
	"fmt"
	"strings"
)

// Category is the tag of a Classification
type Category string

// Classification categories, in classifier precedence order
const (
	CategoryTier1Identity      Category = "tier1_identity"
	CategoryTier2Contact       Category = "tier2_contact"
	CategorySkipCreative       Category = "skip_creative"
	CategoryNumeric            Category = "numeric"
	CategoryDate               Category = "date"
	CategoryText               Category = "text"
	CategorySelfIdentification Category = "self_identification"
	CategoryUnknown            Category = "unknown"
)

// Subtypes for the tiered and self-identification categories
const (
	SubtypeFullName    = "full_name"
	SubtypeCurrentDate = "current_date"

	SubtypeEmail       = "email"
	SubtypePhone       = "phone"
	SubtypeInstitution = "institution"

	SubtypeGender     = "gender"
	SubtypeRace       = "race"
	SubtypeVeteran    = "veteran"
	SubtypeDisability = "disability"
)

// Classification is a tagged variant. Subtype is set only for tier-1, tier-2 and
// self-identification categories.
type Classification struct {
	Category Category `json:"category"`
	Subtype  string   `json:"subtype,omitempty"`
}

// Classification constructors
var (
	Numeric      = Classification{Category: CategoryNumeric}
	Date         = Classification{Category: CategoryDate}
	Text         = Classification{Category: CategoryText}
	SkipCreative = Classification{Category: CategorySkipCreative}
	Unknown      = Classification{Category: CategoryUnknown}
)

// Tier1 returns a tier-1 identity classification
func Tier1(subtype string) Classification {
	return Classification{Category: CategoryTier1Identity, Subtype: subtype}
}

// Tier2 returns a tier-2 contact classification
func Tier2(subtype string) Classification {
	return Classification{Category: CategoryTier2Contact, Subtype: subtype}
}

// SelfIdentification returns a self-identification classification
func SelfIdentification(subtype string) Classification {
	return Classification{Category: CategorySelfIdentification, Subtype: subtype}
}

// Tier returns the safety tier label used in debug output
func (c Classification) Tier() string {
	switch c.Category {
	case CategoryTier1Identity:
		return "tier-1"
	case CategoryTier2Contact:
		return "tier-2"
	case CategorySkipCreative:
		return "skip"
	case CategoryUnknown:
		return "unknown"
	}
	return "generic"
}

// String renders the classification as CATEGORY or CATEGORY(subtype)
func (c Classification) String() string {
	name := strings.ToUpper(string(c.Category))
	if c.Subtype == "" {
		return name
	}
	return fmt.Sprintf("%s(%s)", name, c.Subtype)
}
