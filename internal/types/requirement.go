// Package types provides type definitions for structured data used throughout the resume-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// RequirementType classifies how strongly a job description asks for a keyword
type RequirementType string

const (
	// RequirementRequired marks must-have keywords
	RequirementRequired RequirementType = "required"
	// RequirementPreferred marks nice-to-have keywords
	RequirementPreferred RequirementType = "preferred"
	// RequirementBonus marks keywords that only add a little
	RequirementBonus RequirementType = "bonus"
	// RequirementUnknown marks keywords from unclassified text
	RequirementUnknown RequirementType = "unknown"
)

// RequirementOrder is the fixed order in which tiers are processed.
// Earlier tiers win when the same keyword appears in more than one.
var RequirementOrder = []RequirementType{
	RequirementRequired,
	RequirementPreferred,
	RequirementBonus,
	RequirementUnknown,
}

// Weight returns the fixed importance weight for the tier
func (r RequirementType) Weight() float64 {
	switch r {
	case RequirementRequired:
		return 2.0
	case RequirementPreferred:
		return 1.0
	case RequirementBonus:
		return 0.5
	default:
		return 1.0
	}
}

// SectionGeneral is the section name used when the whole job description is
// re-scanned because no tier produced keywords.
const SectionGeneral = "general"

// WeightedKeyword is a JD keyword tagged with its requirement tier
type WeightedKeyword struct {
	Keyword         string          `json:"keyword"`
	RequirementType RequirementType `json:"requirement_type"`
	Weight          float64         `json:"weight"`
	Section         string          `json:"section"`
}
