// Package requirements classifies job description text into requirement tiers
// and extracts tier-weighted keywords.
package requirements

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

// sectionPatterns detect header lines, checked tier by tier in this order
var sectionPatterns = []struct {
	tier     types.RequirementType
	patterns []*regexp.Regexp
}{
	{
		tier: types.RequirementRequired,
		patterns: compile(
			`required\s+(?:skills|qualifications|experience)`,
			`must\s+have`,
			`requirements?:`,
			`essential\s+(?:skills|experience)`,
			`minimum\s+(?:qualifications|requirements)`,
			`you\s+(?:must|should|need\s+to)\s+have`,
			`we\s+require`,
			`mandatory`,
		),
	},
	{
		tier: types.RequirementPreferred,
		patterns: compile(
			`preferred\s+(?:skills|qualifications|experience)`,
			`nice\s+to\s+have`,
			`desired\s+(?:skills|qualifications)`,
			`plus(?:es)?:`,
			`ideally`,
			`you\s+(?:may|might|could)\s+have`,
			`advantageous`,
			`beneficial`,
		),
	},
	{
		tier: types.RequirementBonus,
		patterns: compile(
			`bonus\s+(?:points|skills)`,
			`extra\s+credit`,
			`additional\s+(?:skills|experience)`,
			`a\s+plus`,
			`would\s+be\s+(?:nice|great)`,
			`optional`,
		),
	},
}

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(`(?i)` + p)
	}
	return out
}

// Sections holds the text chunks of a job description per requirement tier
type Sections struct {
	Required  []string `json:"required"`
	Preferred []string `json:"preferred"`
	Bonus     []string `json:"bonus"`
	Unknown   []string `json:"unknown"`
}

// Chunks returns the chunks of one tier
func (s *Sections) Chunks(tier types.RequirementType) []string {
	return *s.bucket(tier)
}

func (s *Sections) bucket(tier types.RequirementType) *[]string {
	switch tier {
	case types.RequirementRequired:
		return &s.Required
	case types.RequirementPreferred:
		return &s.Preferred
	case types.RequirementBonus:
		return &s.Bonus
	default:
		return &s.Unknown
	}
}

// IdentifySectionType returns the tier whose header pattern matches line,
// or RequirementUnknown when none does.
func IdentifySectionType(line string) types.RequirementType {
	for _, group := range sectionPatterns {
		for _, re := range group.patterns {
			if re.MatchString(line) {
				return group.tier
			}
		}
	}
	return types.RequirementUnknown
}

// ParseJDSections splits jd into chunks by requirement tier. A header line
// starts a new chunk in its tier; text before any header is Unknown.
func ParseJDSections(jd string) Sections {
	var sections Sections
	current := types.RequirementUnknown
	var chunk []string

	flush := func() {
		if len(chunk) > 0 {
			b := sections.bucket(current)
			*b = append(*b, strings.Join(chunk, "\n"))
			chunk = nil
		}
	}

	for _, line := range strings.Split(jd, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if tier := IdentifySectionType(line); tier != types.RequirementUnknown {
			flush()
			current = tier
		}
		chunk = append(chunk, line)
	}
	flush()

	return sections
}
