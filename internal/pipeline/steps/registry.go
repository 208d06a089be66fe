// Package steps provides stage definitions and dependency validation for the
// resume analysis pipeline.
package steps

import (
	"fmt"
	"sort"
	"sync"
)

// Stage categories
const (
	CategoryIngestion  = "ingestion"
	CategoryMatching   = "matching"
	CategoryEnrichment = "enrichment"
	CategoryScoring    = "scoring"
)

// Stage names
const (
	ValidateInputs      = "validate_inputs"
	MatchKeywords       = "match_keywords"
	ExtractRequirements = "extract_requirements"
	DetectSkills        = "detect_skills"
	WeightedMatch       = "weighted_match"
	Score               = "score"
	Heatmap             = "heatmap"
)

// Status is the state of a stage within one run
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// StepDefinition defines metadata for a pipeline stage. Optional
// dependencies must have finished in any state; required ones must have
// completed.
type StepDefinition struct {
	Name         string
	Category     string
	Dependencies []string
	Optional     []string
	// Enrichment stages may fail without failing the analysis
	Enrichment bool
}

// StepRegistry holds all stage definitions
var StepRegistry = map[string]StepDefinition{
	ValidateInputs: {
		Name:     ValidateInputs,
		Category: CategoryIngestion,
	},
	MatchKeywords: {
		Name:         MatchKeywords,
		Category:     CategoryMatching,
		Dependencies: []string{ValidateInputs},
	},
	ExtractRequirements: {
		Name:         ExtractRequirements,
		Category:     CategoryMatching,
		Dependencies: []string{ValidateInputs},
	},
	DetectSkills: {
		Name:         DetectSkills,
		Category:     CategoryEnrichment,
		Dependencies: []string{MatchKeywords},
		Enrichment:   true,
	},
	WeightedMatch: {
		Name:         WeightedMatch,
		Category:     CategoryEnrichment,
		Dependencies: []string{ExtractRequirements},
		Optional:     []string{DetectSkills},
		Enrichment:   true,
	},
	Score: {
		Name:         Score,
		Category:     CategoryScoring,
		Dependencies: []string{MatchKeywords},
		Optional:     []string{WeightedMatch},
	},
	Heatmap: {
		Name:         Heatmap,
		Category:     CategoryEnrichment,
		Dependencies: []string{ValidateInputs},
		Enrichment:   true,
	},
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("missing dependencies: %v", e.MissingDependencies)
}

// Run tracks stage statuses for one analysis. It is safe for concurrent use.
type Run struct {
	mu     sync.Mutex
	status map[string]Status
}

// NewRun creates a run with every registered stage pending
func NewRun() *Run {
	r := &Run{status: make(map[string]Status, len(StepRegistry))}
	for name := range StepRegistry {
		r.status[name] = StatusPending
	}
	return r
}

// Set records the status of a stage
func (r *Run) Set(step string, status Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status[step] = status
}

// Status returns the recorded status of a stage
func (r *Run) Status(step string) Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.status[step]; ok {
		return s
	}
	return StatusPending
}

// ValidateDependencies checks that all required dependencies of a stage
// completed and all optional ones finished
func (r *Run) ValidateDependencies(stepName string) error {
	def, ok := StepRegistry[stepName]
	if !ok {
		return fmt.Errorf("unknown step: %s", stepName)
	}

	var missing []string
	for _, dep := range def.Dependencies {
		if r.Status(dep) != StatusCompleted {
			missing = append(missing, dep)
		}
	}
	for _, dep := range def.Optional {
		if r.Status(dep) == StatusPending {
			missing = append(missing, dep)
		}
	}

	if len(missing) > 0 {
		return &DependencyError{
			Step:                stepName,
			MissingDependencies: missing,
		}
	}
	return nil
}

// GetAvailableSteps returns pending stages whose dependencies are met, sorted by name
func (r *Run) GetAvailableSteps() []string {
	var available []string
	for stepName := range StepRegistry {
		if r.Status(stepName) != StatusPending {
			continue
		}
		if err := r.ValidateDependencies(stepName); err != nil {
			continue
		}
		available = append(available, stepName)
	}
	sort.Strings(available)
	return available
}

// GetBlockedSteps returns pending stages whose dependencies are not met, sorted by name
func (r *Run) GetBlockedSteps() []string {
	var blocked []string
	for stepName := range StepRegistry {
		if r.Status(stepName) != StatusPending {
			continue
		}
		if err := r.ValidateDependencies(stepName); err != nil {
			blocked = append(blocked, stepName)
		}
	}
	sort.Strings(blocked)
	return blocked
}
