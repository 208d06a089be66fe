package ingestion

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// InputError reports an unusable resume or job description
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid input %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid input: %s", e.Message)
}

// ValidateInputs checks the resume and job description lengths.
// An empty job description is allowed; a non-empty one must reach minJob characters.
func ValidateInputs(resume, jd string, minResume, minJob int) error {
	resumeLen := utf8.RuneCountInString(strings.TrimSpace(resume))
	if resumeLen == 0 {
		return &InputError{Field: "resume", Message: "resume text is empty"}
	}
	if resumeLen < minResume {
		return &InputError{Field: "resume", Message: fmt.Sprintf("resume text is too short (%d < %d characters)", resumeLen, minResume)}
	}

	jdLen := utf8.RuneCountInString(strings.TrimSpace(jd))
	if jdLen > 0 && jdLen < minJob {
		return &InputError{Field: "job", Message: fmt.Sprintf("job description is too short (%d < %d characters)", jdLen, minJob)}
	}

	return nil
}
