package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSentences(t *testing.T) {
	text := "Built APIs in Python. Deployed with Docker!\n- Led a team of 3\nHolds a B.Sc in CS"
	sentences := SplitSentences(text)

	require.Len(t, sentences, 4)
	assert.Equal(t, "Built APIs in Python.", sentences[0].Text)
	assert.Equal(t, "Deployed with Docker!", sentences[1].Text)
	assert.Equal(t, "- Led a team of 3", sentences[2].Text)
	assert.Equal(t, "Holds a B.Sc in CS", sentences[3].Text)

	for _, s := range sentences {
		assert.Equal(t, s.Text, text[s.Start:s.End])
	}
}

func TestSplitSentences_NoBoundary(t *testing.T) {
	sentences := SplitSentences("  single sentence without punctuation  ")
	require.Len(t, sentences, 1)
	assert.Equal(t, "single sentence without punctuation", sentences[0].Text)
	assert.Equal(t, 2, sentences[0].Start)
}

func TestSplitSentences_Empty(t *testing.T) {
	assert.Empty(t, SplitSentences(""))
	assert.Empty(t, SplitSentences(" \n ... \n"))
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 4, WordCount(" built  APIs\nin Go "))
	assert.Equal(t, 0, WordCount(""))
}

func TestFold(t *testing.T) {
	assert.Equal(t, "Resume naive cafe", Fold("Résumé naïve café"))
	assert.Equal(t, "Python3", Fold("Ｐｙｔｈｏｎ３"))
	assert.Equal(t, "C++ / C#", Fold("C++ / C#"))
}

func TestValidateInputs(t *testing.T) {
	longResume := "Experience: built APIs in Python and Docker for five years."

	tests := []struct {
		name    string
		resume  string
		jd      string
		wantErr string
	}{
		{"valid", longResume, "Required: Python, Docker.", ""},
		{"empty jd allowed", longResume, "", ""},
		{"empty resume", "   ", "Required: Python, Docker.", "resume text is empty"},
		{"short resume", "Python", "Required: Python, Docker.", "resume text is too short"},
		{"short jd", longResume, "Python", "job description is too short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputs(tt.resume, tt.jd, 50, 20)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var inputErr *InputError
			require.ErrorAs(t, err, &inputErr)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
