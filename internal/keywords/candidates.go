// Package keywords extracts technical keywords from job descriptions and resumes.
package keywords

import (
	"strings"
	"unicode"
)

// minTokenLen is the shortest token considered
const minTokenLen = 2

// token is one word of input text in its original and lowercase forms
type token struct {
	orig  string
	lower string
}

func isTokenRune(r rune) bool {
	return r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("+#.-", r))
}

// tokenize splits text into runs of ASCII letters, digits and + # . -,
// trimming leading and trailing dots and hyphens.
func tokenize(text string) []token {
	var tokens []token
	for _, field := range strings.FieldsFunc(text, func(r rune) bool { return !isTokenRune(r) }) {
		field = strings.Trim(field, ".-")
		if len(field) < minTokenLen {
			continue
		}
		tokens = append(tokens, token{orig: field, lower: strings.ToLower(field)})
	}
	return tokens
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

// isCount reports numbers such as "5" or "10+" that only state an amount
func isCount(s string) bool {
	t := strings.TrimRight(s, "+")
	return t == "" || isDigits(t)
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

func hasDigitAndLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0 && strings.IndexFunc(s, unicode.IsLetter) >= 0
}

// isCamelCase reports tokens like "useEffect" in their original casing
func isCamelCase(s string) bool {
	if len(s) <= 4 || !unicode.IsLower(rune(s[0])) {
		return false
	}
	return strings.IndexFunc(s[1:], unicode.IsUpper) >= 0
}

// IsLikelyTechnical reports whether a single token looks like a technology.
// The token is checked as given, so camelCase detection needs original casing.
func IsLikelyTechnical(tok string) bool {
	lower := strings.ToLower(tok)
	if has(keepTechTerms, lower) || has(technicalPatterns, lower) {
		return true
	}
	// versions such as python3 or java11
	if hasDigitAndLetter(lower) {
		return true
	}
	if strings.ContainsAny(lower, "+#-") && !isAlpha(strings.NewReplacer(".", "", "-", "").Replace(lower)) {
		return true
	}
	if isCamelCase(tok) {
		return true
	}
	for _, suffix := range technicalSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// IsTechnicalTerm reports whether term is in the known technology tables
func IsTechnicalTerm(term string) bool {
	term = strings.ToLower(term)
	return has(technicalKeywords, term) || has(technicalPatterns, term) || has(keepTechTerms, term)
}

// IsCompound reports whether term is a known multi-word technical phrase
func IsCompound(term string) bool {
	return has(compoundSet, strings.ToLower(term))
}

func isStopword(w string) bool {
	return has(stopwords, w) && !has(allowlist, w)
}

// ExtractCandidatePhrases returns the lowercase technical terms found in text
// in first-seen order without duplicates. Known compounds come first, then
// single tokens, then bigrams of two recognized technical words.
func ExtractCandidatePhrases(text string) []string {
	var candidates []string
	lower := strings.ToLower(text)

	for _, compound := range compoundTerms {
		if strings.Contains(lower, compound) {
			candidates = append(candidates, compound)
		}
	}

	tokens := tokenize(text)
	words := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if isStopword(tok.lower) || isCount(tok.lower) {
			continue
		}
		words = append(words, tok.lower)

		if has(technicalKeywords, tok.lower) || IsLikelyTechnical(tok.orig) {
			candidates = append(candidates, tok.lower)
		}
	}

	for i := 0; i+1 < len(words); i++ {
		bigram := words[i] + " " + words[i+1]
		if has(compoundSet, bigram) {
			continue
		}
		if isKnownWord(words[i]) && isKnownWord(words[i+1]) {
			candidates = append(candidates, bigram)
		}
	}

	return dedupe(candidates)
}

func isKnownWord(w string) bool {
	return has(technicalKeywords, w) || has(technicalPatterns, w)
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
