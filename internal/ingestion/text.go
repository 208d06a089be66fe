package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	spaceRunRe       = regexp.MustCompile(`\s+`)
	excessBlankRe    = regexp.MustCompile(`\n\n\n+`)
	numberedBulletRe = regexp.MustCompile(`^\d{1,2}[.)]\s`)
)

// bulletPrefixes are the line prefixes treated as list items
var bulletPrefixes = []string{"- ", "* ", "•", "·", "▪", "‣", "◦"}

// CleanText cleans and normalizes text content while preserving structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// 1. Normalize line endings (CRLF → LF)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	// 2. Clean each line
	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	// 3. Collapse blank runs and trim
	result := strings.Join(cleanedLines, "\n")
	result = excessBlankRe.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving structure
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	// Markdown headings and bullets lose their indentation but keep their marker
	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "#") || IsBulletLine(trimmed) {
		return spaceRunRe.ReplaceAllString(trimmed, " ")
	}

	return spaceRunRe.ReplaceAllString(strings.TrimSpace(line), " ")
}

// IsBulletLine checks if a line is a bullet or numbered list item
func IsBulletLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	for _, p := range bulletPrefixes {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	return numberedBulletRe.MatchString(trimmed)
}

// CountBullets returns the number of list item lines in text
func CountBullets(text string) int {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		if IsBulletLine(line) {
			count++
		}
	}
	return count
}

// LoadFile reads a plain text, Markdown or HTML file and returns cleaned text with metadata.
// Other formats are rejected with an InputError.
func LoadFile(path string) (string, *Metadata, error) {
	format := formatFromExt(path)
	if format == "" {
		return "", nil, &InputError{Field: path, Message: fmt.Sprintf("unsupported file type %q (want .txt, .md or .html)", filepath.Ext(path))}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	text := string(content)
	if format == FormatHTML {
		text, err = ExtractHTMLText(text)
		if err != nil {
			return "", nil, err
		}
	}

	cleanedText := CleanText(text)
	return cleanedText, NewMetadata(cleanedText, path, format), nil
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", "":
		return FormatText
	case ".md", ".markdown":
		return FormatMarkdown
	case ".html", ".htm":
		return FormatHTML
	default:
		return ""
	}
}
