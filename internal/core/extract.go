package core

import (
	"encoding/json"
	"regexp"
	"strings"
)

// The session replies with free text that is expected to *contain* one JSON
// array or object, often wrapped in prose or a markdown code fence. These
// patterns locate the candidate span; the first greedy match wins when a
// reply contains several bracket groups of the same shape.
var (
	fencedObjectPattern  = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(\\{.*\\})\\s*```")
	fencedArrayPattern   = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(\\[.*\\])\\s*```")
	bareObjectPattern    = regexp.MustCompile(`(?s)\{.*\}`)
	bareArrayPattern     = regexp.MustCompile(`(?s)\[.*\]`)
	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
)

// ExtractArray parses the first JSON array embedded in raw into a slice of
// T. Extraction never fails: if no array can be located or it does not
// parse, the caller-supplied fallback is returned unchanged.
func ExtractArray[T any](raw string, fallback []T) []T {
	span := locate(raw, fencedArrayPattern, bareArrayPattern)
	if span == "" {
		return fallback
	}

	var out []T
	if err := json.Unmarshal([]byte(cleanJSON(span)), &out); err != nil {
		return fallback
	}
	return out
}

// ExtractObject parses the first JSON object embedded in raw into a value
// of T, returning the caller-supplied fallback on any locate or parse
// failure.
func ExtractObject[T any](raw string, fallback T) T {
	span := locate(raw, fencedObjectPattern, bareObjectPattern)
	if span == "" {
		return fallback
	}

	var out T
	if err := json.Unmarshal([]byte(cleanJSON(span)), &out); err != nil {
		return fallback
	}
	return out
}

// locate tries the markdown code fence pattern first, then the bare greedy
// pattern.
func locate(raw string, fenced, bare *regexp.Regexp) string {
	if m := fenced.FindStringSubmatch(raw); len(m) > 1 {
		return m[1]
	}
	return bare.FindString(raw)
}

// cleanJSON removes line comments and trailing commas, two invalid-JSON
// artifacts models commonly produce.
func cleanJSON(raw string) string {
	lines := strings.Split(raw, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, stripLineComment(line))
	}
	result := strings.Join(cleaned, "\n")

	return trailingCommaPattern.ReplaceAllString(result, "$1")
}

// stripLineComment removes a // comment from a JSON line without touching
// slashes inside string values (URLs in particular).
func stripLineComment(line string) string {
	if !strings.Contains(line, "//") {
		return line
	}

	inString := false
	escaped := false
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' && inString {
			escaped = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if !inString && ch == '/' && i+1 < len(line) && line[i+1] == '/' {
			return strings.TrimRight(line[:i], " \t")
		}
	}
	return line
}
