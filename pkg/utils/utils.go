package utils

import (
	"strings"
)

// ErrJSON produces a standard JSON error response.
func ErrJSON(msg string) map[string]any {
	return map[string]any{
		"success": false,
		"error":   msg,
	}
}

// LimitStr returns a string truncated to n bytes with "..." appended if longer.
func LimitStr(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// StripThinking drops a leading <think>...</think> block emitted by reasoning models.
func StripThinking(s string) string {
	if !strings.Contains(s, "<think>") {
		return s
	}
	if idx := strings.LastIndex(s, "</think>"); idx != -1 {
		return s[idx+len("</think>"):]
	}
	return s
}

// CleanJSON returns the body of the first markdown code block in s, or s
// trimmed when it holds no code block.
func CleanJSON(s string) string {
	s = strings.TrimSpace(s)
	start := strings.Index(s, "```")
	if start == -1 {
		return s
	}
	body := s[start+len("```"):]
	// the rest of the opening line is the language tag
	nl := strings.IndexByte(body, '\n')
	if nl == -1 {
		return s
	}
	body = body[nl+1:]
	if end := strings.Index(body, "```"); end != -1 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

// ExtractJSON trims model output down to its JSON payload: the longest
// bracketed span, looked for first inside a code block and then in the whole
// text. A span that is never closed runs to the end so it can still be
// repaired. Output without any bracket is returned cleaned but otherwise
// untouched.
func ExtractJSON(s string) string {
	s = StripThinking(s)
	cleaned := CleanJSON(s)
	if span := longestSpan(cleaned); span != "" {
		return span
	}
	if span := longestSpan(s); span != "" {
		return span
	}
	return cleaned
}

// longestSpan returns the longest top-level [...] or {...} span in s, so a
// short aside like "[1]" loses to the payload that follows it.
func longestSpan(s string) string {
	var best string
	for i := 0; i < len(s); {
		if s[i] != '[' && s[i] != '{' {
			i++
			continue
		}
		end := spanEnd(s, i)
		if end-i > len(best) {
			best = s[i:end]
		}
		i = end
	}
	return best
}

// spanEnd returns the index just past the bracket closing the one at start,
// or len(s) when it is never closed. Brackets inside strings do not count.
func spanEnd(s string, start int) int {
	depth := 0
	inString, escaped := false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(s)
}
