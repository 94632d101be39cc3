package extract

import "strings"

// stripFences removes a markdown code fence wrapping the candidate text.
// Handles both a response that is entirely one fenced block and a response
// where the block is surrounded by prose.
func stripFences(s string) string {
	trimmed := strings.TrimSpace(s)

	if strings.HasPrefix(trimmed, "```") {
		lines := strings.Split(trimmed, "\n")
		if len(lines) >= 2 {
			end := len(lines)
			if strings.TrimSpace(lines[end-1]) == "```" {
				end--
			}
			return strings.TrimSpace(strings.Join(lines[1:end], "\n"))
		}
		return trimmed
	}

	// Prose-wrapped: take the first fenced block that contains structural
	// delimiters.
	start := strings.Index(trimmed, "```")
	if start == -1 {
		return trimmed
	}
	rest := trimmed[start+3:]
	if nl := strings.IndexByte(rest, '\n'); nl != -1 {
		rest = rest[nl+1:]
	}
	if end := strings.Index(rest, "```"); end != -1 {
		rest = rest[:end]
	}
	rest = strings.TrimSpace(rest)
	if strings.ContainsAny(rest, "{[") {
		return rest
	}
	return trimmed
}

// removeTrailingCommas drops commas that directly precede a closing
// delimiter, a common model artifact that breaks strict parsers. String
// contents are left untouched.
func removeTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			b.WriteByte(c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
			b.WriteByte(c)
		case ',':
			j := i + 1
			for j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n' || s[j] == '\r') {
				j++
			}
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				continue // drop the comma
			}
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// completeDelimiters appends the closing delimiters missing from text
// truncated by a length limit. Returns the completed text and the number of
// characters appended (0 means the input was already balanced).
func completeDelimiters(s string) (string, int) {
	var stack []byte
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, c)
		case '}':
			if len(stack) > 0 && stack[len(stack)-1] == '{' {
				stack = stack[:len(stack)-1]
			}
		case ']':
			if len(stack) > 0 && stack[len(stack)-1] == '[' {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if !inString && len(stack) == 0 {
		return s, 0
	}

	var b strings.Builder
	b.WriteString(s)
	appended := 0
	if inString {
		// A string cut off mid-escape would swallow the closing quote.
		if escaped {
			b.WriteByte('n')
			appended++
		}
		b.WriteByte('"')
		appended++
	}
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			b.WriteByte('}')
		} else {
			b.WriteByte(']')
		}
		appended++
	}
	return b.String(), appended
}

// lastBalancedPrefix finds the longest prefix ending where a nested object
// closes back to the top-level container, discards the trailing incomplete
// fragment, and closes the remaining open delimiters. Returns ok=false when
// no such prefix exists.
func lastBalancedPrefix(s string) (string, bool) {
	depth := 0
	inString := false
	escaped := false
	lastComplete := -1

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			// Closing back to depth <= 2 means a complete file object
			// inside the wrapper (or the wrapper itself) just ended.
			if depth >= 0 && depth <= 2 {
				lastComplete = i
			}
		}
	}

	if lastComplete == -1 {
		return "", false
	}

	prefix := s[:lastComplete+1]
	completed, _ := completeDelimiters(removeTrailingCommas(prefix))
	return completed, true
}
