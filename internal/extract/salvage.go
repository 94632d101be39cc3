package extract

import (
	"strings"
)

// salvageState names the recovery states of the tolerant tokenizer. The
// tokenizer walks the raw text looking for path/content key pairs without
// requiring the surrounding structure to parse.
type salvageState int

const (
	stateExpectPath salvageState = iota
	stateExpectContent
	stateRecovering
)

// salvage key tokens, including the aliases models drift into. Keys are
// matched as quoted tokens so ordinary prose does not trigger them.
var (
	salvagePathKeys    = []string{`"path"`, `"filename"`, `"name"`, `"file"`}
	salvageContentKeys = []string{`"content"`, `"code"`, `"source"`, `"body"`}
)

// salvageFiles pulls {path, content} pairs straight out of unparseable
// text. Two patterns run in fixed priority order: the keyed tokenizer
// (tolerates escaped quotes and truncated content) first, then fenced code
// blocks annotated with a filename. The first pattern to yield at least one
// file wins.
func salvageFiles(s string) []filePayload {
	if files := salvageKeyed(s); len(files) > 0 {
		return files
	}
	return salvageFenced(s)
}

// salvageKeyed is the primary pattern: an explicit state machine scanning
// for quoted path/content key tokens.
func salvageKeyed(s string) []filePayload {
	var files []filePayload
	var pending string

	state := stateExpectPath
	pos := 0

	for pos < len(s) {
		switch state {
		case stateExpectPath:
			keyPos, keyLen := findNextKey(s, pos, salvagePathKeys)
			if keyPos == -1 {
				return files
			}
			value, end, ok := readKeyValue(s, keyPos+keyLen)
			if !ok {
				pos = keyPos + keyLen
				state = stateRecovering
				continue
			}
			pending = value
			pos = end
			state = stateExpectContent

		case stateExpectContent:
			contentPos, contentLen := findNextKey(s, pos, salvageContentKeys)
			nextPathPos, _ := findNextKey(s, pos, salvagePathKeys)

			// Another path key before any content key: this entry has no
			// content. Emit it empty and recover at the next entry.
			if contentPos == -1 || (nextPathPos != -1 && nextPathPos < contentPos) {
				files = append(files, filePayload{Path: pending})
				pending = ""
				state = stateExpectPath
				continue
			}

			value, end, closed := readKeyValue(s, contentPos+contentLen)
			if !closed && value == "" {
				pos = contentPos + contentLen
				state = stateRecovering
				continue
			}
			files = append(files, filePayload{Path: pending, Content: value})
			pending = ""
			if !closed {
				// Content ran to the end of a truncated response; nothing
				// left to scan.
				return files
			}
			pos = end
			state = stateExpectPath

		case stateRecovering:
			keyPos, _ := findNextKey(s, pos, salvagePathKeys)
			if keyPos == -1 {
				return files
			}
			pos = keyPos
			state = stateExpectPath
		}
	}
	return files
}

// findNextKey returns the offset and length of the earliest occurrence of
// any of the given key tokens at or after pos.
func findNextKey(s string, pos int, keys []string) (int, int) {
	best, bestLen := -1, 0
	for _, key := range keys {
		idx := strings.Index(s[pos:], key)
		if idx == -1 {
			continue
		}
		idx += pos
		if best == -1 || idx < best {
			best, bestLen = idx, len(key)
		}
	}
	return best, bestLen
}

// readKeyValue reads the `: "value"` part following a key token, tolerating
// escaped quotes inside the value. Returns the unescaped value, the offset
// past the closing quote, and whether the closing quote was found. An
// unterminated value (truncation) returns everything to the end of input
// with closed=false.
func readKeyValue(s string, pos int) (value string, end int, closed bool) {
	i := pos
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	if i >= len(s) || s[i] != ':' {
		return "", pos, false
	}
	i++
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	if i >= len(s) || s[i] != '"' {
		return "", pos, false
	}
	i++

	var b strings.Builder
	for i < len(s) {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			b.WriteString(unescapeSequence(s[i+1]))
			i += 2
			continue
		}
		if c == '"' {
			return b.String(), i + 1, true
		}
		b.WriteByte(c)
		i++
	}
	return b.String(), len(s), false
}

// unescapeSequence maps a control escape to its character. Unknown escapes
// keep the escaped character as-is.
func unescapeSequence(c byte) string {
	switch c {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case 'r':
		return "\r"
	case '"':
		return `"`
	case '\\':
		return `\`
	case '/':
		return "/"
	default:
		return string(c)
	}
}

// salvageFenced is the secondary pattern: fenced code blocks preceded by or
// annotated with a filename, the shape models produce when they ignore the
// JSON instruction and answer in markdown.
func salvageFenced(s string) []filePayload {
	lines := strings.Split(s, "\n")
	var files []filePayload

	var current *filePayload
	var buf strings.Builder
	lastCandidate := ""

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if current != nil {
			if trimmed == "```" {
				current.Content = buf.String()
				files = append(files, *current)
				current = nil
				buf.Reset()
				continue
			}
			if buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			buf.WriteString(line)
			continue
		}

		if strings.HasPrefix(trimmed, "```") {
			// Fence annotated inline: ```html file=index.html
			path := ""
			if idx := strings.Index(trimmed, "file="); idx != -1 {
				path = strings.TrimSpace(trimmed[idx+len("file="):])
			} else if lastCandidate != "" {
				path = lastCandidate
			}
			if path != "" {
				current = &filePayload{Path: path}
				buf.Reset()
			}
			lastCandidate = ""
			continue
		}

		if name := filenameCandidate(trimmed); name != "" {
			lastCandidate = name
		}
	}

	// A fence left open by truncation still yields its file.
	if current != nil {
		current.Content = buf.String()
		files = append(files, *current)
	}
	return files
}

// filenameCandidate extracts a filename from a heading-style line such as
// "### index.html", "**style.css**" or "app.js:". Returns "" when the line
// does not look like a filename announcement.
func filenameCandidate(line string) string {
	line = strings.Trim(line, "#*` :-")
	line = strings.TrimSpace(line)
	if line == "" || strings.ContainsAny(line, " \t") {
		return ""
	}
	dot := strings.LastIndexByte(line, '.')
	if dot <= 0 {
		return ""
	}
	ext := strings.ToLower(line[dot+1:])
	switch ext {
	case "html", "htm", "css", "js", "mjs", "jsx", "json", "md", "txt", "svg":
		return line
	}
	return ""
}
