package extract

import (
	"strings"

	"github.com/buger/jsonparser"
)

// wrapperKeys are the object keys models commonly wrap the file array in.
// Tried in order; "files" is the documented format.
var wrapperKeys = []string{"files", "pages", "output", "result", "data", "code"}

// pathFields and contentFields are the per-entry key aliases accepted when
// parsing file objects. The model is instructed to use path/content but
// drifts.
var (
	pathFields    = []string{"path", "filename", "name", "file"}
	contentFields = []string{"content", "code", "source", "body", "html"}
)

// parsePayload parses candidate text as a structured file payload: an
// object wrapping a files array, a bare array of file objects, or a single
// file object. Returns errNoFiles when the structure parses but contains no
// usable entries, errMalformed when it does not parse at all.
func parsePayload(s string) ([]filePayload, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errMalformed
	}
	data := []byte(s)

	switch s[0] {
	case '{':
		for _, key := range wrapperKeys {
			_, dt, _, err := jsonparser.Get(data, key)
			if err != nil || dt != jsonparser.Array {
				continue
			}
			files, err := parseFileArray(data, key)
			if err == nil {
				return files, nil
			}
		}
		// No wrapped array; maybe a single file object.
		if f, ok := parseFileObject(data); ok {
			return []filePayload{f}, nil
		}
		// The object parsed as far as jsonparser is concerned, but held
		// nothing file-shaped.
		if _, err := jsonparser.GetUnsafeString(data, wrapperKeys[0]); err == jsonparser.KeyPathNotFoundError {
			return nil, errNoFiles
		}
		return nil, errMalformed
	case '[':
		return parseFileArray(data)
	default:
		return nil, errMalformed
	}
}

// parseFileArray iterates the array at the given key path (or the top-level
// array when no keys are given) and collects file entries.
func parseFileArray(data []byte, keys ...string) ([]filePayload, error) {
	var files []filePayload
	var iterErr error

	_, err := jsonparser.ArrayEach(data, func(value []byte, dt jsonparser.ValueType, _ int, cbErr error) {
		if cbErr != nil {
			iterErr = cbErr
			return
		}
		if dt != jsonparser.Object {
			return
		}
		if f, ok := parseFileObject(value); ok {
			files = append(files, f)
		}
	}, keys...)
	if err != nil {
		return nil, errMalformed
	}
	if iterErr != nil && len(files) == 0 {
		return nil, errMalformed
	}
	if len(files) == 0 {
		return nil, errNoFiles
	}
	return files, nil
}

// parseFileObject pulls a {path, content} pair out of a single object,
// accepting the common key aliases. A path is required; content may be
// empty.
func parseFileObject(data []byte) (filePayload, bool) {
	path := firstString(data, pathFields)
	if strings.TrimSpace(path) == "" {
		return filePayload{}, false
	}
	content := firstString(data, contentFields)
	return filePayload{Path: path, Content: content}, true
}

// firstString returns the first of the given keys that holds a string
// value. jsonparser handles escape sequences during GetString.
func firstString(data []byte, keys []string) string {
	for _, key := range keys {
		if v, err := jsonparser.GetString(data, key); err == nil {
			return v
		}
	}
	return ""
}
