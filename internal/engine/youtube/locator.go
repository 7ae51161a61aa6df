package youtube

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/net/html"
)

// Names of the JSON blobs a YouTube page embeds in its scripts.
const (
	BlobInitialData      = "ytInitialData"
	BlobPlayerResponse   = "ytInitialPlayerResponse"
	BlobInnertubeContext = "INNERTUBE_CONTEXT"
)

var knownBlobs = []string{BlobInitialData, BlobPlayerResponse, BlobInnertubeContext}

var apiKeyRE = regexp.MustCompile(`"(?:INNERTUBE_API_KEY|innertubeApiKey)"\s*:\s*"([^"]+)"`)

// Embedded is the set of blobs found in one HTML document.
// A blob that is not in the document is absent, never an empty object.
type Embedded struct {
	blobs  map[string]gjson.Result
	apiKey string
}

// Locate scans the document's scripts for the named blobs (all known blobs
// when names is empty) and the Innertube API key.
func Locate(doc string, names ...string) *Embedded {
	if len(names) == 0 {
		names = knownBlobs
	}
	texts := scriptTexts(doc)
	if len(texts) == 0 {
		texts = []string{doc}
	}

	e := &Embedded{blobs: make(map[string]gjson.Result, len(names))}
	for _, name := range names {
		for _, text := range texts {
			if raw, ok := findAssignment(text, name); ok {
				e.blobs[name] = gjson.Parse(raw)
				break
			}
		}
	}
	for _, text := range texts {
		if m := apiKeyRE.FindStringSubmatch(text); m != nil {
			e.apiKey = m[1]
			break
		}
	}
	return e
}

// Blob returns the parsed blob and whether it was present.
func (e *Embedded) Blob(name string) (gjson.Result, bool) {
	r, ok := e.blobs[name]
	return r, ok
}

// Require returns the blob or a DataExtractionError naming op.
func (e *Embedded) Require(op, name string) (gjson.Result, error) {
	r, ok := e.blobs[name]
	if !ok {
		return gjson.Result{}, extractionErr(op, "%s not found in page", name)
	}
	return r, nil
}

// Blobs returns a copy of the found blobs keyed by name.
func (e *Embedded) Blobs() map[string]gjson.Result {
	out := make(map[string]gjson.Result, len(e.blobs))
	for k, v := range e.blobs {
		out[k] = v
	}
	return out
}

// APIKey returns the Innertube API key, or "" if the page has none.
func (e *Embedded) APIKey() string { return e.apiKey }

// scriptTexts returns the raw text of every <script> element.
func scriptTexts(doc string) []string {
	z := html.NewTokenizer(strings.NewReader(doc))
	var out []string
	inScript := false
	for {
		switch z.Next() {
		case html.ErrorToken:
			return out
		case html.StartTagToken:
			name, _ := z.TagName()
			inScript = string(name) == "script"
		case html.EndTagToken:
			inScript = false
		case html.TextToken:
			if inScript {
				out = append(out, string(z.Text()))
			}
		}
	}
}

// findAssignment finds `name = {...}`, `["name"] = {...}` or `"name": {...}`
// in text and returns the balanced JSON literal on the right-hand side.
func findAssignment(text, name string) (string, bool) {
	from := 0
	for {
		idx := strings.Index(text[from:], name)
		if idx < 0 {
			return "", false
		}
		start := from + idx
		from = start + len(name)
		if start > 0 && isIdentByte(text[start-1]) {
			continue
		}
		rest, ok := skipToValue(text[from:])
		if !ok {
			continue
		}
		raw, ok := balancedJSON(rest)
		if !ok || !gjson.Valid(raw) {
			continue
		}
		return raw, true
	}
}

// skipToValue consumes closing quotes/brackets, one '=' or ':' and
// whitespace, and returns the text starting at '{' or '['.
func skipToValue(s string) (string, bool) {
	i := 0
	for i < len(s) && (s[i] == '"' || s[i] == '\'' || s[i] == ']' || isSpace(s[i])) {
		i++
	}
	if i >= len(s) || (s[i] != '=' && s[i] != ':') {
		return "", false
	}
	i++
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	if i >= len(s) || (s[i] != '{' && s[i] != '[') {
		return "", false
	}
	return s[i:], true
}

// balancedJSON returns the prefix of s up to the bracket closing s[0],
// ignoring brackets inside string literals.
func balancedJSON(s string) (string, bool) {
	depth := 0
	inStr, esc := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inStr {
			switch {
			case esc:
				esc = false
			case c == '\\':
				esc = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return s[:i+1], true
			}
		}
	}
	return "", false
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
