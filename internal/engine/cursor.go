package engine

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/anatolykoptev/go_tube/internal/engine/youtube"
)

// cursorWire carries the client context as a string so it survives the
// round trip byte for byte; json.Marshal would compact a RawMessage.
type cursorWire struct {
	Token   string            `json:"t"`
	Context string            `json:"c,omitempty"`
	APIKey  string            `json:"k,omitempty"`
	Source  youtube.FetchKind `json:"s,omitempty"`
	Kinds   youtube.KindSet   `json:"n,omitempty"`
}

// EncodeCursor packs a NextPage into an opaque string for tool clients.
// A terminated page encodes to "".
func EncodeCursor(np youtube.NextPage) string {
	if !np.HasMore() {
		return ""
	}
	data, err := json.Marshal(cursorWire{
		Token:   np.Token,
		Context: string(np.Context),
		APIKey:  np.APIKey,
		Source:  np.Source,
		Kinds:   np.Kinds,
	})
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(data)
}

// DecodeCursor reverses EncodeCursor. The client context inside is returned
// byte for byte.
func DecodeCursor(s string) (youtube.NextPage, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return youtube.NextPage{}, fmt.Errorf("%w: cursor is required", youtube.ErrTubeSearch)
	}
	data, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return youtube.NextPage{}, fmt.Errorf("%w: malformed cursor: %v", youtube.ErrTubeSearch, err)
	}
	var w cursorWire
	if err := json.Unmarshal(data, &w); err != nil || w.Token == "" {
		return youtube.NextPage{}, fmt.Errorf("%w: malformed cursor", youtube.ErrTubeSearch)
	}
	np := youtube.NextPage{Token: w.Token, APIKey: w.APIKey, Source: w.Source, Kinds: w.Kinds}
	if w.Context != "" {
		np.Context = json.RawMessage(w.Context)
	}
	return np, nil
}

var (
	videoIDRE = regexp.MustCompile(`(?:youtube\.com/(?:watch\?(?:.*&)?v=|shorts/|embed/|live/)|youtu\.be/)([a-zA-Z0-9_-]{11})`)
	bareIDRE  = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
)

// ParseVideoID accepts a bare 11-char video ID or any YouTube URL format.
func ParseVideoID(s string) (string, error) {
	s = strings.TrimSpace(s)
	if bareIDRE.MatchString(s) {
		return s, nil
	}
	if m := videoIDRE.FindStringSubmatch(s); len(m) >= 2 {
		return m[1], nil
	}
	return "", fmt.Errorf("%w: not a video id or URL: %q", youtube.ErrTubeSearch, s)
}

// ParsePlaylistID accepts a playlist ID or a URL carrying a list= parameter.
func ParsePlaylistID(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: playlist is required", youtube.ErrTubeSearch)
	}
	if !strings.Contains(s, "/") && !strings.Contains(s, "?") {
		return s, nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: bad playlist URL: %v", youtube.ErrTubeSearch, err)
	}
	if id := u.Query().Get("list"); id != "" {
		return id, nil
	}
	return "", fmt.Errorf("%w: URL has no list= parameter: %q", youtube.ErrTubeSearch, s)
}
