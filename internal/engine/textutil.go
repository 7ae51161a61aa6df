package engine

import (
	"github.com/anatolykoptev/go-kit/strutil"

	"github.com/anatolykoptev/go_tube/internal/engine/youtube"
)

// UserAgentChrome is sent with Innertube POSTs alongside the WEB client headers.
const UserAgentChrome = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// TruncateRunes caps s at limit runes, appending suffix if truncated.
// Safe for UTF-8 (Cyrillic, CJK, emoji).
func TruncateRunes(s string, limit int, suffix string) string {
	return strutil.TruncateWith(s, limit, suffix)
}

// ItemURL returns the public youtube.com link for an item.
func ItemURL(it youtube.SearchItem) string {
	switch it.Type {
	case youtube.TypeChannel:
		return "https://www.youtube.com/channel/" + it.ID
	case youtube.TypePlaylist:
		return "https://www.youtube.com/playlist?list=" + it.ID
	}
	return "https://www.youtube.com/watch?v=" + it.ID
}
