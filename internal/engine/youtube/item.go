package youtube

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Badge styles and labels that mark a live broadcast.
const (
	liveBadgeStyle   = "BADGE_STYLE_TYPE_LIVE_NOW"
	liveOverlayStyle = "LIVE"
)

// DecodeItem converts a renderer node into a SearchItem. It returns false
// for nodes that are not items or lack an id or title.
func DecodeItem(n Node) (SearchItem, bool) {
	v := n.Value
	if !v.IsObject() {
		return SearchItem{}, false
	}
	var item SearchItem
	switch n.Kind {
	case KindVideo, KindMovie:
		item = SearchItem{
			ID:           v.Get("videoId").String(),
			Type:         TypeVideo,
			Title:        text(v.Get("title")),
			ChannelTitle: channelTitle(v),
			Length:       lengthText(v),
			IsLive:       isLive(v),
		}
		if n.Kind == KindMovie {
			item.Type = TypeMovie
		}
		if item.Title == "" {
			item.Title = text(v.Get("headline"))
		}
	case KindChannel:
		item = SearchItem{
			ID:    v.Get("channelId").String(),
			Type:  TypeChannel,
			Title: text(v.Get("title")),
		}
	case KindPlaylist:
		item = SearchItem{
			ID:           v.Get("playlistId").String(),
			Type:         TypePlaylist,
			Title:        text(v.Get("title")),
			ChannelTitle: channelTitle(v),
			VideoCount:   videoCount(v),
		}
	default:
		return SearchItem{}, false
	}
	if item.ID == "" || item.Title == "" {
		return SearchItem{}, false
	}
	item.Thumbnail = thumbnails(v)
	return item, true
}

// text reads a YouTube text object: simpleText, or the concatenated runs.
// Plain strings are returned as-is.
func text(r gjson.Result) string {
	switch {
	case !r.Exists():
		return ""
	case r.Type == gjson.String:
		return r.Str
	case r.Get("simpleText").Exists():
		return r.Get("simpleText").String()
	}
	var sb strings.Builder
	for _, run := range r.Get("runs").Array() {
		sb.WriteString(run.Get("text").String())
	}
	return sb.String()
}

func channelTitle(v gjson.Result) string {
	for _, path := range []string{"ownerText", "longBylineText", "shortBylineText"} {
		if s := text(v.Get(path)); s != "" {
			return s
		}
	}
	return ""
}

func lengthText(v gjson.Result) string {
	if s := text(v.Get("lengthText")); s != "" {
		return s
	}
	for _, o := range v.Get("thumbnailOverlays").Array() {
		if s := text(o.Get("thumbnailOverlayTimeStatusRenderer.text")); s != "" {
			return s
		}
	}
	return ""
}

// isLive scans badges and thumbnail overlays for a live marker.
func isLive(v gjson.Result) bool {
	for _, b := range v.Get("badges").Array() {
		br := b.Get("metadataBadgeRenderer")
		if br.Get("style").String() == liveBadgeStyle {
			return true
		}
		if strings.EqualFold(br.Get("label").String(), "live") || strings.EqualFold(br.Get("label").String(), "live now") {
			return true
		}
	}
	for _, o := range v.Get("thumbnailOverlays").Array() {
		if o.Get("thumbnailOverlayTimeStatusRenderer.style").String() == liveOverlayStyle {
			return true
		}
	}
	return false
}

func videoCount(v gjson.Result) int {
	raw := v.Get("videoCount").String()
	if raw == "" {
		raw = text(v.Get("videoCountText"))
	}
	raw = strings.ReplaceAll(raw, ",", "")
	if i := strings.IndexByte(raw, ' '); i > 0 {
		raw = raw[:i]
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

// thumbnails normalizes thumbnail.thumbnails, or thumbnails[0].thumbnails
// as used by playlist renderers.
func thumbnails(v gjson.Result) []Thumbnail {
	list := v.Get("thumbnail.thumbnails")
	if !list.Exists() {
		list = v.Get("thumbnails.0.thumbnails")
	}
	arr := list.Array()
	if len(arr) == 0 {
		return nil
	}
	out := make([]Thumbnail, 0, len(arr))
	for _, t := range arr {
		url := t.Get("url").String()
		if url == "" {
			continue
		}
		if strings.HasPrefix(url, "//") {
			url = "https:" + url
		}
		out = append(out, Thumbnail{
			URL:    url,
			Width:  int(t.Get("width").Int()),
			Height: int(t.Get("height").Int()),
		})
	}
	return out
}
