package youtube

import (
	"github.com/tidwall/gjson"
)

var videoKinds = NewKindSet(KindVideo)

// DecodeVideoDetails builds VideoDetails from a player response and the
// page's initial data. The player response must carry videoDetails.videoId
// and title; suggestions are best-effort and come from the watch-next
// secondary results (or the whole tree when that subtree is missing).
func DecodeVideoDetails(player, initial gjson.Result) (VideoDetails, error) {
	const op = "video details"
	vd := player.Get("videoDetails")
	id := vd.Get("videoId").String()
	if id == "" {
		return VideoDetails{}, extractionErr(op, "player response has no videoId")
	}
	title := vd.Get("title").String()
	if title == "" {
		return VideoDetails{}, extractionErr(op, "player response has no title for %s", id)
	}

	keywords := make([]string, 0, len(vd.Get("keywords").Array()))
	for _, k := range vd.Get("keywords").Array() {
		keywords = append(keywords, k.String())
	}

	details := VideoDetails{
		ID:          id,
		Title:       title,
		Channel:     vd.Get("author").String(),
		ChannelID:   vd.Get("channelId").String(),
		Description: vd.Get("shortDescription").String(),
		Keywords:    keywords,
		Thumbnail:   thumbnails(vd),
		IsLive: vd.Get("isLive").Bool() ||
			player.Get("microformat.playerMicroformatRenderer.liveBroadcastDetails.isLiveNow").Bool(),
		Suggestion: suggestions(initial),
	}
	return details, nil
}

func suggestions(initial gjson.Result) []SearchItem {
	out := []SearchItem{}
	if !initial.Exists() {
		return out
	}
	tree := initial.Get("contents.twoColumnWatchNextResults.secondaryResults")
	if !tree.Exists() {
		tree = initial
	}
	for n := range Walk(tree, videoKinds) {
		if item, ok := DecodeItem(n); ok {
			out = append(out, item)
		}
	}
	return out
}
