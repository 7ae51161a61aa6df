package youtube

import (
	"iter"

	"github.com/tidwall/gjson"
)

// NodeKind classifies a renderer node found in a tree.
type NodeKind uint8

const (
	KindVideo NodeKind = 1 << iota
	KindChannel
	KindPlaylist
	KindMovie
	KindContinuation
	KindMetadata
)

func (k NodeKind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindChannel:
		return "channel"
	case KindPlaylist:
		return "playlist"
	case KindMovie:
		return "movie"
	case KindContinuation:
		return "continuation"
	case KindMetadata:
		return "metadata"
	}
	return "unknown"
}

// container kinds are yielded and still descended into.
func (k NodeKind) container() bool {
	return k == KindContinuation || k == KindMetadata
}

// KindSet is a set of node kinds the walker is allowed to match.
type KindSet uint8

// NewKindSet builds a set from kinds.
func NewKindSet(kinds ...NodeKind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s |= KindSet(k)
	}
	return s
}

// Has reports whether k is in the set.
func (s KindSet) Has(k NodeKind) bool { return s&KindSet(k) != 0 }

// With returns a copy of the set with kinds added.
func (s KindSet) With(kinds ...NodeKind) KindSet { return s | NewKindSet(kinds...) }

// rendererKinds maps renderer keys to the kind of node they hold.
var rendererKinds = map[string]NodeKind{
	"videoRenderer":              KindVideo,
	"compactVideoRenderer":       KindVideo,
	"gridVideoRenderer":          KindVideo,
	"playlistVideoRenderer":      KindVideo,
	"playlistPanelVideoRenderer": KindVideo,
	"videoWithContextRenderer":   KindVideo,
	"channelRenderer":            KindChannel,
	"gridChannelRenderer":        KindChannel,
	"playlistRenderer":           KindPlaylist,
	"gridPlaylistRenderer":       KindPlaylist,
	"movieRenderer":              KindMovie,
	"continuationItemRenderer":   KindContinuation,
	"nextContinuationData":       KindContinuation,
	"playlistMetadataRenderer":   KindMetadata,
}

// Node is a renderer found by Walk: Key is the renderer key, Value the
// object stored under it.
type Node struct {
	Kind  NodeKind
	Key   string
	Value gjson.Result
}

type workItem struct {
	val   gjson.Result
	key   string
	kind  NodeKind
	match bool
}

// Walk yields the renderer nodes of tree whose kind is in kinds, depth-first
// and in document order. Matched item renderers are not descended into;
// continuation and metadata renderers are.
func Walk(tree gjson.Result, kinds KindSet) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		stack := []workItem{{val: tree}}
		var children []workItem
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if cur.match {
				if !yield(Node{Kind: cur.kind, Key: cur.key, Value: cur.val}) {
					return
				}
				if cur.kind.container() && isComposite(cur.val) {
					stack = append(stack, workItem{val: cur.val})
				}
				continue
			}

			children = children[:0]
			cur.val.ForEach(func(key, val gjson.Result) bool {
				if cur.val.IsObject() {
					if kind, ok := rendererKinds[key.String()]; ok && kinds.Has(kind) {
						children = append(children, workItem{val: val, key: key.String(), kind: kind, match: true})
						return true
					}
				}
				if isComposite(val) {
					children = append(children, workItem{val: val})
				}
				return true
			})
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, children[i])
			}
		}
	}
}

func isComposite(r gjson.Result) bool { return r.IsObject() || r.IsArray() }
