package youtube

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

var continuationKinds = NewKindSet(KindContinuation)

// ExtractContinuation returns the next-page state of tree. The last
// continuation node in document order wins; without one the result is the
// terminal NextPage{}. ctx is attached verbatim to a non-empty token.
func ExtractContinuation(tree gjson.Result, ctx json.RawMessage) NextPage {
	token := ""
	for n := range Walk(tree, continuationKinds) {
		if t := continuationToken(n); t != "" {
			token = t
		}
	}
	if token == "" {
		return NextPage{}
	}
	return NextPage{Token: token, Context: ctx}
}

func continuationToken(n Node) string {
	v := n.Value
	if n.Key == "nextContinuationData" {
		return v.Get("continuation").String()
	}
	if t := v.Get("continuationEndpoint.continuationCommand.token").String(); t != "" {
		return t
	}
	return v.Get("button.buttonRenderer.command.continuationCommand.token").String()
}
