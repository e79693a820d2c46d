package extract

import (
	"strconv"

	"github.com/creatorops/sponsor-scout/internal/core"
)

// identityAttrs are the host-provided attributes consulted for a stable
// message identity, in priority order. Webmail DOMs expose thread and
// message ids on the conversation containers; the plain element id is a
// weaker last structured resort.
var identityAttrs = []string{
	"data-thread-id",
	"data-message-id",
	"data-legacy-thread-id",
	"id",
}

// fingerprintLen is how much of the node text feeds the fallback hash
const fingerprintLen = 200

// Identity derives a stable, content-based identifier for a node. Host
// attributes win when present; otherwise a cheap content fingerprint is
// used. The fingerprint can collide across distinct messages; the
// pipeline accepts that as a known limitation.
func Identity(node *core.Node) string {
	for _, attr := range identityAttrs {
		if v := node.Attr(attr); v != "" {
			return v
		}
	}
	return fingerprint(node.Text, node.SiblingIndex)
}

// fingerprint is a 32-bit multiply-by-31 rolling hash of the first 200
// characters, base-36 encoded, suffixed with the node's sibling ordinal.
// Overflow wraps, matching the usual h = 31*h + c accumulation.
func fingerprint(text string, siblingIndex int) string {
	runes := []rune(text)
	if len(runes) > fingerprintLen {
		runes = runes[:fingerprintLen]
	}

	var h uint32
	for _, r := range runes {
		h = h*31 + uint32(r)
	}

	return strconv.FormatUint(uint64(h), 36) + "-" + strconv.Itoa(siblingIndex)
}
