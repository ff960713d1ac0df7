package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/slack-go/slack"
)

// blockIDLength is the number of hex characters kept from the derived UUID.
const blockIDLength = 12

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// BlockID derives the block_id for the block at index. The same prefix and
// index always yield the same ID, so re-posting a document keeps IDs stable.
// An empty prefix yields an empty ID.
func BlockID(prefix string, index int) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return ""
	}
	uid := UUID("slackmd:block:" + prefix + ":" + strconv.Itoa(index))
	hex := strings.ReplaceAll(uid.String(), "-", "")
	return prefix + "-" + hex[:blockIDLength]
}

// AssignBlockIDs sets a deterministic block_id on every block, in place.
// Blocks that already carry an ID are left untouched.
func AssignBlockIDs(blocks []slack.Block, prefix string) {
	if strings.TrimSpace(prefix) == "" {
		return
	}
	for i, block := range blocks {
		id := BlockID(prefix, i)
		switch b := block.(type) {
		case *slack.SectionBlock:
			if b.BlockID == "" {
				b.BlockID = id
			}
		case *slack.HeaderBlock:
			if b.BlockID == "" {
				b.BlockID = id
			}
		case *slack.ImageBlock:
			if b.BlockID == "" {
				b.BlockID = id
			}
		case *slack.DividerBlock:
			if b.BlockID == "" {
				b.BlockID = id
			}
		}
	}
}
