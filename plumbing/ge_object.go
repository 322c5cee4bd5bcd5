package plumbing

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/MikaStiebitz/Git-Gud/utils/constants"
	"github.com/google/uuid"
)

// HashObject computes the SHA-1 of content in the canonical Git object format "<kind> <size>\0<content>".
func HashObject(kind string, content []byte) [20]byte {
	header := fmt.Sprintf("%s %d\x00", kind, len(content))
	store := append([]byte(header), content...)
	return sha1.Sum(store)
}

// NewCommitID returns a short hex id for a new commit. A random nonce keeps ids unique even for identical messages.
func NewCommitID(message string, ts time.Time) string {
	payload := fmt.Sprintf("%s\n%d\n%s", message, ts.UnixNano(), uuid.NewString())
	sum := HashObject("commit", []byte(payload))
	return hex.EncodeToString(sum[:])[:constants.ShortIDLength]
}

// ObjectID returns the full hex id of an object.
func ObjectID(kind, content string) string {
	sum := HashObject(kind, []byte(content))
	return hex.EncodeToString(sum[:])
}

// BlobID returns the short id Git would print for a blob with the given content.
func BlobID(content string) string {
	return ObjectID("blob", content)[:constants.ShortIDLength]
}

// TreeID derives a short tree id from a flattened tree (path -> content). Only paths below prefix count.
func TreeID(files map[string]string, prefix string) string {
	paths := make([]string, 0, len(files))
	for p := range files {
		if prefix == "" || strings.HasPrefix(p, prefix+"/") {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	var b strings.Builder
	for _, p := range paths {
		fmt.Fprintf(&b, "%s %s\n", BlobID(files[p]), p)
	}
	return ObjectID("tree", b.String())[:constants.ShortIDLength]
}
