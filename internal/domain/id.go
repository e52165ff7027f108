package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// pointNamespace salts the UUIDv5 derivation so IDs from this tool
// never collide with points written by anything else sharing the
// collection.
var pointNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("cvassist"))

// PointID derives the vector record ID for a chunk from its candidate
// and index. The derivation is pure, so re-ingesting a file after a
// partial failure overwrites the same points instead of duplicating
// them. Qdrant only accepts UUIDs (or integers) as point IDs.
func PointID(candidate string, index int) string {
	return uuid.NewSHA1(pointNamespace, []byte(fmt.Sprintf("%s:%d", candidate, index))).String()
}
