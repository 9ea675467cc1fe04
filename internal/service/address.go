package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Renditions are re-encoded to JPEG, so every storage name carries the
// normalized extension regardless of what was uploaded.
const normalizedExt = ".jpeg"

const maxStemLen = 50

// Hash returns the hex sha256 digest of the exact upload bytes. It is the
// sole de-duplication key: same bytes, same digest.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// SanitizeName derives a storage-safe file name from the uploader's
// filename: extension stripped, whitespace replaced with underscores, stem
// truncated, plus a random 8-hex suffix. The suffix makes repeated uploads
// of identically named files collide-free on the storage name; duplicate
// content is caught by Hash, not here.
func SanitizeName(fileName string) string {
	stem := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	stem = strings.Join(strings.Fields(stem), "_")
	if len(stem) > maxStemLen {
		stem = stem[:maxStemLen]
	}
	u := uuid.New()
	return fmt.Sprintf("%s_%x%s", stem, u[:4], normalizedExt)
}
