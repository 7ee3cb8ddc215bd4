package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// NewSourceInfo describes an analyzed document by its base file name and content hash.
func NewSourceInfo(fileName, normalizedText string) types.SourceInfo {
	if fileName != "" {
		fileName = filepath.Base(fileName)
	}
	return types.SourceInfo{
		FileName: fileName,
		Hash:     computeHash(normalizedText),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
