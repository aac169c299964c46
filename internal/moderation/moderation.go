package moderation

import "strings"

// AllowedFileType reports whether the filename's extension is in the allowed
// set. Matching is case-insensitive.
func AllowedFileType(filename string, allowedTypes []string) bool {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return false
	}
	ext := strings.ToLower(filename[idx+1:])
	for _, t := range allowedTypes {
		if ext == strings.ToLower(t) {
			return true
		}
	}
	return false
}

// WithinSizeLimit reports whether a file fits under the configured megabyte
// cap.
func WithinSizeLimit(sizeBytes int64, maxSizeMB int) bool {
	return sizeBytes <= int64(maxSizeMB)*1024*1024
}

// NsfwCheck is a stub that always reports safe. A vendor-backed check can
// replace it behind the same signature.
func NsfwCheck(storagePath string) bool {
	return false
}
