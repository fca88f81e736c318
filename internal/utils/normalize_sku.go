package utils

import "strings"

// NormalizeSKU brings an SKU to a single format: trimmed, no spaces or
// dashes, upper case.
func NormalizeSKU(raw string) string {
	normalized := strings.TrimSpace(raw)
	normalized = strings.ReplaceAll(normalized, " ", "")
	normalized = strings.ReplaceAll(normalized, "-", "")
	normalized = strings.ToUpper(normalized)
	return normalized
}
