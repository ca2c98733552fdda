package stringutil

const ShortenLogLength = 16

// ShortenLog keeps the head and tail of a long address or fingerprint for log lines.
func ShortenLog(id string) string {
	indexCut := ShortenLogLength / 2
	if len(id) <= ShortenLogLength {
		return id
	}
	return id[:indexCut] + "..." + id[len(id)-indexCut:]
}
