package soundfolio

import "strings"

// Slugify converts a string to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// JoinRefs serializes reference paths into the comma-delimited form stored
// on a post. Returns nil when there are no refs, matching a NULL column.
func JoinRefs(refs []string) *string {
	if len(refs) == 0 {
		return nil
	}
	joined := strings.Join(refs, ",")
	return &joined
}

// SplitRefs splits a stored comma-delimited reference list back into
// individual paths.
func SplitRefs(refs *string) []string {
	if refs == nil || *refs == "" {
		return nil
	}
	return strings.Split(*refs, ",")
}
