package draft

import "strings"

// InitialText is what an empty composer starts with.
const InitialText = "#"

// FormatEdit applies hashtag formatting to a single edit from prev to next:
//   - a typed space becomes " #" so the next word is a tag
//   - the leading "#" cannot be removed
//   - deleting right after a bare "#" removes the whole " #" pair
//
// Other edits pass through unchanged.
func FormatEdit(prev, next string) string {
	if prev == "" {
		prev = InitialText
	}
	if next == prev+" " {
		return prev + " #"
	}
	if len(next) >= len(prev) {
		return next
	}

	// Deletions from here on.
	if strings.HasPrefix(prev, "#") && !strings.HasPrefix(next, "#") {
		return prev
	}
	if strings.HasSuffix(prev, " #") && next == prev[:len(prev)-1] {
		return prev[:len(prev)-2]
	}
	return next
}

// Compose joins words into hashtag text, prefixing "#" where missing.
// Blank words are dropped.
func Compose(words []string) string {
	tags := make([]string, 0, len(words))
	for _, w := range words {
		for _, field := range strings.Fields(w) {
			if !strings.HasPrefix(field, "#") {
				field = "#" + field
			}
			tags = append(tags, field)
		}
	}
	return strings.Join(tags, " ")
}
