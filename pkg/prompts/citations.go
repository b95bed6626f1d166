package prompts

import "strings"

const citationPrefix = "[Source:"

// ExtractCitations pulls every [Source: ...] tag out of generated text,
// scanning left to right and deduplicating by exact substring while
// preserving first-seen order. This is the consumer-side contract of the
// citation grammar; viewers should share it rather than re-implement it.
func ExtractCitations(text string) []string {
	out := []string{}
	seen := make(map[string]struct{})

	for start := 0; ; {
		i := strings.Index(text[start:], citationPrefix)
		if i == -1 {
			break
		}
		i += start
		j := strings.Index(text[i:], "]")
		if j == -1 {
			break
		}
		j += i
		tag := text[i : j+1]
		if _, ok := seen[tag]; !ok {
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
		start = j + 1
	}

	return out
}
