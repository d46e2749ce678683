package ingredients

import (
	"regexp"
	"strings"

	"cookreminder/internal/corpus"
)

// Raw ingredient lines look like "200g 猪肉丝", "1个 鸡蛋（打散）" or
// "适量 盐". The quantity token is stripped from the front, trailing
// parenthetical notes from the back, and whatever remains is the
// canonical ingredient name.
var (
	quantityPattern = regexp.MustCompile(`(?i)^(?:适量|少许|若干|一点点?|[0-9０-９]+(?:\.[0-9０-９]+)?\s*(?:g|kg|ml|l|克|千克|毫升|升|斤|两|个|只|根|片|块|条|颗|粒|把|勺|汤匙|茶匙|瓣|包|袋|盒|杯)?)\s*`)
	parenPattern    = regexp.MustCompile(`\s*[（(][^（）()]*[）)]\s*$`)
)

// Extract parses a recipe's raw ingredient list into canonical names.
// The result preserves line order and duplicates; deduplication is the
// link resolver's concern. Lines that reduce to nothing (section
// headers, annotations) are dropped rather than treated as errors.
func Extract(r corpus.Recipe) []string {
	names := make([]string, 0, len(r.RawIngredients))
	for _, line := range r.RawIngredients {
		if name, ok := ExtractLine(line); ok {
			names = append(names, name)
		}
	}
	return names
}

// ExtractLine extracts the canonical ingredient name from a single raw
// line. The second return is false when the line holds no ingredient.
func ExtractLine(line string) (string, bool) {
	name := strings.TrimSpace(line)
	name = quantityPattern.ReplaceAllString(name, "")
	for {
		stripped := parenPattern.ReplaceAllString(name, "")
		if stripped == name {
			break
		}
		name = stripped
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	return name, true
}
