package corpus

// Category classifies a dish for weekly meat+vegetable pairing.
// Dishes marked Other can still be picked in daily mode.
type Category string

const (
	Meat      Category = "meat"
	Vegetable Category = "vegetable"
	Other     Category = "other"
)

// Recipe is one dish from the corpus. Oil and salt amounts are
// pointers so a missing value is distinguishable from zero; a nil
// value marks the entry as malformed and it is reported instead of
// silently treated as oil-free.
type Recipe struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Category       Category `json:"category"`
	OilGrams       *float64 `json:"oil_grams"`
	SaltGrams      *float64 `json:"salt_grams"`
	CookingTags    []string `json:"cooking_tags,omitempty"`
	RawIngredients []string `json:"raw_ingredients,omitempty"`
}

// Malformed reports whether the entry is missing required nutrition data.
func (r Recipe) Malformed() bool {
	return r.OilGrams == nil || r.SaltGrams == nil
}

// HasTag reports whether the recipe carries the given cooking tag.
func (r Recipe) HasTag(tag string) bool {
	for _, t := range r.CookingTags {
		if t == tag {
			return true
		}
	}
	return false
}
