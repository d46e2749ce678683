package templates

import (
	"strings"
	"testing"

	"cookreminder/internal/catalog"
	"cookreminder/internal/corpus"
)

func grams(v float64) *float64 {
	return &v
}

func TestRenderDaily(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("template init failed: %v", err)
	}

	var buf strings.Builder
	data := DailyData{
		Date: "2026年08月25日",
		Recipe: corpus.Recipe{
			ID:          "1",
			Name:        "清蒸鲈鱼",
			Category:    corpus.Meat,
			OilGrams:    grams(10),
			SaltGrams:   grams(3),
			CookingTags: []string{"steamed"},
		},
		Ingredients: []string{"鲈鱼", "生姜", "葱"},
	}
	if err := Daily.Execute(&buf, data); err != nil {
		t.Fatalf("daily template execute failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"清蒸鲈鱼", "鲈鱼", "2026年08月25日"} {
		if !strings.Contains(out, want) {
			t.Errorf("daily mail missing %q", want)
		}
	}
}

func TestRenderWeekly(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("template init failed: %v", err)
	}

	var buf strings.Builder
	data := WeeklyData{
		Date:    "2026年08月26日",
		Weekday: "周三",
		Meat: corpus.Recipe{
			ID: "m", Name: "白切鸡", Category: corpus.Meat,
			RawIngredients: []string{"500g 鸡腿"},
		},
		Veg: corpus.Recipe{
			ID: "v", Name: "烫青菜", Category: corpus.Vegetable,
			RawIngredients: []string{"300g 青菜"},
		},
		Links: []catalog.PurchaseLink{
			{IngredientName: "鸡腿", URL: "https://store.example/chicken", Tier: catalog.TierExact},
			{IngredientName: "青菜", URL: "https://store.example/greens", Tier: catalog.TierFuzzy},
		},
		MarketURL: "https://r.meituan.com/g7YjcD",
	}
	if err := Weekly.Execute(&buf, data); err != nil {
		t.Fatalf("weekly template execute failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"白切鸡", "烫青菜", "https://store.example/chicken", "周三", "https://r.meituan.com/g7YjcD"} {
		if !strings.Contains(out, want) {
			t.Errorf("weekly mail missing %q", want)
		}
	}
}
