package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/hashicorp/go-retryablehttp"
)

type document struct {
	Recipes []Recipe `json:"recipes"`
}

// LoadFile reads the recipe corpus from a JSON file.
func LoadFile(path string) ([]Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}
	return parse(data)
}

// FetchURL downloads the recipe corpus from a remote endpoint. Transient
// failures are retried; the selection engine itself never touches the
// network.
func FetchURL(ctx context.Context, url string) ([]Recipe, error) {
	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = 3

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build corpus request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch corpus: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.WarnContext(ctx, "failed to close corpus response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("corpus fetch returned status %d", resp.StatusCode)
	}

	var doc document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode corpus: %w", err)
	}
	return validate(doc.Recipes)
}

func parse(data []byte) ([]Recipe, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal corpus: %w", err)
	}
	return validate(doc.Recipes)
}

// validate enforces corpus-wide invariants: ids must be present and
// unique. Per-entry nutrition problems are not errors here; malformed
// entries are reported by the selector so one bad dish never aborts a run.
func validate(recipes []Recipe) ([]Recipe, error) {
	seen := make(map[string]struct{}, len(recipes))
	for _, r := range recipes {
		if r.ID == "" {
			return nil, fmt.Errorf("recipe %q has no id", r.Name)
		}
		if _, ok := seen[r.ID]; ok {
			return nil, fmt.Errorf("duplicate recipe id %q", r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	return recipes, nil
}
