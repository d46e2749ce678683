package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/hashicorp/go-retryablehttp"
)

// Entry maps a purchasable ingredient to its store link. Aliases may
// overlap across entries; resolution is deterministic by declaration
// order, first match wins.
type Entry struct {
	CanonicalName string   `json:"canonical_name"`
	Aliases       []string `json:"aliases,omitempty"`
	PurchaseURL   string   `json:"purchase_url"`
	Category      string   `json:"category,omitempty"`
}

type document struct {
	Entries []Entry `json:"entries"`
}

// LoadFile reads the ingredient catalog from a JSON file.
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}
	return validate(doc.Entries)
}

// FetchURL downloads the catalog from a remote endpoint with retries.
func FetchURL(ctx context.Context, url string) ([]Entry, error) {
	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = 3

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.WarnContext(ctx, "failed to close catalog response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog fetch returned status %d", resp.StatusCode)
	}

	var doc document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return validate(doc.Entries)
}

func validate(entries []Entry) ([]Entry, error) {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.CanonicalName == "" {
			return nil, fmt.Errorf("catalog entry with url %q has no canonical name", e.PurchaseURL)
		}
		if _, ok := seen[e.CanonicalName]; ok {
			return nil, fmt.Errorf("duplicate catalog entry %q", e.CanonicalName)
		}
		seen[e.CanonicalName] = struct{}{}
	}
	return entries, nil
}
