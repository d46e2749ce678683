package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Health  HealthConfig  `json:"health"`
	Corpus  CorpusConfig  `json:"corpus"`
	Catalog CatalogConfig `json:"catalog"`
	History HistoryConfig `json:"history"`
	Mail    MailConfig    `json:"mail"`
}

type HealthConfig struct {
	DailyOilThreshold   float64 `json:"daily_oil_threshold"`
	DailySaltThreshold  float64 `json:"daily_salt_threshold"`
	WeeklyOilThreshold  float64 `json:"weekly_oil_threshold"`
	WeeklySaltThreshold float64 `json:"weekly_salt_threshold"`
}

type CorpusConfig struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

type CatalogConfig struct {
	Path string `json:"path"`
	URL  string `json:"url"`
	// FuzzyMinRatio is the minimum overlap ratio before link
	// resolution falls back to a search link.
	FuzzyMinRatio float64 `json:"fuzzy_min_ratio"`
	// SearchURLTemplate must contain one %s for the escaped keyword.
	SearchURLTemplate string `json:"search_url_template"`
	// MarketURL is the one-click store link shown in the weekly mail.
	MarketURL string `json:"market_url"`
}

type HistoryConfig struct {
	StoragePath string `json:"storage_path"`
	Window      int    `json:"window"`
}

type MailConfig struct {
	SendGridAPIKey string `json:"sendgrid_api_key"`
	FromEmail      string `json:"from_email"`
	ToEmail        string `json:"to_email"`
}

func Load() (*Config, error) {
	dailyOil, err := getEnvFloat("DAILY_OIL_THRESHOLD", 50)
	if err != nil {
		return nil, err
	}
	dailySalt, err := getEnvFloat("DAILY_SALT_THRESHOLD", 10)
	if err != nil {
		return nil, err
	}
	weeklyOil, err := getEnvFloat("WEEKLY_OIL_THRESHOLD", 80)
	if err != nil {
		return nil, err
	}
	weeklySalt, err := getEnvFloat("WEEKLY_SALT_THRESHOLD", 15)
	if err != nil {
		return nil, err
	}
	fuzzyRatio, err := getEnvFloat("FUZZY_MIN_RATIO", 0.5)
	if err != nil {
		return nil, err
	}
	window, err := getEnvInt("HISTORY_WINDOW", 7)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Health: HealthConfig{
			DailyOilThreshold:   dailyOil,
			DailySaltThreshold:  dailySalt,
			WeeklyOilThreshold:  weeklyOil,
			WeeklySaltThreshold: weeklySalt,
		},
		Corpus: CorpusConfig{
			Path: getEnvOrDefault("CORPUS_PATH", "./data/corpus.json"),
			URL:  os.Getenv("CORPUS_URL"),
		},
		Catalog: CatalogConfig{
			Path:              getEnvOrDefault("CATALOG_PATH", "./data/catalog.json"),
			URL:               os.Getenv("CATALOG_URL"),
			FuzzyMinRatio:     fuzzyRatio,
			SearchURLTemplate: os.Getenv("SEARCH_URL_TEMPLATE"),
			MarketURL:         getEnvOrDefault("MARKET_URL", "https://r.meituan.com/g7YjcD"),
		},
		History: HistoryConfig{
			StoragePath: getEnvOrDefault("HISTORY_PATH", "./data/history.json"),
			Window:      window,
		},
		Mail: MailConfig{
			SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
			FromEmail:      os.Getenv("FROM_EMAIL"),
			ToEmail:        os.Getenv("TO_EMAIL"),
		},
	}

	return config, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return parsed, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return parsed, nil
}
