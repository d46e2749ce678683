package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"cookreminder/internal/catalog"
	"cookreminder/internal/config"
	"cookreminder/internal/corpus"
	"cookreminder/internal/health"
	"cookreminder/internal/history"
	"cookreminder/internal/ingredients"
	"cookreminder/internal/selector"
	"cookreminder/internal/templates"
)

var weekdays = []string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"}

func main() {
	var mode string
	var dryRun bool
	var seed uint64
	var help bool

	flag.StringVar(&mode, "mode", "daily", "Push mode: daily or weekly")
	flag.StringVar(&mode, "m", "daily", "Push mode (short form)")
	flag.BoolVar(&dryRun, "dry-run", false, "Print the rendered mail instead of sending it")
	flag.Uint64Var(&seed, "seed", 0, "Random seed for reproducible selection (0 = time-based)")
	flag.BoolVar(&help, "help", false, "Show help message")
	flag.BoolVar(&help, "h", false, "Show help message")
	flag.Parse()

	if help {
		showHelp()
		return
	}

	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := run(context.Background(), mode, dryRun, seed); err != nil {
		if errors.Is(err, selector.ErrNoEligibleDish) {
			slog.Error("no dish passed the health filter, consider relaxing thresholds", "error", err)
		} else {
			slog.Error("push failed", "error", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, mode string, dryRun bool, seed uint64) error {
	logger := slog.Default().With("run_id", uuid.NewString(), "mode", mode)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := templates.Init(); err != nil {
		return fmt.Errorf("failed to parse mail templates: %w", err)
	}

	recipes, err := loadCorpus(ctx, cfg)
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "corpus loaded", "recipes", len(recipes))

	store := history.NewStorage(cfg.History.StoragePath, cfg.History.Window)
	recent, err := store.RecentIDs()
	if err != nil {
		return err
	}

	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	sel := selector.New(health.NewFilter(health.Thresholds{
		DailyOil:   cfg.Health.DailyOilThreshold,
		DailySalt:  cfg.Health.DailySaltThreshold,
		WeeklyOil:  cfg.Health.WeeklyOilThreshold,
		WeeklySalt: cfg.Health.WeeklySaltThreshold,
	}))

	m := &mailer{
		apiKey: cfg.Mail.SendGridAPIKey,
		from:   cfg.Mail.FromEmail,
		to:     cfg.Mail.ToEmail,
		dryRun: dryRun,
	}

	switch mode {
	case "weekly":
		return runWeekly(ctx, logger, cfg, recipes, recent, rng, sel, store, m)
	case "daily":
		return runDaily(ctx, logger, recipes, recent, rng, sel, store, m)
	default:
		return fmt.Errorf("unknown mode %q, use daily or weekly", mode)
	}
}

func runDaily(ctx context.Context, logger *slog.Logger, recipes []corpus.Recipe, recent []string, rng *rand.Rand, sel *selector.Selector, store *history.Storage, m *mailer) error {
	dish, report, err := sel.Daily(recipes, recent, rng)
	logMalformed(ctx, logger, report)
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "selected daily dish", "id", dish.ID, "name", dish.Name, "category", dish.Category)

	var body strings.Builder
	data := templates.DailyData{
		Date:        time.Now().Format("2006年01月02日"),
		Recipe:      dish,
		Ingredients: ingredients.Extract(dish),
	}
	if err := templates.Daily.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render daily mail: %w", err)
	}

	subject := fmt.Sprintf("🍽️ 今日推荐菜品：%s (%s)", dish.Name, data.Date)
	if err := m.send(ctx, subject, body.String()); err != nil {
		return err
	}

	return store.Append(history.Selection{RecipeID: dish.ID, Name: dish.Name, Mode: "daily"})
}

func runWeekly(ctx context.Context, logger *slog.Logger, cfg *config.Config, recipes []corpus.Recipe, recent []string, rng *rand.Rand, sel *selector.Selector, store *history.Storage, m *mailer) error {
	meat, veg, report, err := sel.WeeklyPair(recipes, recent, rng)
	logMalformed(ctx, logger, report)
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "selected weekly pair", "meat", meat.Name, "vegetable", veg.Name)

	entries, err := loadCatalog(ctx, cfg)
	if err != nil {
		return err
	}
	resolver := catalog.NewResolver(entries, cfg.Catalog.FuzzyMinRatio, cfg.Catalog.SearchURLTemplate)

	names := append(ingredients.Extract(meat), ingredients.Extract(veg)...)
	links := resolver.ResolveLinks(names)
	for _, link := range links {
		logger.InfoContext(ctx, "resolved purchase link", "ingredient", link.IngredientName, "tier", link.Tier)
	}

	tomorrow := time.Now().AddDate(0, 0, 1)
	var body strings.Builder
	data := templates.WeeklyData{
		Date:      tomorrow.Format("2006年01月02日"),
		Weekday:   weekdays[tomorrow.Weekday()],
		Meat:      meat,
		Veg:       veg,
		Links:     links,
		MarketURL: cfg.Catalog.MarketURL,
	}
	if err := templates.Weekly.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render weekly mail: %w", err)
	}

	subject := fmt.Sprintf("🍽️ 明日菜谱 %s %s：%s + %s", tomorrow.Format("01月02日"), data.Weekday, meat.Name, veg.Name)
	if err := m.send(ctx, subject, body.String()); err != nil {
		return err
	}

	return store.Append(
		history.Selection{RecipeID: meat.ID, Name: meat.Name, Mode: "weekly"},
		history.Selection{RecipeID: veg.ID, Name: veg.Name, Mode: "weekly"},
	)
}

func logMalformed(ctx context.Context, logger *slog.Logger, report selector.Report) {
	if len(report.Malformed) == 0 {
		return
	}
	logger.WarnContext(ctx, "skipped recipes missing oil/salt data", "count", len(report.Malformed), "ids", report.Malformed)
}

func loadCorpus(ctx context.Context, cfg *config.Config) ([]corpus.Recipe, error) {
	if cfg.Corpus.URL != "" {
		return corpus.FetchURL(ctx, cfg.Corpus.URL)
	}
	return corpus.LoadFile(cfg.Corpus.Path)
}

func loadCatalog(ctx context.Context, cfg *config.Config) ([]catalog.Entry, error) {
	if cfg.Catalog.URL != "" {
		return catalog.FetchURL(ctx, cfg.Catalog.URL)
	}
	return catalog.LoadFile(cfg.Catalog.Path)
}

func showHelp() {
	fmt.Println("Cookreminder - Healthy Dish Mailer")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  cookreminder -mode daily")
	fmt.Println("  cookreminder -mode weekly")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -mode, -m   Push mode: daily (one dish) or weekly (meat + vegetable pair)")
	fmt.Println("  -dry-run    Print the rendered mail instead of sending it")
	fmt.Println("  -seed       Random seed for reproducible selection")
	fmt.Println("  -help, -h   Show this help message")
}
