package templates

import (
	"embed"
	"html/template"

	"cookreminder/internal/catalog"
	"cookreminder/internal/corpus"
)

//go:embed *.html
var htmlFiles embed.FS

var Daily, Weekly *template.Template

func Init() error {
	tmpls, err := template.New("all").ParseFS(htmlFiles, "*.html")
	if err != nil {
		return err
	}
	Daily = ensure(tmpls, "daily.html")
	Weekly = ensure(tmpls, "weekly.html")
	return nil
}

func ensure(templates *template.Template, name string) *template.Template {
	tmpl := templates.Lookup(name)
	if tmpl == nil {
		panic("template " + name + " not found")
	}
	return tmpl
}

// DailyData fills the single-dish mail.
type DailyData struct {
	Date        string
	Recipe      corpus.Recipe
	Ingredients []string
}

// WeeklyData fills the meat+vegetable pair mail with its purchase list.
type WeeklyData struct {
	Date      string
	Weekday   string
	Meat      corpus.Recipe
	Veg       corpus.Recipe
	Links     []catalog.PurchaseLink
	MarketURL string
}
