package routing

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/routegate/routegate/internal/db"
	"github.com/routegate/routegate/internal/db/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newEngine(t *testing.T) (*Engine, *gorm.DB) {
	t.Helper()
	database, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := database.AutoMigrate(&models.RoutingRule{}, &models.FileRoutingRule{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return NewEngine(database, zap.NewNop()), database
}

func addRule(t *testing.T, database *gorm.DB, pattern, redirectProvider, redirectModel string) uint {
	t.Helper()
	id, err := db.AddRule(database, &models.RoutingRule{
		OriginalProvider: "openai",
		OriginalModel:    "gpt-4",
		RegexPattern:     pattern,
		RedirectProvider: redirectProvider,
		RedirectModel:    redirectModel,
	})
	if err != nil {
		t.Fatalf("add rule: %v", err)
	}
	return id
}

func TestRouteByText_CaseInsensitiveMatch(t *testing.T) {
	engine, database := newEngine(t)
	addRule(t, database, "(?i)(credit card)", "google", "gemini-alpha")

	decision, err := engine.RouteByText("openai", "gpt-4", "my Credit Card number is 1234")
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if decision == nil {
		t.Fatal("expected a redirect decision")
	}
	if decision.Provider != "google" || decision.Model != "gemini-alpha" {
		t.Fatalf("expected google/gemini-alpha, got %s/%s", decision.Provider, decision.Model)
	}
	if decision.Reason != "Regex pattern match: credit card mention" {
		t.Fatalf("unexpected reason: %q", decision.Reason)
	}
}

func TestRouteByText_FirstMatchWins(t *testing.T) {
	engine, database := newEngine(t)
	addRule(t, database, "(?i)(payment)", "google", "gemini-alpha")
	addRule(t, database, "(?i)(payment details)", "anthropic", "claude-v1")

	decision, err := engine.RouteByText("openai", "gpt-4", "here are my payment details")
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if decision == nil || decision.Provider != "google" {
		t.Fatalf("expected first rule in store order to win, got %+v", decision)
	}
}

func TestRouteByText_NoMatchReturnsNil(t *testing.T) {
	engine, database := newEngine(t)
	addRule(t, database, "(?i)(credit card)", "google", "gemini-alpha")

	decision, err := engine.RouteByText("openai", "gpt-4", "what is the weather today")
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if decision != nil {
		t.Fatalf("expected nil decision, got %+v", decision)
	}
}

func TestRouteByText_IgnoresOtherTargets(t *testing.T) {
	engine, database := newEngine(t)
	_, err := db.AddRule(database, &models.RoutingRule{
		OriginalProvider: "anthropic",
		OriginalModel:    "claude-v1",
		RegexPattern:     "(?i)(ssn)",
		RedirectProvider: "openai",
		RedirectModel:    "gpt-3.5",
	})
	if err != nil {
		t.Fatalf("add rule: %v", err)
	}

	decision, err := engine.RouteByText("openai", "gpt-4", "my ssn is 000-00-0000")
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if decision != nil {
		t.Fatalf("rule for another provider/model must not fire, got %+v", decision)
	}
}

func TestRouteByText_SkipsInactiveRules(t *testing.T) {
	engine, database := newEngine(t)
	id := addRule(t, database, "(?i)(credit card)", "google", "gemini-alpha")
	if _, err := db.DeleteRule(database, id); err != nil {
		t.Fatalf("delete: %v", err)
	}

	decision, err := engine.RouteByText("openai", "gpt-4", "credit card")
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if decision != nil {
		t.Fatalf("soft-deleted rule must not participate, got %+v", decision)
	}
}

func TestRouteByText_BadPatternFailsClosed(t *testing.T) {
	engine, database := newEngine(t)
	// RE2 rejects backreferences; the rule must be skipped, not abort routing.
	addRule(t, database, `(\w+) \1`, "google", "gemini-alpha")
	addRule(t, database, "(?i)(fallback)", "anthropic", "claude-v1")

	decision, err := engine.RouteByText("openai", "gpt-4", "fallback please")
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if decision == nil || decision.Provider != "anthropic" {
		t.Fatalf("expected later valid rule to fire, got %+v", decision)
	}
}

func TestRouteByFile(t *testing.T) {
	engine, database := newEngine(t)
	if _, err := db.UpsertFileRule(database, "PDF", "anthropic", "claude-v1"); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	decision, err := engine.RouteByFile("PDF")
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if decision == nil || decision.Provider != "anthropic" || decision.Model != "claude-v1" {
		t.Fatalf("expected anthropic/claude-v1, got %+v", decision)
	}
	if decision.Reason != "File type routing: PDF" {
		t.Fatalf("unexpected reason: %q", decision.Reason)
	}

	none, err := engine.RouteByFile("Excel")
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if none != nil {
		t.Fatalf("expected nil for unconfigured type, got %+v", none)
	}
}

func TestCleanPattern(t *testing.T) {
	cases := map[string]string{
		"(?i)(credit card)":                "credit card",
		"(?i)(social security number|ssn)": "social security number|ssn",
		"plain":                            "plain",
	}
	for in, want := range cases {
		if got := cleanPattern(in); got != want {
			t.Errorf("cleanPattern(%q) = %q, want %q", in, got, want)
		}
	}
}
