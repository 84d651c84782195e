// Package routing evaluates file-based and text-based redirect rules against
// inbound chat requests.
//
// Precedence is enforced by the caller: file routing is consulted first and a
// hit skips text routing entirely. Text rules are evaluated in store order and
// the first matching pattern wins.
//
// Patterns use Go's RE2 regexp dialect. Inline flags such as "(?i)" are
// honored; constructs RE2 rejects (backreferences, lookaround) make the rule
// uncompilable and it is skipped rather than failing the request.
package routing

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/routegate/routegate/internal/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Decision is a redirect verdict. A nil *Decision means no rule matched and
// the request proceeds to its original target.
type Decision struct {
	Provider string
	Model    string
	Reason   string
}

// Engine evaluates routing rules. It only reads the store; rule mutation goes
// through the db package directly.
type Engine struct {
	database *gorm.DB
	logger   *zap.Logger
}

func NewEngine(database *gorm.DB, logger *zap.Logger) *Engine {
	return &Engine{database: database, logger: logger}
}

// RouteByFile returns the redirect decision for an uploaded file's type
// category, or nil when no active file rule covers it.
func (e *Engine) RouteByFile(fileType string) (*Decision, error) {
	provider, model, ok, err := db.FindFileRouting(e.database, fileType)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &Decision{
		Provider: provider,
		Model:    model,
		Reason:   fmt.Sprintf("File type routing: %s", fileType),
	}, nil
}

// RouteByText evaluates active text rules for the requested provider/model
// pair against the prompt. First match in store order wins; no match returns
// nil. A stored pattern that fails to compile is skipped so one bad rule
// cannot block routing for every request.
func (e *Engine) RouteByText(provider, model, prompt string) (*Decision, error) {
	rules, err := db.GetRulesForTarget(e.database, provider, model)
	if err != nil {
		return nil, err
	}

	for _, rule := range rules {
		re, err := regexp.Compile(rule.RegexPattern)
		if err != nil {
			e.logger.Warn("skipping rule with invalid regex pattern",
				zap.Uint("rule_id", rule.ID),
				zap.String("pattern", rule.RegexPattern),
				zap.Error(err),
			)
			continue
		}
		if re.MatchString(prompt) {
			return &Decision{
				Provider: rule.RedirectProvider,
				Model:    rule.RedirectModel,
				Reason:   fmt.Sprintf("Regex pattern match: %s mention", cleanPattern(rule.RegexPattern)),
			}, nil
		}
	}
	return nil, nil
}

// cleanPattern strips the inline case-insensitivity marker and surrounding
// literal parentheses so the reason string reads as plain text.
func cleanPattern(pattern string) string {
	return strings.Trim(strings.ReplaceAll(pattern, "(?i)", ""), "()")
}
