package valtype

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/broady/valtype/parser"
	"github.com/broady/valtype/types"
)

var (
	validate     = validator.New()
	aliasPattern = regexp.MustCompile(`^[A-Za-z_\x80-\xff][A-Za-z0-9_\\\x80-\xff]*$`)
)

func init() {
	_ = validate.RegisterValidation("alias_name", func(fl validator.FieldLevel) bool {
		return aliasPattern.MatchString(fl.Field().String())
	})
}

// Config holds the configuration of an Engine.
type Config struct {
	// CacheSize bounds the number of compiled validators kept in memory.
	// Default: 1024
	CacheSize int `validate:"gte=0,lte=1000000"`

	// ParserCacheSize bounds the number of parsed declarations kept in memory.
	// Default: 512
	ParserCacheSize int `validate:"gte=0,lte=1000000"`

	// CacheDir, when set, persists compiled artifacts in this directory so
	// they can be shared between processes.
	CacheDir string

	// Aliases name declarations, e.g. {"UserId": "int|string"}.
	// Aliases may refer to each other but not to themselves.
	Aliases map[string]string `validate:"dive,keys,alias_name,endkeys,required"`

	// Logger receives cache and engine events. Default: slog.Default()
	Logger *slog.Logger
}

// applyConfigDefaults applies default values to Config.
func applyConfigDefaults(cfg *Config) *Config {
	// Make a copy to avoid mutating the input
	result := *cfg

	if result.CacheSize == 0 {
		result.CacheSize = 1024
	}
	if result.ParserCacheSize == 0 {
		result.ParserCacheSize = parser.DefaultCacheSize
	}
	if result.Logger == nil {
		result.Logger = slog.Default()
	}

	return &result
}

// validateConfig checks cfg against its struct tags.
func validateConfig(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return types.Errorf(types.CodeInvalidConfig, "invalid config: %v", err)
	}
	details := make(map[string]any)
	messages := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		msg := formatValidationError(ve)
		details[ve.Field()] = msg
		messages = append(messages, ve.Field()+": "+msg)
	}
	return &types.Error{
		Code:    types.CodeInvalidConfig,
		Message: strings.Join(messages, "; "),
		Details: details,
	}
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "gte":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", ve.Param())
	case "alias_name":
		return "must be a name made of letters, digits and underscores"
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}

// resolveAliases parses alias declarations. An alias may use aliases
// resolved before it; resolution repeats until no alias makes progress.
func resolveAliases(decls map[string]string) (map[string]types.Type, error) {
	resolved := make(map[string]types.Type, len(decls))
	pending := make([]string, 0, len(decls))
	for name := range decls {
		pending = append(pending, name)
	}
	sort.Strings(pending)

	builtin := parser.NewLexingParser(nil)
	for _, name := range pending {
		if _, err := builtin.Parse(name); err == nil {
			return nil, types.Errorf(types.CodeInvalidConfig, "Alias `%s` shadows a built-in type.", name).
				WithDetail("alias", name)
		}
	}

	for len(pending) > 0 {
		p := parser.NewLexingParser(resolved)
		var next []string
		failures := make(map[string]error)
		for _, name := range pending {
			t, err := p.Parse(decls[name])
			if err != nil {
				next = append(next, name)
				failures[name] = err
				continue
			}
			resolved[name] = t
		}
		if len(next) == len(pending) {
			name := next[0]
			return nil, types.Errorf(types.CodeInvalidConfig, "Alias `%s` cannot be resolved: %v", name, failures[name]).
				WithDetail("alias", name)
		}
		pending = next
	}
	return resolved, nil
}
