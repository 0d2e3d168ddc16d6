package validate

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	emailPattern   = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9\-]+(\.[a-zA-Z0-9\-]+)*\.[a-zA-Z]{2,}$`
	usernameChars  = `[a-zA-Z0-9_]`
	UsernameMinLen = 3
	UsernameMaxLen = 17
)

// defaultReservedUsernames disallows handles that collide with the product
// name, administrative terms, route names and generic placeholders.
var defaultReservedUsernames = []string{
	"qella", "qellagg", "qella_gg",
	"admin", "administrator", "root", "system", "superuser",
	"mod", "moderator", "staff", "support", "help", "info",
	"security", "official", "team", "contact", "noreply", "no_reply",
	"api", "beta", "arena", "games", "models", "leaderboard",
	"tournaments", "profile", "onboarding", "login", "branding",
	"null", "undefined", "anonymous", "test", "user", "me", "you",
}

// Config overrides the built-in validation rules. Zero values fall back to
// the defaults, so an empty config is valid.
type Config struct {
	UsernameMinLen    int      `mapstructure:"username_min_len"`
	UsernameMaxLen    int      `mapstructure:"username_max_len"`
	ReservedUsernames []string `mapstructure:"reserved_usernames"`
}

// Validator checks waitlist signup input against fixed syntax rules and the
// reserved-username set. All methods are pure and safe for concurrent use.
type Validator struct {
	emailRe    *regexp.Regexp
	usernameRe *regexp.Regexp
	reserved   map[string]struct{}
}

// New builds a validator from the given config.
func New(c Config) *Validator {
	minLen := c.UsernameMinLen
	if minLen == 0 {
		minLen = UsernameMinLen
	}
	maxLen := c.UsernameMaxLen
	if maxLen == 0 {
		maxLen = UsernameMaxLen
	}
	reservedList := c.ReservedUsernames
	if len(reservedList) == 0 {
		reservedList = defaultReservedUsernames
	}

	reserved := make(map[string]struct{}, len(reservedList))
	for _, u := range reservedList {
		reserved[strings.ToLower(strings.TrimSpace(u))] = struct{}{}
	}

	return &Validator{
		emailRe:    regexp.MustCompile(emailPattern),
		usernameRe: regexp.MustCompile(fmt.Sprintf(`^%s{%d,%d}$`, usernameChars, minLen, maxLen)),
		reserved:   reserved,
	}
}

// NormalizeEmail trims whitespace and lower-cases an email for comparison
// and storage.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// NormalizeUsername trims whitespace and lower-cases a username for
// comparison and storage.
func NormalizeUsername(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// IsValidEmail reports whether the trimmed input looks like
// local@domain.tld with a final label of at least two letters.
func (v *Validator) IsValidEmail(raw string) bool {
	return v.emailRe.MatchString(strings.TrimSpace(raw))
}

// IsValidUsername reports whether the trimmed input is within the length
// bounds and restricted to ASCII letters, digits and underscore.
func (v *Validator) IsValidUsername(raw string) bool {
	return v.usernameRe.MatchString(strings.TrimSpace(raw))
}

// IsReserved reports whether the normalized username is a member of the
// reserved set. Callers must pass an already normalized username.
func (v *Validator) IsReserved(normalized string) bool {
	_, ok := v.reserved[normalized]
	return ok
}
