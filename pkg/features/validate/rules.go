package validate

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// Field is the capability the rules need from a form control.
type Field interface {
	// Attr returns the named attribute and whether it is present.
	Attr(name string) (string, bool)
	// Value returns the control's current value.
	Value() string
	// Type returns the control type, e.g. "email" or "number".
	Type() string
}

// Resolver looks up another field by id, for confirmation matching.
type Resolver func(id string) (Field, bool)

// Kind identifies a failed rule.
type Kind uint8

const (
	KindNone Kind = iota
	MissingRequired
	InvalidEmailFormat
	OutOfRangeMin
	OutOfRangeMax
	PatternMismatch
	ConfirmationMismatch
)

// String returns the rule name used in logs and metrics labels.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case MissingRequired:
		return "required"
	case InvalidEmailFormat:
		return "email"
	case OutOfRangeMin:
		return "min"
	case OutOfRangeMax:
		return "max"
	case PatternMismatch:
		return "pattern"
	case ConfirmationMismatch:
		return "confirm"
	default:
		return "unknown"
	}
}

// FieldState is the outcome of one validation pass over a field.
type FieldState struct {
	Valid   bool
	Message string
	// Kind is the rule whose message is shown.
	Kind Kind
	// Failed lists every failed rule in evaluation order.
	Failed []Kind
}

func (s *FieldState) fail(k Kind, msg string) {
	s.Valid = false
	s.Kind = k
	s.Message = msg
	s.Failed = append(s.Failed, k)
}

// Messages holds the text shown for each failed rule. Min and Max may use
// the {min} and {max} placeholders.
type Messages struct {
	Required string `json:"required,omitempty" yaml:"required,omitempty"`
	Email    string `json:"email,omitempty" yaml:"email,omitempty"`
	Min      string `json:"min,omitempty" yaml:"min,omitempty"`
	Max      string `json:"max,omitempty" yaml:"max,omitempty"`
	Pattern  string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Confirm  string `json:"confirm,omitempty" yaml:"confirm,omitempty"`
}

// DefaultMessages returns the built-in messages.
func DefaultMessages() Messages {
	return Messages{
		Required: "field is required",
		Email:    "please enter a valid email",
		Min:      "minimum value is {min}",
		Max:      "maximum value is {max}",
		Pattern:  "invalid format",
		Confirm:  "values do not match",
	}
}

func (m Messages) withDefaults() Messages {
	d := DefaultMessages()
	if m.Required == "" {
		m.Required = d.Required
	}
	if m.Email == "" {
		m.Email = d.Email
	}
	if m.Min == "" {
		m.Min = d.Min
	}
	if m.Max == "" {
		m.Max = d.Max
	}
	if m.Pattern == "" {
		m.Pattern = d.Pattern
	}
	if m.Confirm == "" {
		m.Confirm = d.Confirm
	}
	return m
}

// emailPattern is matched against the raw value, case-insensitively.
var emailPattern = regexp.MustCompile(`(?i)^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}$`)

// PatternTimeout bounds a single pattern match.
const PatternTimeout = 100 * time.Millisecond

// Rules evaluates field constraints. Compiled patterns are cached.
// Rules is not safe for concurrent use.
type Rules struct {
	messages Messages
	patterns map[string]*regexp2.Regexp
}

// NewRules returns Rules using msgs, with blanks filled from DefaultMessages.
func NewRules(msgs Messages) *Rules {
	return &Rules{
		messages: msgs.withDefaults(),
		patterns: make(map[string]*regexp2.Regexp),
	}
}

// Compile compiles a pattern attribute with ECMAScript syntax, so lookaheads
// and backreferences work as they do in a browser.
func (r *Rules) Compile(pattern string) (*regexp2.Regexp, error) {
	if re, ok := r.patterns[pattern]; ok {
		return re, nil
	}
	re, err := regexp2.Compile(`^(?:`+pattern+`)$`, regexp2.ECMAScript)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}
	re.MatchTimeout = PatternTimeout
	r.patterns[pattern] = re
	return re, nil
}

// matchWhole reports whether re matches all of value. A "$" may also match
// before a trailing newline, so the match text is compared too.
func matchWhole(re *regexp2.Regexp, value string) (bool, error) {
	m, err := re.FindStringMatch(value)
	if err != nil {
		return false, fmt.Errorf("match pattern %q: %w", re.String(), err)
	}
	return m != nil && m.String() == value, nil
}

// Check evaluates every rule for f. The returned error is non-nil only when
// the field's pattern attribute does not compile or its match times out; the
// pattern rule is then skipped and the remaining rules still apply.
func (r *Rules) Check(f Field, resolve Resolver) (FieldState, error) {
	state := FieldState{Valid: true}
	value := f.Value()
	trimmed := strings.TrimSpace(value)
	typ := f.Type()

	if _, ok := f.Attr("required"); ok && trimmed == "" {
		state.fail(MissingRequired, r.messages.Required)
	}

	if typ == "email" && trimmed != "" && !emailPattern.MatchString(value) {
		state.fail(InvalidEmailFormat, r.messages.Email)
	}

	if typ == "number" {
		n, isNum := parseNumber(value)
		if lo, ok := f.Attr("min"); ok && lo != "" {
			if bound, ok := parseNumber(lo); ok && isNum && n < bound {
				state.fail(OutOfRangeMin, strings.ReplaceAll(r.messages.Min, "{min}", lo))
			}
		}
		if hi, ok := f.Attr("max"); ok && hi != "" {
			if bound, ok := parseNumber(hi); ok && isNum && n > bound {
				state.fail(OutOfRangeMax, strings.ReplaceAll(r.messages.Max, "{max}", hi))
			}
		}
	}

	var patternErr error
	if pattern, ok := f.Attr("pattern"); ok && trimmed != "" {
		re, err := r.Compile(pattern)
		var ok bool
		if err == nil {
			ok, err = matchWhole(re, value)
		}
		switch {
		case err != nil:
			patternErr = err
		case !ok:
			msg, _ := f.Attr("data-pattern-error")
			if msg == "" {
				msg = r.messages.Pattern
			}
			state.fail(PatternMismatch, msg)
		}
	}

	if id, ok := f.Attr("data-confirm"); ok && id != "" && resolve != nil {
		if other, ok := resolve(id); ok && value != other.Value() {
			state.fail(ConfirmationMismatch, r.messages.Confirm)
		}
	}

	return state, patternErr
}

// parseNumber parses a numeric attribute or value. NaN never compares, so it
// is reported as not a number.
func parseNumber(s string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}
