package validate

import (
	"reflect"
	"testing"
)

type fakeField struct {
	attrs map[string]string
	value string
	typ   string
}

func (f fakeField) Attr(name string) (string, bool) {
	v, ok := f.attrs[name]
	return v, ok
}
func (f fakeField) Value() string { return f.value }
func (f fakeField) Type() string {
	if f.typ == "" {
		return "text"
	}
	return f.typ
}

func field(typ, value string, attrs ...string) fakeField {
	f := fakeField{attrs: map[string]string{}, value: value, typ: typ}
	for i := 0; i+1 < len(attrs); i += 2 {
		f.attrs[attrs[i]] = attrs[i+1]
	}
	return f
}

func check(t *testing.T, f Field, resolve Resolver) FieldState {
	t.Helper()
	state, err := NewRules(Messages{}).Check(f, resolve)
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	return state
}

func TestCheck_Required(t *testing.T) {
	for _, v := range []string{"", "   ", "\t\n"} {
		s := check(t, field("text", v, "required", ""), nil)
		if s.Valid || s.Message != "field is required" || s.Kind != MissingRequired {
			t.Errorf("value %q: got %+v", v, s)
		}
	}

	if s := check(t, field("text", " x ", "required", ""), nil); !s.Valid {
		t.Errorf("non-empty required value should pass, got %+v", s)
	}
	if s := check(t, field("text", ""), nil); !s.Valid {
		t.Errorf("empty optional value should pass, got %+v", s)
	}
}

func TestCheck_Email(t *testing.T) {
	valid := []string{
		"a@b.co",
		"test@example.com",
		"user.name+tag@domain.co.uk",
		"UPPER@EXAMPLE.ORG",
		"x_%-@sub-domain.example.io",
	}
	invalid := []string{
		"not-an-email",
		"missing@domain",
		"@nodomain.com",
		"spaces in@email.com",
		"a@b.c",
		"a@b.c0m",
		" a@b.co",
	}

	for _, v := range valid {
		if s := check(t, field("email", v), nil); !s.Valid {
			t.Errorf("expected %q to be valid, got %+v", v, s)
		}
	}
	for _, v := range invalid {
		s := check(t, field("email", v), nil)
		if s.Valid || s.Message != "please enter a valid email" || s.Kind != InvalidEmailFormat {
			t.Errorf("expected %q to be invalid, got %+v", v, s)
		}
	}

	if s := check(t, field("email", "   "), nil); !s.Valid {
		t.Errorf("blank optional email should pass, got %+v", s)
	}
	if s := check(t, field("text", "not-an-email"), nil); !s.Valid {
		t.Errorf("email rule applies only to type=email, got %+v", s)
	}
}

func TestCheck_Range(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		attrs   []string
		valid   bool
		message string
		kind    Kind
	}{
		{"below min", "4", []string{"min", "5"}, false, "minimum value is 5", OutOfRangeMin},
		{"at min", "5", []string{"min", "5"}, true, "", KindNone},
		{"above max", "11", []string{"min", "5", "max", "10"}, false, "maximum value is 10", OutOfRangeMax},
		{"at max", "10", []string{"min", "5", "max", "10"}, true, "", KindNone},
		{"decimal bound", "0.5", []string{"min", "0.75"}, false, "minimum value is 0.75", OutOfRangeMin},
		{"empty value", "", []string{"min", "5"}, true, "", KindNone},
		{"not a number", "abc", []string{"min", "5"}, true, "", KindNone},
		{"empty min attribute", "1", []string{"min", ""}, true, "", KindNone},
		{"malformed bound", "1", []string{"max", "ten"}, true, "", KindNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := check(t, field("number", tt.value, tt.attrs...), nil)
			if s.Valid != tt.valid || s.Message != tt.message || s.Kind != tt.kind {
				t.Errorf("got %+v, want valid=%v message=%q kind=%v", s, tt.valid, tt.message, tt.kind)
			}
		})
	}

	if s := check(t, field("text", "1", "min", "5"), nil); !s.Valid {
		t.Errorf("range rule applies only to type=number, got %+v", s)
	}
}

func TestCheck_MaxOverwritesMin(t *testing.T) {
	s := check(t, field("number", "7", "min", "10", "max", "5"), nil)
	if s.Valid || s.Message != "maximum value is 5" {
		t.Errorf("got %+v, want the max message", s)
	}
	if !reflect.DeepEqual(s.Failed, []Kind{OutOfRangeMin, OutOfRangeMax}) {
		t.Errorf("Failed = %v", s.Failed)
	}
}

func TestCheck_Pattern(t *testing.T) {
	if s := check(t, field("text", "12", "pattern", `^\d{3}$`), nil); s.Valid || s.Message != "invalid format" {
		t.Errorf("got %+v", s)
	}
	if s := check(t, field("text", "123", "pattern", `^\d{3}$`), nil); !s.Valid {
		t.Errorf("got %+v", s)
	}
	if s := check(t, field("text", "1234", "pattern", `\d{3}`), nil); s.Valid {
		t.Error("pattern must match the whole value")
	}
	s := check(t, field("text", "abc", "pattern", `\d+`, "data-pattern-error", "digits only"), nil)
	if s.Message != "digits only" || s.Kind != PatternMismatch {
		t.Errorf("got %+v, want custom message", s)
	}
	if s := check(t, field("text", "  ", "pattern", `\d+`), nil); !s.Valid {
		t.Errorf("blank value skips the pattern rule, got %+v", s)
	}
}

func TestCheck_ECMAScriptPattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		value   string
		valid   bool
	}{
		{"lookahead passes", `(?=.*\d).{8,}`, "secret12", true},
		{"lookahead fails", `(?=.*\d).{8,}`, "secretpw", false},
		{"lookahead too short", `(?=.*\d).{8,}`, "abc1", false},
		{"backreference passes", `(\w)\1`, "aa", true},
		{"backreference fails", `(\w)\1`, "ab", false},
		{"trailing newline", `\d{3}`, "123\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := check(t, field("text", tt.value, "pattern", tt.pattern), nil)
			if s.Valid != tt.valid {
				t.Errorf("Valid = %v, want %v (%+v)", s.Valid, tt.valid, s)
			}
		})
	}
}

func TestCheck_InvalidPattern(t *testing.T) {
	state, err := NewRules(Messages{}).Check(field("text", "", "pattern", `[a-`, "required", ""), nil)
	if err == nil {
		t.Fatal("expected compile error")
	}
	if state.Kind != MissingRequired {
		t.Errorf("remaining rules should still apply, got %+v", state)
	}
}

func TestCheck_Confirm(t *testing.T) {
	a := field("password", "pass1")
	resolve := func(id string) (Field, bool) {
		if id == "a" {
			return a, true
		}
		return nil, false
	}

	if s := check(t, field("password", "pass1", "data-confirm", "a"), resolve); !s.Valid {
		t.Errorf("matching values should pass, got %+v", s)
	}
	s := check(t, field("password", "pass2", "data-confirm", "a"), resolve)
	if s.Valid || s.Message != "values do not match" || s.Kind != ConfirmationMismatch {
		t.Errorf("got %+v", s)
	}
	if s := check(t, field("password", "pass1 ", "data-confirm", "a"), resolve); s.Valid {
		t.Error("confirmation compares raw values without trimming")
	}
	if s := check(t, field("password", "x", "data-confirm", "missing"), resolve); !s.Valid {
		t.Errorf("unresolved target skips the rule, got %+v", s)
	}
}

func TestCheck_LastFailureWins(t *testing.T) {
	s := check(t, field("email", "bad", "pattern", `x+`), nil)
	if s.Message != "invalid format" || s.Kind != PatternMismatch {
		t.Errorf("got %+v, want pattern message to overwrite email", s)
	}
	if !reflect.DeepEqual(s.Failed, []Kind{InvalidEmailFormat, PatternMismatch}) {
		t.Errorf("Failed = %v", s.Failed)
	}
}

func TestMessages_Override(t *testing.T) {
	r := NewRules(Messages{Required: "Este campo es obligatorio", Min: "El valor mínimo es {min}"})

	s, _ := r.Check(field("text", "", "required", ""), nil)
	if s.Message != "Este campo es obligatorio" {
		t.Errorf("Message = %q", s.Message)
	}
	s, _ = r.Check(field("number", "1", "min", "2"), nil)
	if s.Message != "El valor mínimo es 2" {
		t.Errorf("Message = %q", s.Message)
	}
	s, _ = r.Check(field("email", "x"), nil)
	if s.Message != "please enter a valid email" {
		t.Errorf("unset messages should default, got %q", s.Message)
	}
}

func TestKind_String(t *testing.T) {
	want := map[Kind]string{
		KindNone:             "none",
		MissingRequired:      "required",
		InvalidEmailFormat:   "email",
		OutOfRangeMin:        "min",
		OutOfRangeMax:        "max",
		PatternMismatch:      "pattern",
		ConfirmationMismatch: "confirm",
		Kind(99):             "unknown",
	}
	for k, s := range want {
		if k.String() != s {
			t.Errorf("Kind(%d).String() = %q, want %q", k, k.String(), s)
		}
	}
}
