package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "setup error",
			code:    "E201",
			wantMsg: "Invalid field pattern",
			wantCat: CategorySetup,
		},
		{
			name:    "config error",
			code:    "E302",
			wantMsg: "Invalid configuration",
			wantCat: CategoryConfig,
		},
		{
			name:    "page error",
			code:    "E402",
			wantMsg: "Form not found",
			wantCat: CategoryPage,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestSiteError_Error(t *testing.T) {
	err := New("E201").WithDetail(`field "zip"`).Wrap(fmt.Errorf("missing closing ]"))
	want := `E201: Invalid field pattern (field "zip"): missing closing ]`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	plain := &SiteError{Message: "test error"}
	if plain.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", plain.Error(), "test error")
	}
}

func TestSiteError_WrapAndIs(t *testing.T) {
	cause := stderrors.New("boom")
	err := fmt.Errorf("attach: %w", New("E202").Wrap(cause))

	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
	if !HasCode(err, "E202") {
		t.Error("expected HasCode(E202) to be true")
	}
	if HasCode(err, "E201") {
		t.Error("expected HasCode(E201) to be false")
	}
	if got := Code(err); got != "E202" {
		t.Errorf("Code() = %q, want E202", got)
	}
	if got := Code(cause); got != "" {
		t.Errorf("Code(plain) = %q, want empty", got)
	}

	var se *SiteError
	if !stderrors.As(err, &se) {
		t.Fatal("expected errors.As to find SiteError")
	}
	if se.Category != CategorySetup {
		t.Errorf("Category = %q, want %q", se.Category, CategorySetup)
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E301") != nil {
		t.Error("FromError(nil) should return nil")
	}

	cause := stderrors.New("no such file")
	err := FromError(cause, "E301")
	if err.Code != "E301" || err.Wrapped != cause {
		t.Errorf("FromError = %+v", err)
	}

	existing := New("E402")
	if got := FromError(fmt.Errorf("ctx: %w", existing), "E301"); got != existing {
		t.Error("FromError should return the existing SiteError in the chain")
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E201").WithDetail(`field "zip"`).Wrap(stderrors.New("bad"))
	out := err.Format()
	for _, want := range []string{"ERROR E201: Invalid field pattern", `field "zip"`, "Cause: bad", "Hint:"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}

	if got := err.FormatCompact(); got != `E201: Invalid field pattern (field "zip")` {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Fprint(&buf, stderrors.New("plain failure"))
	if !strings.Contains(buf.String(), "ERROR: plain failure") {
		t.Errorf("Fprint(plain) = %q", buf.String())
	}

	buf.Reset()
	Fprint(&buf, New("E402"))
	if !strings.Contains(buf.String(), "ERROR E402: Form not found") {
		t.Errorf("Fprint(SiteError) = %q", buf.String())
	}
}

func TestGetAllCodes(t *testing.T) {
	codes := GetAllCodes()
	seen := make(map[string]bool)
	for _, c := range codes {
		seen[c] = true
	}
	for _, want := range []string{"E201", "E202", "E301", "E302", "E401", "E402"} {
		if !seen[want] {
			t.Errorf("missing code %s", want)
		}
		if _, ok := GetTemplate(want); !ok {
			t.Errorf("GetTemplate(%s) not found", want)
		}
	}
}
