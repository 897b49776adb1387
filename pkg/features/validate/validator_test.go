package validate

import (
	"io"
	"log/slog"
	"testing"

	"github.com/vango-dev/sitekit/internal/errors"
	"github.com/vango-dev/sitekit/pkg/dom"
)

const contactPage = `<html><body>
<form id="contact">
  <div class="form-group"><input id="name" name="name" required></div>
  <div class="form-group"><input id="email" name="email" type="email" value="ana@example.com"></div>
  <div class="form-group"><input id="guests" name="guests" type="number" min="1" max="12" value="2"></div>
  <div class="form-group"><input id="zip" name="zip" pattern="\d{5}" data-pattern-error="five digits"></div>
  <div class="form-group"><input id="password" name="password" type="password" value="pass1"></div>
  <div class="form-group"><input id="password2" name="password2" type="password" data-confirm="password" value="pass1"></div>
  <div class="form-group"><label>decoration only</label></div>
  <button type="submit">Send</button>
</form>
<input id="outside" required>
</body></html>`

type recorder struct {
	fields  []FieldResult
	submits []SubmitResult
}

func (r *recorder) ObserveField(f FieldResult)   { r.fields = append(r.fields, f) }
func (r *recorder) ObserveSubmit(s SubmitResult) { r.submits = append(r.submits, s) }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setup(t *testing.T, src string, cfg Config) (*dom.Document, *Binding) {
	t.Helper()
	doc, err := dom.ParseString(src)
	if err != nil {
		t.Fatalf("ParseString() error: %v", err)
	}
	if cfg.Logger == nil {
		cfg.Logger = quietLogger()
	}
	b, err := Attach(doc.Query("form"), cfg)
	if err != nil {
		t.Fatalf("Attach() error: %v", err)
	}
	return doc, b
}

func errorNodes(wrapper *dom.Element) []*dom.Element {
	return wrapper.QueryAll(".error-message")
}

func TestAttach_RegistersWithoutValidating(t *testing.T) {
	doc, _ := setup(t, contactPage, Config{})
	form := doc.Query("form")

	if !form.HasAttr("novalidate") {
		t.Error("expected novalidate on the form")
	}
	if got := form.ListenerCount("submit"); got != 1 {
		t.Errorf("submit listeners = %d, want 1", got)
	}
	for _, c := range form.QueryAll(dom.Controls) {
		if got := c.ListenerCount("blur"); got != 1 {
			t.Errorf("%s blur listeners = %d, want 1", c.ID(), got)
		}
	}
	if doc.GetElementByID("outside").ListenerCount("blur") != 0 {
		t.Error("controls outside the form must not be bound")
	}
	if len(doc.QueryAll(".error-message")) != 0 || form.HasClass("error") || form.HasClass("success") {
		t.Error("Attach must not run a validation pass")
	}
}

func TestAttach_InvalidPattern(t *testing.T) {
	doc, err := dom.ParseString(`<form><div class="form-group"><input name="zip" pattern="[a-"></div></form>`)
	if err != nil {
		t.Fatal(err)
	}
	form := doc.Query("form")

	_, err = Attach(form, Config{Logger: quietLogger()})
	if !errors.HasCode(err, "E201") {
		t.Fatalf("Attach() error = %v, want E201", err)
	}
	if form.ListenerCount("submit") != 0 || form.HasAttr("novalidate") {
		t.Error("a failed Attach must not register anything")
	}
}

func TestAttach_InvalidSelector(t *testing.T) {
	doc, err := dom.ParseString(`<form></form>`)
	if err != nil {
		t.Fatal(err)
	}
	_, err = Attach(doc.Query("form"), Config{FieldSelector: "[", Logger: quietLogger()})
	if !errors.HasCode(err, "E202") {
		t.Fatalf("Attach() error = %v, want E202", err)
	}
}

func TestValidateField_RequiredAndIdempotent(t *testing.T) {
	doc, b := setup(t, contactPage, Config{})
	name := doc.GetElementByID("name")
	wrapper := name.Parent()

	for i := 0; i < 2; i++ {
		if b.ValidateField(name) {
			t.Fatal("empty required field should be invalid")
		}
		nodes := errorNodes(wrapper)
		if len(nodes) != 1 {
			t.Fatalf("pass %d: error nodes = %d, want 1", i, len(nodes))
		}
		if nodes[0].Tag() != "span" || nodes[0].Text() != "field is required" {
			t.Errorf("error node = <%s>%q", nodes[0].Tag(), nodes[0].Text())
		}
		if !wrapper.HasClass("error") {
			t.Error("wrapper should carry the error class")
		}
	}

	name.SetValue("Ana")
	if !b.ValidateField(name) {
		t.Fatal("filled field should be valid")
	}
	nodes := errorNodes(wrapper)
	if len(nodes) != 1 || nodes[0].Text() != "" {
		t.Errorf("error node should be kept and cleared, got %d nodes", len(nodes))
	}
	if wrapper.HasClass("error") {
		t.Error("wrapper should lose the error class")
	}
}

func TestValidateField_NoErrorNodeUntilFailure(t *testing.T) {
	doc, b := setup(t, contactPage, Config{})
	email := doc.GetElementByID("email")

	if !b.ValidateField(email) {
		t.Fatal("valid email should pass")
	}
	if len(errorNodes(email.Parent())) != 0 {
		t.Error("error node should be created lazily on first failure")
	}
}

func TestValidateField_Rules(t *testing.T) {
	tests := []struct {
		id      string
		value   string
		valid   bool
		message string
	}{
		{"email", "nope", false, "please enter a valid email"},
		{"email", "a@b.co", true, ""},
		{"guests", "0", false, "minimum value is 1"},
		{"guests", "13", false, "maximum value is 12"},
		{"guests", "12", true, ""},
		{"zip", "123", false, "five digits"},
		{"zip", "12345", true, ""},
		{"password2", "pass2", false, "values do not match"},
		{"password2", "pass1", true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.id+"="+tt.value, func(t *testing.T) {
			doc, b := setup(t, contactPage, Config{})
			el := doc.GetElementByID(tt.id)
			el.SetValue(tt.value)

			if got := b.ValidateField(el); got != tt.valid {
				t.Fatalf("ValidateField() = %v, want %v", got, tt.valid)
			}
			state, ok := b.State(el.Name())
			if !ok || state.Message != tt.message {
				t.Errorf("state = %+v, want message %q", state, tt.message)
			}
			if !tt.valid {
				if got := el.Parent().Query(".error-message").Text(); got != tt.message {
					t.Errorf("rendered message = %q, want %q", got, tt.message)
				}
			}
		})
	}
}

func TestValidateField_WithoutWrapper(t *testing.T) {
	doc, b := setup(t, contactPage, Config{})
	outside := doc.GetElementByID("outside")

	if b.ValidateField(outside) {
		t.Error("empty required field should be invalid even without a wrapper")
	}
	if len(doc.QueryAll(".error-message")) != 0 {
		t.Error("nothing should be rendered without a wrapper")
	}
}

func TestBlur_ValidatesOnlyTarget(t *testing.T) {
	successes, failures := 0, 0
	doc, _ := setup(t, contactPage, Config{
		OnSuccess: func(*dom.Element) { successes++ },
		OnError:   func(*dom.Element) { failures++ },
	})
	form := doc.Query("form")

	doc.GetElementByID("name").Blur()

	if !doc.GetElementByID("name").Parent().HasClass("error") {
		t.Error("blurred field should be marked")
	}
	if doc.GetElementByID("zip").Parent().HasClass("error") {
		t.Error("other fields must not be touched")
	}
	if form.HasClass("error") || form.HasClass("success") {
		t.Error("blur must not change the form classes")
	}
	if successes != 0 || failures != 0 {
		t.Error("blur must not invoke callbacks")
	}
}

func TestSubmit_Failure(t *testing.T) {
	var gotForm *dom.Element
	successes := 0
	rec := &recorder{}
	doc, _ := setup(t, contactPage, Config{
		OnSuccess: func(*dom.Element) { successes++ },
		OnError:   func(f *dom.Element) { gotForm = f },
		Observer:  rec,
	})
	form := doc.Query("form")
	form.AddClass("success")

	if form.RequestSubmit() {
		t.Error("submit must always be prevented")
	}
	if !form.HasClass("error") || form.HasClass("success") {
		t.Errorf("form classes = %v", form.Classes())
	}
	if !form.Equal(gotForm) || successes != 0 {
		t.Error("OnError should be called with the form, OnSuccess never")
	}

	if len(rec.submits) != 1 {
		t.Fatalf("submits observed = %d, want 1", len(rec.submits))
	}
	sub := rec.submits[0]
	if sub.Valid || sub.Form != "contact" || len(sub.Fields) != 6 {
		t.Errorf("submit result = %+v", sub)
	}
	if sub.Fields[0].Field != "name" || sub.Fields[0].State.Kind != MissingRequired {
		t.Errorf("first field = %+v", sub.Fields[0])
	}
	if len(rec.fields) != 6 || rec.fields[0].Trigger != TriggerSubmit {
		t.Errorf("field results = %d", len(rec.fields))
	}
}

func TestSubmit_Success(t *testing.T) {
	successes := 0
	doc, b := setup(t, contactPage, Config{
		OnSuccess: func(*dom.Element) { successes++ },
	})
	form := doc.Query("form")
	doc.GetElementByID("name").SetValue("Ana")

	form.AddClass("error")
	if !b.Validate(nil) {
		t.Fatal("Validate() = false, want true")
	}
	if !form.HasClass("success") || form.HasClass("error") {
		t.Errorf("form classes = %v", form.Classes())
	}
	if successes != 1 {
		t.Errorf("OnSuccess calls = %d, want 1", successes)
	}

	names := []string{}
	for _, f := range b.Fields() {
		names = append(names, f.Field)
	}
	if len(names) != 6 || names[0] != "name" || names[5] != "password2" {
		t.Errorf("Fields() = %v", names)
	}
}

func TestSubmit_OneRequiredEmptyOneValid(t *testing.T) {
	doc, b := setup(t, `<form>
		<div class="form-group"><input name="a" required></div>
		<div class="form-group"><input name="b" value="ok"></div>
	</form>`, Config{})
	form := doc.Query("form")

	if b.Validate(dom.NewEvent("submit")) {
		t.Error("Validate() = true, want false")
	}
	if !form.HasClass("error") || form.HasClass("success") {
		t.Errorf("form classes = %v", form.Classes())
	}
}

func TestSubmit_NoFieldsIsValid(t *testing.T) {
	doc, b := setup(t, `<form><p>nothing to check</p></form>`, Config{})
	ev := dom.NewEvent("submit")
	if !b.Validate(ev) {
		t.Error("a form without wrappers is vacuously valid")
	}
	if !ev.DefaultPrevented() {
		t.Error("default must be prevented on success too")
	}
	if !doc.Query("form").HasClass("success") {
		t.Error("expected success class")
	}
}

func TestConfig_Custom(t *testing.T) {
	doc, b := setup(t, `<form>
		<p class="field"><input name="a" required></p>
	</form>`, Config{
		ErrorClass:        "is-invalid",
		SuccessClass:      "is-valid",
		FieldSelector:     ".field",
		ErrorElementTag:   "small",
		ErrorElementClass: "hint",
		Messages:          Messages{Required: "obligatorio"},
	})

	b.Validate(nil)
	wrapper := doc.Query(".field")
	hint := wrapper.Query("small.hint")
	if hint == nil || hint.Text() != "obligatorio" {
		t.Fatalf("custom error node missing: %s", wrapper.OuterHTML())
	}
	if !wrapper.HasClass("is-invalid") || !doc.Query("form").HasClass("is-invalid") {
		t.Error("custom error class should be applied")
	}
	if got := b.Config().SuccessClass; got != "is-valid" {
		t.Errorf("SuccessClass = %q", got)
	}
}

func TestConfig_ClassLists(t *testing.T) {
	doc, b := setup(t, `<form>
		<div class="form-group"><input name="a" required></div>
	</form>`, Config{
		ErrorClass:        "error has-error",
		ErrorElementClass: "error-message small",
	})
	input := doc.Query("input")
	wrapper := doc.Query(".form-group")

	for i := 0; i < 3; i++ {
		b.ValidateField(input)
	}
	nodes := wrapper.QueryAll("span")
	if len(nodes) != 1 {
		t.Fatalf("error nodes after 3 passes = %d, want 1: %s", len(nodes), wrapper.OuterHTML())
	}
	if !nodes[0].HasClass("error-message") || !nodes[0].HasClass("small") {
		t.Errorf("error node classes = %v", nodes[0].Classes())
	}
	if !wrapper.HasClass("error") || !wrapper.HasClass("has-error") {
		t.Errorf("wrapper classes = %v", wrapper.Classes())
	}

	input.SetValue("x")
	b.ValidateField(input)
	if wrapper.HasClass("error") || wrapper.HasClass("has-error") {
		t.Errorf("wrapper classes after fix = %v", wrapper.Classes())
	}
	if nodes[0].Text() != "" {
		t.Errorf("error text = %q, want cleared", nodes[0].Text())
	}
}

func TestClassSelector(t *testing.T) {
	tests := map[string]string{
		"error-message":       ".error-message",
		"error-message small": ".error-message.small",
		"  hint \t extra  ":   ".hint.extra",
		"":                    "",
	}
	for in, want := range tests {
		if got := ClassSelector(in); got != want {
			t.Errorf("ClassSelector(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFields_UnnamedAndSharedNames(t *testing.T) {
	_, b := setup(t, `<form>
		<div class="form-group"><input required></div>
		<div class="form-group"><input value="x"></div>
		<div class="form-group"><input name="tel" required></div>
		<div class="form-group"><input name="tel" value="123"></div>
	</form>`, Config{})

	if b.Validate(nil) {
		t.Fatal("Validate() = true, want false")
	}
	fields := b.Fields()
	if len(fields) != 4 {
		t.Fatalf("Fields() = %d entries, want 4: %+v", len(fields), fields)
	}
	want := []struct {
		name  string
		valid bool
	}{
		{"field-1", false},
		{"field-2", true},
		{"tel", false},
		{"tel", true},
	}
	for i, w := range want {
		if fields[i].Field != w.name || fields[i].State.Valid != w.valid {
			t.Errorf("Fields()[%d] = %s valid=%v, want %s valid=%v",
				i, fields[i].Field, fields[i].State.Valid, w.name, w.valid)
		}
	}
	if s, ok := b.State("tel"); !ok || s.Valid {
		t.Errorf("State(tel) = %+v, %v; want the failing control", s, ok)
	}
}

func TestDetach(t *testing.T) {
	doc, b := setup(t, contactPage, Config{})
	b.Detach()

	form := doc.Query("form")
	if !form.RequestSubmit() {
		t.Error("detached form should no longer intercept submit")
	}
	if form.HasClass("error") {
		t.Error("detached form should not be validated")
	}
}
