package validate

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vango-dev/sitekit/internal/errors"
	"github.com/vango-dev/sitekit/pkg/dom"
	"golang.org/x/net/html"
)

// Config configures a form binding. Blank strings take the defaults from
// DefaultConfig.
type Config struct {
	// ErrorClass marks failing wrappers and a failing form (default: "error").
	ErrorClass string

	// SuccessClass marks a form that passed validation (default: "success").
	SuccessClass string

	// FieldSelector selects the wrapper around each control (default: ".form-group").
	FieldSelector string

	// ErrorElementTag is the tag of the error node (default: "span").
	ErrorElementTag string

	// ErrorElementClass is the class of the error node (default: "error-message").
	ErrorElementClass string

	// OnSuccess is called after a submit in which every field passed.
	OnSuccess func(form *dom.Element)

	// OnError is called after a submit in which any field failed.
	OnError func(form *dom.Element)

	// Messages overrides the rule messages.
	Messages Messages

	// Observer receives every field and submit result.
	Observer Observer

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		ErrorClass:        "error",
		SuccessClass:      "success",
		FieldSelector:     ".form-group",
		ErrorElementTag:   "span",
		ErrorElementClass: "error-message",
		Messages:          DefaultMessages(),
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.ErrorClass == "" {
		c.ErrorClass = d.ErrorClass
	}
	if c.SuccessClass == "" {
		c.SuccessClass = d.SuccessClass
	}
	if c.FieldSelector == "" {
		c.FieldSelector = d.FieldSelector
	}
	if c.ErrorElementTag == "" {
		c.ErrorElementTag = d.ErrorElementTag
	}
	if c.ErrorElementClass == "" {
		c.ErrorElementClass = d.ErrorElementClass
	}
	c.Messages = c.Messages.withDefaults()
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// Binding is a FieldValidator attached to one form.
type Binding struct {
	form          *dom.Element
	cfg           Config
	rules         *Rules
	errorSelector string
	logger        *slog.Logger
	results       map[*html.Node]FieldResult
	order         []*html.Node
	removers      []func()
}

// ClassSelector turns a space-separated class list into a compound selector
// matching elements that carry every class, e.g. "a b" becomes ".a.b".
func ClassSelector(classes string) string {
	fields := strings.Fields(classes)
	if len(fields) == 0 {
		return ""
	}
	return "." + strings.Join(fields, ".")
}

// Attach binds validation to form. It disables native validation, listens
// for submit on the form and for blur on every control, and runs no
// validation itself.
//
// Every pattern attribute in the form is compiled up front; an invalid
// pattern or selector fails Attach and nothing is registered.
func Attach(form *dom.Element, cfg Config) (*Binding, error) {
	cfg = cfg.withDefaults()
	doc := form.Document()

	if _, err := doc.Compile(cfg.FieldSelector); err != nil {
		return nil, errors.New("E202").WithDetailf("field selector %q", cfg.FieldSelector).Wrap(err)
	}
	errorSelector := ClassSelector(cfg.ErrorElementClass)
	if _, err := doc.Compile(errorSelector); err != nil {
		return nil, errors.New("E202").WithDetailf("error element class %q", cfg.ErrorElementClass).Wrap(err)
	}

	rules := NewRules(cfg.Messages)
	controls := form.QueryAll(dom.Controls)
	for _, c := range controls {
		if p, ok := c.Attr("pattern"); ok {
			if _, err := rules.Compile(p); err != nil {
				return nil, errors.New("E201").WithDetailf("field %q", fieldName(form, c)).Wrap(err)
			}
		}
	}

	b := &Binding{
		form:          form,
		cfg:           cfg,
		rules:         rules,
		errorSelector: errorSelector,
		logger:        cfg.Logger.With("component", "validate", "form", formName(form)),
		results:       make(map[*html.Node]FieldResult),
	}

	form.SetAttr("novalidate", "")
	b.removers = append(b.removers, form.AddEventListener("submit", func(ev *dom.Event) {
		b.Validate(ev)
	}))
	for _, c := range controls {
		b.removers = append(b.removers, c.AddEventListener("blur", func(*dom.Event) {
			b.validateField(c, TriggerBlur)
		}))
	}

	b.logger.Debug("form attached", "controls", len(controls))
	return b, nil
}

// Form returns the bound form.
func (b *Binding) Form() *dom.Element { return b.form }

// Config returns the effective configuration.
func (b *Binding) Config() Config { return b.cfg }

// Detach removes the listeners registered by Attach.
func (b *Binding) Detach() {
	for _, remove := range b.removers {
		remove()
	}
	b.removers = nil
}

// ValidateField validates one control, renders its error state on the
// enclosing wrapper and reports whether it is valid.
func (b *Binding) ValidateField(input *dom.Element) bool {
	return b.validateField(input, TriggerDirect)
}

func (b *Binding) validateField(input *dom.Element, trigger Trigger) bool {
	state := b.check(input)
	b.render(input, state)

	name := fieldName(b.form, input)
	result := FieldResult{
		Form:    formName(b.form),
		Field:   name,
		Trigger: trigger,
		State:   state,
	}
	key := input.Node()
	if _, seen := b.results[key]; !seen {
		b.order = append(b.order, key)
	}
	b.results[key] = result

	b.logger.Debug("field validated",
		"field", name,
		"trigger", string(trigger),
		"valid", state.Valid,
		"rule", state.Kind.String(),
	)
	if b.cfg.Observer != nil {
		b.cfg.Observer.ObserveField(result)
	}
	return state.Valid
}

func (b *Binding) check(input *dom.Element) FieldState {
	doc := input.Document()
	state, err := b.rules.Check(input, func(id string) (Field, bool) {
		el := doc.GetElementByID(id)
		if el == nil {
			return nil, false
		}
		return el, true
	})
	if err != nil {
		b.logger.Error("pattern rule skipped", "field", fieldName(b.form, input), "error", err)
	}
	return state
}

// render clears the wrapper's error state and, on failure, writes the
// message into the wrapper's error node.
func (b *Binding) render(input *dom.Element, state FieldState) {
	wrapper := input.Closest(b.cfg.FieldSelector)
	if wrapper == nil {
		return
	}

	errNode := wrapper.Query(b.errorSelector)
	if errNode != nil {
		errNode.SetText("")
	}
	wrapper.RemoveClass(b.cfg.ErrorClass)

	if state.Valid {
		return
	}
	if errNode == nil {
		errNode = wrapper.Append(b.cfg.ErrorElementTag)
		errNode.AddClass(b.cfg.ErrorElementClass)
	}
	errNode.SetText(state.Message)
	wrapper.AddClass(b.cfg.ErrorClass)
}

// Validate is the submit handler. It always prevents the default submission,
// validates the first control of every wrapper, marks the form and calls
// OnSuccess or OnError. ev may be nil.
func (b *Binding) Validate(ev *dom.Event) bool {
	if ev != nil {
		ev.PreventDefault()
	}
	start := time.Now()

	valid := true
	var results []FieldResult
	for _, wrapper := range b.form.QueryAll(b.cfg.FieldSelector) {
		input := wrapper.Query(dom.Controls)
		if input == nil {
			continue
		}
		if !b.validateField(input, TriggerSubmit) {
			valid = false
		}
		results = append(results, b.results[input.Node()])
	}

	if valid {
		b.form.AddClass(b.cfg.SuccessClass)
		b.form.RemoveClass(b.cfg.ErrorClass)
	} else {
		b.form.AddClass(b.cfg.ErrorClass)
		b.form.RemoveClass(b.cfg.SuccessClass)
	}

	b.logger.Info("form validated", "valid", valid, "fields", len(results))
	if b.cfg.Observer != nil {
		b.cfg.Observer.ObserveSubmit(SubmitResult{
			Form:   formName(b.form),
			Valid:  valid,
			Fields: results,
			Start:  start,
			End:    time.Now(),
		})
	}

	if valid {
		if b.cfg.OnSuccess != nil {
			b.cfg.OnSuccess(b.form)
		}
	} else if b.cfg.OnError != nil {
		b.cfg.OnError(b.form)
	}
	return valid
}

// State returns the last computed state of the named field. When several
// controls share the name, the first failing one is reported.
func (b *Binding) State(name string) (FieldState, bool) {
	var (
		found FieldResult
		ok    bool
	)
	for _, key := range b.order {
		r := b.results[key]
		if r.Field != name {
			continue
		}
		if !ok || (found.State.Valid && !r.State.Valid) {
			found, ok = r, true
		}
	}
	return found.State, ok
}

// Fields returns the last computed state of every validated control, in the
// order they were first validated. Controls sharing a name are listed
// separately.
func (b *Binding) Fields() []FieldResult {
	out := make([]FieldResult, 0, len(b.order))
	for _, key := range b.order {
		out = append(out, b.results[key])
	}
	return out
}

// fieldName is the control's name or id, or "field-N" for its 1-based
// position among the form's controls.
func fieldName(form, input *dom.Element) string {
	if n := input.Name(); n != "" {
		return n
	}
	for i, c := range form.QueryAll(dom.Controls) {
		if c.Equal(input) {
			return fmt.Sprintf("field-%d", i+1)
		}
	}
	return "field"
}

func formName(form *dom.Element) string {
	if id := form.ID(); id != "" {
		return id
	}
	if n := form.GetAttr("name"); n != "" {
		return n
	}
	return "form"
}
