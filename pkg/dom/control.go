package dom

import "strings"

// Controls is the selector for form controls.
const Controls = "input, select, textarea"

// Value returns the current value of a form control.
//
// Inputs keep their value in the value attribute, textareas in their text
// and selects in the selected option (or the first option when none is).
func (e *Element) Value() string {
	switch e.Tag() {
	case "textarea":
		return e.Text()
	case "select":
		opt := e.Query("option[selected]")
		if opt == nil {
			opt = e.Query("option")
		}
		if opt == nil {
			return ""
		}
		return opt.optionValue()
	case "option":
		return e.optionValue()
	default:
		return e.GetAttr("value")
	}
}

func (e *Element) optionValue() string {
	if v, ok := e.Attr("value"); ok {
		return v
	}
	return strings.TrimSpace(e.Text())
}

// SetValue sets the value of a form control.
func (e *Element) SetValue(value string) {
	switch e.Tag() {
	case "textarea":
		e.SetText(value)
	case "select":
		for _, opt := range e.QueryAll("option") {
			if opt.optionValue() == value {
				opt.SetAttr("selected", "")
			} else {
				opt.RemoveAttr("selected")
			}
		}
	default:
		e.SetAttr("value", value)
	}
}

// Type returns the control type the way HTMLInputElement.type does:
// lowercase, defaulting to "text" for inputs.
func (e *Element) Type() string {
	switch e.Tag() {
	case "input":
		t := strings.ToLower(strings.TrimSpace(e.GetAttr("type")))
		if t == "" {
			return "text"
		}
		return t
	case "select":
		if e.HasAttr("multiple") {
			return "select-multiple"
		}
		return "select-one"
	case "textarea":
		return "textarea"
	case "button":
		t := strings.ToLower(e.GetAttr("type"))
		if t == "" {
			return "submit"
		}
		return t
	}
	return ""
}

// IsControl reports whether e is an input, select or textarea.
func (e *Element) IsControl() bool {
	switch e.Tag() {
	case "input", "select", "textarea":
		return true
	}
	return false
}

// Name returns the control's name, falling back to its id.
func (e *Element) Name() string {
	if n := e.GetAttr("name"); n != "" {
		return n
	}
	return e.ID()
}
