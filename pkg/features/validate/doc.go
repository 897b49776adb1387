// Package validate binds declarative, attribute-driven validation to forms
// in a headless DOM.
//
// # Overview
//
// Attach binds a FieldValidator to a form. Constraints are read from the
// markup of each control:
//
//	<div class="form-group">
//	    <input id="email" type="email" required>
//	</div>
//	<div class="form-group">
//	    <input id="guests" type="number" min="1" max="12">
//	</div>
//	<div class="form-group">
//	    <input id="zip" pattern="\d{5}" data-pattern-error="five digits">
//	</div>
//	<div class="form-group">
//	    <input id="password2" type="password" data-confirm="password">
//	</div>
//
// Each control is validated when it loses focus, and every control is
// validated when the form is submitted:
//
//	b, err := validate.Attach(form, validate.Config{
//	    OnSuccess: func(form *dom.Element) { showThanks(form) },
//	})
//
// # Rules
//
// Rules run in a fixed order: required, email, min, max, pattern, confirm.
// Every rule is evaluated; when several fail, the message of the last one is
// shown. FieldState.Failed lists every failed rule for callers that want to
// report them all.
//
// # Rendering
//
// Each field wrapper gets at most one error node, created the first time the
// field fails and reused afterwards. Its text is cleared before every pass.
// The wrapper and the form carry the configured error and success classes.
//
// Check evaluates the same rules on any Field without a document.
package validate
