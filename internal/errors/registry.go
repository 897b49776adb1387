package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Setup Errors (E200-E299)
	// ============================================

	"E201": {
		Category:   CategorySetup,
		Message:    "Invalid field pattern",
		Suggestion: "Check the field's pattern attribute; it must be a valid regular expression.",
	},
	"E202": {
		Category:   CategorySetup,
		Message:    "Invalid selector",
		Suggestion: "Selectors use CSS syntax, e.g. \".form-group\" or \"form#contact\".",
	},
	"E203": {
		Category: CategorySetup,
		Message:  "Element not attached to a document",
	},

	// ============================================
	// Config Errors (E300-E399)
	// ============================================

	"E301": {
		Category:   CategoryConfig,
		Message:    "Cannot read configuration",
		Suggestion: "Supported formats are .json, .yaml and .yml.",
	},
	"E302": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
	},

	// ============================================
	// Page Errors (E400-E499)
	// ============================================

	"E401": {
		Category: CategoryPage,
		Message:  "Cannot load page",
	},
	"E402": {
		Category:   CategoryPage,
		Message:    "Form not found",
		Suggestion: "Pass --form with a selector that matches a form on the page.",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
