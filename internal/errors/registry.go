package errors

// Registered error codes.
const (
	CodeElementNotFound = "E100"
	CodeObserverFailed  = "E101"
	CodeJsError         = "E102"
	CodeBehaviorFailed  = "E110"
	CodeBehaviorPanic   = "E111"
	CodeInvalidSelector = "E120"
	CodeInvalidGeometry = "E121"
	CodeInvalidConfig   = "E200"
	CodeConfigNotFound  = "E201"
	CodeConfigParse     = "E202"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Kind     Kind
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Structural Errors (E100-E109)
	// ============================================

	CodeElementNotFound: {
		Kind:     KindElementNotFound,
		Category: CategoryStructural,
		Message:  "Element not found",
		Detail:   "The root container the scanner observes is missing. Behaviours cannot be attached without it.",
	},
	CodeObserverFailed: {
		Kind:     KindObserverFailed,
		Category: CategoryStructural,
		Message:  "Mutation observer failed",
		Detail:   "The mutation observer could not be created or attached to the root container. Elements inserted later would never be attached.",
	},
	CodeJsError: {
		Kind:     KindJsError,
		Category: CategoryStructural,
		Message:  "Host environment error",
		Detail:   "The host environment did not provide a usable document.",
	},

	// ============================================
	// Per-element Errors (E110-E119)
	// ============================================

	CodeBehaviorFailed: {
		Kind:     KindBehaviorFailed,
		Category: CategoryElement,
		Message:  "Behavior error",
		Detail:   "A behaviour returned an error while attaching to one element. The element keeps its attachment marker and scanning continues.",
	},
	CodeBehaviorPanic: {
		Kind:     KindBehaviorFailed,
		Category: CategoryElement,
		Message:  "Behavior panicked",
		Detail:   "A behaviour panicked while attaching to one element. The panic was recovered and scanning continues.",
	},

	// ============================================
	// Contract Errors (E120-E129)
	// ============================================

	CodeInvalidSelector: {
		Kind:     KindInvalidSelector,
		Category: CategoryContract,
		Message:  "Invalid selector",
		Detail:   "Marker attributes must be plain attribute names such as data-modal.",
	},
	CodeInvalidGeometry: {
		Kind:     KindInvalidConfig,
		Category: CategoryContract,
		Message:  "Invalid geometry",
		Detail:   "Item and viewport heights must be positive and finite; overscan must not be negative.",
	},

	// ============================================
	// Config Errors (E200-E299)
	// ============================================

	CodeInvalidConfig: {
		Kind:     KindInvalidConfig,
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "",
	},
	CodeConfigNotFound: {
		Kind:     KindInvalidConfig,
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "",
	},
	CodeConfigParse: {
		Kind:     KindInvalidConfig,
		Category: CategoryConfig,
		Message:  "Configuration file could not be parsed",
		Detail:   "",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Codes returns every registered code.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}
