package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Host Tree Errors (E100-E199)
	// ============================================

	"E100": {
		Category: CategoryHost,
		Message:  "Stale host node",
		Detail:   "The node handle was released. A descriptor kept a reference to a host node after it was unmounted.",
	},
	"E101": {
		Category: CategoryHost,
		Message:  "Reference node is not a child of parent",
		Detail:   "insertBefore requires the reference node to be a direct child of the parent node.",
	},
	"E102": {
		Category: CategoryHost,
		Message:  "Insertion would create a cycle",
		Detail:   "A node cannot be inserted into itself or into one of its descendants.",
	},
	"E103": {
		Category: CategoryHost,
		Message:  "Unknown host node",
		Detail:   "The node handle does not belong to this document.",
	},

	// ============================================
	// Render Errors (E200-E299)
	// ============================================

	"E200": {
		Category: CategoryRender,
		Message:  "Component render panicked",
		Detail:   "A component's Render function panicked. Nodes placed before the failure stay in the host tree.",
	},
	"E201": {
		Category: CategoryRender,
		Message:  "Re-entrant render on container",
		Detail:   "Render was called on a container while a pass over the same container was still running.",
	},

	// ============================================
	// Config Errors (E300-E399)
	// ============================================

	"E300": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "The configuration file could not be parsed or failed validation.",
	},
	"E301": {
		Category: CategoryConfig,
		Message:  "Unsupported configuration format",
		Detail:   "Configuration files must end in .json or .toml.",
	},

	// ============================================
	// Input Errors (E400-E499)
	// ============================================

	"E400": {
		Category: CategoryInput,
		Message:  "Malformed tree document",
		Detail:   "The tree document is not valid JSON or contains an unknown node kind.",
	},

	// ============================================
	// Protocol Errors (E500-E599)
	// ============================================

	"E500": {
		Category: CategoryProtocol,
		Message:  "Invalid mutation frame",
		Detail:   "The binary mutation frame could not be decoded.",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Codes returns all registered codes in ascending order.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
