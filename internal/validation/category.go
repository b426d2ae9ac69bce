package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var categoryPathRegex = regexp.MustCompile(`^[a-z0-9-]{1,32}$`)

// Top-level route segments a category path would shadow.
var reservedCategoryPaths = map[string]struct{}{
	"admin":      {},
	"categories": {},
	"comments":   {},
	"health":     {},
	"metrics":    {},
	"posts":      {},
	"swagger":    {},
}

// ValidateCategoryPath validates category path format and reserved names.
func ValidateCategoryPath(path string) error {
	if !categoryPathRegex.MatchString(path) {
		return fmt.Errorf("path must be 1-32 characters and contain only lowercase letters, numbers, and hyphens")
	}

	if strings.HasPrefix(path, "-") || strings.HasSuffix(path, "-") {
		return fmt.Errorf("path cannot start or end with a hyphen")
	}

	if _, exists := reservedCategoryPaths[path]; exists {
		return fmt.Errorf("path %q is reserved", path)
	}

	return nil
}
