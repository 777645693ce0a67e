package model

import (
	"fmt"
	"strings"
)

// UniqueName returns base if no sibling uses it, otherwise "base N" with the
// smallest N >= 1 that is free. The probe runs against a snapshot of sibling
// names, so two clients adding at the same time can still pick the same name.
func UniqueName(base string, existing []string) string {
	taken := make(map[string]bool, len(existing))
	for _, name := range existing {
		taken[name] = true
	}
	if !taken[base] {
		return base
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s %d", base, n)
		if !taken[candidate] {
			return candidate
		}
	}
}

// FormatElementRef builds the reference a step stores for a page element.
func FormatElementRef(page, element string) string {
	return page + "." + element
}

// SplitElementRef splits "<Page>.<Element>" at the first dot.
func SplitElementRef(ref string) (page, element string, ok bool) {
	page, element, ok = strings.Cut(ref, ".")
	if !ok || page == "" || element == "" {
		return "", "", false
	}
	return page, element, true
}
