package parser

import "strings"

const scenarioKeyword = "Scenario:"

// ExtractScenarios returns the titles of `Scenario:` lines in source order.
// Only the exact keyword counts: outlines, backgrounds and tags are dropped.
func ExtractScenarios(content string) []string {
	var names []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, scenarioKeyword) {
			continue
		}
		names = append(names, strings.TrimSpace(strings.TrimPrefix(trimmed, scenarioKeyword)))
	}
	return names
}
