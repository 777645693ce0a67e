package parser

import (
	"regexp"
	"strings"

	"github.com/chriserin/px/internal/model"
)

// PageObject is what a Selenium-style page-object class contributes to a page.
type PageObject struct {
	PageName string
	Elements []ParsedElement
	Failed   []string // identifiers declared as locators whose value could not be read
}

type ParsedElement struct {
	Name          string
	SelectorType  model.SelectorType
	SelectorValue string
}

var (
	// public class LoginModel
	classPattern = regexp.MustCompile(`public class (\w+)Model`)

	// public static By submitButton = By.id("submit");
	// Groups: 1 identifier, 2 locator kind, 3 escaped string literal body.
	locatorPattern = regexp.MustCompile(`public static By ([\p{L}\w]+)\s*=\s*By\.(\w+)\s*\("((?:[^"\\]|\\.)*)"\)`)

	declarationPattern = regexp.MustCompile(`public static By ([\p{L}\w]+)`)
	escapePattern      = regexp.MustCompile(`\\(.)`)
)

// ParsePageObject reads a Java page-object class. It returns nil when the
// source has no `public class <Name>Model` declaration.
func ParsePageObject(content string) *PageObject {
	m := classPattern.FindStringSubmatch(content)
	if m == nil {
		return nil
	}
	po := &PageObject{PageName: m[1]}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "/*") {
			continue
		}
		if !strings.Contains(trimmed, "By.") || !strings.Contains(trimmed, "public static") {
			continue
		}

		if lm := locatorPattern.FindStringSubmatch(trimmed); lm != nil {
			po.Elements = append(po.Elements, ParsedElement{
				Name:          Humanize(lm[1]),
				SelectorType:  locatorSelector(lm[2]),
				SelectorValue: escapePattern.ReplaceAllString(lm[3], "$1"),
			})
			continue
		}
		if dm := declarationPattern.FindStringSubmatch(trimmed); dm != nil {
			po.Failed = append(po.Failed, dm[1])
		}
	}

	return po
}

func locatorSelector(kind string) model.SelectorType {
	switch kind {
	case "cssSelector":
		return model.SelectorCSS
	case "xpath":
		return model.SelectorXPath
	default:
		return model.SelectorID
	}
}

// Humanize turns a camelCase identifier into "Title Case" words:
// a space goes before every ASCII upper-case letter and an ASCII first
// letter is capitalized. "submitButton" becomes "Submit Button", "id"
// becomes "Id". Non-ASCII letters are copied as they are.
func Humanize(name string) string {
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		if c := name[i]; c >= 'A' && c <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteByte(name[i])
	}
	out := strings.TrimSpace(b.String())
	if out != "" && out[0] >= 'a' && out[0] <= 'z' {
		return string(out[0]-'a'+'A') + out[1:]
	}
	return out
}
