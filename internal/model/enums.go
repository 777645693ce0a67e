package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownSelector = errors.New("unknown selector type")
	ErrUnknownAction   = errors.New("unknown action")
)

// SelectorType is the strategy used to locate an element.
type SelectorType string

const (
	SelectorID    SelectorType = "ID"
	SelectorClass SelectorType = "Class"
	SelectorName  SelectorType = "Name"
	SelectorXPath SelectorType = "XPath"
	SelectorCSS   SelectorType = "CSS Selector"
)

var selectorAliases = map[string]SelectorType{
	"id":           SelectorID,
	"class":        SelectorClass,
	"name":         SelectorName,
	"xpath":        SelectorXPath,
	"css":          SelectorCSS,
	"cssselector":  SelectorCSS,
	"css selector": SelectorCSS,
}

// ParseSelectorType accepts the canonical labels as well as the lower-case
// values written by older clients ("id", "css", "cssSelector", ...).
func ParseSelectorType(s string) (SelectorType, error) {
	if t, ok := selectorAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownSelector, s)
}

// SelectorTypes lists the canonical selector labels in display order.
func SelectorTypes() []SelectorType {
	return []SelectorType{SelectorID, SelectorClass, SelectorName, SelectorXPath, SelectorCSS}
}

// ActionType is the interaction applied to a page element.
type ActionType string

const (
	ActionClick    ActionType = "click"
	ActionTypeText ActionType = "type"
	ActionHover    ActionType = "hover"
	ActionClear    ActionType = "clear"
	ActionSelect   ActionType = "select"
)

func ParseActionType(s string) (ActionType, error) {
	switch t := ActionType(strings.ToLower(strings.TrimSpace(s))); t {
	case ActionClick, ActionTypeText, ActionHover, ActionClear, ActionSelect:
		return t, nil
	}
	return "", fmt.Errorf("%w type %q", ErrUnknownAction, s)
}

// StepAction is the richer action vocabulary of scenario steps.
type StepAction string

const (
	StepClick         StepAction = "Click"
	StepSendKeys      StepAction = "Send Keys"
	StepClear         StepAction = "Clear"
	StepWaitText      StepAction = "Wait Text"
	StepShouldSee     StepAction = "Should See"
	StepClickListItem StepAction = "Click List Item"
	StepCheckListItem StepAction = "Check List Item"
)

// StepActions lists every step action in display order.
func StepActions() []StepAction {
	return []StepAction{
		StepClick, StepSendKeys, StepClear, StepWaitText,
		StepShouldSee, StepClickListItem, StepCheckListItem,
	}
}

// ParseStepAction matches a step action label case-insensitively.
func ParseStepAction(s string) (StepAction, error) {
	s = strings.TrimSpace(s)
	for _, a := range StepActions() {
		if strings.EqualFold(string(a), s) {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownAction, s)
}

// NeedsValue reports whether the action carries a value.
func (a StepAction) NeedsValue() bool {
	switch a {
	case StepSendKeys, StepWaitText, StepClickListItem, StepCheckListItem:
		return true
	}
	return false
}
