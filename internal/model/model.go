package model

import "time"

// Project is the root of the page-object hierarchy.
type Project struct {
	ID        string
	Name      string
	CreatedAt time.Time
	Pages     []Page
}

type Page struct {
	ID        string
	Name      string
	ProjectID string
	CreatedAt time.Time
	Elements  []Element
}

// ElementCount returns the number of elements across all pages.
func (p Project) ElementCount() int {
	n := 0
	for _, page := range p.Pages {
		n += len(page.Elements)
	}
	return n
}

// Element is a single locatable UI element on a page.
type Element struct {
	ID            string
	Name          string
	PageID        string
	SelectorType  SelectorType
	SelectorValue string
	ActionType    ActionType
	ActionValue   string
	CreatedAt     time.Time
}

// Normalize clears the action value unless the action types text.
func (e *Element) Normalize() {
	if e.ActionType != ActionTypeText {
		e.ActionValue = ""
	}
}

// Feature is a node in the cucumber forest. Root features have a nil ParentID.
type Feature struct {
	ID        string
	Name      string
	ParentID  *string
	CreatedAt time.Time
	Features  []Feature
	Scenarios []Scenario
}

type Scenario struct {
	ID        string
	Name      string
	FeatureID string
	CreatedAt time.Time
	Steps     []Step
}

// Step is a scenario element: an action bound to a page element by reference.
type Step struct {
	ID          string
	ScenarioID  string
	ElementRef  string // "<Page>.<Element>"
	Action      StepAction
	ActionValue string
	CreatedAt   time.Time
}
