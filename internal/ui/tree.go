package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss/tree"

	"github.com/chriserin/px/internal/model"
)

func newTree(root string) *tree.Tree {
	return tree.Root(root).
		RootStyle(rootStyle).
		EnumeratorStyle(enumStyle)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// ElementLabel renders one element as "Name  TYPE=value  action [id]".
func ElementLabel(e model.Element) string {
	label := fmt.Sprintf("%s  %s=%s  %s", e.Name, e.SelectorType, e.SelectorValue, e.ActionType)
	if e.ActionType == model.ActionTypeText && e.ActionValue != "" {
		label += fmt.Sprintf(" %q", e.ActionValue)
	}
	return label + " " + tag(e.ID)
}

// ProjectTree prints projects with their pages and elements.
func ProjectTree(w io.Writer, projects []model.Project) {
	if len(projects) == 0 {
		fmt.Fprintln(w, "No projects yet. Create one with `px project add <name>`.")
		return
	}
	t := newTree("Projects")
	for _, p := range projects {
		pt := tree.Root(fmt.Sprintf("%s (%s • %s) %s",
			nameStyle.Render(p.Name),
			plural(len(p.Pages), "page", "pages"),
			plural(p.ElementCount(), "element", "elements"),
			tag(p.ID)))
		for _, pg := range p.Pages {
			pgt := tree.Root(fmt.Sprintf("%s (%s) %s", pg.Name, plural(len(pg.Elements), "element", "elements"), tag(pg.ID)))
			for _, e := range pg.Elements {
				pgt.Child(ElementLabel(e))
			}
			pt.Child(pgt)
		}
		t.Child(pt)
	}
	fmt.Fprintln(w, t.String())
}

type featureCounts struct {
	features  int
	scenarios int
}

func countBelow(f model.Feature) featureCounts {
	c := featureCounts{features: len(f.Features), scenarios: len(f.Scenarios)}
	for _, sub := range f.Features {
		sc := countBelow(sub)
		c.features += sc.features
		c.scenarios += sc.scenarios
	}
	return c
}

func featureNode(f model.Feature) *tree.Tree {
	c := countBelow(f)
	ft := tree.Root(fmt.Sprintf("%s (%s • %s) %s",
		nameStyle.Render(f.Name),
		plural(c.features, "feature", "features"),
		plural(c.scenarios, "scenario", "scenarios"),
		tag(f.ID)))
	for _, sub := range f.Features {
		ft.Child(featureNode(sub))
	}
	for _, sc := range f.Scenarios {
		ft.Child(fmt.Sprintf("◦ %s (%s) %s", sc.Name, plural(len(sc.Steps), "step", "steps"), tag(sc.ID)))
	}
	return ft
}

// FeatureTree prints the feature forest. Nested features come before the
// scenarios of their parent.
func FeatureTree(w io.Writer, forest []model.Feature) {
	if len(forest) == 0 {
		fmt.Fprintln(w, "No features yet. Create one with `px feature add`.")
		return
	}
	t := newTree("Features")
	for _, f := range forest {
		t.Child(featureNode(f))
	}
	fmt.Fprintln(w, t.String())
}

// StepLabel renders a step as "Page, Action, Element", with the value after
// an equals sign when there is one.
func StepLabel(st model.Step) string {
	label := string(st.Action) + ", " + st.ElementRef
	if page, element, ok := model.SplitElementRef(st.ElementRef); ok {
		label = page + ", " + string(st.Action) + ", " + element
	}
	if st.ActionValue != "" {
		label += " = " + st.ActionValue
	}
	return label
}

// ScenarioDetail prints a scenario and its numbered steps.
func ScenarioDetail(w io.Writer, sc model.Scenario) {
	fmt.Fprintf(w, "%s %s\n", nameStyle.Render(sc.Name), tag(sc.ID))
	if len(sc.Steps) == 0 {
		fmt.Fprintln(w, "  no steps")
		return
	}
	for i, st := range sc.Steps {
		fmt.Fprintf(w, "  %d. %s %s\n", i+1, StepLabel(st), tag(st.ID))
	}
}

// ElementList prints search results one per line.
func ElementList(w io.Writer, elements []model.Element) {
	if len(elements) == 0 {
		fmt.Fprintln(w, "No elements found")
		return
	}
	for _, e := range elements {
		fmt.Fprintln(w, ElementLabel(e))
	}
}
