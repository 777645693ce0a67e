package ui

import (
	"fmt"
	"io"

	"github.com/chriserin/px/internal/explorer"
	"github.com/chriserin/px/internal/importer"
)

var phaseLabels = map[importer.Phase]string{
	importer.PhaseReading:   "reading",
	importer.PhaseFeatures:  "creating features",
	importer.PhaseScenarios: "creating scenarios",
	importer.PhaseDone:      "done",
}

// ProgressLine prints one progress update. On a terminal the line is
// rewritten in place; otherwise each update gets its own line.
func ProgressLine(w io.Writer, p importer.Progress, tty bool) {
	line := fmt.Sprintf("[%d/%d] %s", p.Current, p.Total, phaseLabels[p.Phase])
	if p.Item != "" {
		line += " " + idStyle.Render(p.Item)
	}
	if !tty {
		fmt.Fprintln(w, line)
		return
	}
	fmt.Fprint(w, "\r\033[K"+line)
	if p.Phase == importer.PhaseDone {
		fmt.Fprintln(w)
	}
}

func DirectoryReport(w io.Writer, r importer.DirectoryResult) {
	fmt.Fprintf(w, "imported %s and %s\n",
		plural(r.Features-r.FailedFeatures, "feature", "features"),
		plural(r.Scenarios-r.FailedScenarios, "scenario", "scenarios"))
	if r.FailedFeatures > 0 || r.FailedScenarios > 0 {
		WarnLine(w, fmt.Sprintf("%d features and %d scenarios could not be written", r.FailedFeatures, r.FailedScenarios))
	}
}

func PageReport(w io.Writer, r importer.PageReport) {
	for _, p := range r.Pages {
		NewLine(w, "page", p.Name, p.ID)
	}
	for _, s := range r.Skipped {
		WarnLine(w, fmt.Sprintf("skipped %s: %s", s.File, s.Reason))
	}
	fmt.Fprintf(w, "imported %s with %s\n",
		plural(len(r.Pages), "page", "pages"),
		plural(r.Elements, "element", "elements"))
	if len(r.Failed) == 0 {
		return
	}
	fmt.Fprintln(w, "The following elements could not be read:")
	for _, f := range r.Failed {
		fmt.Fprintf(w, "%s (%s):\n", f.File, f.PageName)
		for _, name := range f.Elements {
			fmt.Fprintf(w, "  - %s\n", name)
		}
	}
}

func StatusCounts(w io.Writer, c explorer.Counts) {
	fmt.Fprintf(w, "Projects:  %d\n", c.Projects)
	fmt.Fprintf(w, "  Pages:    %d\n", c.Pages)
	fmt.Fprintf(w, "  Elements: %d\n", c.Elements)
	fmt.Fprintf(w, "Features:  %d\n", c.Features)
	fmt.Fprintf(w, "  Scenarios: %d\n", c.Scenarios)
	fmt.Fprintf(w, "  Steps:     %d\n", c.Steps)
}
