package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/chriserin/px/internal/model"
	"github.com/chriserin/px/internal/parser"
)

const javaExt = ".java"

// FailedElements lists the locator declarations of one file whose value
// could not be read.
type FailedElements struct {
	File     string
	PageName string
	Elements []string
}

// SkippedFile is a file that produced no page.
type SkippedFile struct {
	File   string
	Reason string
}

// PageReport summarizes a page-object import.
type PageReport struct {
	Pages    []model.Page
	Elements int
	Skipped  []SkippedFile
	Failed   []FailedElements
}

// ImportPageObjects creates one page per Java page-object file in the
// project, with the file's locators as click elements. Non-Java files,
// files without a model class and files whose page name is already taken
// are skipped.
func (im *Importer) ImportPageObjects(ctx context.Context, projectID string, files []File) (PageReport, error) {
	var report PageReport

	existing, err := im.sink.PageNames(ctx, projectID)
	if err != nil {
		return report, fmt.Errorf("listing pages: %w", err)
	}
	taken := make(map[string]bool, len(existing))
	for _, name := range existing {
		taken[name] = true
	}

	var (
		buffer []model.Element
		errs   []error
	)
	flush := func() {
		if len(buffer) == 0 {
			return
		}
		if err := im.sink.InsertElements(ctx, buffer); err != nil {
			im.log.Error("element batch failed", zap.Int("size", len(buffer)), zap.Error(err))
			errs = append(errs, fmt.Errorf("inserting elements: %w", err))
		} else {
			report.Elements += len(buffer)
		}
		buffer = nil
	}

	for i, file := range files {
		im.report(Progress{Phase: PhaseReading, Current: i + 1, Total: len(files), Item: file.Name()})

		if !strings.HasSuffix(file.Name(), javaExt) {
			continue
		}

		data, err := file.Read()
		if err != nil {
			im.log.Warn("could not read file", zap.String("file", file.Name()), zap.Error(err))
			report.Skipped = append(report.Skipped, SkippedFile{File: file.Name(), Reason: err.Error()})
			continue
		}

		po := parser.ParsePageObject(string(data))
		if po == nil {
			im.log.Warn("no page-object class found", zap.String("file", file.Name()))
			report.Skipped = append(report.Skipped, SkippedFile{File: file.Name(), Reason: "no page-object class"})
			continue
		}

		if len(po.Failed) > 0 {
			report.Failed = append(report.Failed, FailedElements{File: file.Name(), PageName: po.PageName, Elements: po.Failed})
		}

		if taken[po.PageName] {
			report.Skipped = append(report.Skipped, SkippedFile{
				File:   file.Name(),
				Reason: fmt.Sprintf("page %q already exists", po.PageName),
			})
			continue
		}

		page, err := im.sink.CreatePage(ctx, projectID, po.PageName)
		if err != nil {
			im.log.Error("creating page failed", zap.String("file", file.Name()), zap.String("page", po.PageName), zap.Error(err))
			errs = append(errs, fmt.Errorf("creating page %q: %w", po.PageName, err))
			continue
		}
		taken[po.PageName] = true
		report.Pages = append(report.Pages, page)

		for _, pe := range po.Elements {
			buffer = append(buffer, model.Element{
				Name:          pe.Name,
				PageID:        page.ID,
				SelectorType:  pe.SelectorType,
				SelectorValue: pe.SelectorValue,
				ActionType:    model.ActionClick,
			})
		}
		if len(buffer) >= im.batchSize {
			flush()
		}
	}
	flush()

	im.report(Progress{Phase: PhaseDone, Current: len(files), Total: len(files)})
	im.log.Info("page objects imported",
		zap.Int("pages", len(report.Pages)),
		zap.Int("elements", report.Elements),
		zap.Int("skipped", len(report.Skipped)))
	return report, errors.Join(errs...)
}
