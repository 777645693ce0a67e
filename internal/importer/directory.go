package importer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/chriserin/px/internal/model"
	"github.com/chriserin/px/internal/parser"
)

const featureExt = ".feature"

// folder is one directory level of an import. Child folders keep the order
// in which they were first seen.
type folder struct {
	order        []string
	children     map[string]*folder
	files        []string
	featureFiles []featureFile
}

type featureFile struct {
	name    string
	content string
}

func newFolder() *folder {
	return &folder{children: make(map[string]*folder)}
}

func (f *folder) child(name string) *folder {
	c, ok := f.children[name]
	if !ok {
		c = newFolder()
		f.children[name] = c
		f.order = append(f.order, name)
	}
	return c
}

// DirectoryResult counts what a directory import planned and what failed.
type DirectoryResult struct {
	Features        int
	Scenarios       int
	FailedFeatures  int
	FailedScenarios int
}

// ImportDirectory recreates the folder tree of files as features under
// parentID (top level when nil). Folders become features, every file
// becomes a leaf feature, and the "Scenario:" lines of .feature files become
// its scenarios. The first path segment, the chosen directory itself, is
// dropped.
func (im *Importer) ImportDirectory(ctx context.Context, parentID *string, files []File) (DirectoryResult, error) {
	sorted := make([]File, len(files))
	copy(sorted, files)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	root := newFolder()
	for i, file := range sorted {
		im.addFile(root, file)
		im.report(Progress{Phase: PhaseReading, Current: i + 1, Total: len(sorted), Item: file.Path})
	}

	im.report(Progress{Phase: PhaseFeatures, Current: 1, Total: 3})
	var features []model.Feature
	var scenarios []model.Scenario
	im.flatten(root, parentID, &features, &scenarios)

	result := DirectoryResult{Features: len(features), Scenarios: len(scenarios)}

	var errs []error
	for _, err := range chunks(features, im.batchSize, func(batch []model.Feature) error {
		if err := im.sink.InsertFeatures(ctx, batch); err != nil {
			result.FailedFeatures += len(batch)
			im.log.Error("feature batch failed", zap.Int("size", len(batch)), zap.String("first", batch[0].Name), zap.Error(err))
			return fmt.Errorf("inserting features: %w", err)
		}
		return nil
	}) {
		errs = append(errs, err)
	}

	im.report(Progress{Phase: PhaseScenarios, Current: 2, Total: 3})
	for _, err := range chunks(scenarios, im.batchSize, func(batch []model.Scenario) error {
		if err := im.sink.InsertScenarios(ctx, batch); err != nil {
			result.FailedScenarios += len(batch)
			im.log.Error("scenario batch failed", zap.Int("size", len(batch)), zap.String("first", batch[0].Name), zap.Error(err))
			return fmt.Errorf("inserting scenarios: %w", err)
		}
		return nil
	}) {
		errs = append(errs, err)
	}

	im.report(Progress{Phase: PhaseDone, Current: 3, Total: 3})
	im.log.Info("directory imported",
		zap.Int("features", result.Features),
		zap.Int("scenarios", result.Scenarios),
		zap.Int("failed_features", result.FailedFeatures),
		zap.Int("failed_scenarios", result.FailedScenarios))
	return result, errors.Join(errs...)
}

func (im *Importer) addFile(root *folder, file File) {
	segments := strings.Split(strings.Trim(file.Path, "/"), "/")
	if len(segments) < 2 {
		im.log.Debug("skipping file outside the chosen directory", zap.String("path", file.Path))
		return
	}
	segments = segments[1:]

	current := root
	for _, dir := range segments[:len(segments)-1] {
		current = current.child(dir)
	}

	name := segments[len(segments)-1]
	if !strings.HasSuffix(name, featureExt) {
		current.files = append(current.files, name)
		return
	}

	var content string
	if data, err := file.Read(); err != nil {
		im.log.Warn("could not read feature file", zap.String("path", file.Path), zap.Error(err))
	} else {
		content = string(data)
	}
	current.featureFiles = append(current.featureFiles, featureFile{name: name, content: content})
}

// flatten walks f in pre-order: child folders first, then plain files, then
// feature files with their scenarios.
func (im *Importer) flatten(f *folder, parentID *string, features *[]model.Feature, scenarios *[]model.Scenario) {
	leaf := func(name string) string {
		id := im.sink.NewID()
		*features = append(*features, model.Feature{ID: id, Name: name, ParentID: parentID})
		return id
	}

	for _, name := range f.order {
		id := leaf(name)
		im.flatten(f.children[name], &id, features, scenarios)
	}
	for _, name := range f.files {
		leaf(name)
	}
	for _, ff := range f.featureFiles {
		id := leaf(ff.name)
		for _, title := range parser.ExtractScenarios(ff.content) {
			*scenarios = append(*scenarios, model.Scenario{ID: im.sink.NewID(), Name: title, FeatureID: id})
		}
	}
}
