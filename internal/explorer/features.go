package explorer

import (
	"context"
	"fmt"
	"strings"

	"github.com/chriserin/px/internal/model"
	"github.com/chriserin/px/internal/store"
)

const (
	newFeatureName  = "New Feature"
	newScenarioName = "New Scenario"
)

func featureFromRow(r store.Row) model.Feature {
	return model.Feature{
		ID:        r.String("id"),
		Name:      r.String("name"),
		ParentID:  r.NullString("parent_feature_id"),
		CreatedAt: parseTime(r.String("created_at")),
	}
}

func scenarioFromRow(r store.Row) model.Scenario {
	return model.Scenario{
		ID:        r.String("id"),
		Name:      r.String("name"),
		FeatureID: r.String("feature_id"),
		CreatedAt: parseTime(r.String("created_at")),
	}
}

func stepFromRow(r store.Row) model.Step {
	action := model.StepAction(r.String("action_type"))
	if action == "" {
		action = model.StepClick
	}
	return model.Step{
		ID:          r.String("id"),
		ScenarioID:  r.String("scenario_id"),
		ElementRef:  r.String("element_name"),
		Action:      action,
		ActionValue: r.String("action_value"),
		CreatedAt:   parseTime(r.String("created_at")),
	}
}

// FeatureTree returns the feature forest with scenarios and their steps.
func (s *Service) FeatureTree(ctx context.Context) ([]model.Feature, error) {
	featureRows, err := s.backend.Select(ctx, store.Features, store.Query{})
	if err != nil {
		return nil, err
	}
	scenarioRows, err := s.backend.Select(ctx, store.Scenarios, store.Query{})
	if err != nil {
		return nil, err
	}
	stepRows, err := s.backend.Select(ctx, store.ScenarioElements, store.Query{})
	if err != nil {
		return nil, err
	}

	stepsByScenario := make(map[string][]model.Step)
	for _, r := range stepRows {
		st := stepFromRow(r)
		stepsByScenario[st.ScenarioID] = append(stepsByScenario[st.ScenarioID], st)
	}
	scenarios := make([]model.Scenario, len(scenarioRows))
	for i, r := range scenarioRows {
		sc := scenarioFromRow(r)
		sc.Steps = stepsByScenario[sc.ID]
		scenarios[i] = sc
	}
	features := make([]model.Feature, len(featureRows))
	for i, r := range featureRows {
		features[i] = featureFromRow(r)
	}

	return model.BuildForest(features, scenarios)
}

// AddFeature creates "New Feature" (or "New Feature N") under parentID,
// or at the top level when parentID is nil.
func (s *Service) AddFeature(ctx context.Context, parentID *string) (model.Feature, error) {
	if parentID != nil {
		if _, err := s.one(ctx, store.Features, *parentID); err != nil {
			return model.Feature{}, err
		}
	}
	existing, err := s.names(ctx, store.Features, store.Eq("parent_feature_id", parentID))
	if err != nil {
		return model.Feature{}, err
	}
	f := model.Feature{
		ID:        s.newID(),
		Name:      model.UniqueName(newFeatureName, existing),
		ParentID:  parentID,
		CreatedAt: s.now(),
	}
	if err := s.InsertFeatures(ctx, []model.Feature{f}); err != nil {
		return model.Feature{}, err
	}
	return f, nil
}

// InsertFeatures writes features in order; a parent must come before its
// children when both are in the batch.
func (s *Service) InsertFeatures(ctx context.Context, features []model.Feature) error {
	rows := make([]store.Row, len(features))
	for i, f := range features {
		if f.ID == "" {
			f.ID = s.newID()
		}
		if f.CreatedAt.IsZero() {
			f.CreatedAt = s.now()
		}
		rows[i] = store.Row{
			"id":                f.ID,
			"name":              f.Name,
			"parent_feature_id": f.ParentID,
			"created_at":        formatTime(f.CreatedAt),
		}
	}
	return s.backend.Insert(ctx, store.Features, rows)
}

func (s *Service) RenameFeature(ctx context.Context, id, name string) error {
	return s.rename(ctx, store.Features, id, name)
}

// DeleteFeature removes the feature and everything beneath it.
func (s *Service) DeleteFeature(ctx context.Context, id string) error {
	return s.backend.Delete(ctx, store.Features, id)
}

// AddScenario creates "New Scenario" (or "New Scenario N") in a feature.
func (s *Service) AddScenario(ctx context.Context, featureID string) (model.Scenario, error) {
	if _, err := s.one(ctx, store.Features, featureID); err != nil {
		return model.Scenario{}, err
	}
	existing, err := s.names(ctx, store.Scenarios, store.Eq("feature_id", featureID))
	if err != nil {
		return model.Scenario{}, err
	}
	sc := model.Scenario{
		ID:        s.newID(),
		Name:      model.UniqueName(newScenarioName, existing),
		FeatureID: featureID,
		CreatedAt: s.now(),
	}
	if err := s.InsertScenarios(ctx, []model.Scenario{sc}); err != nil {
		return model.Scenario{}, err
	}
	return sc, nil
}

func (s *Service) InsertScenarios(ctx context.Context, scenarios []model.Scenario) error {
	rows := make([]store.Row, len(scenarios))
	for i, sc := range scenarios {
		if sc.ID == "" {
			sc.ID = s.newID()
		}
		if sc.CreatedAt.IsZero() {
			sc.CreatedAt = s.now()
		}
		rows[i] = store.Row{
			"id":         sc.ID,
			"name":       sc.Name,
			"feature_id": sc.FeatureID,
			"created_at": formatTime(sc.CreatedAt),
		}
	}
	return s.backend.Insert(ctx, store.Scenarios, rows)
}

// Scenario returns one scenario with its steps.
func (s *Service) Scenario(ctx context.Context, id string) (model.Scenario, error) {
	row, err := s.one(ctx, store.Scenarios, id)
	if err != nil {
		return model.Scenario{}, err
	}
	sc := scenarioFromRow(row)
	stepRows, err := s.backend.Select(ctx, store.ScenarioElements, store.Eq("scenario_id", id))
	if err != nil {
		return model.Scenario{}, err
	}
	for _, r := range stepRows {
		sc.Steps = append(sc.Steps, stepFromRow(r))
	}
	return sc, nil
}

func (s *Service) RenameScenario(ctx context.Context, id, name string) error {
	return s.rename(ctx, store.Scenarios, id, name)
}

func (s *Service) DeleteScenario(ctx context.Context, id string) error {
	return s.backend.Delete(ctx, store.Scenarios, id)
}

// AddStep binds a page element, given as "<Page>.<Element>", to the end of
// a scenario with the Click action.
func (s *Service) AddStep(ctx context.Context, scenarioID, ref string) (model.Step, error) {
	ref = strings.TrimSpace(ref)
	if _, _, ok := model.SplitElementRef(ref); !ok {
		return model.Step{}, fmt.Errorf("%q: %w", ref, ErrInvalidRef)
	}
	if _, err := s.one(ctx, store.Scenarios, scenarioID); err != nil {
		return model.Step{}, err
	}
	st := model.Step{
		ID:         s.newID(),
		ScenarioID: scenarioID,
		ElementRef: ref,
		Action:     model.StepClick,
		CreatedAt:  s.now(),
	}
	err := s.backend.Insert(ctx, store.ScenarioElements, []store.Row{{
		"id":           st.ID,
		"scenario_id":  st.ScenarioID,
		"element_name": st.ElementRef,
		"action_type":  string(st.Action),
		"action_value": "",
		"created_at":   formatTime(st.CreatedAt),
	}})
	if err != nil {
		return model.Step{}, err
	}
	return st, nil
}

// UpdateStep changes a step's action and, when value is non-nil, its value.
func (s *Service) UpdateStep(ctx context.Context, id string, action model.StepAction, value *string) error {
	fields := store.Row{"action_type": string(action)}
	if value != nil {
		fields["action_value"] = *value
	}
	return s.backend.Update(ctx, store.ScenarioElements, id, fields)
}

// StepScenario returns the id of the scenario a step belongs to.
func (s *Service) StepScenario(ctx context.Context, id string) (string, error) {
	row, err := s.one(ctx, store.ScenarioElements, id)
	if err != nil {
		return "", err
	}
	return row.String("scenario_id"), nil
}

func (s *Service) RemoveStep(ctx context.Context, id string) error {
	return s.backend.Delete(ctx, store.ScenarioElements, id)
}
