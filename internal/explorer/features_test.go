package explorer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/px/internal/model"
	"github.com/chriserin/px/internal/store"
)

func TestAddFeature_UniqueAmongSiblings(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	a, err := s.AddFeature(ctx, nil)
	require.NoError(t, err)
	b, err := s.AddFeature(ctx, nil)
	require.NoError(t, err)
	child, err := s.AddFeature(ctx, &a.ID)
	require.NoError(t, err)

	assert.Equal(t, "New Feature", a.Name)
	assert.Equal(t, "New Feature 1", b.Name)
	assert.Equal(t, "New Feature", child.Name, "siblings under a different parent do not collide")
}

func TestAddFeature_UnknownParent(t *testing.T) {
	s := newTestService(t)
	_, err := s.AddFeature(context.Background(), ptr("missing"))
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestFeatureTree_NestsScenariosAndSteps(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	root, _ := s.AddFeature(ctx, nil)
	child, _ := s.AddFeature(ctx, &root.ID)
	sc, err := s.AddScenario(ctx, child.ID)
	require.NoError(t, err)
	_, err = s.AddStep(ctx, sc.ID, "Login.Submit Button")
	require.NoError(t, err)

	forest, err := s.FeatureTree(ctx)
	require.NoError(t, err)
	require.Len(t, forest, 1)
	require.Len(t, forest[0].Features, 1)
	require.Len(t, forest[0].Features[0].Scenarios, 1)

	got := forest[0].Features[0].Scenarios[0]
	assert.Equal(t, "New Scenario", got.Name)
	require.Len(t, got.Steps, 1)
	assert.Equal(t, "Login.Submit Button", got.Steps[0].ElementRef)
	assert.Equal(t, model.StepClick, got.Steps[0].Action)
}

func TestAddScenario_UniqueNames(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	f, _ := s.AddFeature(ctx, nil)

	first, err := s.AddScenario(ctx, f.ID)
	require.NoError(t, err)
	second, err := s.AddScenario(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Scenario", first.Name)
	assert.Equal(t, "New Scenario 1", second.Name)
}

func TestAddStep_RejectsMalformedRef(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	f, _ := s.AddFeature(ctx, nil)
	sc, _ := s.AddScenario(ctx, f.ID)

	_, err := s.AddStep(ctx, sc.ID, "NoDot")
	assert.True(t, errors.Is(err, ErrInvalidRef))
}

func TestUpdateStep(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	f, _ := s.AddFeature(ctx, nil)
	sc, _ := s.AddScenario(ctx, f.ID)
	st, _ := s.AddStep(ctx, sc.ID, "Login.User Name")

	require.NoError(t, s.UpdateStep(ctx, st.ID, model.StepSendKeys, ptr("alice")))
	got, err := s.Scenario(ctx, sc.ID)
	require.NoError(t, err)
	require.Len(t, got.Steps, 1)
	assert.Equal(t, model.StepSendKeys, got.Steps[0].Action)
	assert.Equal(t, "alice", got.Steps[0].ActionValue)

	require.NoError(t, s.UpdateStep(ctx, st.ID, model.StepWaitText, nil))
	got, err = s.Scenario(ctx, sc.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StepWaitText, got.Steps[0].Action)
	assert.Equal(t, "alice", got.Steps[0].ActionValue)

	require.NoError(t, s.RemoveStep(ctx, st.ID))
	got, err = s.Scenario(ctx, sc.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Steps)
}

func TestDeleteFeature_CascadesToSubtree(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	root, _ := s.AddFeature(ctx, nil)
	child, _ := s.AddFeature(ctx, &root.ID)
	sc, _ := s.AddScenario(ctx, child.ID)
	_, err := s.AddStep(ctx, sc.ID, "Login.Submit")
	require.NoError(t, err)

	require.NoError(t, s.DeleteFeature(ctx, root.ID))

	c, err := s.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Features)
	assert.Equal(t, 0, c.Scenarios)
	assert.Equal(t, 0, c.Steps)
}

func TestInsertFeatures_PreassignedIDs(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	parent := "pre-parent"
	require.NoError(t, s.InsertFeatures(ctx, []model.Feature{
		{ID: parent, Name: "A"},
		{ID: "pre-child", Name: "b.feature", ParentID: &parent},
	}))
	require.NoError(t, s.InsertScenarios(ctx, []model.Scenario{{Name: "Login", FeatureID: "pre-child"}}))

	forest, err := s.FeatureTree(ctx)
	require.NoError(t, err)
	require.Len(t, forest, 1)
	assert.Equal(t, "pre-parent", forest[0].ID)
	require.Len(t, forest[0].Features, 1)
	require.Len(t, forest[0].Features[0].Scenarios, 1)
	assert.Equal(t, "Login", forest[0].Features[0].Scenarios[0].Name)
}
