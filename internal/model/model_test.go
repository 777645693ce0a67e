package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestUniqueName_FreeBase(t *testing.T) {
	assert.Equal(t, "New Page", UniqueName("New Page", []string{"Login"}))
}

func TestUniqueName_NumbersFromOne(t *testing.T) {
	assert.Equal(t, "New Page 1", UniqueName("New Page", []string{"New Page"}))
	assert.Equal(t, "New Page 3", UniqueName("New Page", []string{"New Page", "New Page 1", "New Page 2"}))
}

func TestUniqueName_FillsGap(t *testing.T) {
	assert.Equal(t, "New Feature 1", UniqueName("New Feature", []string{"New Feature", "New Feature 2"}))
}

func TestSplitElementRef(t *testing.T) {
	page, element, ok := SplitElementRef("Login.Submit Button")
	require.True(t, ok)
	assert.Equal(t, "Login", page)
	assert.Equal(t, "Submit Button", element)

	page, element, ok = SplitElementRef("Login.Menu.Item")
	require.True(t, ok)
	assert.Equal(t, "Login", page)
	assert.Equal(t, "Menu.Item", element)

	for _, bad := range []string{"Login", ".x", "x.", ""} {
		_, _, ok := SplitElementRef(bad)
		assert.False(t, ok, bad)
	}
}

func TestFormatElementRef(t *testing.T) {
	assert.Equal(t, "Login.Submit", FormatElementRef("Login", "Submit"))
}

func TestElementNormalize(t *testing.T) {
	e := Element{ActionType: ActionClick, ActionValue: "hello"}
	e.Normalize()
	assert.Empty(t, e.ActionValue)

	e = Element{ActionType: ActionTypeText, ActionValue: "hello"}
	e.Normalize()
	assert.Equal(t, "hello", e.ActionValue)
}

func TestParseSelectorType_Aliases(t *testing.T) {
	cases := map[string]SelectorType{
		"ID":           SelectorID,
		"id":           SelectorID,
		"cssSelector":  SelectorCSS,
		"css":          SelectorCSS,
		"CSS Selector": SelectorCSS,
		"xpath":        SelectorXPath,
		"Class":        SelectorClass,
		"name":         SelectorName,
	}
	for in, want := range cases {
		got, err := ParseSelectorType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseSelectorType("linkText")
	assert.ErrorIs(t, err, ErrUnknownSelector)
}

func TestParseActionType(t *testing.T) {
	got, err := ParseActionType("Type")
	require.NoError(t, err)
	assert.Equal(t, ActionTypeText, got)

	_, err = ParseActionType("drag")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestParseStepAction(t *testing.T) {
	got, err := ParseStepAction("send keys")
	require.NoError(t, err)
	assert.Equal(t, StepSendKeys, got)
	assert.True(t, got.NeedsValue())
	assert.False(t, StepShouldSee.NeedsValue())

	_, err = ParseStepAction("Double Click")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestBuildForest_NestsByParent(t *testing.T) {
	flat := []Feature{
		{ID: "a", Name: "A"},
		{ID: "b", Name: "b.feature", ParentID: ptr("a")},
		{ID: "c", Name: "C", ParentID: ptr("a")},
		{ID: "d", Name: "d.txt", ParentID: ptr("c")},
		{ID: "e", Name: "E"},
	}
	scenarios := []Scenario{{ID: "s1", Name: "Login", FeatureID: "b"}}

	forest, err := BuildForest(flat, scenarios)
	require.NoError(t, err)
	require.Len(t, forest, 2)
	assert.Equal(t, "A", forest[0].Name)
	assert.Equal(t, "E", forest[1].Name)

	a := forest[0]
	require.Len(t, a.Features, 2)
	assert.Equal(t, "b.feature", a.Features[0].Name)
	require.Len(t, a.Features[0].Scenarios, 1)
	assert.Equal(t, "Login", a.Features[0].Scenarios[0].Name)
	require.Len(t, a.Features[1].Features, 1)
	assert.Equal(t, "d.txt", a.Features[1].Features[0].Name)
}

func TestBuildForest_DetectsCycle(t *testing.T) {
	flat := []Feature{
		{ID: "root", Name: "Root"},
		{ID: "x", Name: "X", ParentID: ptr("y")},
		{ID: "y", Name: "Y", ParentID: ptr("x")},
	}
	forest, err := BuildForest(flat, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDetached))
	assert.Contains(t, err.Error(), "X")
	require.Len(t, forest, 1)
}

func TestWalk_PreOrder(t *testing.T) {
	forest, err := BuildForest([]Feature{
		{ID: "a", Name: "A"},
		{ID: "b", Name: "B", ParentID: ptr("a")},
		{ID: "c", Name: "C"},
	}, nil)
	require.NoError(t, err)

	var names []string
	var depths []int
	Walk(forest, func(f Feature, depth int) {
		names = append(names, f.Name)
		depths = append(depths, depth)
	})
	assert.Equal(t, []string{"A", "B", "C"}, names)
	assert.Equal(t, []int{0, 1, 0}, depths)
}

func TestProjectElementCount(t *testing.T) {
	p := Project{Pages: []Page{
		{Elements: make([]Element, 2)},
		{Elements: make([]Element, 3)},
	}}
	assert.Equal(t, 5, p.ElementCount())
}
