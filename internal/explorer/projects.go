package explorer

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/chriserin/px/internal/model"
	"github.com/chriserin/px/internal/store"
)

const (
	newPageName    = "New Page"
	newElementName = "New Element"
)

func projectFromRow(r store.Row) model.Project {
	return model.Project{
		ID:        r.String("id"),
		Name:      r.String("name"),
		CreatedAt: parseTime(r.String("created_at")),
	}
}

func pageFromRow(r store.Row) model.Page {
	return model.Page{
		ID:        r.String("id"),
		Name:      r.String("name"),
		ProjectID: r.String("project_id"),
		CreatedAt: parseTime(r.String("created_at")),
	}
}

func elementFromRow(r store.Row) model.Element {
	st, err := model.ParseSelectorType(r.String("selector_type"))
	if err != nil {
		st = model.SelectorType(r.String("selector_type"))
	}
	return model.Element{
		ID:            r.String("id"),
		Name:          r.String("name"),
		PageID:        r.String("page_id"),
		SelectorType:  st,
		SelectorValue: r.String("selector_value"),
		ActionType:    model.ActionType(r.String("action_type")),
		ActionValue:   r.String("action_value"),
		CreatedAt:     parseTime(r.String("created_at")),
	}
}

func elementRow(e model.Element) store.Row {
	return store.Row{
		"id":             e.ID,
		"name":           e.Name,
		"page_id":        e.PageID,
		"selector_type":  string(e.SelectorType),
		"selector_value": e.SelectorValue,
		"action_type":    string(e.ActionType),
		"action_value":   e.ActionValue,
		"created_at":     formatTime(e.CreatedAt),
	}
}

// ProjectTree returns every project, newest first, with pages and elements
// nested in creation order.
func (s *Service) ProjectTree(ctx context.Context) ([]model.Project, error) {
	projectRows, err := s.backend.Select(ctx, store.Projects, store.Query{})
	if err != nil {
		return nil, err
	}
	pageRows, err := s.backend.Select(ctx, store.Pages, store.Query{})
	if err != nil {
		return nil, err
	}
	elementRows, err := s.backend.Select(ctx, store.Elements, store.Query{})
	if err != nil {
		return nil, err
	}

	elementsByPage := make(map[string][]model.Element)
	for _, r := range elementRows {
		e := elementFromRow(r)
		elementsByPage[e.PageID] = append(elementsByPage[e.PageID], e)
	}
	pagesByProject := make(map[string][]model.Page)
	for _, r := range pageRows {
		p := pageFromRow(r)
		p.Elements = elementsByPage[p.ID]
		pagesByProject[p.ProjectID] = append(pagesByProject[p.ProjectID], p)
	}

	projects := make([]model.Project, len(projectRows))
	for i, r := range projectRows {
		p := projectFromRow(r)
		p.Pages = pagesByProject[p.ID]
		projects[i] = p
	}
	slices.Reverse(projects)
	return projects, nil
}

func (s *Service) AddProject(ctx context.Context, name string) (model.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Project{}, ErrBlankName
	}
	p := model.Project{ID: s.newID(), Name: name, CreatedAt: s.now()}
	err := s.backend.Insert(ctx, store.Projects, []store.Row{{
		"id":         p.ID,
		"name":       p.Name,
		"created_at": formatTime(p.CreatedAt),
	}})
	if err != nil {
		return model.Project{}, err
	}
	return p, nil
}

func (s *Service) RenameProject(ctx context.Context, id, name string) error {
	return s.rename(ctx, store.Projects, id, name)
}

// DeleteProject removes the project with its pages and elements.
func (s *Service) DeleteProject(ctx context.Context, id string) error {
	return s.backend.Delete(ctx, store.Projects, id)
}

// PageNames lists the page names already used in a project.
func (s *Service) PageNames(ctx context.Context, projectID string) ([]string, error) {
	return s.names(ctx, store.Pages, store.Eq("project_id", projectID))
}

// AddPage creates "New Page", or "New Page N" when that name is taken.
func (s *Service) AddPage(ctx context.Context, projectID string) (model.Page, error) {
	if _, err := s.one(ctx, store.Projects, projectID); err != nil {
		return model.Page{}, err
	}
	existing, err := s.PageNames(ctx, projectID)
	if err != nil {
		return model.Page{}, err
	}
	return s.CreatePage(ctx, projectID, model.UniqueName(newPageName, existing))
}

// CreatePage inserts a page with an exact name.
func (s *Service) CreatePage(ctx context.Context, projectID, name string) (model.Page, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Page{}, ErrBlankName
	}
	p := model.Page{ID: s.newID(), Name: name, ProjectID: projectID, CreatedAt: s.now()}
	err := s.backend.Insert(ctx, store.Pages, []store.Row{{
		"id":         p.ID,
		"name":       p.Name,
		"project_id": p.ProjectID,
		"created_at": formatTime(p.CreatedAt),
	}})
	if err != nil {
		return model.Page{}, err
	}
	return p, nil
}

func (s *Service) RenamePage(ctx context.Context, id, name string) error {
	return s.rename(ctx, store.Pages, id, name)
}

func (s *Service) DeletePage(ctx context.Context, id string) error {
	return s.backend.Delete(ctx, store.Pages, id)
}

// AddElement appends a placeholder element to a page.
func (s *Service) AddElement(ctx context.Context, pageID string) (model.Element, error) {
	if _, err := s.one(ctx, store.Pages, pageID); err != nil {
		return model.Element{}, err
	}
	e := model.Element{
		ID:            s.newID(),
		Name:          newElementName,
		PageID:        pageID,
		SelectorType:  model.SelectorID,
		SelectorValue: "element",
		ActionType:    model.ActionClick,
		CreatedAt:     s.now(),
	}
	if err := s.backend.Insert(ctx, store.Elements, []store.Row{elementRow(e)}); err != nil {
		return model.Element{}, err
	}
	return e, nil
}

// InsertElements writes a batch of elements, filling in missing ids,
// timestamps and actions.
func (s *Service) InsertElements(ctx context.Context, elements []model.Element) error {
	rows := make([]store.Row, len(elements))
	for i, e := range elements {
		if e.ID == "" {
			e.ID = s.newID()
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = s.now()
		}
		if e.ActionType == "" {
			e.ActionType = model.ActionClick
		}
		e.Normalize()
		rows[i] = elementRow(e)
	}
	return s.backend.Insert(ctx, store.Elements, rows)
}

// ElementUpdate holds the fields to change; nil fields are left alone.
type ElementUpdate struct {
	Name          *string
	SelectorType  *model.SelectorType
	SelectorValue *string
	ActionType    *model.ActionType
	ActionValue   *string
}

// UpdateElement merges u into the stored element. Blank selector or action
// values are rejected, and the action value is dropped unless the action
// types text.
func (s *Service) UpdateElement(ctx context.Context, id string, u ElementUpdate) (model.Element, error) {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return model.Element{}, ErrBlankName
	}
	if u.SelectorValue != nil && strings.TrimSpace(*u.SelectorValue) == "" {
		return model.Element{}, fmt.Errorf("selector: %w", ErrBlankValue)
	}
	if u.ActionValue != nil && strings.TrimSpace(*u.ActionValue) == "" {
		return model.Element{}, fmt.Errorf("action: %w", ErrBlankValue)
	}

	row, err := s.one(ctx, store.Elements, id)
	if err != nil {
		return model.Element{}, err
	}
	e := elementFromRow(row)

	// Only the given columns are written so stored spellings of the rest
	// (an imported "id" selector type, say) survive an edit.
	changes := store.Row{}
	if u.Name != nil {
		e.Name = strings.TrimSpace(*u.Name)
		changes["name"] = e.Name
	}
	if u.SelectorType != nil {
		e.SelectorType = *u.SelectorType
		changes["selector_type"] = string(e.SelectorType)
	}
	if u.SelectorValue != nil {
		e.SelectorValue = strings.TrimSpace(*u.SelectorValue)
		changes["selector_value"] = e.SelectorValue
	}
	if u.ActionType != nil {
		e.ActionType = *u.ActionType
		changes["action_type"] = string(e.ActionType)
	}
	if u.ActionValue != nil {
		e.ActionValue = strings.TrimSpace(*u.ActionValue)
	}
	e.Normalize()
	if u.ActionValue != nil || e.ActionValue != row.String("action_value") {
		changes["action_value"] = e.ActionValue
	}
	if len(changes) == 0 {
		return e, nil
	}

	if err := s.backend.Update(ctx, store.Elements, id, changes); err != nil {
		return model.Element{}, err
	}
	return e, nil
}

func (s *Service) DeleteElement(ctx context.Context, id string) error {
	return s.backend.Delete(ctx, store.Elements, id)
}

// SearchElements matches term case-insensitively against element names,
// selector values and action types, newest first. An empty term matches all.
func (s *Service) SearchElements(ctx context.Context, term string) ([]model.Element, error) {
	rows, err := s.backend.Select(ctx, store.Elements, store.Query{})
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(term)

	var out []model.Element
	for _, r := range rows {
		e := elementFromRow(r)
		if strings.Contains(strings.ToLower(e.Name), term) ||
			strings.Contains(strings.ToLower(e.SelectorValue), term) ||
			strings.Contains(strings.ToLower(string(e.ActionType)), term) {
			out = append(out, e)
		}
	}
	slices.Reverse(out)
	return out, nil
}
