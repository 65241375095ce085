package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func engineerSubject() Subject {
	return Subject{
		UserID:           "u1",
		Active:           true,
		AllowedDocuments: []DocumentType{DocTechnicalDrawings, DocNCRs},
		DataAccess:       []Scope{ScopeTechnical, ScopeOperational},
		Actions:          []Action{ActionRead, ActionEdit},
		Projects:         []string{"P1"},
	}
}

func TestEvaluateEngineerScenarios(t *testing.T) {
	c := DefaultCatalog()
	sub := engineerSubject()

	t.Run("allowed in assigned project", func(t *testing.T) {
		d := Evaluate(c, sub, Resource{
			ID: "r1", ProjectID: "P1", DocumentType: DocNCRs,
			RequiredScope: ScopeTechnical, Action: ActionRead,
		})
		require.True(t, d.Allowed)
		assert.Empty(t, d.Redact)
		assert.True(t, d.ScopeMask.Has(ScopeTechnical))
		assert.True(t, d.ScopeMask.Has(ScopeOperational))
		assert.False(t, d.ScopeMask.Has(ScopeFinancial))
	})

	t.Run("foreign project denied", func(t *testing.T) {
		d := Evaluate(c, sub, Resource{
			ID: "r2", ProjectID: "P2", DocumentType: DocNCRs,
			RequiredScope: ScopeTechnical, Action: ActionRead,
		})
		require.False(t, d.Allowed)
		assert.Equal(t, ReasonProjectNotAccessible, d.Reason)
	})

	t.Run("forbidden document type", func(t *testing.T) {
		d := Evaluate(c, sub, Resource{
			ID: "r3", ProjectID: "P1", DocumentType: DocFinancials,
			RequiredScope: ScopeTechnical, Action: ActionRead,
		})
		require.False(t, d.Allowed)
		assert.Equal(t, ReasonDocumentTypeForbidden, d.Reason)
	})

	t.Run("scope above clearance", func(t *testing.T) {
		d := Evaluate(c, sub, Resource{
			ID: "r4", ProjectID: "P1", DocumentType: DocNCRs,
			RequiredScope: ScopeFinancial, Action: ActionRead,
		})
		require.False(t, d.Allowed)
		assert.Equal(t, ReasonScopeForbidden, d.Reason)
	})

	t.Run("action not granted", func(t *testing.T) {
		d := Evaluate(c, sub, Resource{
			ID: "r5", ProjectID: "P1", DocumentType: DocNCRs,
			RequiredScope: ScopeTechnical, Action: ActionDelete,
		})
		require.False(t, d.Allowed)
		assert.Equal(t, ReasonActionForbidden, d.Reason)
	})
}

// The deny reasons are an ordered contract: a multi-violation input reports
// the first failing check.
func TestEvaluateDenyOrder(t *testing.T) {
	c := DefaultCatalog()

	t.Run("inactive wins over everything", func(t *testing.T) {
		sub := engineerSubject()
		sub.Active = false
		d := Evaluate(c, sub, Resource{
			ID: "r1", ProjectID: "P2", DocumentType: DocFinancials,
			RequiredScope: ScopeFinancial, Action: ActionDelete,
		})
		require.False(t, d.Allowed)
		assert.Equal(t, ReasonInactiveUser, d.Reason)
	})

	t.Run("project wins over document type", func(t *testing.T) {
		d := Evaluate(c, engineerSubject(), Resource{
			ID: "r2", ProjectID: "P2", DocumentType: DocFinancials,
			RequiredScope: ScopeFinancial, Action: ActionDelete,
		})
		assert.Equal(t, ReasonProjectNotAccessible, d.Reason)
	})

	t.Run("document type wins over scope", func(t *testing.T) {
		d := Evaluate(c, engineerSubject(), Resource{
			ID: "r3", ProjectID: "P1", DocumentType: DocFinancials,
			RequiredScope: ScopeFinancial, Action: ActionDelete,
		})
		assert.Equal(t, ReasonDocumentTypeForbidden, d.Reason)
	})

	t.Run("scope wins over action", func(t *testing.T) {
		d := Evaluate(c, engineerSubject(), Resource{
			ID: "r4", ProjectID: "P1", DocumentType: DocNCRs,
			RequiredScope: ScopeFinancial, Action: ActionDelete,
		})
		assert.Equal(t, ReasonScopeForbidden, d.Reason)
	})
}

func TestEvaluateDeactivatedUserAlwaysDenied(t *testing.T) {
	c := DefaultCatalog()
	sub := Subject{
		UserID:           "boss",
		Active:           false,
		AllowedDocuments: []DocumentType{DocFinancials},
		DataAccess:       []Scope{ScopeAll},
		Actions:          []Action{ActionAdmin},
		Projects:         []string{ProjectsAll},
	}
	for _, res := range []Resource{
		{ID: "a"},
		{ID: "b", ProjectID: "P1", DocumentType: DocFinancials, RequiredScope: ScopeFinancial, Action: ActionAdmin},
		{ID: "c", RequiredScope: ScopeOperational, Action: ActionRead},
	} {
		d := Evaluate(c, sub, res)
		assert.False(t, d.Allowed)
		assert.Equal(t, ReasonInactiveUser, d.Reason)
	}
}

// Untagged resources fail closed: missing scope means financial, missing
// action means admin. Only a full-access admin-like role passes.
func TestEvaluateUntaggedFailClosed(t *testing.T) {
	c := DefaultCatalog()
	untagged := Resource{ID: "x", ProjectID: "P1"}

	t.Run("non-admin roles denied", func(t *testing.T) {
		d := Evaluate(c, engineerSubject(), untagged)
		require.False(t, d.Allowed)
		assert.Equal(t, ReasonScopeForbidden, d.Reason)
	})

	t.Run("financial scope without admin action still denied", func(t *testing.T) {
		sub := engineerSubject()
		sub.DataAccess = []Scope{ScopeFinancial}
		d := Evaluate(c, sub, untagged)
		require.False(t, d.Allowed)
		assert.Equal(t, ReasonActionForbidden, d.Reason)
	})

	t.Run("full-access role allowed", func(t *testing.T) {
		sub := Subject{
			UserID: "ceo", Active: true,
			DataAccess: []Scope{ScopeAll},
			Actions:    []Action{ActionAdmin},
			Projects:   []string{ProjectsAll},
		}
		d := Evaluate(c, sub, untagged)
		assert.True(t, d.Allowed)
	})

	t.Run("unknown tags are not valid", func(t *testing.T) {
		sub := engineerSubject()
		d := Evaluate(c, sub, Resource{
			ID: "y", ProjectID: "P1", DocumentType: "blueprints_v2",
			RequiredScope: ScopeTechnical, Action: ActionRead,
		})
		require.False(t, d.Allowed)
		assert.Equal(t, ReasonDocumentTypeForbidden, d.Reason)
	})
}

func TestEvaluateRedaction(t *testing.T) {
	c := DefaultCatalog()
	sub := engineerSubject()
	sub.AllowedDocuments = append(sub.AllowedDocuments, DocBOQ)
	d := Evaluate(c, sub, Resource{
		ID: "doc1", ProjectID: "P1", DocumentType: DocBOQ,
		RequiredScope: ScopeTechnical, Action: ActionRead,
		Fields: []Field{
			{Name: "budget", Scope: ScopeFinancial},
			{Name: "contractor", Scope: ScopeCommercial},
			{Name: "notes", Scope: ScopeOperational},
			{Name: "title"},
		},
	})
	require.True(t, d.Allowed)
	assert.Equal(t, []string{"budget", "contractor"}, d.Redact)
}

func TestEvaluateDeterministic(t *testing.T) {
	c := DefaultCatalog()
	sub := engineerSubject()
	res := Resource{
		ID: "r", ProjectID: "P1", DocumentType: DocNCRs,
		RequiredScope: ScopeTechnical, Action: ActionRead,
		Fields: []Field{{Name: "budget", Scope: ScopeFinancial}},
	}
	first := Evaluate(c, sub, res)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, Evaluate(c, sub, res))
	}
}

func TestExpandScopes(t *testing.T) {
	c := DefaultCatalog()

	t.Run("all expands to every concrete scope", func(t *testing.T) {
		mask := ExpandScopes(c, []Scope{ScopeAll})
		assert.True(t, mask.Full(c))
		assert.Len(t, mask, len(c.ConcreteScopes()))
	})

	t.Run("unknown tags dropped", func(t *testing.T) {
		mask := ExpandScopes(c, []Scope{ScopeTechnical, "mystery"})
		assert.True(t, mask.Has(ScopeTechnical))
		assert.Len(t, mask, 1)
	})

	t.Run("list follows catalog order", func(t *testing.T) {
		mask := ExpandScopes(c, []Scope{ScopeFinancial, ScopeOperational})
		assert.Equal(t, []Scope{ScopeOperational, ScopeFinancial}, mask.List(c))
	})
}

func TestExpandActions(t *testing.T) {
	c := DefaultCatalog()
	set := ExpandActions(c, []Action{ActionAdmin})
	for _, a := range c.ConcreteActions() {
		assert.Contains(t, set, a)
	}
	assert.Contains(t, set, ActionAdmin)

	set = ExpandActions(c, []Action{ActionRead, "compile"})
	assert.Len(t, set, 1)
}

func TestExpandProjects(t *testing.T) {
	members, all := ExpandProjects([]string{"P1", "P2"})
	assert.False(t, all)
	assert.Len(t, members, 2)

	members, all = ExpandProjects([]string{"P1", ProjectsAll})
	assert.True(t, all)
	assert.Nil(t, members)
}
