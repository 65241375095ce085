package authz

// Reason identifies which check denied a resource. The order of checks in
// Evaluate is a contract: multi-violation inputs always report the first
// failing check.
type Reason string

const (
	ReasonInactiveUser          Reason = "InactiveUser"
	ReasonProjectNotAccessible  Reason = "ProjectNotAccessible"
	ReasonDocumentTypeForbidden Reason = "DocumentTypeForbidden"
	ReasonScopeForbidden        Reason = "ScopeForbidden"
	ReasonActionForbidden       Reason = "ActionForbidden"
)

// Subject is the authorization view of a user: the resolved role permission
// sets plus project membership. Built fresh per request so role updates are
// observed at the next request boundary.
type Subject struct {
	UserID           string
	Active           bool
	AllowedDocuments []DocumentType
	DataAccess       []Scope
	Actions          []Action
	Projects         []string
}

// Field is a resource payload field tagged with the scope needed to see it.
type Field struct {
	Name  string `json:"name"`
	Scope Scope  `json:"scope"`
}

// Resource describes one candidate item: an alert, a document listing entry,
// a chat-context fragment, or an export row. Adapters tag items before
// submitting them; missing tags default to the most restrictive
// interpretation (requiredScope financial, action admin).
type Resource struct {
	ID            string       `json:"id"`
	ProjectID     string       `json:"project_id,omitempty"`
	DocumentType  DocumentType `json:"document_type,omitempty"`
	RequiredScope Scope        `json:"required_scope,omitempty"`
	Action        Action       `json:"action,omitempty"`
	Fields        []Field      `json:"fields,omitempty"`
}

// Decision is the outcome of evaluating one subject against one resource.
type Decision struct {
	Allowed   bool
	Reason    Reason
	ScopeMask ScopeSet
	Redact    []string
}

// Evaluate is the access decision function. Pure: no I/O, no side effects,
// deterministic for identical inputs. Checks run in a fixed order and the
// first failure wins.
func Evaluate(c *Catalog, sub Subject, res Resource) Decision {
	if !sub.Active {
		return Decision{Reason: ReasonInactiveUser}
	}

	if res.ProjectID != "" {
		members, all := ExpandProjects(sub.Projects)
		if !all {
			if _, ok := members[res.ProjectID]; !ok {
				return Decision{Reason: ReasonProjectNotAccessible}
			}
		}
	}

	if res.DocumentType != "" {
		allowed := false
		if c.ValidDocumentType(res.DocumentType) {
			for _, d := range sub.AllowedDocuments {
				if d == res.DocumentType {
					allowed = true
					break
				}
			}
		}
		if !allowed {
			return Decision{Reason: ReasonDocumentTypeForbidden}
		}
	}

	mask := ExpandScopes(c, sub.DataAccess)
	required := res.RequiredScope
	if required == "" || !c.ValidScope(required) {
		required = ScopeFinancial
	}
	if !mask.Has(required) {
		return Decision{Reason: ReasonScopeForbidden}
	}

	actions := ExpandActions(c, sub.Actions)
	needed := res.Action
	if needed == "" || !c.ValidAction(needed) {
		needed = ActionAdmin
	}
	if _, ok := actions[needed]; !ok {
		return Decision{Reason: ReasonActionForbidden}
	}

	var redact []string
	for _, f := range res.Fields {
		if f.Scope != "" && !mask.Has(f.Scope) {
			redact = append(redact, f.Name)
		}
	}
	return Decision{Allowed: true, ScopeMask: mask, Redact: redact}
}
