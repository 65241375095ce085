package authz

// Closed tag vocabularies. Every tag that reaches the evaluator is checked
// against the catalog; unknown tags are never valid.
type DocumentType string
type Scope string
type Action string

const (
	DocBOQ               DocumentType = "boq"
	DocSchedules         DocumentType = "schedules"
	DocContracts         DocumentType = "contracts"
	DocFinancials        DocumentType = "financials"
	DocInsurances        DocumentType = "insurances"
	DocRFIs              DocumentType = "rfis"
	DocMOMs              DocumentType = "moms"
	DocNCRs              DocumentType = "ncrs"
	DocQuotes            DocumentType = "quotes"
	DocCommercial        DocumentType = "commercial"
	DocTechnicalDrawings DocumentType = "technical_drawings"
	DocSafetyReports     DocumentType = "safety_reports"
	DocVariations        DocumentType = "variations"
)

const (
	ScopeAll         Scope = "all"
	ScopeOperational Scope = "operational"
	ScopeTechnical   Scope = "technical"
	ScopeCommercial  Scope = "commercial"
	ScopeFinancial   Scope = "financial"
	ScopeStrategic   Scope = "strategic"
	ScopeSafety      Scope = "safety"
)

const (
	ActionRead    Action = "read"
	ActionWrite   Action = "write"
	ActionEdit    Action = "edit"
	ActionDelete  Action = "delete"
	ActionAdmin   Action = "admin"
	ActionApprove Action = "approve"
	ActionExport  Action = "export"
)

// ProjectsAll is the membership sentinel meaning every project.
const ProjectsAll = "all"

// Catalog is the process-wide permission vocabulary. Built once at startup,
// read-only afterward.
type Catalog struct {
	documentTypes map[DocumentType]struct{}
	scopes        map[Scope]struct{}
	actions       map[Action]struct{}
}

func DefaultCatalog() *Catalog {
	c := &Catalog{
		documentTypes: map[DocumentType]struct{}{},
		scopes:        map[Scope]struct{}{},
		actions:       map[Action]struct{}{},
	}
	for _, d := range []DocumentType{
		DocBOQ, DocSchedules, DocContracts, DocFinancials, DocInsurances,
		DocRFIs, DocMOMs, DocNCRs, DocQuotes, DocCommercial,
		DocTechnicalDrawings, DocSafetyReports, DocVariations,
	} {
		c.documentTypes[d] = struct{}{}
	}
	for _, s := range []Scope{
		ScopeAll, ScopeOperational, ScopeTechnical, ScopeCommercial,
		ScopeFinancial, ScopeStrategic, ScopeSafety,
	} {
		c.scopes[s] = struct{}{}
	}
	for _, a := range []Action{
		ActionRead, ActionWrite, ActionEdit, ActionDelete,
		ActionAdmin, ActionApprove, ActionExport,
	} {
		c.actions[a] = struct{}{}
	}
	return c
}

func (c *Catalog) ValidDocumentType(t DocumentType) bool {
	_, ok := c.documentTypes[t]
	return ok
}

func (c *Catalog) ValidScope(s Scope) bool {
	_, ok := c.scopes[s]
	return ok
}

func (c *Catalog) ValidAction(a Action) bool {
	_, ok := c.actions[a]
	return ok
}

// ConcreteScopes returns every scope except the "all" sentinel, in catalog
// order. Used when expanding "all" into an explicit mask.
func (c *Catalog) ConcreteScopes() []Scope {
	return []Scope{
		ScopeOperational, ScopeTechnical, ScopeCommercial,
		ScopeFinancial, ScopeStrategic, ScopeSafety,
	}
}

// ConcreteActions returns every action except "admin", in catalog order.
func (c *Catalog) ConcreteActions() []Action {
	return []Action{
		ActionRead, ActionWrite, ActionEdit, ActionDelete,
		ActionApprove, ActionExport,
	}
}
