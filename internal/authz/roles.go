package authz

// RoleDefinition is a role permission bundle before persistence.
type RoleDefinition struct {
	Name             string
	Description      string
	AllowedDocuments []DocumentType
	DataAccess       []Scope
	Actions          []Action
}

// DefaultRoles are the standard construction-program roles seeded into an
// empty registry. Administrators can edit or extend them afterward.
func DefaultRoles() []RoleDefinition {
	return []RoleDefinition{
		{
			Name:        "ceo",
			Description: "Chief Executive Officer - full access to all data and operations",
			AllowedDocuments: []DocumentType{
				DocBOQ, DocSchedules, DocContracts, DocFinancials, DocInsurances,
				DocRFIs, DocMOMs, DocNCRs, DocQuotes, DocCommercial,
			},
			DataAccess: []Scope{ScopeAll},
			Actions:    []Action{ActionAdmin},
		},
		{
			Name:        "director",
			Description: "Director - strategic oversight and financial access",
			AllowedDocuments: []DocumentType{
				DocBOQ, DocSchedules, DocContracts, DocFinancials, DocInsurances,
				DocRFIs, DocMOMs, DocNCRs,
			},
			DataAccess: []Scope{ScopeStrategic, ScopeOperational, ScopeFinancial},
			Actions:    []Action{ActionRead, ActionEdit, ActionApprove, ActionExport},
		},
		{
			Name:        "project_manager",
			Description: "Project Manager - operational and technical project data",
			AllowedDocuments: []DocumentType{
				DocBOQ, DocSchedules, DocRFIs, DocMOMs, DocNCRs, DocTechnicalDrawings,
			},
			DataAccess: []Scope{ScopeOperational, ScopeTechnical},
			Actions:    []Action{ActionRead, ActionEdit, ActionExport},
		},
		{
			Name:        "site_manager",
			Description: "Site Manager - on-site operations and technical data only",
			AllowedDocuments: []DocumentType{
				DocSchedules, DocRFIs, DocMOMs, DocNCRs, DocTechnicalDrawings, DocSafetyReports,
			},
			DataAccess: []Scope{ScopeOperational, ScopeTechnical},
			Actions:    []Action{ActionRead, ActionEdit},
		},
		{
			Name:        "engineer",
			Description: "Engineer - technical documentation and specifications",
			AllowedDocuments: []DocumentType{
				DocBOQ, DocSchedules, DocTechnicalDrawings, DocRFIs, DocNCRs,
			},
			DataAccess: []Scope{ScopeTechnical, ScopeOperational},
			Actions:    []Action{ActionRead, ActionEdit},
		},
		{
			Name:        "commercial_manager",
			Description: "Commercial Manager - financial and contractual matters",
			AllowedDocuments: []DocumentType{
				DocContracts, DocQuotes, DocFinancials, DocInsurances, DocVariations,
			},
			DataAccess: []Scope{ScopeCommercial, ScopeFinancial},
			Actions:    []Action{ActionRead, ActionEdit, ActionApprove},
		},
		{
			Name:        "safety_officer",
			Description: "Safety Officer - safety compliance and reporting",
			AllowedDocuments: []DocumentType{
				DocSafetyReports, DocNCRs, DocMOMs, DocSchedules,
			},
			DataAccess: []Scope{ScopeSafety, ScopeOperational},
			Actions:    []Action{ActionRead, ActionEdit},
		},
	}
}
