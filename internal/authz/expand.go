package authz

// ScopeSet is an expanded data-access mask: the "all" sentinel has already
// been resolved into concrete scopes.
type ScopeSet map[Scope]struct{}

func (s ScopeSet) Has(scope Scope) bool {
	_, ok := s[scope]
	return ok
}

// Full reports whether the mask covers every concrete scope in the catalog.
func (s ScopeSet) Full(c *Catalog) bool {
	for _, scope := range c.ConcreteScopes() {
		if !s.Has(scope) {
			return false
		}
	}
	return true
}

// List returns the mask in catalog order, for stable JSON output.
func (s ScopeSet) List(c *Catalog) []Scope {
	out := make([]Scope, 0, len(s))
	for _, scope := range c.ConcreteScopes() {
		if s.Has(scope) {
			out = append(out, scope)
		}
	}
	return out
}

// ExpandScopes resolves a role's dataAccess list into a concrete mask,
// expanding the "all" sentinel. Unknown tags are dropped, never granted.
func ExpandScopes(c *Catalog, scopes []Scope) ScopeSet {
	mask := ScopeSet{}
	for _, s := range scopes {
		if s == ScopeAll {
			for _, cs := range c.ConcreteScopes() {
				mask[cs] = struct{}{}
			}
			continue
		}
		if c.ValidScope(s) {
			mask[s] = struct{}{}
		}
	}
	return mask
}

// ExpandActions resolves a role's action list, expanding the "admin"
// sentinel into every action (admin itself included, so the expanded set can
// be checked against an "admin" requirement directly).
func ExpandActions(c *Catalog, actions []Action) map[Action]struct{} {
	set := map[Action]struct{}{}
	for _, a := range actions {
		if a == ActionAdmin {
			set[ActionAdmin] = struct{}{}
			for _, ca := range c.ConcreteActions() {
				set[ca] = struct{}{}
			}
			continue
		}
		if c.ValidAction(a) {
			set[a] = struct{}{}
		}
	}
	return set
}

// ExpandProjects resolves a user's project membership list. The second
// return is true when the list carries the "all" sentinel, in which case the
// member set is nil and every project is accessible.
func ExpandProjects(projects []string) (map[string]struct{}, bool) {
	for _, p := range projects {
		if p == ProjectsAll {
			return nil, true
		}
	}
	set := make(map[string]struct{}, len(projects))
	for _, p := range projects {
		set[p] = struct{}{}
	}
	return set, false
}
