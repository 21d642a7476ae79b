package ports

// TemplateStore maps template ids to raw template text and renders them
// against a variable mapping. Rendering is literal substitution only.
type TemplateStore interface {
	// Render fails when the id is unknown or the template references a
	// variable absent from vars.
	Render(id string, vars map[string]string) (string, error)
	// List returns the loaded template ids, sorted.
	List() []string
}
