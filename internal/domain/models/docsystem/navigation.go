package docsystem

// HomeLabel is shown instead of the root's own name in breadcrumbs
const HomeLabel = "Home"

// Crumb is one breadcrumb entry, ordered root first
type Crumb struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Location describes where navigation currently is
type Location struct {
	Folder     *Node   `json:"folder"`
	Breadcrumb []Crumb `json:"breadcrumb"`
}
