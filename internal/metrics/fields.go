package metrics

// Attribute keys shared by every instrument so dashboards can join on them.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrEndpoint = "endpoint"
)
