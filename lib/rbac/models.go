package rbac

import (
	"regexp"

	"adl-ops-backend/models"
)

type MethodRule struct {
	Method  HTTPMethod
	Handler models.RbacFunc
}

type HTTPMethod string

const (
	GET    HTTPMethod = "GET"
	POST   HTTPMethod = "POST"
	PUT    HTTPMethod = "PUT"
	DELETE HTTPMethod = "DELETE"
	PATCH  HTTPMethod = "PATCH"
	ALL    HTTPMethod = "ALL"
)

type PathRule struct {
	// comprobaciones ordenadas de rápida a lenta
	Exact    map[string]models.RbacFunc // coincidencias exactas
	Patterns []PatternRule              // reglas con regexp
}

type PatternRule struct {
	Pattern *regexp.Regexp
	Handler models.RbacFunc
}
