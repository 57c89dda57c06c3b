package config

import "strings"

const AuthRouteModeStatic = "static"

type RouteConfig interface {
	GetAuthRouteMode() string
	GetStaticSuperRole() string
	GetConstantRoutes() ConstantRoutes
	GetLoginRoute() string
	GetHomeRoute() string
}

type Routes struct{}

var _ RouteConfig = Routes{}

// ConstantRoutes are the routes reachable without a session.
type ConstantRoutes map[string]struct{}
type nullValue = struct{}

func (c ConstantRoutes) IsConstant(path string) bool {
	_, ok := c[path]
	return ok
}

func (c ConstantRoutes) String() string {
	var routes []string
	for k := range c {
		routes = append(routes, k)
	}
	return strings.Join(routes, ", ")
}

// NewConstantRoutes builds the set from paths, skipping blanks.
func NewConstantRoutes(paths ...string) ConstantRoutes {
	routes := ConstantRoutes{}
	for _, p := range paths {
		if p = strings.TrimSpace(p); p != "" {
			routes[p] = nullValue{}
		}
	}
	return routes
}

// GetAuthRouteMode is "static" or "dynamic".
func (Routes) GetAuthRouteMode() string {
	return strings.ToLower(GetEnv("AUTH_ROUTE_MODE", AuthRouteModeStatic))
}

func (Routes) GetStaticSuperRole() string {
	return GetEnv("STATIC_SUPER_ROLE", "R_SUPER")
}

func (r Routes) GetConstantRoutes() ConstantRoutes {
	routes := NewConstantRoutes(strings.Split(GetEnv("CONSTANT_ROUTES", "/403,/404,/500"), ",")...)
	routes[r.GetLoginRoute()] = nullValue{}
	return routes
}

func (Routes) GetLoginRoute() string {
	return GetEnv("LOGIN_ROUTE", "/login")
}

func (Routes) GetHomeRoute() string {
	return GetEnv("HOME_ROUTE", "/home")
}
