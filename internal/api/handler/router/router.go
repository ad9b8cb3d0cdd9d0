// Package router registra as rotas do dashboard no httprouter com middlewares por rota
package router

import (
	"net/http"
	"sort"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
)

// WithRoutes adiciona rotas ao Router
var (
	WithRoutes = func(routes ...Route) ConfigRouter {
		return func(router *Router) {
			router.AddRoutes(routes...)
		}
	}
)

// Route descreve uma rota e seus middlewares específicos
type Route struct {
	Path        string
	Method      string
	Handler     http.Handler
	Middlewares []func(http.Handler) http.Handler // aplicados apenas a esta rota
}

// Router encapsula o httprouter e guarda as rotas registradas
type Router struct {
	router     *httprouter.Router
	registered *[]string
}

// ConfigRouter é uma opção aplicada ao Router em New
type ConfigRouter func(router *Router)

// New cria o Router com respostas JSON para 404 e 405 e aplica as configurações
func New(configs ...ConfigRouter) Router {
	router := &Router{
		router:     httprouter.New(),
		registered: &[]string{},
	}
	router.router.NotFound = http.HandlerFunc(notFound)
	router.router.MethodNotAllowed = http.HandlerFunc(methodNotAllowed)

	for _, config := range configs {
		config(router)
	}

	return *router
}

// ServeHTTP implementa http.Handler
func (r Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

// AddRoutes adiciona rotas ao router com seus middlewares específicos. Rotas
// GET também respondem HEAD para verificações sem corpo.
func (r Router) AddRoutes(routes ...Route) {
	for _, route := range routes {
		handler := chain(route.Handler, route.Middlewares)

		r.handle(route.Method, route.Path, handler)
		if route.Method == http.MethodGet {
			r.handle(http.MethodHead, route.Path, handler)
		}
	}
}

// Routes lista os pares "MÉTODO caminho" registrados em ordem lexical
func (r Router) Routes() []string {
	routes := append([]string(nil), *r.registered...)
	sort.Strings(routes)
	return routes
}

// handle registra a rota no httprouter e na lista de rotas
func (r Router) handle(method, path string, handler http.Handler) {
	r.router.Handler(method, path, handler)
	*r.registered = append(*r.registered, method+" "+path)
}

// chain aplica os middlewares do último para o primeiro, assim middlewares[0] roda antes
func chain(handler http.Handler, middlewares []func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}

// notFound responde VAL_004 para rotas inexistentes
func notFound(w http.ResponseWriter, r *http.Request) {
	apiErrors.WriteError(w, apiErrors.ErrNotFound, "route not found", map[string]string{"path": r.URL.Path})
}

// methodNotAllowed responde VAL_005 quando a rota não aceita o método
func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	apiErrors.WriteError(w, apiErrors.ErrMethodNotAllowed, "method not allowed", map[string]string{"method": r.Method})
}
