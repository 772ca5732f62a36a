package http

import (
	"sort"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/medisupply-api/internal/application/dto"
)

// Permissions registro de rutas con sus métodos y roles, para GET /auth/permissions.
type Permissions struct {
	mu        sync.RWMutex
	endpoints map[string]*dto.EndpointPermission
	order     []string
}

// NewPermissions registro vacío.
func NewPermissions() *Permissions {
	return &Permissions{endpoints: map[string]*dto.EndpointPermission{}}
}

// Add registra method+path con sus roles (sin roles = pública).
func (p *Permissions) Add(method, path string, roles []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	key := path + "|" + strings.Join(roles, ",")
	ep, ok := p.endpoints[key]
	if !ok {
		ep = &dto.EndpointPermission{Path: path, Methods: []string{}, AllowedRoles: append([]string{}, roles...)}
		p.endpoints[key] = ep
		p.order = append(p.order, key)
	}
	ep.Methods = append(ep.Methods, method)
	sort.Strings(ep.Methods)
}

// For rutas públicas más las que el rol puede usar, en orden de registro.
func (p *Permissions) For(role string) []dto.EndpointPermission {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]dto.EndpointPermission, 0, len(p.order))
	for _, key := range p.order {
		ep := p.endpoints[key]
		if len(ep.AllowedRoles) == 0 || contains(ep.AllowedRoles, role) {
			out = append(out, *ep)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// routeGroup grupo de Fiber que registra cada ruta en Permissions y aplica RequireRole.
type routeGroup struct {
	router fiber.Router
	prefix string
	perms  *Permissions
}

func (g routeGroup) handle(method, path string, roles []string, h fiber.Handler) {
	g.perms.Add(method, g.prefix+path, roles)
	handlers := []fiber.Handler{}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	handlers = append(handlers, h)
	g.router.Add(method, path, handlers...)
}

func (g routeGroup) get(path string, roles []string, h fiber.Handler) {
	g.handle(fiber.MethodGet, path, roles, h)
}

func (g routeGroup) post(path string, roles []string, h fiber.Handler) {
	g.handle(fiber.MethodPost, path, roles, h)
}

func (g routeGroup) patch(path string, roles []string, h fiber.Handler) {
	g.handle(fiber.MethodPatch, path, roles, h)
}
