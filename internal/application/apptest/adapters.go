package apptest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/medisupply-api/internal/application/dto"
	"github.com/jhoicas/medisupply-api/internal/application/ports"
	"github.com/jhoicas/medisupply-api/internal/domain/repository"
)

// Mailer guarda los correos enviados.
type Mailer struct {
	mu   sync.Mutex
	Sent []ports.Email
	Err  error
}

func (m *Mailer) Send(_ context.Context, email ports.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, email)
	return nil
}

// Last último correo enviado o nil.
func (m *Mailer) Last() *ports.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return nil
	}
	e := m.Sent[len(m.Sent)-1]
	return &e
}

// Templates renderiza "nombre|clave=valor;..." para poder inspeccionar los datos en los tests.
type Templates struct{}

func (Templates) Render(name string, data any) (string, error) {
	values, ok := data.(map[string]any)
	if !ok {
		return name, nil
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, values[k]))
	}
	return name + "|" + strings.Join(parts, ";"), nil
}

// Geocoder resultados fijos por dirección; las desconocidas no tienen resultado.
type Geocoder struct {
	Results map[string]*ports.GeocodeResult
	Calls   int
}

func (g *Geocoder) Geocode(_ context.Context, address string) (*ports.GeocodeResult, error) {
	g.Calls++
	return g.Results[address], nil
}

// Storage almacenamiento de objetos en memoria.
type Storage struct {
	mu      sync.Mutex
	Objects map[string][]byte
}

func NewStorage() *Storage {
	return &Storage{Objects: map[string][]byte{}}
}

func (s *Storage) Upload(_ context.Context, path, _ string, body io.Reader, _ int64) error {
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Objects[path] = b
	return nil
}

func (s *Storage) SignedURL(_ context.Context, path string, expires time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Objects[path]; !ok {
		return "", errors.New("storage: objeto no encontrado")
	}
	return fmt.Sprintf("https://storage.test/%s?expires=%d", path, int(expires.Seconds())), nil
}

// Limiter límite de intentos fallidos en memoria.
type Limiter struct {
	Max      int
	ResetErr error
	failures map[string]int
}

func NewLimiter(max int) *Limiter {
	return &Limiter{Max: max, failures: map[string]int{}}
}

func (l *Limiter) Blocked(_ context.Context, email string) (bool, error) {
	return l.failures[strings.ToLower(email)] >= l.Max, nil
}

func (l *Limiter) RegisterFailure(_ context.Context, email string) error {
	l.failures[strings.ToLower(email)]++
	return nil
}

func (l *Limiter) Reset(_ context.Context, email string) error {
	if l.ResetErr != nil {
		return l.ResetErr
	}
	delete(l.failures, strings.ToLower(email))
	return nil
}

// Analytics resultados fijos de analítica.
type Analytics struct {
	Sellers  []repository.SellerSalesResult
	Products []repository.ProductSalesResult
	Start    time.Time
	End      time.Time
	Limit    int
}

func (a *Analytics) GetSalesBySeller(_ context.Context, start, end time.Time) ([]repository.SellerSalesResult, error) {
	a.Start, a.End = start, end
	return a.Sellers, nil
}

func (a *Analytics) GetTopProducts(_ context.Context, _, _ time.Time, limit int) ([]repository.ProductSalesResult, error) {
	a.Limit = limit
	if limit > 0 && len(a.Products) > limit {
		return a.Products[:limit], nil
	}
	return a.Products, nil
}

// PDF generador que devuelve el número de pedidos como contenido.
type PDF struct{}

func (PDF) OrdersReport(rep *dto.OrdersReportResponse, _ dto.OrdersReportQuery) ([]byte, error) {
	return []byte(fmt.Sprintf("%%PDF orders=%d", rep.TotalCount)), nil
}
