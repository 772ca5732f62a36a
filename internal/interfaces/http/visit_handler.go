package http

import (
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/medisupply-api/internal/application/dto"
	"github.com/jhoicas/medisupply-api/internal/application/visit"
)

// VisitHandler visitas de vendedores a clientes.
type VisitHandler struct {
	uc *visit.UseCase
}

// NewVisitHandler construye el handler de visitas.
func NewVisitHandler(uc *visit.UseCase) *VisitHandler {
	return &VisitHandler{uc: uc}
}

// Create godoc
// @Summary      Solicitar visita del vendedor
// @Tags         visits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.VisitCreateRequest  true  "fecha esperada y dirección opcional"
// @Success      201   {object}  dto.VisitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/visits [post]
func (h *VisitHandler) Create(c *fiber.Ctx) error {
	var in dto.VisitCreateRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUser(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar visitas del usuario
// @Tags         visits
// @Produce      json
// @Security     BearerAuth
// @Param        expected_date  query  string  false  "YYYY-MM-DD"
// @Param        visit_status   query  string  false  "pending | completed"
// @Success      200  {object}  dto.VisitsResponse
// @Router       /api/v1/visits [get]
func (h *VisitHandler) List(c *fiber.Ctx) error {
	var q dto.VisitsQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	lq := visit.ListQuery{Status: q.VisitStatus}
	if q.ExpectedDate != "" {
		d, _ := time.Parse(dto.DateLayout, q.ExpectedDate)
		lq.ExpectedDate = &d
	}
	out, err := h.uc.List(c.UserContext(), GetUser(c), lq)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener visita
// @Tags         visits
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID de la visita"
// @Success      200  {object}  dto.VisitResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/visits/{id} [get]
func (h *VisitHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetUser(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reportar visita realizada
// @Tags         visits
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id               path      string  true   "ID de la visita"
// @Param        visit_date       formData  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        observations     formData  string  false  "observaciones"
// @Param        latitude         formData  number  true   "latitud"
// @Param        longitude        formData  number  true   "longitud"
// @Param        visual_evidence  formData  file    false  "imagen o video (máx. 30 MB)"
// @Success      200  {object}  dto.VisitResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/visits/{id}/report [patch]
func (h *VisitHandler) Report(c *fiber.Ctx) error {
	in, release, err := parseVisitReport(c)
	if err != nil {
		return err
	}
	defer release()
	out, err := h.uc.Report(c.UserContext(), GetUser(c), c.Params("id"), *in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// openFormFile abre el archivo subido (en memoria o en disco, según su tamaño).
var openFormFile = func(fh *multipart.FileHeader) (multipart.File, error) {
	return fh.Open()
}

// parseVisitReport lee el formulario multipart. release cierra la evidencia abierta; siempre es no nil si err es nil.
func parseVisitReport(c *fiber.Ctx) (*dto.VisitReportRequest, func(), error) {
	var details []dto.ValidationErrorDetail
	in := &dto.VisitReportRequest{}

	if s := strings.TrimSpace(c.FormValue("visit_date")); s != "" {
		t, err := parseVisitDate(s)
		if err != nil {
			details = append(details, formError("visit_date", "Input should be a valid datetime", "datetime_parsing"))
		} else {
			in.VisitDate = &t
		}
	}
	if s := c.FormValue("observations"); s != "" {
		in.Observations = &s
	}
	in.Latitude = formFloat(c, "latitude", &details)
	in.Longitude = formFloat(c, "longitude", &details)
	if len(details) > 0 {
		return nil, nil, &ValidationError{Details: details}
	}
	if err := validateStruct("body", in); err != nil {
		return nil, nil, err
	}

	fh, err := c.FormFile("visual_evidence")
	if err == nil && fh != nil && fh.Filename != "" {
		f, err := openFormFile(fh)
		if err != nil {
			return nil, nil, err
		}
		in.Evidence = &dto.EvidenceFile{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Size:        fh.Size,
			Content:     f,
		}
		return in, func() { _ = f.Close() }, nil
	}
	return in, func() {}, nil
}

func parseVisitDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Parse(dto.DateLayout, s)
}

// formFloat campo numérico obligatorio del formulario; acumula el error en details.
func formFloat(c *fiber.Ctx, field string, details *[]dto.ValidationErrorDetail) float64 {
	s := strings.TrimSpace(c.FormValue(field))
	if s == "" {
		*details = append(*details, formError(field, "Field required", "missing"))
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*details = append(*details, formError(field, "Input should be a valid number", "float_parsing"))
		return 0
	}
	return f
}

func formError(field, msg, typ string) dto.ValidationErrorDetail {
	return dto.ValidationErrorDetail{Loc: []string{"body", field}, Msg: msg, Type: typ}
}
