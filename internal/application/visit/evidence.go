package visit

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/jhoicas/medisupply-api/internal/application/dto"
	"github.com/jhoicas/medisupply-api/internal/domain"
)

// MaxEvidenceSizeMB tamaño máximo del archivo de evidencia.
const MaxEvidenceSizeMB = 30

var allowedEvidenceFormats = map[string]struct{}{
	"jpg": {}, "jpeg": {}, "png": {}, "bmp": {},
	"mp4": {}, "avi": {}, "mov": {}, "mkv": {},
}

// evidenceExtension valida formato y tamaño y devuelve la extensión normalizada.
func evidenceExtension(f *dto.EvidenceFile) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(f.Filename), "."))
	if _, ok := allowedEvidenceFormats[ext]; !ok {
		formats := make([]string, 0, len(allowedEvidenceFormats))
		for k := range allowedEvidenceFormats {
			formats = append(formats, k)
		}
		sort.Strings(formats)
		return "", domain.BadRequest("Invalid visual evidence file format. Allowed formats: %s", strings.Join(formats, ", "))
	}
	if f.Size > MaxEvidenceSizeMB*1024*1024 {
		return "", domain.BadRequest("Visual evidence file size exceeds the maximum limit of %d MB", MaxEvidenceSizeMB)
	}
	return ext, nil
}

// EvidencePath ruta del objeto: visits/<seller_id>/<visit_id>.<ext>.
func EvidencePath(sellerID, visitID, ext string) string {
	return "visits/" + sellerID + "/" + visitID + "." + ext
}
