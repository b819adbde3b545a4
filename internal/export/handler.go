package export

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/simpledraw/simpledraw/internal/codec"
	"github.com/simpledraw/simpledraw/internal/typeid"
)

const maxUploadSize = 8 << 20 // 8MB

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// ExportPDF takes an encoded drawing as the request body and answers with
// the PDF rendering.
func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadSize))
	if err != nil {
		http.Error(w, "request too large", http.StatusBadRequest)
		return
	}

	canvas, err := codec.Unmarshal(body)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid drawing: %v", err), http.StatusBadRequest)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "drawing"
	}
	name = sanitizeName(name)

	exportID := typeid.NewExportID()
	slog.Info("export started", "id", exportID, "format", "pdf", "items", len(canvas.Items))

	var buf bytes.Buffer
	if err := PDF(&buf, canvas); err != nil {
		slog.Error("pdf export failed", "id", exportID, "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.pdf"`, name))
	if _, err := buf.WriteTo(w); err != nil {
		slog.Debug("write export", "id", exportID, "error", err)
	}
}

func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, name)
}
