package api

import (
	"encoding/base64"
	"net/http"
	"time"

	"github.com/ludhianaseo/reviewqr/kiosk"
)

// genericErrorMessage is the only failure text users see; causes are logged.
const genericErrorMessage = "An unexpected error occurred"

// maxImageSize caps the ?size= parameter of /qr.png.
const maxImageSize = 2048

type generateResponse struct {
	Business    string    `json:"business"`
	Review      string    `json:"review"`
	Payload     string    `json:"payload"`
	QRPNG       string    `json:"qr_png"`
	GeneratedAt time.Time `json:"generated_at"`
}

// generate runs the generate action behind a single error boundary. On
// failure it writes the generic error response and returns nil.
func (s *Server) generate(w http.ResponseWriter, r *http.Request) *kiosk.Result {
	res, err := s.Kiosk.Generate(r.Context())
	if err != nil {
		s.Log.Error("generate failed", "error", err, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, genericErrorMessage)
		return nil
	}
	return res
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	res := s.generate(w, r)
	if res == nil {
		return
	}

	s.Log.Info("review generated", "payload", res.Payload)
	writeJSON(w, http.StatusOK, generateResponse{
		Business:    s.Kiosk.Business(),
		Review:      res.ReviewText,
		Payload:     res.Payload,
		QRPNG:       base64.StdEncoding.EncodeToString(res.PNG),
		GeneratedAt: res.GeneratedAt,
	})
}

// handleQRImage serves only the QR code; no review is generated.
func (s *Server) handleQRImage(w http.ResponseWriter, r *http.Request) {
	code, err := s.Kiosk.QRCode()
	if err != nil {
		s.Log.Error("qr code failed", "error", err, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, genericErrorMessage)
		return
	}

	var png []byte
	if size := queryInt(r, "size", 0); size > 0 {
		if size > maxImageSize {
			size = maxImageSize
		}
		png, err = code.ScaledPNG(size)
	} else {
		png, err = code.DisplayPNG()
	}
	if err != nil {
		s.Log.Error("render qr failed", "error", err)
		writeError(w, http.StatusInternalServerError, genericErrorMessage)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// handleReviewText serves only a review suggestion; no QR code is encoded.
func (s *Server) handleReviewText(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(s.Kiosk.Review().Text()))
}
