// Package kiosk implements the single generate action shared by the web and
// command line shells: one review suggestion plus the review QR code.
package kiosk

import (
	"context"
	"fmt"
	"time"

	"github.com/ludhianaseo/reviewqr/metrics"
	"github.com/ludhianaseo/reviewqr/qr"
	"github.com/ludhianaseo/reviewqr/review"
)

// Result is the immutable output of one generate action. Shells render it and
// then drop it.
type Result struct {
	Review      review.Review
	ReviewText  string
	Payload     string
	Code        *qr.Code
	PNG         []byte // display sized
	GeneratedAt time.Time
}

// Service wires the review generator to the QR encoder.
type Service struct {
	generator *review.Generator
	payload   string
	opts      qr.Options
	now       func() time.Time
}

// NewService returns a Service for the business behind gen and the given
// place identifier.
func NewService(gen *review.Generator, placeID string, opts qr.Options) *Service {
	return &Service{
		generator: gen,
		payload:   qr.ReviewURL(placeID),
		opts:      opts,
		now:       time.Now,
	}
}

// Business returns the configured business name.
func (s *Service) Business() string { return s.generator.Business() }

// Payload returns the review URL every QR code encodes.
func (s *Service) Payload() string { return s.payload }

// Options returns the QR rendering options.
func (s *Service) Options() qr.Options { return s.opts }

// Generate produces a fresh review and the QR code for the review URL.
func (s *Service) Generate(ctx context.Context) (res *Result, err error) {
	defer func() { metrics.ObserveGeneration(err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	code, err := s.QRCode()
	if err != nil {
		return nil, err
	}
	png, err := code.DisplayPNG()
	if err != nil {
		return nil, fmt.Errorf("render qr: %w", err)
	}

	r := s.generator.Generate()
	return &Result{
		Review:      r,
		ReviewText:  r.Text(),
		Payload:     s.payload,
		Code:        code,
		PNG:         png,
		GeneratedAt: s.now(),
	}, nil
}

// Review generates a review suggestion without encoding a QR code. It is not
// counted as a generate action.
func (s *Service) Review() review.Review {
	return s.generator.Generate()
}

// QRCode encodes the review URL without generating a review. It is not
// counted as a generate action.
func (s *Service) QRCode() (*qr.Code, error) {
	code, err := qr.Encode(s.payload, s.opts)
	if err != nil {
		return nil, fmt.Errorf("encode review url: %w", err)
	}
	return code, nil
}
