package product

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Image is one entry returned by the blob service for a SKU
type Image struct {
	ImageURL  string `json:"imageUrl"`
	IsPrimary bool   `json:"isPrimary"`
}

// ImageSource lists the images stored for a SKU
type ImageSource interface {
	ImagesBySKU(ctx context.Context, sku SKU) ([]Image, error)
}

// ImagePick selects which image of a SKU is shown
type ImagePick int

const (
	// PickFirst uses the first image, as cart pages do
	PickFirst ImagePick = iota
	// PickPrimary uses the image flagged primary, as order pages do
	PickPrimary
)

// SelectImage returns the image URL chosen by pick, or "" when none matches
func SelectImage(images []Image, pick ImagePick) string {
	for _, image := range images {
		if image.ImageURL == "" {
			continue
		}
		if pick == PickFirst || image.IsPrimary {
			return image.ImageURL
		}
	}
	return ""
}

// ImageResolver looks up display images for many SKUs at once
type ImageResolver struct {
	source      ImageSource
	placeholder string
	limit       int
	logger      logrus.FieldLogger
}

// NewImageResolver creates a resolver; limit bounds concurrent lookups
func NewImageResolver(source ImageSource, placeholder string, limit int, logger logrus.FieldLogger) *ImageResolver {
	if limit < 1 {
		limit = 1
	}
	return &ImageResolver{
		source:      source,
		placeholder: placeholder,
		limit:       limit,
		logger:      logger,
	}
}

// ResolvedImages holds the outcome of a batch lookup
type ResolvedImages struct {
	urls        map[SKU]string
	placeholder string
}

// URL returns the looked-up image for sku, then fallback, then the placeholder
func (r ResolvedImages) URL(sku SKU, fallback string) string {
	if url, ok := r.urls[sku]; ok {
		return url
	}
	if fallback != "" {
		return fallback
	}
	return r.placeholder
}

// Resolve fans out one lookup per distinct SKU. A failed or empty lookup
// leaves the SKU unresolved; it never fails the batch.
func (r *ImageResolver) Resolve(ctx context.Context, skus []SKU, pick ImagePick) ResolvedImages {
	resolved := ResolvedImages{
		urls:        make(map[SKU]string, len(skus)),
		placeholder: r.placeholder,
	}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit)

	seen := make(map[SKU]struct{}, len(skus))
	for _, sku := range skus {
		if _, ok := seen[sku]; ok || sku.IsZero() {
			continue
		}
		seen[sku] = struct{}{}

		sku := sku
		g.Go(func() error {
			images, err := r.source.ImagesBySKU(gctx, sku)
			if err != nil {
				r.logger.WithError(err).WithField("sku", sku).Warn("image lookup failed, using placeholder")
				return nil
			}
			if selected := SelectImage(images, pick); selected != "" {
				mu.Lock()
				resolved.urls[sku] = selected
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return resolved
}
