package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"montra/internal/apperrors"
	"montra/internal/media"
	"montra/pkg/blobstore"
)

// MediaService runs the derivative pipeline: an original photo in, an
// optimized version and a thumbnail out. It has two entry points that share
// the same pure transform — HandleUploadEvent receives blob content from
// the event trigger, ProcessByReference fetches the original itself. Both
// apply the derivative-name guard and write to the derivatives bucket under
// deterministic names, so duplicate or concurrent invocations for the same
// blob overwrite each other with byte-identical content.
type MediaService struct {
	blobs             blobstore.Store
	originalsBucket   string
	derivativesBucket string
}

// DerivativeResult reports where the derivatives of an original live.
type DerivativeResult struct {
	OriginalName string `json:"original_name"`
	OptimizedURL string `json:"optimized_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Skipped      bool   `json:"skipped,omitempty"`
}

// NewMediaService creates a new MediaService.
func NewMediaService(blobs blobstore.Store, originalsBucket, derivativesBucket string) *MediaService {
	return &MediaService{
		blobs:             blobs,
		originalsBucket:   originalsBucket,
		derivativesBucket: derivativesBucket,
	}
}

// HandleUploadEvent is the event-triggered entry point, invoked with the
// blob name and content of a freshly uploaded original. Derivative names
// are skipped without effect. Any transform or storage error fails the
// whole blob; the trigger layer decides whether to redeliver.
func (s *MediaService) HandleUploadEvent(ctx context.Context, name string, data []byte) error {
	if media.IsDerivative(name) {
		log.Printf("Skipping already processed image %s", name)
		return nil
	}
	_, err := s.process(ctx, name, data)
	return err
}

// ProcessByReference is the direct entry point, invoked with a blob URL or
// bare blob name. It fetches the original in full and runs the same
// transforms as the event path.
func (s *MediaService) ProcessByReference(ctx context.Context, ref string) (*DerivativeResult, error) {
	name := s.blobNameFromRef(ref)
	if name == "" {
		return nil, fmt.Errorf("blob reference %q is empty: %w", ref, apperrors.ErrValidation)
	}
	if media.IsDerivative(name) {
		log.Printf("Skipping already processed image %s", name)
		return &DerivativeResult{OriginalName: name, Skipped: true}, nil
	}

	data, err := s.blobs.Get(ctx, s.originalsBucket, name)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch original %s: %w: %w", name, apperrors.ErrUpstream, err)
	}

	return s.process(ctx, name, data)
}

// process computes and stores both derivatives. Either both writes happen
// or the blob is reported failed; a partially written pair is never treated
// as valid and is overwritten by the next attempt.
func (s *MediaService) process(ctx context.Context, name string, data []byte) (*DerivativeResult, error) {
	optimized, thumbnail, err := media.Derive(data)
	if err != nil {
		return nil, fmt.Errorf("failed to derive %s: %w", name, err)
	}

	if err := s.blobs.EnsureBucket(ctx, s.derivativesBucket); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrUpstream, err)
	}

	optimizedName := media.OptimizedName(name)
	thumbnailName := media.ThumbnailName(name)

	if err := s.blobs.Put(ctx, s.derivativesBucket, optimizedName, optimized, media.ContentType); err != nil {
		return nil, fmt.Errorf("failed to store optimized %s: %w: %w", optimizedName, apperrors.ErrUpstream, err)
	}
	if err := s.blobs.Put(ctx, s.derivativesBucket, thumbnailName, thumbnail, media.ContentType); err != nil {
		return nil, fmt.Errorf("failed to store thumbnail %s: %w: %w", thumbnailName, apperrors.ErrUpstream, err)
	}

	log.Printf("Successfully processed image %s", name)

	return &DerivativeResult{
		OriginalName: name,
		OptimizedURL: s.blobs.URL(s.derivativesBucket, optimizedName),
		ThumbnailURL: s.blobs.URL(s.derivativesBucket, thumbnailName),
	}, nil
}

// blobNameFromRef extracts a blob name from a URL or returns the reference
// unchanged when it is already a bare name. Blob names may contain slashes
// (they are prefixed with the business ID), so only the scheme, host and
// originals-bucket segment are stripped.
func (s *MediaService) blobNameFromRef(ref string) string {
	if !strings.Contains(ref, "://") {
		return strings.TrimPrefix(ref, "/")
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	p := strings.TrimPrefix(u.Path, "/")
	if after, ok := strings.CutPrefix(p, s.originalsBucket+"/"); ok {
		return after
	}
	return p
}
