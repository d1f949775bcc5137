package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"montra/internal/apperrors"
	"montra/internal/models"
	"montra/internal/repositories"
	"montra/pkg/blobstore"
	"montra/pkg/rabbitmq"

	"github.com/google/uuid"
)

// maxPhotoSize bounds a single uploaded original.
const maxPhotoSize = 5 * 1024 * 1024

// UploadEventPublisher publishes photo-upload events for the media pipeline
// consumer. Implemented by rabbitmq.Client.
type UploadEventPublisher interface {
	PublishPhotoUploaded(event rabbitmq.PhotoUploadedEvent) error
}

// BusinessService is the façade for business operations. It orchestrates
// the favourite consistency engine on mutation: update fans out new
// snapshot values, delete marks the business inactive first and then
// cascades favourite removal.
type BusinessService struct {
	businessRepo    repositories.BusinessRepository
	favorites       *FavoriteService
	blobs           blobstore.Store
	publisher       UploadEventPublisher // may be nil, events are then skipped
	originalsBucket string
}

// NewBusinessService creates a new BusinessService.
func NewBusinessService(
	businessRepo repositories.BusinessRepository,
	favorites *FavoriteService,
	blobs blobstore.Store,
	publisher UploadEventPublisher,
	originalsBucket string,
) *BusinessService {
	return &BusinessService{
		businessRepo:    businessRepo,
		favorites:       favorites,
		blobs:           blobs,
		publisher:       publisher,
		originalsBucket: originalsBucket,
	}
}

// CreateBusiness registers a new business owned by the given user.
func (s *BusinessService) CreateBusiness(ownerID string, business *models.Business) error {
	business.ID = uuid.New().String()
	business.OwnerID = ownerID
	business.IsActive = true
	if business.Photos == nil {
		business.Photos = []string{}
	}
	return s.businessRepo.Create(business)
}

// ListBusinesses returns active businesses matching the filter.
func (s *BusinessService) ListBusinesses(filter repositories.BusinessFilter) ([]models.Business, error) {
	return s.businessRepo.ListActive(filter)
}

// GetBusiness retrieves an active business by ID. Inactive or missing
// businesses are both reported as not found.
func (s *BusinessService) GetBusiness(id string) (*models.Business, error) {
	business, err := s.businessRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !business.IsActive {
		return nil, fmt.Errorf("business with ID %s: %w", id, apperrors.ErrNotFound)
	}
	return business, nil
}

// ListMyBusinesses returns all businesses registered by a user, including
// inactive ones.
func (s *BusinessService) ListMyBusinesses(ownerID string) ([]models.Business, error) {
	return s.businessRepo.ListByOwner(ownerID)
}

// UpdateBusiness replaces the editable fields of a business owned by the
// caller, then synchronously fans the new name and category out to every
// favourite referencing it. The fan-out runs in the same request so
// favourite snapshots are current by the time the caller sees the update.
func (s *BusinessService) UpdateBusiness(callerID, id string, updated *models.Business) (*models.Business, error) {
	existing, err := s.businessRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !existing.IsActive {
		return nil, fmt.Errorf("business with ID %s: %w", id, apperrors.ErrNotFound)
	}
	if existing.OwnerID != callerID {
		return nil, fmt.Errorf("business %s is not owned by caller: %w", id, apperrors.ErrForbidden)
	}

	existing.Name = updated.Name
	existing.Category = updated.Category
	existing.Street = updated.Street
	existing.PostalCode = updated.PostalCode
	existing.Phone = updated.Phone
	existing.Email = updated.Email
	existing.Website = updated.Website
	existing.Description = updated.Description

	if err := s.businessRepo.Update(existing); err != nil {
		return nil, err
	}

	if err := s.favorites.SyncBusinessSnapshot(existing.ID, existing.Name, existing.Category); err != nil {
		// Stale snapshots reconcile on the next successful update.
		log.Printf("Snapshot fan-out failed for business %s: %v", existing.ID, err)
	}

	return existing, nil
}

// DeleteBusiness soft-deletes a business owned by the caller: the record is
// marked inactive first, then every favourite referencing it is removed.
// The ordering matters: a favourite read interleaving with the cascade sees
// a business that is already gone rather than a dangling reference.
func (s *BusinessService) DeleteBusiness(callerID, id string) error {
	existing, err := s.businessRepo.GetByID(id)
	if err != nil {
		return err
	}
	if !existing.IsActive {
		return fmt.Errorf("business with ID %s: %w", id, apperrors.ErrNotFound)
	}
	if existing.OwnerID != callerID {
		return fmt.Errorf("business %s is not owned by caller: %w", id, apperrors.ErrForbidden)
	}

	existing.IsActive = false
	if err := s.businessRepo.Update(existing); err != nil {
		return err
	}

	if err := s.favorites.RemoveAllForBusiness(id); err != nil {
		log.Printf("Favourite cascade failed for business %s: %v", id, err)
	}
	return nil
}

// AttachPhoto stores an uploaded original in the originals bucket, appends
// its blob name to the business's photo list and publishes an upload event
// for the derivative pipeline. Returns the stored blob name.
func (s *BusinessService) AttachPhoto(ctx context.Context, callerID, businessID, filename string, data []byte, contentType string) (string, error) {
	business, err := s.businessRepo.GetByID(businessID)
	if err != nil {
		return "", err
	}
	if !business.IsActive {
		return "", fmt.Errorf("business with ID %s: %w", businessID, apperrors.ErrNotFound)
	}
	if business.OwnerID != callerID {
		return "", fmt.Errorf("business %s is not owned by caller: %w", businessID, apperrors.ErrForbidden)
	}

	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("only image files are allowed: %w", apperrors.ErrValidation)
	}
	if len(data) == 0 || len(data) > maxPhotoSize {
		return "", fmt.Errorf("photo must be between 1 byte and %d bytes: %w", maxPhotoSize, apperrors.ErrValidation)
	}

	blobName := fmt.Sprintf("%s/%s-%s", businessID, uuid.New().String(), filename)

	if err := s.blobs.EnsureBucket(ctx, s.originalsBucket); err != nil {
		return "", fmt.Errorf("%w: %w", apperrors.ErrUpstream, err)
	}
	if err := s.blobs.Put(ctx, s.originalsBucket, blobName, data, contentType); err != nil {
		return "", fmt.Errorf("%w: %w", apperrors.ErrUpstream, err)
	}

	business.Photos = append(business.Photos, blobName)
	if err := s.businessRepo.Update(business); err != nil {
		return "", err
	}

	if s.publisher != nil {
		event := rabbitmq.PhotoUploadedEvent{
			BlobName:   blobName,
			BusinessID: businessID,
			UploadedAt: time.Now(),
		}
		if err := s.publisher.PublishPhotoUploaded(event); err != nil {
			// The direct processing endpoint can still derive this photo.
			log.Printf("Warning: failed to publish upload event for %s: %v", blobName, err)
		} else {
			log.Printf("Published upload event for %s", blobName)
		}
	} else {
		log.Println("Upload event publisher is not initialized. Skipping message publication.")
	}

	return blobName, nil
}
