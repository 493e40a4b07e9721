package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/kendall-kelly/cafe-tropis-api/utils"
)

// ImageService handles menu photo upload, retrieval and deletion
type ImageService interface {
	// UploadMenuImage validates and uploads a photo for a menu item, returns the storage key
	UploadMenuImage(ctx context.Context, itemID string, fileHeader *multipart.FileHeader) (string, error)

	// GetImageURL generates a URL for reading an uploaded photo
	GetImageURL(ctx context.Context, imageKey string) (string, error)

	// DeleteImage removes a photo from storage
	DeleteImage(ctx context.Context, imageKey string) error
}

// S3ImageService implements ImageService on top of an S3Interface
type S3ImageService struct {
	s3Service S3Interface
	now       func() time.Time
}

// NewImageService creates an image service backed by s3Service
func NewImageService(s3Service S3Interface) *S3ImageService {
	return &S3ImageService{
		s3Service: s3Service,
		now:       time.Now,
	}
}

// UploadMenuImage validates and uploads a menu photo to S3
func (s *S3ImageService) UploadMenuImage(ctx context.Context, itemID string, fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	key := utils.MenuImageKey(itemID, fileHeader.Filename, s.now())
	if err := s.s3Service.UploadFile(ctx, key, fileHeader); err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return key, nil
}

// GetImageURL generates a presigned URL for reading a photo
func (s *S3ImageService) GetImageURL(ctx context.Context, imageKey string) (string, error) {
	if imageKey == "" {
		return "", nil
	}

	url, err := s.s3Service.GetPresignedURL(ctx, imageKey)
	if err != nil {
		return "", fmt.Errorf("failed to generate image URL: %w", err)
	}

	return url, nil
}

// DeleteImage deletes a photo from S3
func (s *S3ImageService) DeleteImage(ctx context.Context, imageKey string) error {
	if imageKey == "" {
		return nil
	}

	if err := s.s3Service.DeleteFile(ctx, imageKey); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	return nil
}
