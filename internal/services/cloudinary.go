package services

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// AudioAsset identifies an uploaded recording.
type AudioAsset struct {
	FileID string
	URL    string
}

// AudioStore keeps recording audio outside the journal document.
type AudioStore interface {
	UploadAudio(ctx context.Context, audio io.Reader, name string) (AudioAsset, error)
	DeleteAudio(ctx context.Context, fileID string) error
}

// Cloudinary files audio under the "video" resource type.
const cloudinaryAudioResourceType = "video"

type CloudinaryService struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryService(cloudName, apiKey, apiSecret, folder string) (*CloudinaryService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	if folder == "" {
		folder = "voice-journal"
	}

	return &CloudinaryService{
		cld:    cld,
		folder: folder,
	}, nil
}

// UploadAudio uploads a recording and returns its public id and secure URL.
func (s *CloudinaryService) UploadAudio(ctx context.Context, audio io.Reader, name string) (AudioAsset, error) {
	fileBytes, err := io.ReadAll(audio)
	if err != nil {
		return AudioAsset{}, fmt.Errorf("failed to read audio: %w", err)
	}
	if len(fileBytes) == 0 {
		return AudioAsset{}, fmt.Errorf("audio %q is empty", name)
	}

	uploadResult, err := s.cld.Upload.Upload(ctx, fileBytes, uploader.UploadParams{
		Folder:       s.folder,
		ResourceType: cloudinaryAudioResourceType,
	})
	if err != nil {
		return AudioAsset{}, fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}
	if uploadResult.Error.Message != "" {
		return AudioAsset{}, fmt.Errorf("cloudinary rejected %q: %s", name, uploadResult.Error.Message)
	}

	return AudioAsset{FileID: uploadResult.PublicID, URL: uploadResult.SecureURL}, nil
}

// DeleteAudio removes an uploaded recording by public id.
func (s *CloudinaryService) DeleteAudio(ctx context.Context, fileID string) error {
	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     fileID,
		ResourceType: cloudinaryAudioResourceType,
	})
	if err != nil {
		return fmt.Errorf("failed to delete from Cloudinary: %w", err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("cloudinary rejected delete of %q: %s", fileID, result.Error.Message)
	}
	return nil
}
