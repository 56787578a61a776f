package service

import (
	"context"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Presigner hands out pre-signed upload URLs for an object key.
type Presigner interface {
	PresignPutObject(ctx context.Context, key, contentType string, expires time.Duration) (string, error)
}

type UploadService struct {
	presigner Presigner
}

func NewUploadService(p Presigner) *UploadService {
	return &UploadService{presigner: p}
}

// UploadURL returns a pre-signed PUT URL for a fresh jpeg object name.
func (s *UploadService) UploadURL(ctx context.Context) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("%s-%d.jpeg", id, time.Now().UnixMilli())
	return s.presigner.PresignPutObject(ctx, key, "image/jpeg", 1000*time.Second)
}
