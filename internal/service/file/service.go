package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kerjakita/kerjakita-backend-go/internal/pkg/storage"
)

// Kind selects the validation rules and storage prefix of an upload.
type Kind string

const (
	KindCV          Kind = "cv"
	KindContractDoc Kind = "contract-doc"
	KindAdminDoc    Kind = "admin-doc"
	KindPhoto       Kind = "photo"
	KindLogo        Kind = "logo"
)

var (
	ErrUnknownKind     = errors.New("unknown upload kind")
	ErrInvalidFileType = errors.New("file type not allowed for this upload")
	ErrFileTooLarge    = errors.New("file exceeds the size limit for this upload")
)

type rule struct {
	exts     []string
	maxBytes int64
	prefix   string
}

var rules = map[Kind]rule{
	KindCV:          {exts: []string{".pdf"}, maxBytes: 2 << 20, prefix: "cv"},
	KindContractDoc: {exts: []string{".pdf"}, maxBytes: 5 << 20, prefix: "contracts"},
	KindAdminDoc:    {exts: []string{".pdf"}, maxBytes: 5 << 20, prefix: "admin-docs"},
	KindPhoto:       {exts: []string{".jpg", ".jpeg", ".png"}, maxBytes: 2 << 20, prefix: "photos"},
	KindLogo:        {exts: []string{".jpg", ".jpeg", ".png"}, maxBytes: 2 << 20, prefix: "logos"},
}

type FileService interface {
	// Upload validates and stores a file, returning its public URL.
	// Mutating endpoints reference the returned URL afterwards.
	Upload(ctx context.Context, kind Kind, ownerID string, file io.Reader, filename string, size int64) (string, error)

	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{storage: storage}
}

func (s *fileServiceImpl) Upload(ctx context.Context, kind Kind, ownerID string, file io.Reader, filename string, size int64) (string, error) {
	r, ok := rules[kind]
	if !ok {
		return "", ErrUnknownKind
	}

	ext := strings.ToLower(filepath.Ext(filename))
	valid := false
	for _, allowed := range r.exts {
		if ext == allowed {
			valid = true
			break
		}
	}
	if !valid {
		return "", ErrInvalidFileType
	}

	if size > r.maxBytes {
		return "", ErrFileTooLarge
	}

	newFilename := fmt.Sprintf("%s-%s%s", uuid.New().String(), ownerID, ext)
	path := filepath.Join(r.prefix, ownerID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, path, contentTypeFor(ext))
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", kind, err)
	}

	url, err := s.storage.GetURL(ctx, uploadedPath, 0)
	if err != nil {
		return "", fmt.Errorf("failed to resolve file URL: %w", err)
	}
	return url, nil
}

func contentTypeFor(ext string) string {
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	}
	return "application/octet-stream"
}

func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, path, expiry)
}
