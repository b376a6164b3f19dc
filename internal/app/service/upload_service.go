package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"

	"github.com/ikkim/brandsite-backend/internal/storage"
	"github.com/ikkim/brandsite-backend/pkg/logger"
)

// File is one upload as received from a multipart form.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// FileFromHeader opens a multipart part. The caller closes the returned closer.
func FileFromHeader(fh *multipart.FileHeader) (File, io.Closer, error) {
	f, err := fh.Open()
	if err != nil {
		return File{}, nil, err
	}
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		if byExt := mime.TypeByExtension(filepath.Ext(fh.Filename)); byExt != "" {
			contentType = byExt
		}
	}
	return File{Name: fh.Filename, ContentType: contentType, Size: fh.Size, Body: f}, f, nil
}

type UploadService interface {
	Upload(ctx context.Context, file File) (string, error)
	UploadAll(ctx context.Context, files []File) ([]string, error)
}

type uploadService struct {
	store        storage.BlobStore
	folder       string
	maxSize      int64
	allowedTypes []string
}

func NewUploadService(store storage.BlobStore, folder string, maxSize int64) UploadService {
	return &uploadService{
		store:        store,
		folder:       folder,
		maxSize:      maxSize,
		allowedTypes: storage.ImageContentTypes,
	}
}

func (s *uploadService) validate(file File) error {
	if err := storage.ValidateFileSize(file.Size, s.maxSize); err != nil {
		if errors.Is(err, storage.ErrEmptyFile) {
			return invalid("file", fmt.Sprintf("%s is empty", file.Name))
		}
		return invalid("file", fmt.Sprintf("%s exceeds the %d byte limit", file.Name, s.maxSize))
	}
	if err := storage.ValidateContentType(file.ContentType, s.allowedTypes); err != nil {
		return invalid("file", fmt.Sprintf("%s is not a supported image type", file.Name))
	}
	return nil
}

func (s *uploadService) Upload(ctx context.Context, file File) (string, error) {
	if err := s.validate(file); err != nil {
		logger.Warn("Upload rejected", map[string]interface{}{
			"filename":     file.Name,
			"content_type": file.ContentType,
			"size":         file.Size,
		})
		return "", err
	}
	return s.put(ctx, file)
}

func (s *uploadService) put(ctx context.Context, file File) (string, error) {
	key := storage.NewObjectKey(s.folder, file.Name)
	url, err := s.store.Put(ctx, key, file.ContentType, file.Body, file.Size)
	if err != nil {
		logger.Error("Failed to store upload", err, map[string]interface{}{
			"key":      key,
			"filename": file.Name,
		})
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	logger.Info("File uploaded", map[string]interface{}{
		"key":  key,
		"size": file.Size,
	})
	return url, nil
}

// UploadAll validates every file before storing any, then stores them in order.
// The first failure aborts the batch.
func (s *uploadService) UploadAll(ctx context.Context, files []File) ([]string, error) {
	for _, f := range files {
		if err := s.validate(f); err != nil {
			return nil, err
		}
	}

	urls := make([]string, 0, len(files))
	for _, f := range files {
		url, err := s.put(ctx, f)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}
