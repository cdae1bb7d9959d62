package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type StorageService interface {
	UploadFile(ctx context.Context, file io.Reader, filename, contentType, folder string) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
}

type SupabaseStorageService struct {
	baseURL string
	bucket  string
	client  *resty.Client
}

func NewSupabaseStorageService(baseURL, bucket, serviceKey string) *SupabaseStorageService {
	baseURL = strings.TrimRight(baseURL, "/")
	client := resty.New().
		SetBaseURL(baseURL+"/storage/v1").
		SetAuthToken(serviceKey).
		SetHeader("apikey", serviceKey).
		SetTimeout(30 * time.Second)
	return &SupabaseStorageService{
		baseURL: baseURL,
		bucket:  bucket,
		client:  client,
	}
}

func (s *SupabaseStorageService) UploadFile(ctx context.Context, file io.Reader, filename, contentType, folder string) (string, error) {
	objectPath := path.Join(strings.Trim(folder, "/"), filename)

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if contentType == "" {
		contentType = http.DetectContentType(content)
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("x-upsert", "true").
		SetHeader("Content-Type", contentType).
		SetBody(content).
		Post(fmt.Sprintf("/object/%s/%s", s.bucket, objectPath))
	if err != nil {
		return "", fmt.Errorf("upload file: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("upload file: status %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, objectPath), nil
}

func (s *SupabaseStorageService) DeleteFile(ctx context.Context, fileURL string) error {
	objectPath, err := s.objectPathFromURL(fileURL)
	if err != nil {
		return err
	}

	resp, err := s.client.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/object/%s/%s", s.bucket, objectPath))
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil
	}
	if resp.IsError() {
		return fmt.Errorf("delete file: status %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	return nil
}

func (s *SupabaseStorageService) objectPathFromURL(fileURL string) (string, error) {
	parsed, err := url.Parse(fileURL)
	if err != nil {
		return "", fmt.Errorf("parse file url: %w", err)
	}

	publicPrefix := "/storage/v1/object/public/" + s.bucket + "/"
	objectPrefix := "/storage/v1/object/" + s.bucket + "/"

	switch {
	case strings.HasPrefix(parsed.Path, publicPrefix):
		return strings.TrimPrefix(parsed.Path, publicPrefix), nil
	case strings.HasPrefix(parsed.Path, objectPrefix):
		return strings.TrimPrefix(parsed.Path, objectPrefix), nil
	default:
		return "", fmt.Errorf("file url does not belong to configured bucket")
	}
}
