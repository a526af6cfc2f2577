package drive

import (
	"context"
	"fmt"
	"os"

	gdrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	googleauth "github.com/jkrogh/fokus/pkg/integration/google"
)

// DriveAPI is the upload interface used by Backup, split out for testability.
type DriveAPI interface {
	UploadFile(ctx context.Context, localPath, fileName, existingFileID string) (string, error)
}

// Service wraps the Google Drive API for the backup mirror. The mirror is
// upload-only: the vault on disk is the source of truth and Drive is a copy.
type Service struct {
	srv      *gdrive.Service
	folderID string
}

// NewService creates a new Drive service using service account credentials.
func NewService(ctx context.Context, credentialsFile, folderID string) (*Service, error) {
	client, err := googleauth.NewHTTPClient(ctx, credentialsFile, gdrive.DriveFileScope)
	if err != nil {
		return nil, err
	}
	srv, err := gdrive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &Service{srv: srv, folderID: folderID}, nil
}

// UploadFile uploads a local file to the Drive folder. If existingFileID is
// non-empty the existing file is updated in place; otherwise a new file is
// created. Returns the Drive file ID.
func (s *Service) UploadFile(ctx context.Context, localPath, fileName, existingFileID string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open local file: %w", err)
	}
	defer f.Close()

	if existingFileID != "" {
		file := &gdrive.File{Name: fileName}
		updated, err := s.srv.Files.Update(existingFileID, file).
			Media(f).
			Context(ctx).
			Do()
		if err != nil {
			return "", fmt.Errorf("update file: %w", err)
		}
		return updated.Id, nil
	}

	file := &gdrive.File{
		Name:    fileName,
		Parents: []string{s.folderID},
	}
	created, err := s.srv.Files.Create(file).
		Media(f).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	return created.Id, nil
}
