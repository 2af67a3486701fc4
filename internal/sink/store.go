package sink

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/ginjaninja78/booking-invoicer/internal/storage"
)

// PayloadStore persists serialized payloads keyed by booking number.
// Saving the same booking number twice overwrites the earlier payload.
type PayloadStore interface {
	Save(ctx context.Context, bookingNumber string, data []byte) (string, error)
}

// =============================================================================
// LOCAL FILES
// =============================================================================

// FileStore writes payloads to <dir>/<booking number>.json.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Path returns the file a booking's payload is written to.
func (s *FileStore) Path(bookingNumber string) string {
	return filepath.Join(s.dir, bookingNumber+".json")
}

// Save writes data to the booking's payload file and returns its path.
func (s *FileStore) Save(_ context.Context, bookingNumber string, data []byte) (string, error) {
	target := s.Path(bookingNumber)
	if err := os.WriteFile(target, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write payload file: %w", err)
	}
	return target, nil
}

// =============================================================================
// OBJECT STORAGE MIRROR
// =============================================================================

// MirrorStore saves payloads locally and copies them to object storage under
// <prefix>/<booking number>.json. The local copy is authoritative: a failed
// upload is logged and does not fail the save.
type MirrorStore struct {
	local   PayloadStore
	objects storage.ObjectStorage
	bucket  string
	prefix  string
	logger  *logrus.Logger
}

// NewMirrorStore wraps local with an object storage mirror.
func NewMirrorStore(local PayloadStore, objects storage.ObjectStorage, bucket, prefix string, logger *logrus.Logger) *MirrorStore {
	return &MirrorStore{
		local:   local,
		objects: objects,
		bucket:  bucket,
		prefix:  prefix,
		logger:  logger,
	}
}

// ObjectKey returns the object key a booking's payload is mirrored to.
func (s *MirrorStore) ObjectKey(bookingNumber string) string {
	return path.Join(s.prefix, bookingNumber+".json")
}

func (s *MirrorStore) Save(ctx context.Context, bookingNumber string, data []byte) (string, error) {
	location, err := s.local.Save(ctx, bookingNumber, data)
	if err != nil {
		return "", err
	}

	key := s.ObjectKey(bookingNumber)
	out, err := s.objects.Upload(ctx, storage.UploadInput{
		Bucket:      s.bucket,
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: "application/json",
	})
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"booking": bookingNumber,
			"bucket":  s.bucket,
			"key":     key,
		}).Warn("Failed to mirror payload to object storage")
		return location, nil
	}

	s.logger.WithFields(logrus.Fields{
		"booking":  bookingNumber,
		"location": out.Location,
	}).Debug("Mirrored payload to object storage")
	return location, nil
}
