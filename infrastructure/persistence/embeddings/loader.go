package embeddings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"coursegraph/application/ports"
	pkgerrors "coursegraph/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// GetObjectAPI is the slice of the S3 client used to fetch the artifact
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Loader reads the embedding matrix from a local file, downloading it from S3 first
// when the file is missing and a bucket is configured.
type Loader struct {
	path   string
	bucket string
	key    string
	client GetObjectAPI
	logger *zap.Logger
}

// NewLoader creates an embedding loader. client may be nil when bucket is empty.
func NewLoader(path, bucket, key string, client GetObjectAPI, logger *zap.Logger) *Loader {
	return &Loader{path: path, bucket: bucket, key: key, client: client, logger: logger}
}

// LoadEmbeddings implements ports.EmbeddingLoader
func (l *Loader) LoadEmbeddings(ctx context.Context) (ports.EmbeddingStore, error) {
	if _, err := os.Stat(l.path); errors.Is(err, fs.ErrNotExist) && l.bucket != "" {
		if err := l.download(ctx); err != nil {
			return nil, pkgerrors.NewExternalError("s3", err)
		}
	}

	m, err := ReadNPYFile(l.path)
	if err != nil {
		return nil, err
	}

	l.logger.Info("Loaded embeddings",
		zap.String("path", l.path),
		zap.Int("rows", m.Rows()),
		zap.Int("dim", m.Dim()),
	)
	return m, nil
}

func (l *Loader) download(ctx context.Context) error {
	if l.client == nil {
		return errors.New("no S3 client configured")
	}

	l.logger.Info("Downloading embeddings",
		zap.String("bucket", l.bucket),
		zap.String("key", l.key),
	)

	out, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(l.key),
	})
	if err != nil {
		return fmt.Errorf("get s3://%s/%s: %w", l.bucket, l.key, err)
	}
	defer out.Body.Close()

	if dir := filepath.Dir(l.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	// A failed transfer must not leave a truncated file at path.
	tmp, err := os.CreateTemp(filepath.Dir(l.path), ".embeddings-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, out.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), l.path)
}
