// Package storage writes exported documents (translation memory dumps,
// sitemaps) to a local directory or to a DigitalOcean Spaces bucket.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/rs/zerolog/log"
)

type Storage interface {
	// Put stores data under name and returns where it can be fetched from.
	Put(ctx context.Context, name string, data []byte, contentType string) (string, error)
}

type LocalStorage struct {
	dir string
}

type SpacesStorage struct {
	client s3iface.S3API
	bucket string
	cdnURL string
	prefix string
}

func NewLocalStorage(dir string) *LocalStorage {
	return &LocalStorage{dir: dir}
}

func NewSpacesStorage(endpoint, region, bucket, cdnURL, accessKey, secretKey string) (*SpacesStorage, error) {
	config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(accessKey, secretKey, ""),
		Endpoint:         aws.String(endpoint),
		Region:           aws.String(region),
		S3ForcePathStyle: aws.Bool(false),
	}

	sess, err := session.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if cdnURL == "" {
		cdnURL = fmt.Sprintf("https://%s.%s", bucket, strings.TrimPrefix(endpoint, "https://"))
	}
	return newSpaces(s3.New(sess), bucket, cdnURL), nil
}

func newSpaces(client s3iface.S3API, bucket, cdnURL string) *SpacesStorage {
	return &SpacesStorage{client: client, bucket: bucket, cdnURL: strings.TrimSuffix(cdnURL, "/"), prefix: "exports"}
}

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// normalizeName flattens name into a single safe path element.
func normalizeName(name string) string {
	name = strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
	name = unsafeName.ReplaceAllString(filepath.Base(name), "")
	if strings.Trim(name, ".") == "" {
		name = "export"
	}
	return name
}

func (ls *LocalStorage) Put(_ context.Context, name string, data []byte, _ string) (string, error) {
	name = normalizeName(name)
	if err := os.MkdirAll(ls.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	dst := filepath.Join(ls.dir, name)
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to move export into place: %w", err)
	}

	log.Debug().Str("path", dst).Int("bytes", len(data)).Msg("[storage] export written")
	return dst, nil
}

func (ss *SpacesStorage) Put(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	key := path.Join(ss.prefix, normalizeName(name))
	if contentType == "" {
		contentType = ContentType(name)
	}

	_, err := ss.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(ss.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         aws.String("public-read"),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("[storage] failed to upload to Spaces")
		return "", fmt.Errorf("failed to upload to Spaces: %w", err)
	}

	return fmt.Sprintf("%s/%s", ss.cdnURL, key), nil
}

// ContentType guesses the media type of an export from its extension.
func ContentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return "application/json"
	case ".xml":
		return "application/xml"
	case ".csv":
		return "text/csv"
	case ".txt":
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
