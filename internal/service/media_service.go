package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"

	config "smmagent/configs"
	"smmagent/pkg/utils"
)

// MediaService mirrors generated images into Cloudflare R2 so posts carry a
// stable public URL instead of a short-lived upstream one.
type MediaService struct {
	config config.Config
}

func NewMediaService(cfg config.Config) *MediaService {
	return &MediaService{config: cfg}
}

func (m *MediaService) Enabled() bool {
	return m.config.R2.AccountID != "" && m.config.R2.BucketName != "" && m.config.R2.PublicHost != ""
}

func (m *MediaService) r2Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(m.config.R2.AccessKey, m.config.R2.SecretKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", m.config.R2.AccountID))
	}), nil
}

// MirrorImage downloads srcURL, validates it is an image and re-uploads it to
// R2 under a fresh key. Returns the public URL of the uploaded copy.
func (m *MediaService) MirrorImage(ctx context.Context, srcURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", srcURL, nil)
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error downloading image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code downloading image: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading image content: %w", err)
	}

	kind, err := filetype.Match(data)
	if err != nil || kind == types.Unknown {
		return "", fmt.Errorf("unsupported file type: %w", err)
	}
	if kind.MIME.Type != "image" {
		return "", fmt.Errorf("file type %s is not an image", kind.Extension)
	}

	id, err := utils.NewID()
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("%s.%s", id, kind.Extension)

	client, err := m.r2Client(ctx)
	if err != nil {
		return "", err
	}

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.config.R2.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(kind.MIME.Value),
	})
	if err != nil {
		return "", fmt.Errorf("error uploading to r2: %w", err)
	}

	return fmt.Sprintf("https://%s/%s", m.config.R2.PublicHost, key), nil
}
