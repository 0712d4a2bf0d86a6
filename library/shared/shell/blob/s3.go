package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/AntonStoeckl/library-lending-go/library/shared/shell/config"
)

// ErrMissingBucket is returned when an S3 store is created without a bucket.
var ErrMissingBucket = errors.New("s3 bucket required")

// S3Store stores objects in a single S3 bucket.
type S3Store struct {
	client *s3.Client
	bucket string
}

type s3Settings struct {
	httpClient  aws.HTTPClient
	credentials aws.CredentialsProvider
}

// S3Option customizes the AWS client of an S3Store.
type S3Option func(*s3Settings)

// WithHTTPClient replaces the HTTP client the SDK sends requests with.
func WithHTTPClient(client aws.HTTPClient) S3Option {
	return func(s *s3Settings) {
		s.httpClient = client
	}
}

// WithStaticCredentials uses fixed credentials instead of the default provider chain.
func WithStaticCredentials(accessKeyID, secretAccessKey string) S3Option {
	return func(s *s3Settings) {
		s.credentials = credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, "")
	}
}

// NewS3Store creates an S3Store from cfg. Credentials come from the default AWS chain
// (env, shared config, instance role) unless WithStaticCredentials is given.
func NewS3Store(ctx context.Context, cfg config.BlobConfig, options ...S3Option) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, ErrMissingBucket
	}

	settings := s3Settings{}
	for _, option := range options {
		option(&settings)
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOptions := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if settings.credentials != nil {
		loadOptions = append(loadOptions, awsconfig.WithCredentialsProvider(settings.credentials))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOptions...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			// S3 compatible stores do not all understand the SDK's default trailing checksums.
			o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
			o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
		}
		if settings.httpClient != nil {
			o.HTTPClient = settings.httpClient
		}
	})

	return &S3Store{client: client, bucket: cfg.Bucket}, nil
}

// Put uploads body under key, replacing an existing object.
func (s *S3Store) Put(ctx context.Context, key string, body []byte, contentType string) (Info, error) {
	if key == "" {
		return Info{}, ErrEmptyKey
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return Info{}, fmt.Errorf("put s3://%s/%s: %w", s.bucket, key, err)
	}

	return Info{
		Key:         key,
		Location:    s.location(key),
		Size:        int64(len(body)),
		ContentType: contentType,
	}, nil
}

func (s *S3Store) Get(ctx context.Context, key string) (Info, []byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return Info{}, nil, ErrNotFound
		}

		return Info{}, nil, fmt.Errorf("get s3://%s/%s: %w", s.bucket, key, err)
	}
	defer func() { _ = out.Body.Close() }()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return Info{}, nil, fmt.Errorf("read s3://%s/%s: %w", s.bucket, key, err)
	}

	return Info{
		Key:          key,
		Location:     s.location(key),
		Size:         int64(len(body)),
		ContentType:  aws.ToString(out.ContentType),
		LastModified: aws.ToTime(out.LastModified),
	}, body, nil
}

// List pages through all objects under prefix and returns them sorted by key.
func (s *S3Store) List(ctx context.Context, prefix string) ([]Info, error) {
	var infos []Info

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list s3://%s/%s: %w", s.bucket, prefix, err)
		}

		for _, object := range page.Contents {
			key := aws.ToString(object.Key)
			infos = append(infos, Info{
				Key:          key,
				Location:     s.location(key),
				Size:         aws.ToInt64(object.Size),
				LastModified: aws.ToTime(object.LastModified),
			})
		}
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })

	return infos, nil
}

func (s *S3Store) location(key string) string {
	return "s3://" + s.bucket + "/" + key
}

var _ Store = (*S3Store)(nil)
