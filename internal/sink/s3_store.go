package sink

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Store struct {
	bucket           string
	region           string
	accessKey        string
	secretKey        string
	endpoint         string
	disableChecksums bool

	Client S3API // test only; nil in prod, built lazily per call
}

// S3API abstracts the S3 operations the store uses (for testing).
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

func NewS3Store(opts map[string]interface{}) (Store, error) {
	bucket, _ := opts["bucket"].(string)
	region, _ := opts["region"].(string)
	accessKey, _ := opts["access_key"].(string)
	secretKey, _ := opts["secret_key"].(string)
	endpoint, _ := opts["endpoint"].(string)

	var disableChecksums bool
	if v, ok := opts["disable_checksums"]; ok {
		disableChecksums = toBool(v)
	}

	if bucket == "" || region == "" {
		return nil, fmt.Errorf("s3 store requires 'bucket' and 'region' options")
	}

	return &S3Store{
		bucket:           bucket,
		region:           region,
		accessKey:        accessKey,
		secretKey:        secretKey,
		endpoint:         endpoint,
		disableChecksums: disableChecksums,
	}, nil
}

func (s *S3Store) api(ctx context.Context) (S3API, error) {
	if s.Client != nil {
		return s.Client, nil
	}
	awsCfgOpts := []func(*config.LoadOptions) error{
		config.WithRegion(s.region),
	}
	if s.accessKey != "" {
		awsCfgOpts = append(awsCfgOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s.accessKey, s.secretKey, ""),
		))
	}
	if s.disableChecksums {
		awsCfgOpts = append(awsCfgOpts, config.WithRequestChecksumCalculation(0))
		awsCfgOpts = append(awsCfgOpts, config.WithResponseChecksumValidation(0))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, awsCfgOpts...)
	if err != nil {
		return nil, fmt.Errorf("aws config load error: %w", err)
	}
	s3Opts := []func(*s3.Options){}
	if s.endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = &s.endpoint
		})
	}
	return s3.NewFromConfig(awsCfg, s3Opts...), nil
}

func (s *S3Store) Upload(ctx context.Context, name string, data []byte) error {
	client, err := s.api(ctx)
	if err != nil {
		return err
	}
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("s3 put %s: %w", name, err)
	}
	return nil
}

func (s *S3Store) List(ctx context.Context, prefix string) ([]string, error) {
	client, err := s.api(ctx)
	if err != nil {
		return nil, err
	}
	var names []string
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	}
	for {
		out, err := client.ListObjectsV2(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("s3 list %q: %w", prefix, err)
		}
		for _, obj := range out.Contents {
			names = append(names, aws.ToString(obj.Key))
		}
		if !aws.ToBool(out.IsTruncated) {
			break
		}
		input.ContinuationToken = out.NextContinuationToken
	}
	return names, nil
}

func init() {
	Register("s3", NewS3Store)
}
