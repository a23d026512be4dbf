package sink

import (
	"context"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/require"
)

type mockS3API struct {
	putKeys   []string
	lastBody  []byte
	returnErr error

	pages     [][]string
	pageIndex int
}

func (m *mockS3API) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.putKeys = append(m.putKeys, aws.ToString(params.Key))
	body, _ := io.ReadAll(params.Body)
	m.lastBody = body
	return &s3.PutObjectOutput{}, m.returnErr
}

func (m *mockS3API) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	page := m.pages[m.pageIndex]
	m.pageIndex++
	out := &s3.ListObjectsV2Output{}
	for _, key := range page {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(key)})
	}
	if m.pageIndex < len(m.pages) {
		out.IsTruncated = aws.Bool(true)
		out.NextContinuationToken = aws.String("next")
	}
	return out, nil
}

func newTestS3Store(t *testing.T, mock *mockS3API) *S3Store {
	t.Helper()
	st, err := NewS3Store(map[string]interface{}{
		"bucket": "properties",
		"region": "eu-west-1",
	})
	require.NoError(t, err)
	s3st := st.(*S3Store)
	s3st.Client = mock
	return s3st
}

func TestS3Store_Upload(t *testing.T) {
	mock := &mockS3API{}
	store := newTestS3Store(t, mock)

	err := store.Upload(context.Background(), "abc-part-0.csv", []byte("data"))
	require.NoError(t, err)
	require.Equal(t, []string{"abc-part-0.csv"}, mock.putKeys)
	require.Equal(t, "data", string(mock.lastBody))
}

func TestS3Store_ListPaginates(t *testing.T) {
	mock := &mockS3API{pages: [][]string{
		{"hash-a.txt", "hash-b.txt"},
		{"hash-c.txt"},
	}}
	store := newTestS3Store(t, mock)

	names, err := store.List(context.Background(), "hash-")
	require.NoError(t, err)
	require.Equal(t, []string{"hash-a.txt", "hash-b.txt", "hash-c.txt"}, names)
}

func TestNewS3Store_RequiresBucketAndRegion(t *testing.T) {
	_, err := NewS3Store(map[string]interface{}{"bucket": "b"})
	require.Error(t, err)
}
