package aws_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	awsctl "github.com/sootra/accessibility-app/internal/controllers/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	f.body, _ = io.ReadAll(params.Body)
	return &s3.PutObjectOutput{}, f.err
}

func TestController_PutS3Object(t *testing.T) {
	fixed := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	testCases := []struct {
		Name        string
		Bucket      string
		Err         error
		ExpectedKey string
		ExpectError bool
		ExpectCall  bool
	}{
		{
			Name:   "disabled",
			Bucket: "",
		},
		{
			Name:        "uploaded",
			Bucket:      "reports",
			ExpectedKey: "2026-10-15T12:00:00Z.req-1.json",
			ExpectCall:  true,
		},
		{
			Name:        "failure",
			Bucket:      "reports",
			Err:         errors.New("access denied"),
			ExpectError: true,
			ExpectCall:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			client := &fakeS3{err: tc.Err}
			ctl, err := awsctl.NewController(
				awsctl.WithS3Client(client),
				awsctl.WithClock(func() time.Time { return fixed }))
			require.NoError(t, err)

			key, err := ctl.PutS3Object(context.Background(), "req-1", tc.Bucket, []byte(`{"results":{}}`))
			if tc.ExpectError {
				assert.ErrorContains(t, err, "access denied")
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.ExpectedKey, key)
			if !tc.ExpectCall {
				assert.Nil(t, client.input)
				return
			}
			require.NotNil(t, client.input)
			assert.Equal(t, tc.Bucket, *client.input.Bucket)
			assert.Equal(t, "application/json", *client.input.ContentType)
			assert.Equal(t, `{"results":{}}`, string(client.body))
		})
	}
}
