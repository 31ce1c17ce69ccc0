package gallery

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qq-zhong/artChart-Triggers/internal/records"
	"github.com/qq-zhong/artChart-Triggers/internal/storage"
)

type MockPresigner struct {
	Input *s3.PutObjectInput
	Err   error
}

func (m *MockPresigner) PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	m.Input = params
	if m.Err != nil {
		return nil, m.Err
	}
	return &v4.PresignedHTTPRequest{URL: "https://s3.example/" + *params.Key + "?X-Amz-Signature=sig", Method: http.MethodPut}, nil
}

type MockLister struct {
	Records []records.Record
	Err     error
}

func (m *MockLister) List(ctx context.Context) ([]records.Record, error) {
	return m.Records, m.Err
}

func request(method, path, body string) events.APIGatewayV2HTTPRequest {
	req := events.APIGatewayV2HTTPRequest{Body: body}
	req.RequestContext.HTTP.Method = method
	req.RequestContext.HTTP.Path = path
	return req
}

func TestHandler_UploadURL(t *testing.T) {
	presigner := &MockPresigner{}
	h := New(presigner, &MockLister{}, "art-images", "https://storage.local/v0/b/art-images", nil)

	resp, err := h.Handle(context.Background(), request(http.MethodPost, "/upload-url", `{"filename":"../cat.png"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body uploadResponse
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))

	assert.Equal(t, "art-images", *presigner.Input.Bucket)
	assert.True(t, strings.HasPrefix(body.Key, "images/"))
	assert.True(t, strings.HasSuffix(body.Key, "-cat.png"))
	assert.Contains(t, body.UploadURL, body.Key)

	path, err := storage.ParseLocator(body.ImageURL)
	require.NoError(t, err)
	assert.Equal(t, body.Key, path)
}

func TestHandler_UploadURL_BadRequest(t *testing.T) {
	h := New(&MockPresigner{}, &MockLister{}, "b", "https://x", nil)

	for _, body := range []string{"", "{", `{"filename":""}`} {
		resp, err := h.Handle(context.Background(), request(http.MethodPost, "/upload-url", body))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "body %q", body)
	}
}

func TestHandler_UploadURL_PresignError(t *testing.T) {
	h := New(&MockPresigner{Err: errors.New("no creds")}, &MockLister{}, "b", "https://x", nil)

	resp, err := h.Handle(context.Background(), request(http.MethodPost, "/upload-url", `{"filename":"a.png"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestHandler_ListArtwork(t *testing.T) {
	yes := true
	lister := &MockLister{Records: []records.Record{
		{ID: "a", ImageURL: "https://x/o/a.png", DetectArt: &yes},
		{ID: "b", ImageURL: "https://x/o/b.png"},
	}}
	h := New(&MockPresigner{}, lister, "b", "https://x", nil)

	resp, err := h.Handle(context.Background(), request(http.MethodGet, "/artwork", ""))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var all []records.Record
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &all))
	assert.Len(t, all, 2)

	req := request(http.MethodGet, "/artwork", "")
	req.QueryStringParameters = map[string]string{"approved": "true"}
	resp, err = h.Handle(context.Background(), req)
	require.NoError(t, err)

	var approved []records.Record
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &approved))
	require.Len(t, approved, 1)
	assert.Equal(t, "a", approved[0].ID)
}

func TestHandler_ListArtwork_Empty(t *testing.T) {
	h := New(&MockPresigner{}, &MockLister{}, "b", "https://x", nil)

	resp, err := h.Handle(context.Background(), request(http.MethodGet, "/artwork", ""))
	require.NoError(t, err)
	assert.Equal(t, "[]", resp.Body)
}

func TestHandler_ListArtwork_Error(t *testing.T) {
	h := New(&MockPresigner{}, &MockLister{Err: records.ErrPersistence}, "b", "https://x", nil)

	resp, err := h.Handle(context.Background(), request(http.MethodGet, "/artwork", ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestHandler_Routes(t *testing.T) {
	h := New(&MockPresigner{}, &MockLister{}, "b", "https://x", nil)

	resp, err := h.Handle(context.Background(), request(http.MethodOptions, "/anything", ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])

	resp, err = h.Handle(context.Background(), request(http.MethodGet, "/nope", ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
