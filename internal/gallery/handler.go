package gallery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/qq-zhong/artChart-Triggers/internal/records"
	"github.com/qq-zhong/artChart-Triggers/internal/storage"
)

const uploadURLExpiry = 15 * time.Minute

type Presigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type Lister interface {
	List(ctx context.Context) ([]records.Record, error)
}

type Handler struct {
	presigner   Presigner
	lister      Lister
	bucket      string
	locatorBase string
	log         *zap.Logger
}

func New(presigner Presigner, lister Lister, bucket, locatorBase string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		presigner:   presigner,
		lister:      lister,
		bucket:      bucket,
		locatorBase: locatorBase,
		log:         log,
	}
}

var corsHeaders = map[string]string{
	"Content-Type":                 "application/json",
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
}

func (h *Handler) Handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	method := req.RequestContext.HTTP.Method
	if method == http.MethodOptions {
		return events.APIGatewayV2HTTPResponse{StatusCode: http.StatusOK, Headers: corsHeaders}, nil
	}

	switch method + " " + req.RequestContext.HTTP.Path {
	case "POST /upload-url":
		return h.uploadURL(ctx, req)
	case "GET /artwork":
		return h.listArtwork(ctx, req)
	}

	return jsonResponse(http.StatusNotFound, map[string]string{"error": "Not Found"}), nil
}

type uploadRequest struct {
	Filename string `json:"filename"`
}

type uploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
	ImageURL  string `json:"imageUrl"`
}

func (h *Handler) uploadURL(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	var body uploadRequest
	if err := json.Unmarshal([]byte(req.Body), &body); err != nil || body.Filename == "" {
		return jsonResponse(http.StatusBadRequest, map[string]string{"error": "filename is required"}), nil
	}

	key := fmt.Sprintf("images/%s-%s", uuid.NewString(), path.Base(body.Filename))

	presigned, err := h.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(h.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(uploadURLExpiry))
	if err != nil {
		h.log.Error("Failed to presign upload", zap.String("key", key), zap.Error(err))
		return jsonResponse(http.StatusInternalServerError, map[string]string{"error": "failed to create upload url"}), nil
	}

	return jsonResponse(http.StatusOK, uploadResponse{
		UploadURL: presigned.URL,
		Key:       key,
		ImageURL:  storage.BuildLocator(h.locatorBase, key),
	}), nil
}

func (h *Handler) listArtwork(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	recs, err := h.lister.List(ctx)
	if err != nil {
		h.log.Error("Failed to list artwork", zap.Error(err))
		return jsonResponse(http.StatusInternalServerError, map[string]string{"error": err.Error()}), nil
	}

	if req.QueryStringParameters["approved"] == "true" {
		approved := recs[:0]
		for _, r := range recs {
			if r.DetectArt != nil && *r.DetectArt {
				approved = append(approved, r)
			}
		}
		recs = approved
	}
	if recs == nil {
		recs = []records.Record{}
	}

	return jsonResponse(http.StatusOK, recs), nil
}

func jsonResponse(status int, body interface{}) events.APIGatewayV2HTTPResponse {
	b, _ := json.Marshal(body)
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    corsHeaders,
		Body:       string(b),
	}
}
