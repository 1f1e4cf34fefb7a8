package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/citizenportal/internal/common"
	sc "github.com/dmitrijs2005/citizenportal/internal/server/config"
	"github.com/dmitrijs2005/citizenportal/internal/server/models"
	"github.com/dmitrijs2005/citizenportal/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const presignValidity = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// DocumentService keeps document metadata in the database and the files
// themselves in S3-compatible storage, reached through presigned URLs.
type DocumentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewDocumentService(db *sql.DB, repomanager repomanager.RepositoryManager, config *sc.Config) *DocumentService {
	return &DocumentService{
		db:          db,
		repomanager: repomanager,
		config:      config,
	}
}

// NewStorageKey returns documents/<yyyy>/<mm>/<dd>/<uuid> for t.
func NewStorageKey(t time.Time) string {
	return fmt.Sprintf("documents/%04d/%02d/%02d/%v", t.Year(), t.Month(), t.Day(), uuid.New())
}

func (s *DocumentService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		// MinIO and friends serve buckets by path
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// UploadTicket is a stored document plus the URL its file must be PUT to.
type UploadTicket struct {
	Document  *models.Document
	UploadURL string
}

// RequestUpload records a document for email and returns a presigned PUT URL.
func (s *DocumentService) RequestUpload(ctx context.Context, email, name string, docType models.DocumentType, notes string) (*UploadTicket, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: document name is required", common.ErrValidation)
	}
	if !docType.Valid() {
		return nil, fmt.Errorf("%w: unknown document type %q", common.ErrValidation, docType)
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, err
	}

	bucket := s.config.S3Bucket
	key := NewStorageKey(time.Now().UTC())

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignValidity))
	if err != nil {
		return nil, err
	}

	doc, err := s.repomanager.Documents(s.db).Create(ctx, &models.Document{
		UserEmail:    email,
		DocumentName: name,
		DocumentType: docType,
		StorageKey:   key,
		Notes:        notes,
	})
	if err != nil {
		return nil, err
	}

	return &UploadTicket{Document: doc, UploadURL: req.URL}, nil
}

func (s *DocumentService) List(ctx context.Context, email string) ([]*models.Document, error) {
	return s.repomanager.Documents(s.db).ListByUser(ctx, email)
}

// DownloadURL returns a presigned GET URL for document id. Only the owner
// and administrators may fetch it.
func (s *DocumentService) DownloadURL(ctx context.Context, email string, isAdmin bool, id string) (string, error) {
	doc, err := s.repomanager.Documents(s.db).Get(ctx, id)
	if err != nil {
		return "", err
	}
	if doc.UserEmail != email && !isAdmin {
		return "", common.ErrForbidden
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket
	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &doc.StorageKey,
	}, s3.WithPresignExpires(presignValidity))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
