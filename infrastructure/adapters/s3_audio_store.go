package adapters

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/rs/zerolog/log"

	"storyspark-api/application/ports/outbound"
	"storyspark-api/config"
)

type s3AudioStore struct {
	s3Svc    *s3.S3
	s3Config *config.S3Config
}

func NewS3AudioStore(s3Svc *s3.S3, s3Config *config.S3Config) outbound.AudioStorePort {
	return &s3AudioStore{
		s3Svc:    s3Svc,
		s3Config: s3Config,
	}
}

func (s *s3AudioStore) Put(ctx context.Context, clipID string, audio []byte) (string, error) {
	key := fmt.Sprintf("clips/%s/audio.mp3", clipID)

	putInput := &s3.PutObjectInput{
		Bucket:        aws.String(s.s3Config.BucketName),
		Key:           aws.String(key),
		Body:          bytes.NewReader(audio),
		ContentType:   aws.String("audio/mpeg"),
		ContentLength: aws.Int64(int64(len(audio))),
	}

	if _, err := s.s3Svc.PutObjectWithContext(ctx, putInput); err != nil {
		log.Error().
			Err(err).
			Str("bucket", s.s3Config.BucketName).
			Str("key", key).
			Msg("Failed to upload audio to S3")
		return "", err
	}

	log.Debug().
		Str("key", key).
		Msg("Successfully uploaded audio to S3")

	return key, nil
}

func (s *s3AudioStore) Get(ctx context.Context, audioRef string) (io.ReadCloser, error) {
	out, err := s.s3Svc.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.s3Config.BucketName),
		Key:    aws.String(audioRef),
	})
	if err != nil {
		log.Error().
			Err(err).
			Str("bucket", s.s3Config.BucketName).
			Str("key", audioRef).
			Msg("Failed to fetch audio from S3")
		return nil, err
	}
	return out.Body, nil
}
