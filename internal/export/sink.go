// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Sink stores an encoded export and returns where it went.
type Sink interface {
	/*
		Put stores body under name.

		Parameters:
		  - ctx: context.Context
		  - name: string (File name, extension included)
		  - contentType: string
		  - body: io.ReadSeeker (Encoded export)

		Returns:
		  - string: Location of the stored file (path or s3:// URL)
		  - error: Storage failures
	*/
	Put(ctx context.Context, name, contentType string, body io.ReadSeeker) (string, error)
}

// # Local Directory

// DirSink writes exports into a directory.
type DirSink struct {
	dir string
}

// NewDirSink returns a [DirSink] rooted at dir. The directory is created on
// first use.
func NewDirSink(dir string) *DirSink {
	return &DirSink{dir: dir}
}

// Put writes body atomically to dir/name.
func (sink *DirSink) Put(_ context.Context, name, _ string, body io.ReadSeeker) (string, error) {
	if err := os.MkdirAll(sink.dir, 0o750); err != nil {
		return "", fmt.Errorf("export_dir_create_failed: %w", err)
	}

	temp, err := os.CreateTemp(sink.dir, ".export-*")
	if err != nil {
		return "", fmt.Errorf("export_file_create_failed: %w", err)
	}
	defer os.Remove(temp.Name())

	if _, err := io.Copy(temp, body); err != nil {
		temp.Close()
		return "", fmt.Errorf("export_file_write_failed: %w", err)
	}
	if err := temp.Close(); err != nil {
		return "", fmt.Errorf("export_file_write_failed: %w", err)
	}

	target := filepath.Join(sink.dir, filepath.Base(name))
	if err := os.Rename(temp.Name(), target); err != nil {
		return "", fmt.Errorf("export_file_rename_failed: %w", err)
	}
	return target, nil
}

// # S3

// S3Config addresses an S3-compatible bucket (AWS, R2, MinIO).
type S3Config struct {
	Bucket          string
	Prefix          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// NewS3Client builds a client for cfg. A custom endpoint switches to
// path-style addressing.
func NewS3Client(cfg S3Config) *s3.Client {
	options := s3.Options{
		Region: cfg.Region,
		Credentials: aws.NewCredentialsCache(aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
			return aws.Credentials{
				AccessKeyID:     cfg.AccessKeyID,
				SecretAccessKey: cfg.SecretAccessKey,
				Source:          "campus-config",
			}, nil
		})),
	}
	if cfg.Endpoint != "" {
		options.BaseEndpoint = aws.String(cfg.Endpoint)
		options.UsePathStyle = true
	}
	return s3.New(options)
}

// S3Sink uploads exports to a bucket.
type S3Sink struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Sink returns an [S3Sink] writing under prefix in bucket.
func NewS3Sink(client *s3.Client, bucket, prefix string) *S3Sink {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &S3Sink{client: client, bucket: bucket, prefix: prefix}
}

// Put uploads body and returns its s3:// URL.
func (sink *S3Sink) Put(ctx context.Context, name, contentType string, body io.ReadSeeker) (string, error) {
	key := sink.prefix + filepath.Base(name)

	_, err := sink.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(sink.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("export_s3_put_failed: %w", err)
	}
	return "s3://" + sink.bucket + "/" + key, nil
}
