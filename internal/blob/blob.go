// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/awsctl/awsctl/internal/log"
)

// DefaultMaxSize bounds every blob. The largest payload any bound operation
// accepts is a Support attachment at 5 MB; certificates and settings are far
// smaller.
const DefaultMaxSize int64 = 8 << 20

// ErrTooLarge is returned when a source exceeds the loader's MaxSize.
var ErrTooLarge = errors.New("blob exceeds maximum size")

// GetObjectAPI is the slice of the S3 client the loader uses.
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
}

// Blob is a loaded byte parameter and a name suitable as a file name.
type Blob struct {
	Name string
	Data []byte
}

// Loader resolves byte-array parameter values:
//
//   - @path            the contents of a local file
//   - -                all of stdin
//   - s3://bucket/key  an S3 object; ?versionId= selects a version
//   - anything else    the literal text
type Loader struct {
	In      io.Reader
	S3      func(context.Context) (GetObjectAPI, error)
	MaxSize int64

	stdinUsed bool
}

// Load resolves spec into a Blob.
func (l *Loader) Load(ctx context.Context, spec string) (Blob, error) {
	switch {
	case spec == "-":
		return l.stdin()
	case strings.HasPrefix(spec, "@"):
		return l.file(spec[1:])
	case strings.HasPrefix(spec, "s3://"):
		return l.object(ctx, spec)
	default:
		return Blob{Data: []byte(spec)}, nil
	}
}

func (l *Loader) limit() int64 {
	if l.MaxSize > 0 {
		return l.MaxSize
	}
	return DefaultMaxSize
}

// read copies at most limit bytes of r into a scoped buffer.
func (l *Loader) read(r io.Reader, source string) ([]byte, error) {
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, l.limit()+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", source, err)
	}
	if n > l.limit() {
		return nil, fmt.Errorf("%s: %w (%d bytes)", source, ErrTooLarge, l.limit())
	}
	log.Debugf("blob loaded: source=%s, bytes=%d", source, n)
	return buf.Bytes(), nil
}

func (l *Loader) stdin() (Blob, error) {
	if l.In == nil {
		return Blob{}, errors.New("no stdin available for '-'")
	}
	if l.stdinUsed {
		return Blob{}, errors.New("stdin can be read only once per invocation")
	}
	l.stdinUsed = true
	data, err := l.read(l.In, "stdin")
	if err != nil {
		return Blob{}, err
	}
	return Blob{Name: "stdin", Data: data}, nil
}

func (l *Loader) file(p string) (Blob, error) {
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[2:])
		}
	}
	f, err := os.Open(p)
	if err != nil {
		return Blob{}, fmt.Errorf("opening blob file: %w", err)
	}
	defer f.Close()

	data, err := l.read(f, p)
	if err != nil {
		return Blob{}, err
	}
	return Blob{Name: filepath.Base(p), Data: data}, nil
}

func (l *Loader) object(ctx context.Context, spec string) (Blob, error) {
	bucket, key, version, err := ParseS3URI(spec)
	if err != nil {
		return Blob{}, err
	}
	if l.S3 == nil {
		return Blob{}, fmt.Errorf("no S3 client available for %s", spec)
	}
	client, err := l.S3(ctx)
	if err != nil {
		return Blob{}, fmt.Errorf("creating S3 client: %w", err)
	}

	input := &s3v2.GetObjectInput{
		Bucket: awsv2.String(bucket),
		Key:    awsv2.String(key),
	}
	if version != "" {
		input.VersionId = awsv2.String(version)
	}

	result, err := client.GetObject(ctx, input)
	if err != nil {
		return Blob{}, fmt.Errorf("failed to get S3 object %s: %w", spec, err)
	}
	defer result.Body.Close()

	data, err := l.read(result.Body, spec)
	if err != nil {
		return Blob{}, err
	}
	return Blob{Name: path.Base(key), Data: data}, nil
}

// ParseS3URI splits s3://bucket/key[?versionId=v].
func ParseS3URI(spec string) (bucket, key, version string, err error) {
	u, err := url.Parse(spec)
	if err != nil {
		return "", "", "", fmt.Errorf("invalid S3 URI %q: %w", spec, err)
	}
	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if u.Scheme != "s3" || bucket == "" || key == "" {
		return "", "", "", fmt.Errorf("invalid S3 URI %q: want s3://bucket/key", spec)
	}
	return bucket, key, u.Query().Get("versionId"), nil
}
