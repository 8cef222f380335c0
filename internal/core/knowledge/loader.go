package knowledge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"ligo-assistent/config"
	s3client "ligo-assistent/pkg/s3"
	"ligo-assistent/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/ledongthuc/pdf"
)

// ErrNoDocument signals the reference document is absent or unreadable.
// Callers must treat it as a blocking condition, not a crash.
var ErrNoDocument = errors.New("reference document not available")

// Loader owns the memoized reference text. The document is read at most
// once per process lifetime; a restart is the only invalidation.
type Loader struct {
	path string

	once    sync.Once
	text    string
	loadErr error

	// extract is swappable in tests
	extract func(localPath string) (string, error)
}

func NewLoader(path string) *Loader {
	return &Loader{path: path, extract: extractPDFText}
}

// NewStaticLoader returns a loader pre-seeded with text, bypassing the file
// read entirely.
func NewStaticLoader(text string) *Loader {
	l := &Loader{text: text}
	l.once.Do(func() {})
	return l
}

// Load returns the full extracted text of the reference document.
// Identical calls return the identical cached value.
func (l *Loader) Load(ctx context.Context) (string, error) {
	l.once.Do(func() {
		local, cleanup, err := fetchToLocalTemp(ctx, l.path)
		if err != nil {
			logger.Error(err, "%v: fetch reference document failed", config.ModuleKnowledge)
			l.loadErr = ErrNoDocument
			return
		}
		defer cleanup()

		text, err := l.extract(local)
		if err != nil {
			logger.Error(err, "%v: extract reference document failed", config.ModuleKnowledge)
			l.loadErr = ErrNoDocument
			return
		}
		if strings.TrimSpace(text) == "" {
			l.loadErr = ErrNoDocument
			return
		}
		l.text = text
		logger.Info("%v: reference document loaded (%d chars)", config.ModuleKnowledge, len(text))
	})
	return l.text, l.loadErr
}

// fetchToLocalTemp downloads a local or S3 file to a temporary path and
// returns a cleanup function.
func fetchToLocalTemp(ctx context.Context, filePath string) (string, func(), error) {
	if strings.HasPrefix(filePath, "s3://") {
		u, err := url.Parse(filePath)
		if err != nil {
			return "", func() {}, err
		}
		bucket := u.Host
		key := strings.TrimPrefix(u.Path, "/")
		cli, err := s3client.GetClient()
		if err != nil {
			return "", func() {}, err
		}
		tmp, err := os.CreateTemp("", "reglement-*.pdf")
		if err != nil {
			return "", func() {}, err
		}
		out, err := cli.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)})
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			return "", func() {}, err
		}
		defer out.Body.Close()
		if _, err := io.Copy(tmp, out.Body); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			return "", func() {}, err
		}
		tmp.Close()
		return tmp.Name(), func() { _ = os.Remove(tmp.Name()) }, nil
	}

	abs := filePath
	if !filepath.IsAbs(abs) {
		cwd, _ := os.Getwd()
		abs = filepath.Join(cwd, filePath)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", func() {}, err
	}
	return abs, func() {}, nil
}

// extractPDFText concatenates the plain text of every page in order.
func extractPDFText(localPath string) (text string, err error) {
	// the pdf reader panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf extraction panicked: %v", r)
		}
	}()

	f, reader, err := pdf.Open(localPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf bytes.Buffer
	rd, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	if _, err := buf.ReadFrom(rd); err != nil {
		return "", err
	}
	return buf.String(), nil
}
