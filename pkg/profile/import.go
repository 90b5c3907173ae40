package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"

	apperrors "github.com/matzehuels/flamelens/pkg/errors"
	"github.com/matzehuels/flamelens/pkg/httputil"
)

// Read decodes a single profile from r.
//
// The input must be one JSON object in the format described in the package
// documentation. Frame values are coerced leniently (see [Frame]); only
// structural JSON errors fail the read. Read does not close r.
func Read(r io.Reader) (*Frame, error) {
	var root Frame
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidProfile, err, "decode profile")
	}
	return &root, nil
}

// ReadFile reads a profile from the file at path.
//
// The path is validated before opening. A missing file reports
// [apperrors.ErrCodeFileNotFound] so callers can distinguish it from a
// malformed document.
func ReadFile(path string) (*Frame, error) {
	if err := apperrors.ValidatePath(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	return Read(f)
}

// Fetch downloads and decodes a profile from an http(s) URL.
//
// Transient upstream failures are retried with backoff and the response
// size is capped at [httputil.DefaultMaxBytes]. A nil client uses a default
// with sane timeouts.
func Fetch(ctx context.Context, url string, client *http.Client) (*Frame, error) {
	data, err := httputil.Get(ctx, client, url, httputil.DefaultMaxBytes)
	if err != nil {
		return nil, err
	}
	return Read(bytes.NewReader(data))
}

// Load reads a profile from source, which is either a local file path or an
// http(s) URL. Remote sources go through [Fetch], everything else through
// [ReadFile].
func Load(ctx context.Context, source string, client *http.Client) (*Frame, error) {
	if apperrors.IsRemote(source) {
		return Fetch(ctx, source, client)
	}
	return ReadFile(source)
}
