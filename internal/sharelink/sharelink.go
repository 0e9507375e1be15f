// Package sharelink packs an exported game into a URL so it can be passed
// to another device. Tokens are brotli-compressed JSON in unpadded
// base64url.
package sharelink

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/andybalholm/brotli"
)

// Query parameters carried by a share URL.
const (
	StateParam = "state"
	ModeParam  = "mode"
)

// maxDecoded bounds decompression of untrusted tokens.
const maxDecoded = 8 << 20

var ErrInvalidLink = errors.New("invalid share link")

// Mode tells the receiving side whether the shared game may be edited.
type Mode string

const (
	ModeEdit Mode = "edit"
	ModeView Mode = "view"
)

// ParseMode maps a query value to a Mode; anything but "view" is edit.
func ParseMode(s string) Mode {
	if Mode(s) == ModeView {
		return ModeView
	}
	return ModeEdit
}

func Encode(data []byte) (string, error) {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, brotli.BestCompression)
	if _, err := w.Write(data); err != nil {
		return "", fmt.Errorf("compressing state: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("compressing state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

func Decode(token string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(token, "="))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLink, err)
	}

	data, err := io.ReadAll(io.LimitReader(brotli.NewReader(bytes.NewReader(raw)), maxDecoded+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLink, err)
	}
	if len(data) > maxDecoded {
		return nil, fmt.Errorf("%w: state too large", ErrInvalidLink)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty state", ErrInvalidLink)
	}
	return data, nil
}

// BuildURL returns base with the encoded game attached. Existing query
// parameters on base are kept.
func BuildURL(base string, data []byte, mode Mode) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing base url: %w", err)
	}
	token, err := Encode(data)
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set(StateParam, token)
	if mode == ModeView {
		q.Set(ModeParam, string(ModeView))
	} else {
		q.Del(ModeParam)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Parse accepts whatever a user pastes into an import box: a share URL, a
// bare token or raw exported JSON.
func Parse(input string) ([]byte, Mode, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ModeEdit, fmt.Errorf("%w: empty input", ErrInvalidLink)
	}
	if input[0] == '{' {
		return []byte(input), ModeEdit, nil
	}

	if strings.Contains(input, StateParam+"=") {
		u, err := url.Parse(input)
		if err != nil {
			return nil, ModeEdit, fmt.Errorf("%w: %v", ErrInvalidLink, err)
		}
		q := u.Query()
		token := q.Get(StateParam)
		if token == "" {
			return nil, ModeEdit, fmt.Errorf("%w: no state parameter", ErrInvalidLink)
		}
		data, err := Decode(token)
		if err != nil {
			return nil, ModeEdit, err
		}
		return data, ParseMode(q.Get(ModeParam)), nil
	}

	data, err := Decode(input)
	if err != nil {
		return nil, ModeEdit, err
	}
	return data, ModeEdit, nil
}
