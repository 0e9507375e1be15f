package sharelink_test

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/playperu/moneybags/internal/sharelink"
)

const game = `{"players":[{"id":"p1","name":"Alice","color":"#ef4444","avatar":"car"}],"loans":[],"loanEvents":[],"properties":[],"totalPassedGo":0,"bankruptcyThreshold":5000}`

func TestEncodeDecode(t *testing.T) {
	token, err := sharelink.Encode([]byte(game))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if strings.ContainsAny(token, "+/=") {
		t.Errorf("token %q is not url-safe", token)
	}

	got, err := sharelink.Decode(token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(got) != game {
		t.Errorf("decode = %s, want %s", got, game)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	for _, token := range []string{"", "!!!", "not a token"} {
		if _, err := sharelink.Decode(token); !errors.Is(err, sharelink.ErrInvalidLink) {
			t.Errorf("Decode(%q) err = %v, want ErrInvalidLink", token, err)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		mode     sharelink.Mode
		wantMode string
	}{
		{"edit", "http://localhost:8080/", sharelink.ModeEdit, ""},
		{"view", "http://localhost:8080/", sharelink.ModeView, "view"},
		{"keeps query", "https://example.com/app?lang=en&mode=view", sharelink.ModeEdit, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := sharelink.BuildURL(tt.base, []byte(game), tt.mode)
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			u, err := url.Parse(raw)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			q := u.Query()
			if q.Get(sharelink.StateParam) == "" {
				t.Error("missing state parameter")
			}
			if got := q.Get(sharelink.ModeParam); got != tt.wantMode {
				t.Errorf("mode = %q, want %q", got, tt.wantMode)
			}
			if strings.Contains(tt.base, "lang=en") && q.Get("lang") != "en" {
				t.Error("existing query parameter dropped")
			}

			data, mode, err := sharelink.Parse(raw)
			if err != nil {
				t.Fatalf("parse link: %v", err)
			}
			if string(data) != game {
				t.Errorf("round trip = %s", data)
			}
			if mode != tt.mode {
				t.Errorf("parsed mode = %q, want %q", mode, tt.mode)
			}
		})
	}
}

func TestParseInputs(t *testing.T) {
	token, err := sharelink.Encode([]byte(game))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"raw json", "  " + game + "\n", false},
		{"bare token", token, false},
		{"url", "http://host/?state=" + token, false},
		{"url without token", "http://host/?state=", true},
		{"empty", "   ", true},
		{"nonsense", "hello world", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, mode, err := sharelink.Parse(tt.input)
			if tt.wantErr {
				if !errors.Is(err, sharelink.ErrInvalidLink) {
					t.Fatalf("err = %v, want ErrInvalidLink", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if string(data) != game {
				t.Errorf("data = %s", data)
			}
			if mode != sharelink.ModeEdit {
				t.Errorf("mode = %q, want edit", mode)
			}
		})
	}
}
