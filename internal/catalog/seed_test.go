package catalog

import (
	"errors"
	"testing"

	"github.com/hitoshi/frozenbet/internal/model"
)

func TestParseSeed(t *testing.T) {
	tests := []struct {
		raw     string
		want    uint32
		wantErr bool
	}{
		{raw: "", want: 42},
		{raw: "  ", want: 42},
		{raw: "7", want: 7},
		{raw: "0", want: 0},
		{raw: " 123 ", want: 123},
		{raw: "-1", want: 4294967295},
		{raw: "4294967296", want: 0},
		{raw: "4294967297", want: 1},
		{raw: "abc", wantErr: true},
		{raw: "1.5", wantErr: true},
		{raw: "12abc", wantErr: true},
		{raw: "99999999999999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseSeed(tt.raw, 42)
			if tt.wantErr {
				var apiErr *model.APIError
				if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeInvalidSeed {
					t.Fatalf("ParseSeed(%q) error = %v, want INVALID_SEED", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSeed(%q) unexpected error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ParseSeed(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseUserSeedPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    UserSeedPolicy
		wantErr bool
	}{
		{in: "", want: UserSeedIndependent},
		{in: "independent", want: UserSeedIndependent},
		{in: "shared", want: UserSeedShared},
		{in: "random", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseUserSeedPolicy(tt.in)
		if tt.wantErr {
			if !errors.Is(err, model.ErrInvalidArgument) {
				t.Errorf("ParseUserSeedPolicy(%q) error = %v, want ErrInvalidArgument", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseUserSeedPolicy(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}
