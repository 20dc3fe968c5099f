package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/wowecon/ahtracker/pkg/types"
)

func TestErrorClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{
			name:     "auth error with status",
			err:      &domain.AuthError{Status: 401, Body: "invalid_client"},
			sentinel: domain.ErrAuth,
		},
		{
			name:     "auth error with transport failure",
			err:      &domain.AuthError{Err: errors.New("dial tcp: timeout")},
			sentinel: domain.ErrAuth,
		},
		{
			name:     "not found",
			err:      &domain.NotFoundError{RealmKey: "dreamscythe"},
			sentinel: domain.ErrNotFound,
		},
		{
			name:     "fetch error",
			err:      &domain.FetchError{Operation: "auctions", Status: 503},
			sentinel: domain.ErrFetch,
		},
		{
			name:     "config error",
			err:      &domain.ConfigError{Field: "BLIZZARD_CLIENT_ID"},
			sentinel: domain.ErrConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.ErrorIs(t, tt.err, tt.sentinel)

			// Classification survives wrapping.
			wrapped := fmt.Errorf("searching realm: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
		})
	}
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	assert.Contains(t,
		(&domain.AuthError{Status: 401, Body: "nope"}).Error(), "status 401")
	assert.Contains(t,
		(&domain.NotFoundError{RealmKey: "maladath"}).Error(), "maladath")
	assert.Contains(t,
		(&domain.FetchError{Operation: "realm-index", Status: 500}).Error(),
		"realm-index")
	assert.Contains(t,
		(&domain.ConfigError{Field: "BLIZZARD_CLIENT_SECRET"}).Error(),
		"BLIZZARD_CLIENT_SECRET")
}

func TestRealmDescriptor_Resolved(t *testing.T) {
	t.Parallel()

	d := domain.RealmDescriptor{RealmKey: "doomhowl"}
	assert.False(t, d.Resolved())

	d.ConnectedRealmID = 6105
	assert.False(t, d.Resolved(), "namespace still missing")

	d.Namespace = "dynamic-classic1x-us"
	assert.True(t, d.Resolved())
}

func TestRegion_APIBase(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://us.api.blizzard.com", domain.RegionUS.APIBase())
	assert.Equal(t, "https://eu.api.blizzard.com", domain.RegionEU.APIBase())

	d := domain.RealmDescriptor{}
	assert.Equal(t, "https://us.api.blizzard.com", d.APIBase(), "default region is us")
}
