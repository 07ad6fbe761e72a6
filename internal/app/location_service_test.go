package app

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/ritual-service/internal/domain"
	"github.com/jsamuelsen/ritual-service/internal/mocks"
)

var lisbon = domain.Location{ID: 2267057, Name: "Lisbon", Admin1: "Lisbon", Country: "Portugal"}

func TestLocationService_ShortQueryReturnsEmpty(t *testing.T) {
	svc := NewLocationService(mocks.NewMockLocationClient(t), mocks.NewMockCache(t), time.Hour, nil, testLogger())

	for _, q := range []string{"", " ", "L", " é "} {
		got, err := svc.Search(context.Background(), q)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NotNil(t, got)
	}
}

func TestLocationService_CacheMissFetchesAndStores(t *testing.T) {
	client := mocks.NewMockLocationClient(t)
	cache := mocks.NewMockCache(t)
	svc := NewLocationService(client, cache, time.Hour, nil, testLogger())

	cache.EXPECT().Get(mock.Anything, "locations:lisbon").Return(nil, domain.NewNotFoundError("cache", "locations:lisbon"))
	client.EXPECT().SearchLocations(mock.Anything, "Lisbon", 10).Return([]domain.Location{lisbon}, nil)
	cache.EXPECT().Set(mock.Anything, "locations:lisbon", mock.Anything, time.Hour).Return(nil)

	got, err := svc.Search(context.Background(), " Lisbon ")
	require.NoError(t, err)
	assert.Equal(t, []domain.Location{lisbon}, got)
}

func TestLocationService_CacheHit(t *testing.T) {
	cache := mocks.NewMockCache(t)
	svc := NewLocationService(mocks.NewMockLocationClient(t), cache, time.Hour, nil, testLogger())

	raw, err := json.Marshal([]domain.Location{lisbon})
	require.NoError(t, err)

	cache.EXPECT().Get(mock.Anything, "locations:lisbon").Return(raw, nil)

	got, err := svc.Search(context.Background(), "LISBON")
	require.NoError(t, err)
	assert.Equal(t, []domain.Location{lisbon}, got)
}

func TestLocationService_CacheOutageFallsThrough(t *testing.T) {
	client := mocks.NewMockLocationClient(t)
	cache := mocks.NewMockCache(t)
	svc := NewLocationService(client, cache, 0, nil, testLogger())

	cache.EXPECT().Get(mock.Anything, mock.Anything).Return(nil, errors.New("dial tcp: refused"))
	client.EXPECT().SearchLocations(mock.Anything, "Porto", 10).Return(nil, nil)
	cache.EXPECT().Set(mock.Anything, "locations:porto", []byte("[]"), defaultLocationTTL).Return(errors.New("dial tcp: refused"))

	got, err := svc.Search(context.Background(), "Porto")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLocationService_ClientError(t *testing.T) {
	client := mocks.NewMockLocationClient(t)
	svc := NewLocationService(client, nil, time.Hour, nil, testLogger())

	client.EXPECT().SearchLocations(mock.Anything, "Paris", 10).
		Return(nil, domain.NewUnavailableError("geocoding", "circuit open"))

	_, err := svc.Search(context.Background(), "Paris")
	assert.True(t, domain.IsUnavailable(err))
}
