package milvus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockMilvusClient embeds the SDK interface and overrides only what a test
// needs.
type mockMilvusClient struct {
	client.Client

	checkHealthFunc func(ctx context.Context) (*entity.MilvusState, error)
	searchFunc      func(ctx context.Context) ([]client.SearchResult, error)
	closed          int
}

func (m *mockMilvusClient) CheckHealth(ctx context.Context) (*entity.MilvusState, error) {
	if m.checkHealthFunc != nil {
		return m.checkHealthFunc(ctx)
	}
	return &entity.MilvusState{}, nil
}

func (m *mockMilvusClient) Close() error {
	m.closed++
	return nil
}

func (m *mockMilvusClient) Search(ctx context.Context, collName string, partitions []string,
	expr string, outputFields []string, vectors []entity.Vector, vectorField string,
	metricType entity.MetricType, topK int, sp entity.SearchParam, opts ...client.SearchQueryOptionFunc,
) ([]client.SearchResult, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx)
	}
	return nil, nil
}

func testConfig() Config {
	return Config{
		Address:        "localhost:19530",
		Collection:     "statute_sections",
		Dimension:      4,
		ConnectTimeout: time.Second,
		RequestTimeout: time.Second,
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, testConfig().Validate())

	cfg := testConfig()
	cfg.Address = ""
	assert.Error(t, cfg.Validate())

	cfg = testConfig()
	cfg.Collection = ""
	assert.Error(t, cfg.Validate())

	cfg = testConfig()
	cfg.Dimension = 0
	assert.Error(t, cfg.Validate())
}

func TestNewClientSuccess(t *testing.T) {
	original := newMilvusClient
	defer func() { newMilvusClient = original }()

	newMilvusClient = func(_ context.Context, _ client.Config) (client.Client, error) {
		return &mockMilvusClient{}, nil
	}

	c, err := NewClient(testConfig(), nil)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.True(t, c.IsHealthy())
	c.Close()
}

func TestNewClientDialFailure(t *testing.T) {
	original := newMilvusClient
	defer func() { newMilvusClient = original }()

	newMilvusClient = func(_ context.Context, _ client.Config) (client.Client, error) {
		return nil, errors.New("dial failed")
	}

	c, err := NewClient(testConfig(), nil)
	assert.Error(t, err)
	assert.Nil(t, c)
}

func TestNewClientUnhealthy(t *testing.T) {
	original := newMilvusClient
	defer func() { newMilvusClient = original }()

	newMilvusClient = func(_ context.Context, _ client.Config) (client.Client, error) {
		return &mockMilvusClient{
			checkHealthFunc: func(context.Context) (*entity.MilvusState, error) {
				return nil, errors.New("not ready")
			},
		}, nil
	}

	_, err := NewClient(testConfig(), nil)
	assert.Error(t, err)
}

func TestCheckHealthTogglesState(t *testing.T) {
	t.Parallel()

	fail := false
	mock := &mockMilvusClient{
		checkHealthFunc: func(context.Context) (*entity.MilvusState, error) {
			if fail {
				return nil, errors.New("down")
			}
			return &entity.MilvusState{}, nil
		},
	}
	c := &Client{mc: mock, cfg: testConfig()}

	require.NoError(t, c.CheckHealth(context.Background()))
	assert.True(t, c.IsHealthy())

	fail = true
	require.Error(t, c.CheckHealth(context.Background()))
	assert.False(t, c.IsHealthy())
}

func TestCloseIdempotent(t *testing.T) {
	t.Parallel()

	mock := &mockMilvusClient{}
	c := &Client{mc: mock, cfg: testConfig()}
	c.Close()
	c.Close()
	assert.Equal(t, 1, mock.closed)
}
