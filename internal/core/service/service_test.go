package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStorage is a mock implementation of ports.Storage
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Get(key string) (string, bool) {
	args := m.Called(key)
	return args.String(0), args.Bool(1)
}

func (m *MockStorage) Put(key, value string) {
	m.Called(key, value)
}

func (m *MockStorage) Contains(key string) bool {
	args := m.Called(key)
	return args.Bool(0)
}

func (m *MockStorage) Remove(key string) bool {
	args := m.Called(key)
	return args.Bool(0)
}

func (m *MockStorage) Len() int {
	args := m.Called()
	return args.Int(0)
}

func TestServiceImpl_Get(t *testing.T) {
	mockStore := new(MockStorage)
	svc := New(mockStore)

	ctx := context.Background()

	// Test Found
	mockStore.On("Get", "key1").Return("value1", true)
	val, err := svc.Get(ctx, "key1")
	assert.NoError(t, err)
	assert.Equal(t, "value1", val)

	// Test Not Found
	mockStore.On("Get", "unknown").Return("", false)
	val, err = svc.Get(ctx, "unknown")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, val)
}

func TestServiceImpl_Set(t *testing.T) {
	mockStore := new(MockStorage)
	svc := New(mockStore)

	ctx := context.Background()
	mockStore.On("Put", "key1", "value1").Return()

	err := svc.Set(ctx, "key1", "value1")
	assert.NoError(t, err)
	mockStore.AssertExpectations(t)
}

func TestServiceImpl_Delete(t *testing.T) {
	mockStore := new(MockStorage)
	svc := New(mockStore)

	ctx := context.Background()
	mockStore.On("Remove", "key1").Return(true)

	err := svc.Delete(ctx, "key1")
	assert.NoError(t, err)
	mockStore.AssertExpectations(t)
}

func TestServiceImpl_GetOrLoad_Hit(t *testing.T) {
	mockStore := new(MockStorage)
	svc := New(mockStore, WithLoader(func(ctx context.Context, key string) (string, error) {
		t.Fatal("loader must not run on a hit")
		return "", nil
	}))

	mockStore.On("Get", "key1").Return("cached", true)

	val, err := svc.GetOrLoad(context.Background(), "key1")
	assert.NoError(t, err)
	assert.Equal(t, "cached", val)
}

func TestServiceImpl_GetOrLoad_Miss(t *testing.T) {
	mockStore := new(MockStorage)
	svc := New(mockStore, WithLoader(func(ctx context.Context, key string) (string, error) {
		return "loaded:" + key, nil
	}))

	mockStore.On("Get", "key1").Return("", false)
	mockStore.On("Put", "key1", "loaded:key1").Return()

	val, err := svc.GetOrLoad(context.Background(), "key1")
	assert.NoError(t, err)
	assert.Equal(t, "loaded:key1", val)
	mockStore.AssertExpectations(t)
}

func TestServiceImpl_GetOrLoad_NoLoader(t *testing.T) {
	mockStore := new(MockStorage)
	svc := New(mockStore)

	mockStore.On("Get", "key1").Return("", false)

	_, err := svc.GetOrLoad(context.Background(), "key1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceImpl_GetOrLoad_LoaderError(t *testing.T) {
	loadErr := errors.New("backend down")
	mockStore := new(MockStorage)
	svc := New(mockStore, WithLoader(func(ctx context.Context, key string) (string, error) {
		return "", loadErr
	}))

	mockStore.On("Get", "key1").Return("", false)

	_, err := svc.GetOrLoad(context.Background(), "key1")
	assert.ErrorIs(t, err, loadErr)
}

func TestServiceImpl_GetOrLoad_SingleFlight(t *testing.T) {
	var calls atomic.Int64
	mockStore := new(MockStorage)
	svc := New(mockStore, WithLoader(func(ctx context.Context, key string) (string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond) // hold the flight open
		return "loaded", nil
	}))

	mockStore.On("Get", "hot").Return("", false)
	mockStore.On("Put", "hot", "loaded").Return()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			val, err := svc.GetOrLoad(context.Background(), "hot")
			assert.NoError(t, err)
			assert.Equal(t, "loaded", val)
		}()
	}
	wg.Wait()

	require.LessOrEqual(t, calls.Load(), int64(2), "concurrent loads for one key should collapse")
}
