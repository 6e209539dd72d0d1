package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	records []Record
	err     error
	calls   int
}

func (s *stubFetcher) FetchApps(context.Context) ([]Record, error) {
	s.calls++
	return s.records, s.err
}

func TestRepository_PassesRecordsThrough(t *testing.T) {
	want := []Record{
		{ID: "3", Name: "Hulu", ImageRef: "hulu.jpg"},
		{ID: "1", Name: "Netflix", ImageRef: "netflix.jpg"},
		{ID: "1", Name: "Netflix", ImageRef: "netflix.jpg"},
		{ID: "2", Name: "", ImageRef: ""},
	}
	stub := &stubFetcher{records: want}
	repo := NewRepository(stub)

	got, err := repo.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 1, stub.calls, "one round trip per call")
}

func TestRepository_EmptyResultIsNonNil(t *testing.T) {
	repo := NewRepository(&stubFetcher{})

	got, err := repo.FetchAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRepository_PropagatesErrors(t *testing.T) {
	cause := &Error{Kind: KindDecode, Op: "decode response", Err: errors.New("unexpected EOF")}
	stub := &stubFetcher{records: []Record{{ID: "stale"}}, err: cause}
	repo := NewRepository(stub)

	got, err := repo.FetchAll(context.Background())
	require.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindDecode, KindOf(err))
	assert.Equal(t, "fetch apps: decode response: unexpected EOF", err.Error())
}

func TestRepository_NoRetryOnFailure(t *testing.T) {
	stub := &stubFetcher{err: errors.New("boom")}
	repo := NewRepository(stub)

	_, err := repo.FetchAll(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, stub.calls)
}

func TestRepository_NilClient(t *testing.T) {
	_, err := NewRepository(nil).FetchAll(context.Background())
	require.Error(t, err)
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "transport", KindTransport.String())
	assert.Equal(t, "decode", KindDecode.String())
	assert.Equal(t, "unknown", KindUnknown.String())
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}
