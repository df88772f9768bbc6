package translate

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	name  string
	out   string
	fn    func(text string) (string, error)
	only  [2]string
	calls atomic.Int32
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Translate(_ context.Context, text, _, _ string) (string, error) {
	f.calls.Add(1)
	if f.fn != nil {
		return f.fn(text)
	}
	if f.out == "" {
		return "", errors.New("boom")
	}
	return f.out, nil
}

func (f *fakeProvider) Supports(source, target string) bool {
	if f.only[0] == "" {
		return true
	}
	return f.only[0] == source && f.only[1] == target
}

func TestEnginePicksBestCandidate(t *testing.T) {
	echo := &fakeProvider{name: "echo", fn: func(text string) (string, error) { return text, nil }}
	urdu := &fakeProvider{name: "urduish", out: "اعمال کا دارومدار نیتوں پر ہے اور ہر شخص کے لیے وہی ہے"}
	sindhi := &fakeProvider{name: "sindhi", out: sindhiGood}

	e := NewEngine(500, echo, urdu, sindhi)
	res, err := e.Translate(context.Background(), urduSource, "ur", "sd")
	require.NoError(t, err)

	assert.Equal(t, sindhiGood, res.Text)
	assert.Equal(t, []string{"sindhi"}, res.Providers)
	assert.Equal(t, 1, res.Chunks)
	assert.Zero(t, res.Failed)
	assert.Greater(t, res.Score, 0.7)
	assert.Equal(t, int32(1), echo.calls.Load())
}

func TestEngineSanitizesOutput(t *testing.T) {
	p := &fakeProvider{name: "noisy", out: "  عملن &amp; نيتون   تي آهي؟؟ "}
	e := NewEngine(500, p)

	res, err := e.Translate(context.Background(), "اعمال اور نیتیں", "ur", "sd")
	require.NoError(t, err)
	assert.Equal(t, "عملن & نيتون تي آهي؟", res.Text)
}

func TestEngineSkipsFailedChunks(t *testing.T) {
	p := &fakeProvider{name: "partial", fn: func(text string) (string, error) {
		if strings.Contains(text, "دوسرا") {
			return "", errors.New("rate limited")
		}
		return "ٺيڪ آهي ڪم ٿيو", nil
	}}
	e := NewEngine(12, p)

	res, err := e.Translate(context.Background(), "پہلا جملہ۔ دوسرا جملہ۔", "ur", "sd")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Chunks)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, "ٺيڪ آهي ڪم ٿيو", res.Text)

	full, err := NewEngine(500, p).Translate(context.Background(), "پہلا جملہ۔", "ur", "sd")
	require.NoError(t, err)
	assert.Less(t, res.Score, full.Score, "missing chunks weigh the score down")
}

func TestEngineErrors(t *testing.T) {
	failing := &fakeProvider{name: "failing"}
	e := NewEngine(500, failing)

	_, err := e.Translate(context.Background(), "سلام", "ur", "sd")
	assert.ErrorIs(t, err, ErrNoTranslation)

	_, err = e.Translate(context.Background(), "  ", "ur", "sd")
	assert.ErrorIs(t, err, ErrNoTranslation)

	pivotOnly := &fakeProvider{name: "libre", out: "x", only: [2]string{"ar", "ur"}}
	_, err = NewEngine(500, pivotOnly).Translate(context.Background(), "سلام", "ur", "sd")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestEngineProviders(t *testing.T) {
	e := NewEngine(0, &fakeProvider{name: "a"}, Limit(&fakeProvider{name: "b"}, 5))
	assert.Equal(t, []string{"a", "b"}, e.Providers())
}
