package ai

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	name   string
	output string
	err    error
	calls  int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	f.calls++
	return f.output, f.err
}

func (f *fakeProvider) GenerateWithImage(ctx context.Context, prompt, imageURL string, opts Options) (string, error) {
	f.calls++
	return f.output, f.err
}

func TestMultiProviderFallsBack(t *testing.T) {
	first := &fakeProvider{name: "first", err: fmt.Errorf("down")}
	second := &fakeProvider{name: "second", output: "from second"}

	m := NewMultiProvider(zerolog.Nop(), first, second)
	out, err := m.Generate(context.Background(), "prompt", Options{})
	require.NoError(t, err)
	assert.Equal(t, "from second", out)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestMultiProviderFirstWins(t *testing.T) {
	first := &fakeProvider{name: "first", output: "from first"}
	second := &fakeProvider{name: "second", output: "from second"}

	m := NewMultiProvider(zerolog.Nop(), first, second)
	out, err := m.Generate(context.Background(), "prompt", Options{})
	require.NoError(t, err)
	assert.Equal(t, "from first", out)
	assert.Equal(t, 0, second.calls)
}

func TestMultiProviderAllFail(t *testing.T) {
	first := &fakeProvider{name: "first", err: fmt.Errorf("down")}
	second := &fakeProvider{name: "second", err: fmt.Errorf("also down")}

	m := NewMultiProvider(zerolog.Nop(), first, second)
	_, err := m.Generate(context.Background(), "prompt", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all providers failed")
	assert.Contains(t, err.Error(), "also down")
}

func TestMultiProviderEmpty(t *testing.T) {
	m := NewMultiProvider(zerolog.Nop())
	_, err := m.Generate(context.Background(), "prompt", Options{})
	require.Error(t, err)
}
