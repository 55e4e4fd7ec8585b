// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/bgmix/audio"
	"github.com/ik5/bgmix/config"
	"github.com/ik5/bgmix/formats/wav"
	"github.com/ik5/bgmix/session"
)

func writeWAV(t *testing.T, path string, rate, channels, frames int, v float32) {
	t.Helper()

	w, err := wav.Create(path, rate, channels)
	require.NoError(t, err)

	f := audio.NewFrame(rate, channels, frames, 0)
	for _, ch := range f.Channels {
		for i := range ch {
			ch[i] = v
		}
	}

	require.NoError(t, w.WriteFrame(context.Background(), f))
	require.NoError(t, w.Close())
}

func readWAV(t *testing.T, path string) (audio.Source, []float32) {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	src, err := wav.Decoder{}.Decode(f)
	require.NoError(t, err)

	var out []float32
	buf := make([]float32, 1024)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
	}

	return src, out
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	root := newRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()

	return stdout.String(), stderr.String(), err
}

type fixture struct {
	music, input, output string
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	dir := t.TempDir()
	fx := fixture{
		music:  filepath.Join(dir, "bed.wav"),
		input:  filepath.Join(dir, "voice.wav"),
		output: filepath.Join(dir, "mixed.wav"),
	}

	writeWAV(t, fx.input, 8000, 2, 1000, 0.5)
	writeWAV(t, fx.music, 8000, 1, 300, 0.25)

	return fx
}

func TestMix_EndToEnd(t *testing.T) {
	fx := newFixture(t)

	stdout, stderr, err := execute(t, "mix",
		"--music", fx.music,
		"--input", fx.input,
		"--output", fx.output,
		"--frame-size", "128",
	)
	require.NoError(t, err, stderr)

	assert.Contains(t, stdout, "stopped")
	assert.Contains(t, stdout, "8 frames")
	assert.Contains(t, stderr, "music loaded")

	src, samples := readWAV(t, fx.output)
	assert.Equal(t, 8000, src.SampleRate())
	assert.Equal(t, 2, src.Channels())
	require.Len(t, samples, 2000)

	for i, v := range samples {
		if !assert.InDelta(t, 0.425, v, 1e-3, "sample %d", i) {
			break
		}
	}
}

func TestMix_LowPass(t *testing.T) {
	fx := newFixture(t)

	_, stderr, err := execute(t, "mix",
		"--music", fx.music,
		"--input", fx.input,
		"--output", fx.output,
		"--lowpass", "--cutoff", "200",
	)
	require.NoError(t, err)
	assert.Contains(t, stderr, "low-pass filter attached")

	_, samples := readWAV(t, fx.output)
	require.NotEmpty(t, samples)

	alpha := audio.LowPassAlpha(200, 8000)
	assert.InDelta(t, 0.425*alpha, samples[0], 1e-3)
}

func TestMix_Errors(t *testing.T) {
	fx := newFixture(t)

	_, _, err := execute(t, "mix", "--music", fx.music, "--input", fx.input)
	assert.ErrorContains(t, err, "required flag")

	_, _, err = execute(t, "mix", "--music", fx.music, "--input", "voice.xyz", "--output", fx.output)
	assert.ErrorIs(t, err, audio.ErrUnsupportedFormat)

	_, _, err = execute(t, "mix", "--music", "missing.wav", "--input", fx.input, "--output", fx.output)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMix_InvalidConfigFromEnv(t *testing.T) {
	fx := newFixture(t)
	t.Setenv("BGMIX_FRAME_SIZE", "0")

	_, _, err := execute(t, "mix", "--music", fx.music, "--input", fx.input, "--output", fx.output)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestRunMix_Cancelled(t *testing.T) {
	fx := newFixture(t)

	cfg, err := config.Load("")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := runMix(ctx, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), mixPaths{
		music:  fx.music,
		input:  fx.input,
		output: fx.output,
	})
	require.NoError(t, err)

	assert.Contains(t, []session.State{session.Aborted, session.Stopped}, res.State)

	// Whatever was mixed before the abort is a valid file.
	_, samples := readWAV(t, fx.output)
	assert.Len(t, samples, int(res.Samples)*2)
}

func TestVersionAndFormats(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "bgmix dev")

	stdout, _, err = execute(t, "formats")
	require.NoError(t, err)
	assert.Contains(t, stdout, "flac")
	assert.Contains(t, stdout, "wav")
}
