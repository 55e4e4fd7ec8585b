// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"slices"
	"sync"
	"testing"
)

type stubDecoder struct{ name string }

func (d *stubDecoder) Decode(io.Reader) (Source, error) {
	return constantSource(8000, 1, 1, 0), nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	wav := &stubDecoder{name: "wav"}
	reg.Register("WAV", wav)

	got, ok := reg.Get("wav")
	if !ok || got != wav {
		t.Errorf("Get(wav) = %v, %v, want registered decoder", got, ok)
	}

	if _, ok := reg.Get("flac"); ok {
		t.Error("Get(flac) ok = true for unregistered format")
	}
}

func TestRegistry_ForPath(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	mp3 := &stubDecoder{name: "mp3"}
	reg.Register("mp3", mp3)

	tests := []struct {
		path    string
		want    Decoder
		wantErr bool
	}{
		{path: "music/bed.mp3", want: mp3},
		{path: "BED.MP3", want: mp3},
		{path: "bed.ogg", wantErr: true},
		{path: "bed", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			got, err := reg.ForPath(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("ForPath(%q) error = %v, want ErrUnsupportedFormat", tt.path, err)
				}
				return
			}

			if err != nil || got != tt.want {
				t.Errorf("ForPath(%q) = %v, %v", tt.path, got, err)
			}
		})
	}
}

func TestRegistry_Formats(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	for _, f := range []string{"wav", "flac", "mp3"} {
		reg.Register(f, &stubDecoder{name: f})
	}

	if got := reg.Formats(); !slices.Equal(got, []string{"flac", "mp3", "wav"}) {
		t.Errorf("Formats() = %v", got)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	d := &stubDecoder{}

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			reg.Register("wav", d)
		}()
		go func() {
			defer wg.Done()
			_, _ = reg.Get("wav")
		}()
	}
	wg.Wait()

	if got, ok := reg.Get("wav"); !ok || got != d {
		t.Error("Get() after concurrent access did not return the decoder")
	}
}
