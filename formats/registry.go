// SPDX-License-Identifier: EPL-2.0

// Package formats wires every bundled decoder into an audio.Registry.
package formats

import (
	"github.com/ik5/bgmix/audio"
	"github.com/ik5/bgmix/formats/aiff"
	"github.com/ik5/bgmix/formats/flac"
	"github.com/ik5/bgmix/formats/mp3"
	"github.com/ik5/bgmix/formats/vorbis"
	"github.com/ik5/bgmix/formats/wav"
)

// NewRegistry returns a registry keyed by file extension.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()

	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("flac", flac.Decoder{})

	return reg
}
