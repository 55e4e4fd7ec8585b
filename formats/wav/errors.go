// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile          = errors.New("not a WAV file")
	ErrUnsupportedEncoding = errors.New("only PCM WAV is supported")
	ErrUnsupportedBitDepth = errors.New("unsupported WAV bit depth")
	ErrNoPCMData           = errors.New("WAV file has no data chunk")

	// ErrFormatMismatch is returned by FrameWriter for frames whose rate or
	// channel count differ from the file being written.
	ErrFormatMismatch = errors.New("frame does not match WAV format")
	ErrWriterClosed   = errors.New("WAV writer is closed")
)
