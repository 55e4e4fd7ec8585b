// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrNotAiffFile indicates the input is not a readable AIFF file.
	ErrNotAiffFile = errors.New("not an AIFF file")

	ErrUnsupportedBitDepth = errors.New("unsupported AIFF bit depth")

	// ErrUnsupportedAiffLayout indicates a file without a usable format description.
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")
)
