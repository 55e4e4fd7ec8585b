// SPDX-License-Identifier: EPL-2.0

// Command bgmix mixes background music into a recorded microphone track.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
