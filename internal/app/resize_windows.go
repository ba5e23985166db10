//go:build windows

package app

import "github.com/bethropolis/nib/internal/input"

// The console does not deliver SIGWINCH; use the tcell backend to follow resizes.
func watchResize(src *input.QueueSource) func() { return func() {} }
