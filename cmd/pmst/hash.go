package main

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// computeHash identifies a source file's content.
func computeHash(content []byte) string {
	return fmt.Sprintf("%x", xxhash.Sum64(content))
}
