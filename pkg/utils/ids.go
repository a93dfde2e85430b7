package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// NewID generates an opaque identifier for products, posts and media keys.
func NewID() (string, error) {
	return gonanoid.New()
}
