// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/taibuivan/anitoki/internal/platform/constants"
)

// keySize is the HMAC-SHA256 key length in bytes.
const keySize = 32

// DeriveKey expands secret into a visitor-token signing key with
// HKDF-SHA256. The same secret always yields the same key.
func DeriveKey(secret string) ([]byte, error) {
	if secret == "" {
		return nil, errors.New("sec: empty session secret")
	}

	reader := hkdf.New(sha256.New, []byte(secret), nil, []byte(constants.VisitorKeyInfo))

	key := make([]byte, keySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("sec: failed to derive key: %w", err)
	}
	return key, nil
}
