// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sealed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"filippo.io/age"
)

// ErrNoRecipients is returned by Encrypt when called without a
// recipient.
var ErrNoRecipients = errors.New("at least one recipient is required")

// Keypair holds an age x25519 keypair.
type Keypair struct {
	// PrivateKey is the identity in AGE-SECRET-KEY-1... format. It
	// must never be logged or passed on a command line.
	PrivateKey string

	// PublicKey is the recipient in age1... format. Safe to publish.
	PublicKey string
}

// GenerateKeypair generates a new age x25519 keypair.
func GenerateKeypair() (*Keypair, error) {
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return nil, fmt.Errorf("generating age keypair: %w", err)
	}
	return &Keypair{
		PrivateKey: identity.String(),
		PublicKey:  identity.Recipient().String(),
	}, nil
}

// IdentityFile renders the keypair in the age identity file format:
// a comment line with the public key followed by the private key.
func (k *Keypair) IdentityFile() string {
	return "# public key: " + k.PublicKey + "\n" + k.PrivateKey + "\n"
}

// Encrypt encrypts plaintext to every recipient, given as age public
// key strings (age1... format).
func Encrypt(plaintext []byte, recipientKeys []string) ([]byte, error) {
	if len(recipientKeys) == 0 {
		return nil, ErrNoRecipients
	}

	recipients := make([]age.Recipient, 0, len(recipientKeys))
	for _, key := range recipientKeys {
		recipient, err := age.ParseX25519Recipient(strings.TrimSpace(key))
		if err != nil {
			return nil, fmt.Errorf("parsing recipient key %q: %w", key, err)
		}
		recipients = append(recipients, recipient)
	}

	var ciphertext bytes.Buffer
	writer, err := age.Encrypt(&ciphertext, recipients...)
	if err != nil {
		return nil, fmt.Errorf("creating age encryptor: %w", err)
	}
	if _, err := writer.Write(plaintext); err != nil {
		return nil, fmt.Errorf("writing plaintext to age encryptor: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalizing age encryption: %w", err)
	}
	return ciphertext.Bytes(), nil
}

// Decrypt decrypts ciphertext with any of the identities in
// identityFile, which uses the age identity file format (one
// AGE-SECRET-KEY-1 per line, '#' comments allowed).
func Decrypt(ciphertext []byte, identityFile string) ([]byte, error) {
	identities, err := ParseIdentities(identityFile)
	if err != nil {
		return nil, err
	}

	reader, err := age.Decrypt(bytes.NewReader(ciphertext), identities...)
	if err != nil {
		return nil, fmt.Errorf("decrypting: %w", err)
	}
	plaintext, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading decrypted plaintext: %w", err)
	}
	return plaintext, nil
}

// ParsePublicKey reports whether publicKey is a valid age x25519
// recipient.
func ParsePublicKey(publicKey string) error {
	if _, err := age.ParseX25519Recipient(publicKey); err != nil {
		return fmt.Errorf("invalid age public key: %w", err)
	}
	return nil
}

// ParseIdentities parses an age identity file.
func ParseIdentities(identityFile string) ([]age.Identity, error) {
	identities, err := age.ParseIdentities(strings.NewReader(identityFile))
	if err != nil {
		return nil, fmt.Errorf("invalid age identity: %w", err)
	}
	return identities, nil
}
