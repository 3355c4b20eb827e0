// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sealed

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestGenerateKeypair(t *testing.T) {
	keypair, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() error: %v", err)
	}
	if !strings.HasPrefix(keypair.PrivateKey, "AGE-SECRET-KEY-1") {
		t.Errorf("PrivateKey has unexpected prefix")
	}
	if !strings.HasPrefix(keypair.PublicKey, "age1") {
		t.Errorf("PublicKey = %q, want prefix age1", keypair.PublicKey)
	}
	if err := ParsePublicKey(keypair.PublicKey); err != nil {
		t.Errorf("generated public key does not parse: %v", err)
	}

	other, err := GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}
	if other.PrivateKey == keypair.PrivateKey {
		t.Error("two generated keypairs have identical private keys")
	}
}

func TestEncryptDecrypt(t *testing.T) {
	primary, err := GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}
	escrow, err := GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}

	plaintext := []byte("graph export payload")
	ciphertext, err := Encrypt(plaintext, []string{primary.PublicKey, escrow.PublicKey})
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}
	if bytes.Contains(ciphertext, plaintext) {
		t.Error("ciphertext contains the plaintext")
	}

	for name, keypair := range map[string]*Keypair{"primary": primary, "escrow": escrow} {
		decrypted, err := Decrypt(ciphertext, keypair.IdentityFile())
		if err != nil {
			t.Fatalf("Decrypt(%s) error: %v", name, err)
		}
		if !bytes.Equal(decrypted, plaintext) {
			t.Errorf("Decrypt(%s) = %q, want %q", name, decrypted, plaintext)
		}
	}
}

func TestEncryptEmptyPlaintext(t *testing.T) {
	keypair, err := GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}
	ciphertext, err := Encrypt(nil, []string{keypair.PublicKey})
	if err != nil {
		t.Fatal(err)
	}
	decrypted, err := Decrypt(ciphertext, keypair.PrivateKey)
	if err != nil {
		t.Fatal(err)
	}
	if len(decrypted) != 0 {
		t.Errorf("Decrypt() = %q, want empty", decrypted)
	}
}

func TestDecryptWrongKey(t *testing.T) {
	owner, err := GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}
	stranger, err := GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}
	ciphertext, err := Encrypt([]byte("secret"), []string{owner.PublicKey})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Decrypt(ciphertext, stranger.PrivateKey); err == nil {
		t.Error("Decrypt with the wrong key should fail")
	}
}

func TestEncryptErrors(t *testing.T) {
	if _, err := Encrypt([]byte("x"), nil); !errors.Is(err, ErrNoRecipients) {
		t.Errorf("Encrypt(no recipients) = %v, want ErrNoRecipients", err)
	}
	if _, err := Encrypt([]byte("x"), []string{"not-a-key"}); err == nil {
		t.Error("Encrypt accepted an invalid recipient")
	}
	if err := ParsePublicKey("age1nope"); err == nil {
		t.Error("ParsePublicKey accepted an invalid key")
	}
	if _, err := ParseIdentities("# only a comment\n"); err == nil {
		t.Error("ParseIdentities accepted a file without identities")
	}
}
