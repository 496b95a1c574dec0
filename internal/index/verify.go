package index

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// Verifier checks detached signatures on repository metadata
type Verifier struct {
	keyring openpgp.EntityList
}

// NewVerifier loads a public keyring from keyPath. Armored and binary
// keyrings are both accepted.
func NewVerifier(keyPath string) (*Verifier, error) {
	if keyPath == "" {
		return nil, fmt.Errorf("key path is empty")
	}

	keyFile, err := os.Open(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}
	defer keyFile.Close()

	// Try to parse as armored keyring first
	keyring, err := openpgp.ReadArmoredKeyRing(keyFile)
	if err != nil {
		// Try as binary keyring
		if _, seekErr := keyFile.Seek(0, 0); seekErr != nil {
			return nil, seekErr
		}
		keyring, err = openpgp.ReadKeyRing(keyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read keyring: %w", err)
		}
	}

	if len(keyring) == 0 {
		return nil, fmt.Errorf("no keys found in keyring")
	}

	return NewKeyringVerifier(keyring), nil
}

// NewKeyringVerifier creates a verifier from an already loaded keyring
func NewKeyringVerifier(keyring openpgp.EntityList) *Verifier {
	return &Verifier{keyring: keyring}
}

// VerifyDetached checks signature over data and returns the signing entity.
// Armored (repomd.xml.asc, Release.gpg) and binary signatures are accepted.
func (v *Verifier) VerifyDetached(data, signature []byte) (*openpgp.Entity, error) {
	var (
		signer *openpgp.Entity
		err    error
	)

	if bytes.HasPrefix(bytes.TrimSpace(signature), []byte("-----BEGIN PGP")) {
		signer, err = openpgp.CheckArmoredDetachedSignature(v.keyring, bytes.NewReader(data), bytes.NewReader(signature), nil)
	} else {
		signer, err = openpgp.CheckDetachedSignature(v.keyring, bytes.NewReader(data), bytes.NewReader(signature), nil)
	}
	if err != nil {
		return nil, fmt.Errorf("signature check failed: %w", err)
	}

	return signer, nil
}
