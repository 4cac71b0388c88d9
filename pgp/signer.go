package pgp

import (
	"errors"

	"github.com/google/uuid"
)

var ErrNoSignature = errors.New("pgp: no signature")

// Signer holds the service key used to sign submission content.
type Signer struct {
	privateKey string
	publicKey  string
	passphrase []byte
}

func NewSigner(privateKey string, passphrase string) (*Signer, error) {
	pubKey, err := PublicKeyFromPrivate(privateKey)
	if err != nil {
		return nil, err
	}

	return &Signer{
		privateKey: privateKey,
		publicKey:  pubKey,
		passphrase: []byte(passphrase),
	}, nil
}

// NewEphemeralSigner generates a fresh key pair. Signatures made with it do
// not survive a restart, so it is meant for development and tests.
func NewEphemeralSigner(name, email string) (*Signer, error) {
	passphrase := uuid.NewString()
	kp, err := GenerateKeyPair(name, email, passphrase)
	if err != nil {
		return nil, err
	}

	return &Signer{
		privateKey: kp.PrivateKey,
		publicKey:  kp.PublicKey,
		passphrase: []byte(passphrase),
	}, nil
}

func (s *Signer) PublicKey() string {
	return s.publicKey
}

func (s *Signer) Sign(data string) (string, error) {
	return SignData(data, s.privateKey, s.passphrase)
}

func (s *Signer) Verify(data, signature string) error {
	if signature == "" {
		return ErrNoSignature
	}
	return VerifyData(data, signature, s.publicKey)
}
