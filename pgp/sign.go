package pgp

import (
	"github.com/ProtonMail/gopenpgp/v2/crypto"
)

func SignData(data string, privateKey string, passphrase []byte) (string, error) {
	privateKeyObj, err := crypto.NewKeyFromArmored(privateKey)
	if err != nil {
		return "", err
	}

	unlockedKeyObj, err := privateKeyObj.Unlock(passphrase)
	if err != nil {
		return "", err
	}
	defer unlockedKeyObj.ClearPrivateParams()

	var message = crypto.NewPlainMessageFromString(data)
	signingKeyRing, err := crypto.NewKeyRing(unlockedKeyObj)
	if err != nil {
		return "", err
	}

	pgpSignature, err := signingKeyRing.SignDetached(message)
	if err != nil {
		return "", err
	}

	armored, err := pgpSignature.GetArmored()
	if err != nil {
		return "", err
	}

	return armored, nil
}

// VerifyData returns nil when signature is a valid detached signature of data.
func VerifyData(data string, signature string, publicKey string) error {
	publicKeyObj, err := crypto.NewKeyFromArmored(publicKey)
	if err != nil {
		return err
	}

	verifyKeyRing, err := crypto.NewKeyRing(publicKeyObj)
	if err != nil {
		return err
	}

	pgpSignature, err := crypto.NewPGPSignatureFromArmored(signature)
	if err != nil {
		return err
	}

	var message = crypto.NewPlainMessageFromString(data)
	return verifyKeyRing.VerifyDetached(message, pgpSignature, crypto.GetUnixTime())
}
