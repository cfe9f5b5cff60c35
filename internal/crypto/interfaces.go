package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/cipher_service_mock.go -package=mock

// KeyDeriver turns a master password and a salt into a symmetric key.
//
// Implementations must be deterministic: the same (password, salt) pair
// always yields the same key. Keys are returned to the caller and must not be
// cached or retained anywhere else.
type KeyDeriver interface {
	// DeriveKey returns a KeySize-byte key for password and salt.
	DeriveKey(password string, salt []byte) []byte
}

// CipherService produces and consumes CipherBlobs.
//
// A blob is the standard base64 encoding of salt ‖ iv ‖ ciphertext, so it is
// self-sufficient: only the master password used to create it is needed to
// decrypt it. No key material is stored anywhere.
type CipherService interface {
	// Encrypt encrypts plaintext under a key derived from password with a
	// fresh salt and IV. Two calls with identical arguments never produce the
	// same blob.
	Encrypt(plaintext, password string) (string, error)

	// Decrypt reverses Encrypt. Any failure, including a wrong password,
	// is reported as ErrDecryption.
	Decrypt(blob, password string) (string, error)
}
