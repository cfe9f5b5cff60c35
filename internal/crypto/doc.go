// Package crypto implements encryption at rest for vault secrets.
//
// Keys are derived from the user's master password with PBKDF2-HMAC-SHA256
// (see [NewKeyDeriver]) and secrets are sealed with AES-256-CBC and PKCS#7
// padding (see [NewCipherService]). Each blob carries its own salt and IV.
package crypto
