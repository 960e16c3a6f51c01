// Package projector implements FSBI's deterministic pseudo-semantic hashing:
// random projection of character n-gram count vectors, quantized and hashed
// into bit indexes. It is a fixed placeholder for a real embedding model and
// deliberately reproduces the placeholder's arithmetic rather than improving
// on it.
package projector
