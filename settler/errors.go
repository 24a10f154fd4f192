package settler

import (
	"strings"
)

// ErrorClass buckets chain errors by how the queue should react. Transient
// failures retry with backoff, fatal ones fail terminally, and resource
// exhaustion halts the cycle with retry counts untouched.
type ErrorClass int

const (
	ClassTransient ErrorClass = iota
	ClassFatal
	ClassResourceExhausted
)

func (c ErrorClass) String() string {
	switch c {
	case ClassFatal:
		return "fatal"
	case ClassResourceExhausted:
		return "resource_exhausted"
	}
	return "transient"
}

// RPC error bodies are plain strings and differ slightly between nodes, so
// classification matches on the common substrings.
var revertMessages = []string{
	"execution reverted",
	"always failing transaction",
	"invalid opcode",
	"revert",
}

var nonceMessages = []string{
	"nonce too low",
	"nonce too high",
	"replacement transaction underpriced",
	"already known",
	"known transaction",
}

var fundsMessages = []string{
	"insufficient funds",
	"insufficient balance",
}

func containsAny(message string, candidates []string) bool {
	for _, candidate := range candidates {
		if strings.Contains(message, candidate) {
			return true
		}
	}
	return false
}

// IsRevertError reports whether the error is the node telling us the call
// would fail on chain rather than a transport problem.
func IsRevertError(err error) bool {
	if err == nil {
		return false
	}
	return containsAny(strings.ToLower(err.Error()), revertMessages)
}

// IsNonceError reports whether the error means our nonce view has drifted
// from the chain's and needs a resync.
func IsNonceError(err error) bool {
	if err == nil {
		return false
	}
	return containsAny(strings.ToLower(err.Error()), nonceMessages)
}

// IsInsufficientFunds reports whether the signer cannot cover gas for the
// transaction.
func IsInsufficientFunds(err error) bool {
	if err == nil {
		return false
	}
	return containsAny(strings.ToLower(err.Error()), fundsMessages)
}

// ClassifySendError buckets a transaction submission error.
func ClassifySendError(err error) ErrorClass {
	if IsInsufficientFunds(err) {
		return ClassResourceExhausted
	}
	if IsRevertError(err) {
		return ClassFatal
	}
	return ClassTransient
}
