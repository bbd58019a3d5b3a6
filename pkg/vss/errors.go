package vss

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/vssclient/internal/cryptox"
	"github.com/dmitrijs2005/vssclient/internal/keyx"
	"github.com/dmitrijs2005/vssclient/internal/lnurlauth"
	"github.com/dmitrijs2005/vssclient/internal/proto"
	"github.com/dmitrijs2005/vssclient/internal/transport"
)

// Sentinel errors returned by Client operations. Match them with errors.Is.
// Transport-level failures that fit none of these pass through unchanged:
// network errors keep their cause in the chain, non-2xx replies surface as
// *transport.StatusError and malformed replies as *transport.DecodeError.
var (
	// ErrInvalidMnemonic reports a phrase that is not a valid BIP39 mnemonic.
	ErrInvalidMnemonic = keyx.ErrInvalidMnemonic

	// ErrAuthenticationFailed reports a rejected LNURL-auth challenge or a
	// bearer token the server refused twice in a row.
	ErrAuthenticationFailed = lnurlauth.ErrAuthenticationFailed

	// ErrVersionConflict reports a write the server rejected because another
	// writer got there first. The client never retries these; reconciling is
	// the caller's policy.
	ErrVersionConflict = errors.New("version conflict")

	// ErrNotFound reports an operation against a key the server does not
	// have. Get and Delete translate it into their miss results; it escapes
	// directly from operations with no miss semantics.
	ErrNotFound = errors.New("key not found")

	// ErrDecryptionFailed reports stored material that failed authenticated
	// decryption: tampering, truncation or a wrong key.
	ErrDecryptionFailed = cryptox.ErrDecryptionFailed

	// ErrInvalidInput reports a request the client refuses to send, such as
	// an empty key, or one the server rejected as malformed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrClientClosed reports an operation on a closed Client.
	ErrClientClosed = errors.New("client closed")
)

// mapServerError translates a *transport.StatusError into the matching
// sentinel, keyed on the server's error code with the HTTP status as a
// fallback for auth failures from intermediaries. Other errors pass through.
func mapServerError(err error) error {
	if err == nil {
		return nil
	}
	var se *transport.StatusError
	if !errors.As(err, &se) {
		return err
	}
	switch {
	case se.Code == proto.CodeConflict:
		return fmt.Errorf("%w: %w", ErrVersionConflict, err)
	case se.Code == proto.CodeNoSuchKey:
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case se.Code == proto.CodeInvalidRequest:
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case isAuthFailure(err):
		return fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
	default:
		return err
	}
}

// isAuthFailure reports whether err is the server rejecting the bearer
// credential.
func isAuthFailure(err error) bool {
	var se *transport.StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.Code == proto.CodeAuth ||
		se.HTTPStatus == http.StatusUnauthorized ||
		se.HTTPStatus == http.StatusForbidden
}
