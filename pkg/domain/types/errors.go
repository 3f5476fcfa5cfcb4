package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrTagMethodNotAllowed is attached when the inbound request is not a POST
	ErrTagMethodNotAllowed = goerr.NewTag("method_not_allowed")

	// ErrTagForbidden is attached when the webhook signature is missing or invalid
	ErrTagForbidden = goerr.NewTag("forbidden")

	// ErrTagMalformedPayload is attached when a push payload cannot be parsed or lacks required fields
	ErrTagMalformedPayload = goerr.NewTag("malformed_payload")

	// ErrTagDeliveryFailure is attached when the chat service or the link shortener call fails
	ErrTagDeliveryFailure = goerr.NewTag("delivery_failure")
)
