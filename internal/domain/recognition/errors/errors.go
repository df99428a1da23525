// Package errors contains domain-specific errors for the recognition domain
package errors

import (
	"errors"
	"fmt"

	pkgerrors "github.com/Conte777/songid-bot/pkg/errors"
)

// NoResultMessage is the recognition provider text for a clean miss
const NoResultMessage = "No result"

// Local validation errors
var (
	ErrNoMedia           = pkgerrors.NewValidationError("No media were provided.")
	ErrMalformedArtists  = pkgerrors.NewValidationError("Malformed artist list in recognition result.")
	ErrEmptyFileLocation = pkgerrors.NewValidationError("Telegram returned an empty file location.")
)

// Connectivity stages
const (
	StageGetFile      = "cannot reach Telegram servers to get file location"
	StageDownloadFile = "cannot reach Telegram servers to download file"
	StageSendMessage  = "cannot reach Telegram servers to send message"
	StageRecognize    = "cannot reach recognition service"
	StageBreakerOpen  = "recognition service is temporarily unavailable"
)

// MessagingKind enumerates Telegram Bot API error kinds
type MessagingKind int

const (
	MessagingUnknown MessagingKind = iota
	MessagingBadRequest
	MessagingUnauthorized
	MessagingForbidden
	MessagingNotFound
	MessagingFlood
	MessagingInternal
)

var messagingKindNames = map[MessagingKind]string{
	MessagingUnknown:      "Unknown",
	MessagingBadRequest:   "BadRequest",
	MessagingUnauthorized: "Unauthorized",
	MessagingForbidden:    "Forbidden",
	MessagingNotFound:     "NotFound",
	MessagingFlood:        "Flood",
	MessagingInternal:     "Internal",
}

func (k MessagingKind) String() string {
	return messagingKindNames[k]
}

var messagingCodes = map[int]MessagingKind{
	400: MessagingBadRequest,
	401: MessagingUnauthorized,
	403: MessagingForbidden,
	404: MessagingNotFound,
	420: MessagingFlood,
	500: MessagingInternal,
}

// MessagingProviderError is an error response from the Telegram Bot API
type MessagingProviderError struct {
	Kind        MessagingKind
	Code        int
	Description string
}

// NewMessagingProviderError maps a Telegram error_code to its kind.
// Codes outside the table become MessagingUnknown.
func NewMessagingProviderError(code int, description string) *MessagingProviderError {
	kind, ok := messagingCodes[code]
	if !ok {
		kind = MessagingUnknown
	}
	return &MessagingProviderError{Kind: kind, Code: code, Description: description}
}

func (e *MessagingProviderError) Error() string {
	return e.Description
}

// RecognitionKind enumerates ACRCloud error kinds
type RecognitionKind int

const (
	RecognitionUnknown RecognitionKind = iota
	RecognitionService
	RecognitionFailed
)

func (k RecognitionKind) String() string {
	switch k {
	case RecognitionService:
		return "ServiceError"
	case RecognitionFailed:
		return "RecognitionError"
	default:
		return "UnknownError"
	}
}

var recognitionCodes = map[int]RecognitionKind{
	1001: RecognitionFailed,
	2000: RecognitionService,
	2001: RecognitionService,
	2002: RecognitionFailed,
	2004: RecognitionFailed,
	2005: RecognitionService,
	2010: RecognitionUnknown,
	3000: RecognitionService,
}

// RecognitionProviderError is a non-zero status returned by ACRCloud
type RecognitionProviderError struct {
	Kind    RecognitionKind
	Code    int
	Message string
}

// NewRecognitionProviderError maps an ACRCloud status code to its kind.
// Codes outside the table become RecognitionUnknown.
func NewRecognitionProviderError(code int, message string) *RecognitionProviderError {
	kind, ok := recognitionCodes[code]
	if !ok {
		kind = RecognitionUnknown
	}
	return &RecognitionProviderError{Kind: kind, Code: code, Message: message}
}

func (e *RecognitionProviderError) Error() string {
	return e.Message
}

// IsNoResult reports whether the provider found no match for the sample
func (e *RecognitionProviderError) IsNoResult() bool {
	return e.Message == NoResultMessage
}

// DateFormatError is returned when a release date is not an ISO calendar date
type DateFormatError struct {
	Value string
	Err   error
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("Invalid release date %q.", e.Value)
}

func (e *DateFormatError) Unwrap() error {
	return e.Err
}

// ShouldRequeue reports whether the update that failed with err deserves another pass.
// Only recognition provider failures other than a clean "No result" qualify.
func ShouldRequeue(err error) bool {
	var recErr *RecognitionProviderError
	if !errors.As(err, &recErr) {
		return false
	}
	return !recErr.IsNoResult()
}

// KindOf returns a short error kind label for logs and metrics
func KindOf(err error) string {
	var msgErr *MessagingProviderError
	if errors.As(err, &msgErr) {
		return "telegram_" + msgErr.Kind.String()
	}
	var recErr *RecognitionProviderError
	if errors.As(err, &recErr) {
		return "acr_" + recErr.Kind.String()
	}
	var dateErr *DateFormatError
	if errors.As(err, &dateErr) {
		return "date_format"
	}
	return pkgerrors.TypeOf(err).String()
}
