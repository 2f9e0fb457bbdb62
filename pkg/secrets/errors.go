package secrets

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/aws/smithy-go"
)

var (
	ErrInvalidConfig  = errors.New("secrets: invalid configuration")
	ErrNotFound       = errors.New("secrets: secret not found")
	ErrAccessDenied   = errors.New("secrets: access denied")
	ErrEmpty          = errors.New("secrets: secret has no string value")
	ErrLookupFailed   = errors.New("secrets: lookup failed")
	ErrUnknownBackend = errors.New("secrets: unknown backend")
)

// wrapAWSError maps Secrets Manager failures onto package sentinels.
// The original error is formatted with %v so callers match on sentinels only.
func wrapAWSError(err error) error {
	var notFound *types.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "ResourceNotFoundException":
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		case "AccessDeniedException", "UnrecognizedClientException":
			return fmt.Errorf("%w: %v", ErrAccessDenied, err)
		}
	}

	return fmt.Errorf("%w: %v", ErrLookupFailed, err)
}
