package port

import (
	"errors"
	"fmt"
)

// ErrDuplicateUsername is returned by UserRepository.Save when the username
// is already taken.
var ErrDuplicateUsername = errors.New("username already taken")

// ModelUnavailableError reports that the classifier or scaler artifact could
// not be loaded, or that its dimensions disagree with the feature encoding.
// It is fatal at startup: the service must exit rather than accept traffic
// with a broken predictor.
type ModelUnavailableError struct {
	Reason string
	Err    error
}

func (e *ModelUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("model unavailable: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("model unavailable: %s", e.Reason)
}

func (e *ModelUnavailableError) Unwrap() error {
	return e.Err
}
