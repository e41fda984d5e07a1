package chat

import "errors"

// ErrMessageRequired is returned for an empty chat message.
var ErrMessageRequired = errors.New("message is required")
