package summaries

import "errors"

// ErrTextRequired is returned for an empty summarize request.
var ErrTextRequired = errors.New("text is required")
