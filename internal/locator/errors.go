package locator

import (
	"errors"
	"fmt"
)

// ErrConfigNotFound is returned when neither the nominal nor the fallback file exists.
var ErrConfigNotFound = errors.New("configuration file not found")

// ProvisionError reports a failure while creating the per-user fallback copy.
type ProvisionError struct {
	Op   string
	Path string
	Err  error
}

func (e *ProvisionError) Error() string {
	return fmt.Sprintf("provision config %s failed for %s: %v", e.Op, e.Path, e.Err)
}

func (e *ProvisionError) Unwrap() error {
	return e.Err
}
