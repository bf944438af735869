package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oliweira/back-mrg/internal/repositories"
)

// ErrProductNotFound is returned when an update or delete matches no row.
var ErrProductNotFound = repositories.ErrProductNotFound

// ValidationError reports required create fields that were absent, keyed by
// their JSON name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

// StorageError wraps any failure coming from the storage layer.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
