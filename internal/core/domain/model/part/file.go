package part

import (
	"errors"
	"strings"

	"marketplace/internal/pkg/errs"
)

// File references a model file in object storage by its display name and storage key.
type File struct {
	name string
	key  string
}

// NewFile creates a File. Both name and key are required.
func NewFile(name, key string) (File, error) {
	name = strings.TrimSpace(name)
	key = strings.TrimSpace(key)

	var err error
	if name == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("file name"))
	}
	if key == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("file key"))
	}
	if err != nil {
		return File{}, err
	}

	return File{name: name, key: key}, nil
}

func (f File) Name() string { return f.name }
func (f File) Key() string  { return f.key }

// IsZero reports whether f was not created through NewFile.
func (f File) IsZero() bool {
	return f.key == ""
}
