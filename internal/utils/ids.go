package utils

import "github.com/google/uuid"

// NewID returns a prefixed unique record id such as "report_<uuid>".
func NewID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}
