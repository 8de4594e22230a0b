package schema

import "strings"

// isDuplicateConstraint detects the postgres duplicate_object error
// raised when an ALTER TABLE ... ADD CONSTRAINT already exists.
func isDuplicateConstraint(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "already exists") ||
		strings.Contains(msg, "SQLSTATE 42710")
}
