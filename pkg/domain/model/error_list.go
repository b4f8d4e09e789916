package model

import "github.com/secmon-lab/regform/pkg/domain/types"

// ErrorListHeader is rendered as the first child of the error list
const ErrorListHeader = "Errors:"

// ErrorEntry is one field's outstanding error message
type ErrorEntry struct {
	Field   types.FieldID
	Message string
}

// ErrorList maps field identifiers to messages, keeping insertion order
// as display order. A field appears at most once.
type ErrorList struct {
	entries []ErrorEntry
}

// NewErrorList builds a list from entries. Later duplicates update the
// message of the first occurrence.
func NewErrorList(entries ...ErrorEntry) ErrorList {
	var l ErrorList
	for _, e := range entries {
		l.Put(e.Field, e.Message)
	}
	return l
}

func (l *ErrorList) index(field types.FieldID) int {
	for i, e := range l.entries {
		if e.Field == field {
			return i
		}
	}
	return -1
}

// Put inserts or updates the entry for field. It returns true when a new
// entry was appended.
func (l *ErrorList) Put(field types.FieldID, message string) bool {
	if i := l.index(field); i >= 0 {
		l.entries[i].Message = message
		return false
	}
	l.entries = append(l.entries, ErrorEntry{Field: field, Message: message})
	return true
}

// Remove deletes the entry for field and reports whether it existed
func (l *ErrorList) Remove(field types.FieldID) bool {
	i := l.index(field)
	if i < 0 {
		return false
	}
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	return true
}

// Has reports whether field has an entry
func (l *ErrorList) Has(field types.FieldID) bool {
	return l.index(field) >= 0
}

// Message returns the message for field
func (l *ErrorList) Message(field types.FieldID) (string, bool) {
	if i := l.index(field); i >= 0 {
		return l.entries[i].Message, true
	}
	return "", false
}

// Len returns the number of entries
func (l *ErrorList) Len() int {
	return len(l.entries)
}

// IsEmpty reports whether there is no entry
func (l *ErrorList) IsEmpty() bool {
	return len(l.entries) == 0
}

// Entries returns a copy of the entries in display order
func (l *ErrorList) Entries() []ErrorEntry {
	out := make([]ErrorEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
