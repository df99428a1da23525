// Package queue contains the shared work queue backends for raw update documents
package queue

import "errors"

// ErrEmpty is returned by Pop when nothing arrived within the poll timeout
var ErrEmpty = errors.New("queue is empty")
