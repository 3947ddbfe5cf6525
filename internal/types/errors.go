package types

import "fmt"

// ConnectionError means the terminal session could not be opened.
// Fatal: the run stops at SESSION_OPEN.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string { return fmt.Sprintf("terminal connect: %v", e.Err) }
func (e *ConnectionError) Unwrap() error { return e.Err }

// RetrievalError means a single history call to the terminal failed.
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string { return fmt.Sprintf("history retrieval: %v", e.Err) }
func (e *RetrievalError) Unwrap() error { return e.Err }

// ValidationError means a trade record was malformed and aggregation for its
// window was aborted.
type ValidationError struct {
	PositionID int64
	Reason     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid trade record (position %d): %s", e.PositionID, e.Reason)
}

// DataRetrievalError means one of the four windows could not be summarized.
// Fatal: no partial composite report is emitted.
type DataRetrievalError struct {
	Window string
	Err    error
}

func (e *DataRetrievalError) Error() string {
	return fmt.Sprintf("%s summary: %v", e.Window, e.Err)
}
func (e *DataRetrievalError) Unwrap() error { return e.Err }

// ModelError means the language-model collaborator failed. Recoverable: the
// run continues with an empty narrative.
type ModelError struct {
	Err error
}

func (e *ModelError) Error() string { return fmt.Sprintf("llm: %v", e.Err) }
func (e *ModelError) Unwrap() error { return e.Err }

// DeliveryError means the report could not be delivered. Recoverable: the
// run is downgraded to PARTIAL_SUCCESS, nothing is rolled back.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string { return fmt.Sprintf("delivery: %v", e.Err) }
func (e *DeliveryError) Unwrap() error { return e.Err }
