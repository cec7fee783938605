package availability

import "fmt"

// AlreadyClaimedError is returned when a topic is already held, including by the
// student asking for it again.
type AlreadyClaimedError struct {
	TopicID   string
	ClaimedBy string
}

func (e *AlreadyClaimedError) Error() string {
	return fmt.Sprintf("topic %s is already claimed by student %s", e.TopicID, e.ClaimedBy)
}

// StudentHasClaimError is returned when a student who already holds a topic tries
// to claim another while one-claim-per-student is enforced.
type StudentHasClaimError struct {
	StudentID string
	TopicID   string
}

func (e *StudentHasClaimError) Error() string {
	return fmt.Sprintf("student %s already holds topic %s", e.StudentID, e.TopicID)
}

// StoreError wraps a failure of the persistence hook. The ledger is unchanged
// when it is returned.
type StoreError struct {
	Op    string
	Cause error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("claim store %s failed: %v", e.Op, e.Cause)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}
