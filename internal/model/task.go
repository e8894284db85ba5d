package model

// Partition headings used by the list views and the CLI.
const (
	HeadingPending   = "Pending"
	HeadingCompleted = "Completed"
)

// Task is a single to-do entry stored in the local items table.
// Value is fixed at creation; Done only ever moves from false to true.
type Task struct {
	ID    int64  `json:"id" db:"id"`
	Done  bool   `json:"done" db:"done"`
	Value string `json:"value" db:"value"`
}

// Heading returns the section heading for the partition a done flag selects.
func Heading(done bool) string {
	if done {
		return HeadingCompleted
	}
	return HeadingPending
}

// DoneFlag converts a partition flag into the 0/1 value stored in the
// done column.
func DoneFlag(done bool) int {
	if done {
		return 1
	}
	return 0
}
