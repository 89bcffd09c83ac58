package enum

// NotePriority ranks a shop owner's note
type NotePriority string

const (
	NotePriorityLow    NotePriority = "low"
	NotePriorityMedium NotePriority = "medium"
	NotePriorityHigh   NotePriority = "high"
)

func (p NotePriority) IsValid() bool {
	switch p {
	case NotePriorityLow, NotePriorityMedium, NotePriorityHigh:
		return true
	}
	return false
}
