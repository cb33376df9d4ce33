package pipeline

// Status is the terminal state of a pipeline run.
type Status string

const (
	StatusPublished Status = "published"
	StatusEmpty     Status = "empty"
	StatusFailed    Status = "failed"
)

// Outcome describes how a run ended. Exactly one of the three statuses
// applies: a published report with its item count, an empty day with the
// reason no report was produced, or a failure with the causing error.
type Outcome struct {
	Status    Status
	Date      string
	ItemCount int
	Reason    string
	Err       error
}

// ExitCode maps the outcome to a process exit code. Only failures are
// non-zero; an empty day is a normal result.
func (o Outcome) ExitCode() int {
	if o.Status == StatusFailed {
		return 1
	}
	return 0
}

// Detail returns a short human-readable note for the run record.
func (o Outcome) Detail() string {
	switch o.Status {
	case StatusEmpty:
		return o.Reason
	case StatusFailed:
		if o.Err != nil {
			return o.Err.Error()
		}
	}
	return ""
}

func published(date string, itemCount int) Outcome {
	return Outcome{Status: StatusPublished, Date: date, ItemCount: itemCount}
}

func empty(date, reason string) Outcome {
	return Outcome{Status: StatusEmpty, Date: date, Reason: reason}
}

func failed(date string, err error) Outcome {
	return Outcome{Status: StatusFailed, Date: date, Err: err}
}
