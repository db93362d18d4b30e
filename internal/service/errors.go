package service

// ErrorKind classifies the failures a client can see. Each kind has a fixed
// wire message.
type ErrorKind int

const (
	MissingRequiredFields ErrorKind = iota + 1
	MissingID
	NoUpdateFields
	UpdateFailed
	DeleteFailed
)

func (k ErrorKind) Message() string {
	switch k {
	case MissingRequiredFields:
		return "required field(s) missing"
	case MissingID:
		return "missing _id"
	case NoUpdateFields:
		return "no update field(s) sent"
	case UpdateFailed:
		return "could not update"
	case DeleteFailed:
		return "could not delete"
	default:
		return "unknown error"
	}
}

// Error is returned by IssueService for every client-visible failure. ID
// echoes the submitted _id for the kinds that report it. Err keeps the
// underlying cause (invalid id, not found, store failure) for logs only.
type Error struct {
	Kind ErrorKind
	ID   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.Message() + ": " + e.Err.Error()
	}
	return e.Kind.Message()
}

func (e *Error) Unwrap() error { return e.Err }

// Result is the success payload of update and delete.
type Result struct {
	Result string `json:"result"`
	ID     string `json:"_id"`
}
