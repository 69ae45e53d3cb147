package domain

import "time"

// JobStatus is the lifecycle state of a listing as the backend reports it.
type JobStatus string

const (
	JobOpen   JobStatus = "OPEN"
	JobClosed JobStatus = "CLOSED"
)

// Job is an ephemeral read copy of a backend job listing. The backend owns
// the record; the gateway never stores it.
type Job struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Location    string      `json:"location"`
	Salary      string      `json:"salary"`
	Status      JobStatus   `json:"status,omitempty"`
	Employer    EmployerRef `json:"employer"`
}

// EmployerRef identifies the posting employer on a job record.
type EmployerRef struct {
	ID       int64  `json:"id"`
	Username string `json:"username,omitempty"`
	FullName string `json:"fullName,omitempty"`
}

// Application is an ephemeral read copy of an applicant's submission.
type Application struct {
	ID        int64     `json:"id"`
	Job       Job       `json:"job"`
	UserID    int64     `json:"userId,omitempty"`
	Status    string    `json:"status"`
	AppliedAt time.Time `json:"appliedAt"`
}

// NewJobInput carries the fields an employer submits when posting a job.
type NewJobInput struct {
	Title       string
	Description string
	Location    string
	Salary      string
}
