package model

const (
	StatusPending    = "Pending - Under Review"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
	StatusRejected   = "Rejected"
)

// TimestampLayout is the format used for created_at and feedback dates.
const TimestampLayout = "2006-01-02 15:04:05"

// StatusActions lists the statuses a police officer may set, in dashboard button order.
// Any of them can be applied regardless of the current status.
var StatusActions = []string{StatusInProgress, StatusResolved, StatusRejected}

// IsKnownStatus reports whether status is one a stored complaint can carry
func IsKnownStatus(status string) bool {
	return status == StatusPending || IsSettableStatus(status)
}

// IsSettableStatus reports whether status is a valid transition target
func IsSettableStatus(status string) bool {
	for _, s := range StatusActions {
		if s == status {
			return true
		}
	}
	return false
}

// Complaint represents a filed cybercrime complaint
type Complaint struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Category  string `json:"category"`
	Details   string `json:"details"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	FiledBy   string `json:"filed_by"` // username, weak reference
}

// CreateComplaintRequest is used for filing a new complaint
type CreateComplaintRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Category string `json:"category"`
	Details  string `json:"details"`
}

// UpdateStatusRequest is used by police to move a complaint to a new status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// DashboardEntry pairs a complaint with the status actions the viewer may invoke on it.
type DashboardEntry struct {
	Complaint
	Actions []string `json:"actions"`
}

// Dashboard is the police view: complaints newest first, plus citizen feedback.
type Dashboard struct {
	Complaints []DashboardEntry `json:"complaints"`
	Feedbacks  []Feedback       `json:"feedbacks"`
}
