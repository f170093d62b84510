package domain

import "time"

// EntityStatus is the commercial relationship with a company.
type EntityStatus string

const (
	StatusClient   EntityStatus = "client"
	StatusProspect EntityStatus = "prospect"
)

// Priority is the commercial priority assigned to an entity.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// MissionStatus is the lifecycle state of an engagement.
type MissionStatus string

const (
	MissionDraft     MissionStatus = "draft"
	MissionActive    MissionStatus = "active"
	MissionCompleted MissionStatus = "completed"
	MissionArchived  MissionStatus = "archived"
	MissionCancelled MissionStatus = "cancelled"
)

// OpportunityStage is the pipeline stage of a potential sale.
type OpportunityStage string

const (
	StageProspection OpportunityStage = "prospection"
	StageQualified   OpportunityStage = "qualified"
	StageProposal    OpportunityStage = "proposal"
	StageNegotiation OpportunityStage = "negotiation"
	StageWon         OpportunityStage = "won"
	StageLost        OpportunityStage = "lost"
)

// InteractionType is the channel of a logged contact touch.
type InteractionType string

const (
	InteractionCall     InteractionType = "call"
	InteractionEmail    InteractionType = "email"
	InteractionMeeting  InteractionType = "meeting"
	InteractionVisit    InteractionType = "visit"
	InteractionSMS      InteractionType = "sms"
	InteractionWhatsApp InteractionType = "whatsapp"
)

// ApprovalThreshold is the deal value (XOF) above which an opportunity
// needs management sign-off. Strictly greater-than; the gate is evaluated
// and stored at write time so threshold changes never rewrite history.
const ApprovalThreshold int64 = 50_000_000

// Entity is a company record, client or prospect. It anchors contacts,
// missions, opportunities and interactions.
//
// Revenue and Employees are pointers because "not provided" and "zero" are
// different facts: nil means the data is missing and scores the minimum
// band, an explicit 0 is a known value and scores the lowest present band.
type Entity struct {
	ID          string       `json:"id"`
	CompanyName string       `json:"companyName"`
	Sector      string       `json:"sector,omitempty"`
	Region      string       `json:"region,omitempty"`
	Email       string       `json:"email,omitempty"`
	Phone       string       `json:"phone,omitempty"`
	Website     string       `json:"website,omitempty"`
	Revenue     *int64       `json:"revenue,omitempty"`
	Employees   *int         `json:"employees,omitempty"`
	Status      EntityStatus `json:"status"`
	Priority    Priority     `json:"priority"`
	Score       int          `json:"score"`
	Notes       string       `json:"notes,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Contact is a person attached to an entity. At most one contact per
// entity carries IsPrimary; the store demotes the previous primary when a
// new one is designated.
type Contact struct {
	ID        string    `json:"id"`
	EntityID  string    `json:"entityId"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      string    `json:"role,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	WhatsApp  string    `json:"whatsapp,omitempty"`
	IsPrimary bool      `json:"isPrimary"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Mission is a professional-services engagement for one entity.
// Profitability is a stored percentage derived from Budget and ActualCost
// at write time; it is 0 when Budget is 0.
type Mission struct {
	ID            string        `json:"id"`
	EntityID      string        `json:"entityId"`
	Title         string        `json:"title"`
	Description   string        `json:"description,omitempty"`
	Status        MissionStatus `json:"status"`
	Budget        int64         `json:"budget"`
	ActualCost    int64         `json:"actualCost"`
	Profitability int           `json:"profitability"`
	StartDate     time.Time     `json:"startDate"`
	EndDate       *time.Time    `json:"endDate,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// Opportunity is a potential sale for one entity. WeightedValue and
// RequiresApproval are derived and stored at write time.
type Opportunity struct {
	ID               string           `json:"id"`
	EntityID         string           `json:"entityId"`
	Title            string           `json:"title"`
	Description      string           `json:"description,omitempty"`
	Stage            OpportunityStage `json:"stage"`
	Value            int64            `json:"value"`
	Probability      int              `json:"probability"`
	WeightedValue    int64            `json:"weightedValue"`
	RequiresApproval bool             `json:"requiresApproval"`
	Deadline         time.Time        `json:"deadline"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// Interaction is a logged touch with an entity, optionally tied to a
// specific contact. Duration is minutes and is mandatory for calls.
type Interaction struct {
	ID               string          `json:"id"`
	EntityID         string          `json:"entityId"`
	ContactID        string          `json:"contactId,omitempty"`
	Type             InteractionType `json:"type"`
	Subject          string          `json:"subject"`
	Description      string          `json:"description,omitempty"`
	Outcome          string          `json:"outcome,omitempty"`
	Duration         *int            `json:"duration,omitempty"`
	Date             time.Time       `json:"date"`
	FollowUpRequired bool            `json:"followUpRequired"`
	FollowUpDate     *time.Time      `json:"followUpDate,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// CollaboratorRole is the access level of an API user.
type CollaboratorRole string

const (
	RoleAdmin  CollaboratorRole = "admin"
	RoleMember CollaboratorRole = "member"
)

// Collaborator is a firm employee with API access.
type Collaborator struct {
	ID           string           `json:"id"`
	Email        string           `json:"email"`
	Username     string           `json:"username"`
	FirstName    string           `json:"firstName"`
	LastName     string           `json:"lastName"`
	PasswordHash string           `json:"-"`
	Role         CollaboratorRole `json:"role"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// ValidEntityStatus reports whether s is a known entity status.
func ValidEntityStatus(s EntityStatus) bool {
	return s == StatusClient || s == StatusProspect
}

// ValidMissionStatus reports whether s is a known mission status.
func ValidMissionStatus(s MissionStatus) bool {
	switch s {
	case MissionDraft, MissionActive, MissionCompleted, MissionArchived, MissionCancelled:
		return true
	}
	return false
}

// ValidOpportunityStage reports whether s is a known pipeline stage.
func ValidOpportunityStage(s OpportunityStage) bool {
	switch s {
	case StageProspection, StageQualified, StageProposal, StageNegotiation, StageWon, StageLost:
		return true
	}
	return false
}

// ValidInteractionType reports whether t is a known interaction channel.
func ValidInteractionType(t InteractionType) bool {
	switch t {
	case InteractionCall, InteractionEmail, InteractionMeeting, InteractionVisit, InteractionSMS, InteractionWhatsApp:
		return true
	}
	return false
}
