package models

import "time"

// Request payloads. Dates travel as strings ("2006-01-02" or RFC 3339)
// and are parsed by the handlers; everything else carries validator tags.

// LoginRequest authenticates a collaborator by username or email.
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CollaboratorRequest creates a new collaborator account.
type CollaboratorRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required,min=3,max=32"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role" validate:"omitempty,oneof=admin member"`
}

// EntityRequest creates or replaces an entity. There is no score field;
// the score is always derived server-side.
type EntityRequest struct {
	CompanyName string `json:"companyName" validate:"required"`
	Sector      string `json:"sector"`
	Region      string `json:"region"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone"`
	Website     string `json:"website" validate:"omitempty,url"`
	Revenue     *int64 `json:"revenue" validate:"omitempty,gte=0"`
	Employees   *int   `json:"employees" validate:"omitempty,gte=0"`
	Status      string `json:"status" validate:"required,oneof=client prospect"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	Notes       string `json:"notes"`
}

// ContactRequest creates or replaces a contact.
type ContactRequest struct {
	EntityID  string `json:"entityId" validate:"required"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Role      string `json:"role"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
	WhatsApp  string `json:"whatsapp"`
	IsPrimary bool   `json:"isPrimary"`
	Notes     string `json:"notes"`
}

// MissionRequest creates or replaces a mission.
type MissionRequest struct {
	EntityID    string `json:"entityId" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"required,oneof=draft active completed archived cancelled"`
	Budget      int64  `json:"budget" validate:"gte=0"`
	ActualCost  int64  `json:"actualCost" validate:"gte=0"`
	StartDate   string `json:"startDate" validate:"required"`
	EndDate     string `json:"endDate"`
}

// OpportunityRequest creates or replaces an opportunity.
type OpportunityRequest struct {
	EntityID    string `json:"entityId" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Stage       string `json:"stage" validate:"required,oneof=prospection qualified proposal negotiation won lost"`
	Value       int64  `json:"value" validate:"required,gt=0"`
	Probability int    `json:"probability" validate:"gte=0,lte=100"`
	Deadline    string `json:"deadline" validate:"required"`
}

// InteractionRequest creates or replaces an interaction. Duration must be
// a positive number of minutes and is mandatory for calls; a follow-up
// date is mandatory when a follow-up is requested. Both cross-field rules
// are enforced by the handlers.
type InteractionRequest struct {
	EntityID         string `json:"entityId" validate:"required"`
	ContactID        string `json:"contactId"`
	Type             string `json:"type" validate:"required,oneof=call email meeting visit sms whatsapp"`
	Subject          string `json:"subject" validate:"required"`
	Description      string `json:"description"`
	Outcome          string `json:"outcome"`
	Duration         *int   `json:"duration" validate:"omitempty,gt=0"`
	Date             string `json:"date" validate:"required"`
	FollowUpRequired bool   `json:"followUpRequired"`
	FollowUpDate     string `json:"followUpDate"`
}

// PhoneValidationRequest checks and normalizes a phone number.
type PhoneValidationRequest struct {
	Phone  string `json:"phone" validate:"required"`
	Region string `json:"region"`
}

// ParseDate accepts the two date layouts the API takes.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
