package domain

// FilterFields implementations expose each record's filterable fields by
// the names the list endpoints accept. Defined string types are widened
// to plain strings and absent optional values are left out, so a filter
// on missing data never matches.

// FilterFields returns the filterable view of an entity.
func (e Entity) FilterFields() map[string]any {
	f := map[string]any{
		"id":          e.ID,
		"companyName": e.CompanyName,
		"sector":      e.Sector,
		"region":      e.Region,
		"email":       e.Email,
		"phone":       e.Phone,
		"website":     e.Website,
		"status":      string(e.Status),
		"priority":    string(e.Priority),
		"score":       e.Score,
		"createdAt":   e.CreatedAt,
	}
	if e.Revenue != nil {
		f["revenue"] = *e.Revenue
	}
	if e.Employees != nil {
		f["employees"] = *e.Employees
	}
	return f
}

// FilterFields returns the filterable view of a contact.
func (c Contact) FilterFields() map[string]any {
	return map[string]any{
		"id":        c.ID,
		"entityId":  c.EntityID,
		"firstName": c.FirstName,
		"lastName":  c.LastName,
		"role":      c.Role,
		"email":     c.Email,
		"phone":     c.Phone,
		"whatsapp":  c.WhatsApp,
		"isPrimary": c.IsPrimary,
		"createdAt": c.CreatedAt,
	}
}

// FilterFields returns the filterable view of a mission.
func (m Mission) FilterFields() map[string]any {
	f := map[string]any{
		"id":            m.ID,
		"entityId":      m.EntityID,
		"title":         m.Title,
		"description":   m.Description,
		"status":        string(m.Status),
		"budget":        m.Budget,
		"actualCost":    m.ActualCost,
		"profitability": m.Profitability,
		"startDate":     m.StartDate,
		"createdAt":     m.CreatedAt,
	}
	if m.EndDate != nil {
		f["endDate"] = *m.EndDate
	}
	return f
}

// FilterFields returns the filterable view of an opportunity.
func (o Opportunity) FilterFields() map[string]any {
	return map[string]any{
		"id":               o.ID,
		"entityId":         o.EntityID,
		"title":            o.Title,
		"description":      o.Description,
		"stage":            string(o.Stage),
		"value":            o.Value,
		"probability":      o.Probability,
		"weightedValue":    o.WeightedValue,
		"requiresApproval": o.RequiresApproval,
		"deadline":         o.Deadline,
		"createdAt":        o.CreatedAt,
	}
}

// FilterFields returns the filterable view of an interaction.
func (i Interaction) FilterFields() map[string]any {
	f := map[string]any{
		"id":               i.ID,
		"entityId":         i.EntityID,
		"contactId":        i.ContactID,
		"type":             string(i.Type),
		"subject":          i.Subject,
		"description":      i.Description,
		"outcome":          i.Outcome,
		"date":             i.Date,
		"followUpRequired": i.FollowUpRequired,
		"createdAt":        i.CreatedAt,
	}
	if i.Duration != nil {
		f["duration"] = *i.Duration
	}
	if i.FollowUpDate != nil {
		f["followUpDate"] = *i.FollowUpDate
	}
	return f
}
