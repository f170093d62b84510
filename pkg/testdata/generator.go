// Package testdata generates realistic demo records for local
// development and tests. Names and regions lean West African because
// that is where the firm's book of business sits.
package testdata

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/fidalli/crm-backend/pkg/domain"
)

// Regions maps countries to the regions entities are spread over.
var Regions = map[string][]string{
	"SN": {"Dakar", "Thiès", "Saint-Louis", "Ziguinchor", "Kaolack"},
	"CI": {"Abidjan", "Bouaké", "Yamoussoukro", "San-Pédro"},
	"ML": {"Bamako", "Sikasso", "Ségou"},
	"BF": {"Ouagadougou", "Bobo-Dioulasso"},
}

var sectors = []string{
	"agroalimentaire", "transport", "telecom", "banque", "energie",
	"btp", "distribution", "sante", "education", "mines",
}

// Sector-flavored company name parts
var companyNameParts = map[string]struct {
	Prefixes []string
	Suffixes []string
}{
	"agroalimentaire": {
		Prefixes: []string{"Teranga", "Sahel", "Baobab", "Casamance", "Delta"},
		Suffixes: []string{"Foods", "Agro", "Céréales", "Agrobusiness"},
	},
	"transport": {
		Prefixes: []string{"Trans", "Sahel", "Atlantique", "Express"},
		Suffixes: []string{"Logistics", "Transit", "Cargo", "Transport"},
	},
	"telecom": {
		Prefixes: []string{"Afri", "Waw", "Digital", "Connect"},
		Suffixes: []string{"Telecom", "Networks", "Mobile", "Digital"},
	},
	"banque": {
		Prefixes: []string{"Crédit", "Banque", "Union", "Atlantique"},
		Suffixes: []string{"Finance", "Capital", "Bank", "Microfinance"},
	},
	"energie": {
		Prefixes: []string{"Solar", "Éco", "Sahel", "West"},
		Suffixes: []string{"Energy", "Power", "Solaire", "Énergie"},
	},
	"mines": {
		Prefixes: []string{"Baobab", "Faleme", "Sabodala", "Kédougou"},
		Suffixes: []string{"Mining", "Resources", "Minerals", "Gold"},
	},
}

var contactRoles = []string{
	"Directeur Général", "Directeur Financier", "Directeur Commercial",
	"Responsable Achats", "Responsable IT", "Chargé de projet",
}

var missionTitles = []string{
	"Audit financier annuel", "Mise en place ERP", "Étude de marché",
	"Optimisation logistique", "Accompagnement levée de fonds",
	"Refonte du système d'information", "Due diligence",
}

var opportunityTitles = []string{
	"Extension du contrat cadre", "Audit de conformité", "Déploiement régional",
	"Contrat de maintenance", "Étude de faisabilité", "Programme de formation",
}

var interactionSubjects = []string{
	"Point d'avancement", "Présentation de l'offre", "Relance proposition",
	"Réunion de cadrage", "Suivi facturation", "Visite de site",
}

// CompanyName creates a sector-flavored company name.
func CompanyName(sector string) string {
	parts, ok := companyNameParts[sector]
	if !ok {
		return fmt.Sprintf("%s %s", gofakeit.Company(), strings.Title(sector))
	}
	prefix := parts.Prefixes[rand.Intn(len(parts.Prefixes))]
	suffix := parts.Suffixes[rand.Intn(len(parts.Suffixes))]
	return fmt.Sprintf("%s %s", prefix, suffix)
}

func pickCountry() string {
	countries := []string{"SN", "SN", "SN", "CI", "CI", "ML", "BF"}
	return countries[rand.Intn(len(countries))]
}

func pickRegion(country string) string {
	regions := Regions[country]
	return regions[rand.Intn(len(regions))]
}

func slug(name string) string {
	s := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	s = strings.ReplaceAll(s, "'", "")
	if len(s) > 20 {
		s = s[:20]
	}
	return s
}

// Entity generates one company record. Revenue and employees are left
// absent on a share of records so score bands for missing data get
// exercised.
func Entity() domain.Entity {
	sector := sectors[rand.Intn(len(sectors))]
	name := CompanyName(sector)
	country := pickCountry()

	e := domain.Entity{
		CompanyName: name,
		Sector:      sector,
		Region:      pickRegion(country),
		Status:      domain.StatusProspect,
		Priority:    randomPriority(),
		Notes:       gofakeit.Sentence(8),
	}

	if rand.Float64() < 0.4 {
		e.Status = domain.StatusClient
	}
	if rand.Float64() < 0.8 {
		e.Email = fmt.Sprintf("contact@%s.com", slug(name))
	}
	if rand.Float64() < 0.7 {
		e.Phone = senegalPhone()
	}
	if rand.Float64() < 0.5 {
		e.Website = fmt.Sprintf("https://www.%s.com", slug(name))
	}
	if rand.Float64() < 0.7 {
		revenue := int64(rand.Intn(200)) * 1_000_000
		e.Revenue = &revenue
	}
	if rand.Float64() < 0.75 {
		employees := rand.Intn(250)
		e.Employees = &employees
	}
	return e
}

// Contact generates a person attached to entityID.
func Contact(entityID string, primary bool) domain.Contact {
	c := domain.Contact{
		EntityID:  entityID,
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Role:      contactRoles[rand.Intn(len(contactRoles))],
		IsPrimary: primary,
	}
	if rand.Float64() < 0.85 {
		c.Email = gofakeit.Email()
	}
	if rand.Float64() < 0.9 {
		c.Phone = senegalPhone()
	}
	if rand.Float64() < 0.6 {
		c.WhatsApp = c.Phone
	}
	return c
}

// Mission generates an engagement for entityID.
func Mission(entityID string) domain.Mission {
	budget := int64(rand.Intn(80)+5) * 1_000_000
	start := gofakeit.DateRange(
		time.Now().AddDate(-1, 0, 0),
		time.Now(),
	)

	m := domain.Mission{
		EntityID:    entityID,
		Title:       missionTitles[rand.Intn(len(missionTitles))],
		Description: gofakeit.Sentence(12),
		Status:      randomMissionStatus(),
		Budget:      budget,
		StartDate:   start,
	}

	// Cost tracks budget with some overrun spread
	m.ActualCost = int64(float64(budget) * (0.5 + rand.Float64()*0.7))

	if m.Status != domain.MissionDraft {
		end := start.AddDate(0, rand.Intn(9)+1, 0)
		m.EndDate = &end
	}
	return m
}

// Opportunity generates a pipeline record for entityID. A slice of
// values crosses the approval threshold so the gate shows up in demos.
func Opportunity(entityID string) domain.Opportunity {
	value := int64(rand.Intn(70)+1) * 1_000_000
	if rand.Float64() < 0.15 {
		value = int64(rand.Intn(100)+51) * 1_000_000
	}

	return domain.Opportunity{
		EntityID:    entityID,
		Title:       opportunityTitles[rand.Intn(len(opportunityTitles))],
		Description: gofakeit.Sentence(10),
		Stage:       randomStage(),
		Value:       value,
		Probability: rand.Intn(101),
		Deadline:    gofakeit.DateRange(time.Now(), time.Now().AddDate(0, 6, 0)),
	}
}

// Interaction generates a logged touch for entityID, optionally tied to
// contactID.
func Interaction(entityID, contactID string) domain.Interaction {
	kind := randomInteractionType()
	i := domain.Interaction{
		EntityID:  entityID,
		ContactID: contactID,
		Type:      kind,
		Subject:   interactionSubjects[rand.Intn(len(interactionSubjects))],
		Outcome:   gofakeit.Sentence(6),
		Date:      gofakeit.DateRange(time.Now().AddDate(0, -2, 0), time.Now()),
	}

	if kind == domain.InteractionCall || kind == domain.InteractionMeeting {
		duration := rand.Intn(55) + 5
		i.Duration = &duration
	}

	if rand.Float64() < 0.3 {
		i.FollowUpRequired = true
		due := gofakeit.DateRange(
			time.Now().AddDate(0, 0, -7),
			time.Now().AddDate(0, 0, 14),
		)
		i.FollowUpDate = &due
	}
	return i
}

func senegalPhone() string {
	prefixes := []string{"77", "78", "76", "70"}
	return fmt.Sprintf("+221%s%07d", prefixes[rand.Intn(len(prefixes))], rand.Intn(10_000_000))
}

func randomPriority() domain.Priority {
	priorities := []domain.Priority{
		domain.PriorityLow, domain.PriorityMedium, domain.PriorityMedium,
		domain.PriorityHigh, domain.PriorityCritical,
	}
	return priorities[rand.Intn(len(priorities))]
}

func randomMissionStatus() domain.MissionStatus {
	statuses := []domain.MissionStatus{
		domain.MissionDraft, domain.MissionActive, domain.MissionActive,
		domain.MissionCompleted, domain.MissionArchived, domain.MissionCancelled,
	}
	return statuses[rand.Intn(len(statuses))]
}

func randomStage() domain.OpportunityStage {
	stages := []domain.OpportunityStage{
		domain.StageProspection, domain.StageQualified, domain.StageProposal,
		domain.StageNegotiation, domain.StageWon, domain.StageLost,
	}
	return stages[rand.Intn(len(stages))]
}

func randomInteractionType() domain.InteractionType {
	types := []domain.InteractionType{
		domain.InteractionCall, domain.InteractionCall, domain.InteractionEmail,
		domain.InteractionMeeting, domain.InteractionVisit,
		domain.InteractionSMS, domain.InteractionWhatsApp,
	}
	return types[rand.Intn(len(types))]
}
