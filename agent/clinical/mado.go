package clinical

import (
	"context"
	"strings"

	"github.com/skillsenselab/aurascribe/agent"
)

// madoFormNumber is the Québec notifiable disease declaration form.
const madoFormNumber = "AS-770"

type madoDisease struct {
	keyword   string
	nameFR    string
	nameEN    string
	category  string
	urgency   string
	timeframe string
}

// Diseases requiring immediate telephone notification to public health.
var urgentDiseases = []madoDisease{
	{"botulisme", "Botulisme", "Botulism", "toxi-infection", "urgent", "immédiat"},
	{"choléra", "Choléra", "Cholera", "entérique", "urgent", "immédiat"},
	{"fièvre jaune", "Fièvre jaune", "Yellow fever", "vectorielle", "urgent", "immédiat"},
	{"ébola", "Fièvre hémorragique Ébola", "Ebola hemorrhagic fever", "hémorragique", "urgent", "immédiat"},
	{"marburg", "Fièvre de Marburg", "Marburg fever", "hémorragique", "urgent", "immédiat"},
	{"charbon", "Maladie du charbon", "Anthrax", "zoonose", "urgent", "immédiat"},
	{"peste", "Peste", "Plague", "zoonose", "urgent", "immédiat"},
	{"variole", "Variole", "Smallpox", "éruptive", "urgent", "immédiat"},
}

// Diseases to report in writing within 48 hours.
var diseases48h = []madoDisease{
	{"tuberculose", "Tuberculose", "Tuberculosis", "respiratoire", "48h", "48 heures"},
	{"covid", "COVID-19", "COVID-19", "respiratoire", "48h", "48 heures"},
	{"rougeole", "Rougeole", "Measles", "éruptive", "48h", "48 heures"},
	{"coqueluche", "Coqueluche", "Pertussis", "respiratoire", "48h", "48 heures"},
	{"légionellose", "Légionellose", "Legionellosis", "respiratoire", "48h", "48 heures"},
	{"hépatite a", "Hépatite A", "Hepatitis A", "entérique", "48h", "48 heures"},
	{"hépatite b", "Hépatite B", "Hepatitis B", "transmissible sexuellement", "48h", "48 heures"},
	{"hépatite c", "Hépatite C", "Hepatitis C", "transmissible par le sang", "48h", "48 heures"},
	{"syphilis", "Syphilis", "Syphilis", "transmissible sexuellement", "48h", "48 heures"},
	{"méningocoque", "Infection à méningocoques", "Meningococcal infection", "invasive", "48h", "48 heures"},
	{"amiantose", "Amiantose", "Asbestosis", "professionnelle", "48h", "48 heures"},
	{"silicose", "Silicose", "Silicosis", "professionnelle", "48h", "48 heures"},
	{"asthme professionnel", "Asthme professionnel", "Occupational asthma", "professionnelle", "48h", "48 heures"},
	{"monoxyde de carbone", "Intoxication au monoxyde de carbone", "Carbon monoxide poisoning", "chimique", "48h", "48 heures"},
	{"plomb", "Intoxication au plomb", "Lead poisoning", "chimique", "48h", "48 heures"},
	{"lyme", "Maladie de Lyme", "Lyme disease", "vectorielle", "48h", "48 heures"},
	{"nil occidental", "Virus du Nil occidental", "West Nile virus", "vectorielle", "48h", "48 heures"},
	{"salmonellose", "Salmonellose", "Salmonellosis", "entérique", "48h", "48 heures"},
	{"toxi-infection alimentaire", "Toxi-infection alimentaire", "Foodborne illness", "entérique", "48h", "48 heures"},
}

// MADOAgent screens the dictation for Québec notifiable diseases (maladies
// à déclaration obligatoire).
type MADOAgent struct{}

// NewMADOAgent creates the notifiable disease screening agent.
func NewMADOAgent() *MADOAgent { return &MADOAgent{} }

func (a *MADOAgent) Name() string { return NameMADO }

func (a *MADOAgent) Run(ctx context.Context, p agent.Payload) (agent.Output, agent.Confidence, error) {
	lower := strings.ToLower(p.Transcript)

	out := agent.Alert{FormNumber: madoFormNumber}
	for _, d := range urgentDiseases {
		if strings.Contains(lower, d.keyword) {
			out.Matches = append(out.Matches, matchOf(d))
			out.Urgent = true
		}
	}
	for _, d := range diseases48h {
		if strings.Contains(lower, d.keyword) {
			out.Matches = append(out.Matches, matchOf(d))
		}
	}

	switch {
	case out.Urgent:
		out.Note = "Urgent notifiable disease detected. Notify public health by telephone immediately and file form " + madoFormNumber + "."
		return out, agent.ConfidenceHigh, nil
	case len(out.Matches) > 0:
		out.Note = "Notifiable disease detected. File form " + madoFormNumber + " within 48 hours."
		return out, agent.ConfidenceMedium, nil
	default:
		out.Note = "No notifiable disease detected."
		return out, agent.ConfidenceLow, nil
	}
}

func matchOf(d madoDisease) agent.DiseaseMatch {
	return agent.DiseaseMatch{
		Keyword:   d.keyword,
		NameFR:    d.nameFR,
		NameEN:    d.nameEN,
		Category:  d.category,
		Urgency:   d.urgency,
		Timeframe: d.timeframe,
	}
}
