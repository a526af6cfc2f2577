package reflection

import "github.com/jkrogh/fokus/pkg/period"

// Question is one entry of the static catalogs. The ID is stable and safe to
// persist; the Text is the Danish display form and doubles as the legacy join
// key against stored answers.
type Question struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// periodicQuestions is the shared weekly/monthly set.
var periodicQuestions = []Question{
	{ID: "went-well", Text: "Hvad gik godt i denne periode?"},
	{ID: "went-badly", Text: "Hvad kunne være gået bedre?"},
	{ID: "learned", Text: "Hvad har jeg lært?"},
	{ID: "next-focus", Text: "Hvad vil jeg fokusere på i næste periode?"},
}

var quarterlyQuestions = []Question{
	{ID: "biggest-wins", Text: "Hvad var mine største sejre i dette kvartal?"},
	{ID: "missed-goals", Text: "Hvilke mål nåede jeg ikke, og hvorfor?"},
	{ID: "surprises", Text: "Hvad har overrasket mig?"},
	{ID: "helpful-habits", Text: "Hvilke vaner har styrket mig?"},
	{ID: "limiting-habits", Text: "Hvilke vaner har holdt mig tilbage?"},
	{ID: "do-differently", Text: "Hvad vil jeg gøre anderledes i næste kvartal?"},
	{ID: "next-quarter-focus", Text: "Hvad er mit vigtigste fokus for næste kvartal?"},
}

// The yearly form is three fixed blocks used as one long sequence: looking
// back, looking forward, and affirmations.
var yearlyReflectionQuestions = []Question{
	{ID: "year-moments", Text: "Hvad var årets største øjeblikke?"},
	{ID: "year-proud", Text: "Hvad er jeg mest stolt af i år?"},
	{ID: "year-challenges", Text: "Hvad var årets største udfordringer?"},
	{ID: "year-relations", Text: "Hvilke relationer har betydet mest for mig?"},
	{ID: "year-self", Text: "Hvad har jeg lært om mig selv?"},
	{ID: "year-remember", Text: "Hvad vil jeg huske dette år for?"},
}

var yearlyGrowthQuestions = []Question{
	{ID: "growth-year-ahead", Text: "Hvor vil jeg være om et år?"},
	{ID: "growth-skills", Text: "Hvilke nye færdigheder vil jeg opbygge?"},
	{ID: "growth-habits-build", Text: "Hvilke vaner vil jeg etablere?"},
	{ID: "growth-habits-drop", Text: "Hvilke vaner vil jeg slippe?"},
	{ID: "growth-people", Text: "Hvem vil jeg bruge mere tid sammen med?"},
	{ID: "growth-say-no", Text: "Hvad vil jeg sige nej til?"},
	{ID: "growth-measure", Text: "Hvordan vil jeg måle fremgang?"},
}

var affirmationQuestions = []Question{
	{ID: "affirm-best-self", Text: "Hvem er jeg, når jeg er bedst?"},
	{ID: "affirm-beliefs", Text: "Hvad tror jeg på?"},
	{ID: "affirm-deserve", Text: "Hvad fortjener jeg?"},
	{ID: "affirm-promise", Text: "Hvad lover jeg mig selv?"},
}

// Questions returns the catalog for a period type. Weekly and monthly share
// one set; yearly concatenates its three blocks; vision has no reflections.
func Questions(t period.Type) []Question {
	switch t {
	case period.Weekly, period.Monthly:
		return periodicQuestions
	case period.Quarterly:
		return quarterlyQuestions
	case period.Yearly:
		out := make([]Question, 0, len(yearlyReflectionQuestions)+len(yearlyGrowthQuestions)+len(affirmationQuestions))
		out = append(out, yearlyReflectionQuestions...)
		out = append(out, yearlyGrowthQuestions...)
		out = append(out, affirmationQuestions...)
		return out
	}
	return nil
}
