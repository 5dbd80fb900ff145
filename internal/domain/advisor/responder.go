package advisor

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of a chat transcript.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Rule maps a set of keywords onto a canned response.
// A rule matches when any keyword is a substring of the folded message.
type Rule struct {
	Name     string
	Keywords []string
	Response string
}

// Matches reports whether the already-folded text contains any keyword.
func (r Rule) Matches(folded string) bool {
	for _, k := range r.Keywords {
		if strings.Contains(folded, k) {
			return true
		}
	}
	return false
}

// Canned responses
const (
	InjuryResponse     = "If you're experiencing pain during exercise, stop immediately. Make sure to warm up properly before workouts and cool down afterward. Always maintain proper form, and don't hesitate to ask a trainer if you're unsure about an exercise."
	DietResponse       = "A balanced diet is crucial for fitness progress. Focus on adequate protein intake (about 1.6-2g per kg of bodyweight), complex carbohydrates, healthy fats, and plenty of vegetables. Stay hydrated and consider timing your meals around your workouts for optimal results."
	MotivationResponse = "It's normal to have days when you feel less motivated. Try setting smaller, achievable goals for those days. Remember why you started, track your progress, and celebrate small wins. Sometimes, just showing up is the hardest part - once you begin, momentum often takes over."
	DefaultResponse    = "I'm your fitness assistant! I can help with workout advice, diet recommendations, injury prevention, and motivation. What specific fitness topic would you like to discuss?"
)

// DefaultRules is evaluated in order; the first match wins.
var DefaultRules = []Rule{
	{Name: "injury", Keywords: []string{"injury"}, Response: InjuryResponse},
	{Name: "diet", Keywords: []string{"diet", "food"}, Response: DietResponse},
	{Name: "motivation", Keywords: []string{"motivation", "tired"}, Response: MotivationResponse},
}

// Responder picks canned replies from an ordered rule table.
// It holds no per-conversation state.
type Responder struct {
	rules    []Rule
	fallback string
}

// NewResponder creates a responder over rules, with fallback used when nothing matches.
func NewResponder(rules []Rule, fallback string) *Responder {
	return &Responder{
		rules:    append([]Rule(nil), rules...),
		fallback: fallback,
	}
}

// NewDefaultResponder creates a responder with the built-in rules.
func NewDefaultResponder() *Responder {
	return NewResponder(DefaultRules, DefaultResponse)
}

// Reply returns the next assistant message for the transcript.
// Only the most recent user message is inspected; earlier history is ignored.
// PRE: none
// POST: Always returns an assistant message
func (r *Responder) Reply(transcript []Message) Message {
	last, ok := LastUserMessage(transcript)
	if !ok {
		return Message{Role: RoleAssistant, Content: r.fallback}
	}
	folded := r.fold(last.Content)
	for _, rule := range r.rules {
		if rule.Matches(folded) {
			return Message{Role: RoleAssistant, Content: rule.Response}
		}
	}
	return Message{Role: RoleAssistant, Content: r.fallback}
}

// MatchRule returns the name of the rule that would answer text, or "".
func (r *Responder) MatchRule(text string) string {
	folded := r.fold(text)
	for _, rule := range r.rules {
		if rule.Matches(folded) {
			return rule.Name
		}
	}
	return ""
}

// fold lower-cases text. A Caser is not safe for concurrent use, so one is built per call.
func (r *Responder) fold(text string) string {
	return cases.Lower(language.Und).String(text)
}

// LastUserMessage finds the most recent message sent by the user.
func LastUserMessage(transcript []Message) (Message, bool) {
	for i := len(transcript) - 1; i >= 0; i-- {
		if transcript[i].Role == RoleUser {
			return transcript[i], true
		}
	}
	return Message{}, false
}
