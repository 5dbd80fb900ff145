package advisor_test

import (
	"testing"
	"time"

	"fitwise/internal/domain/advisor"
)

func userMsg(content string) advisor.Message {
	return advisor.Message{Role: advisor.RoleUser, Content: content}
}

// TestReply_KeywordRules tests rule selection against the last user message.
func TestReply_KeywordRules(t *testing.T) {
	r := advisor.NewDefaultResponder()
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"knee injury", "I have a knee injury", advisor.InjuryResponse},
		{"upper case", "INJURY after squats?", advisor.InjuryResponse},
		{"diet", "What diet should I follow?", advisor.DietResponse},
		{"food", "Best food before training", advisor.DietResponse},
		{"motivation", "I lack motivation", advisor.MotivationResponse},
		{"tired", "So tired today", advisor.MotivationResponse},
		{"injury wins over diet", "injury and diet question", advisor.InjuryResponse},
		{"no match", "hello there", advisor.DefaultResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Reply([]advisor.Message{userMsg(tt.message)})
			if got.Role != advisor.RoleAssistant {
				t.Errorf("Role = %q, want assistant", got.Role)
			}
			if got.Content != tt.want {
				t.Errorf("Content = %q, want %q", got.Content, tt.want)
			}
		})
	}
}

// TestReply_UsesOnlyLastUserMessage tests that earlier history is ignored.
func TestReply_UsesOnlyLastUserMessage(t *testing.T) {
	r := advisor.NewDefaultResponder()
	transcript := []advisor.Message{
		userMsg("I have a knee injury"),
		{Role: advisor.RoleAssistant, Content: advisor.InjuryResponse},
		userMsg("thanks, anything else?"),
	}
	if got := r.Reply(transcript); got.Content != advisor.DefaultResponse {
		t.Errorf("Content = %q, want default response", got.Content)
	}

	// A trailing assistant message does not hide the user's last message.
	transcript = []advisor.Message{
		userMsg("feeling tired"),
		{Role: advisor.RoleAssistant, Content: "typing..."},
	}
	if got := r.Reply(transcript); got.Content != advisor.MotivationResponse {
		t.Errorf("Content = %q, want motivation response", got.Content)
	}
}

// TestReply_EmptyTranscript tests the total fallback.
func TestReply_EmptyTranscript(t *testing.T) {
	r := advisor.NewDefaultResponder()
	if got := r.Reply(nil); got.Content != advisor.DefaultResponse {
		t.Errorf("Content = %q, want default response", got.Content)
	}
}

// TestCustomRules tests a replaced rule table.
func TestCustomRules(t *testing.T) {
	r := advisor.NewResponder([]advisor.Rule{
		{Name: "sleep", Keywords: []string{"sleep"}, Response: "Aim for 8 hours."},
	}, "fallback")
	if got := r.Reply([]advisor.Message{userMsg("How much SLEEP?")}); got.Content != "Aim for 8 hours." {
		t.Errorf("Content = %q", got.Content)
	}
	if got := r.MatchRule("injury"); got != "" {
		t.Errorf("MatchRule = %q, want empty", got)
	}
}

// TestSafetyTips tests the static tip table.
func TestSafetyTips(t *testing.T) {
	tips := advisor.SafetyTips()
	want := []string{"Muscle Recovery", "Cravings Management", "Injury Prevention"}
	if len(tips) != len(want) {
		t.Fatalf("len = %d, want %d", len(tips), len(want))
	}
	for i, c := range tips {
		if c.Category != want[i] {
			t.Errorf("category %d = %q, want %q", i, c.Category, want[i])
		}
		if len(c.Tips) != 5 {
			t.Errorf("%s has %d tips, want 5", c.Category, len(c.Tips))
		}
	}
	tips[0].Tips[0] = "changed"
	if advisor.SafetyTips()[0].Tips[0] == "changed" {
		t.Error("SafetyTips returned shared slices")
	}
}

// TestMotivationFor tests the visit-count thresholds.
func TestMotivationFor(t *testing.T) {
	cases := map[int]string{
		0:  "The journey of a thousand miles begins with a single step. Start today!",
		3:  "Consistency is key. Keep showing up, and results will follow!",
		5:  "Progress is progress, no matter how small. You're doing great!",
		19: "Your dedication is inspiring! Keep pushing your limits!",
		20: "You're a fitness warrior! Your commitment is truly remarkable!",
	}
	for count, want := range cases {
		if got := advisor.MotivationFor(count); got != want {
			t.Errorf("MotivationFor(%d) = %q, want %q", count, got, want)
		}
	}
}

// TestQuoteOfTheDay tests the daily rotation through the quote table.
func TestQuoteOfTheDay(t *testing.T) {
	all := advisor.Quotes()
	if len(all) != 8 {
		t.Fatalf("len(Quotes) = %d, want 8", len(all))
	}
	jan1 := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)
	if got := advisor.QuoteOfTheDay(jan1); got != all[0] {
		t.Errorf("Jan 1 quote = %q", got)
	}
	if advisor.QuoteOfTheDay(jan1) != advisor.QuoteOfTheDay(jan1.Add(12*time.Hour)) {
		t.Error("quote changed within one day")
	}
	if got := advisor.QuoteOfTheDay(jan1.AddDate(0, 0, len(all))); got != all[0] {
		t.Errorf("rotation did not wrap: %q", got)
	}
	if got := advisor.QuoteOfTheDay(jan1.AddDate(0, 0, 1)); got != all[1] {
		t.Errorf("Jan 2 quote = %q", got)
	}
}
