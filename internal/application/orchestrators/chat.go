package orchestrators

import (
	"log/slog"

	"fitwise/internal/domain/advisor"
)

// MaxTranscriptMessages bounds how much history a client may send.
const MaxTranscriptMessages = 50

// ChatInput carries input for the chat orchestrator.
type ChatInput struct {
	Actor      Actor
	Transcript []advisor.Message
}

// ChatDeps holds dependencies for Chat.
type ChatDeps struct {
	Responder *advisor.Responder
	Render    func(markdown string) (string, error) // optional
}

// ChatReply is the assistant message plus its rendered HTML.
type ChatReply struct {
	Message advisor.Message `json:"message"`
	HTML    string          `json:"html,omitempty"`
}

// ExecuteChat answers the most recent user message.
// PRE: none
// POST: Always returns an assistant reply; a render failure only drops the HTML
func ExecuteChat(input ChatInput, deps ChatDeps) ChatReply {
	transcript := input.Transcript
	if len(transcript) > MaxTranscriptMessages {
		transcript = transcript[len(transcript)-MaxTranscriptMessages:]
	}
	responder := deps.Responder
	if responder == nil {
		responder = advisor.NewDefaultResponder()
	}

	reply := ChatReply{Message: responder.Reply(transcript)}
	if deps.Render != nil {
		html, err := deps.Render(reply.Message.Content)
		if err != nil {
			slog.Warn("chat_render_failed", "error", err)
		} else {
			reply.HTML = html
		}
	}

	rule := ""
	if last, ok := advisor.LastUserMessage(transcript); ok {
		rule = responder.MatchRule(last.Content)
	}
	slog.Info("chat_event", "event", "reply", "profile_id", input.Actor.ProfileID, "rule", rule)
	return reply
}
