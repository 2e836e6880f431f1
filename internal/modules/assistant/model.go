package assistant

import "github.com/google/uuid"

// Section names a block of the reply, rendered in declaration order.
type Section string

const (
	SectionSearch     Section = "search"
	SectionShipping   Section = "shipping"
	SectionComparison Section = "comparison"
	SectionReturns    Section = "returns"
)

const (
	notFoundReply = "I couldn't find any products matching your criteria."
	fallbackReply = "I'm sorry, I couldn't understand your request."
)

// QueryRequest is the payload for asking the assistant a question.
type QueryRequest struct {
	Query string `json:"query"`
}

// Reply is the assistant's answer to one query.
type Reply struct {
	ID       uuid.UUID `json:"id"`
	Query    string    `json:"query"`
	Text     string    `json:"reply"`
	Sections []Section `json:"sections"`
}
