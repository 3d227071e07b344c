package models

// WebhookPayload mirrors the messaging provider's Cloud API webhook shape:
// entry[].changes[].value.{metadata, contacts, messages}.
type WebhookPayload struct {
	Entry []struct {
		Changes []struct {
			Value WebhookValue `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

type WebhookValue struct {
	Metadata struct {
		PhoneNumberID string `json:"phone_number_id"`
	} `json:"metadata"`
	Contacts []struct {
		WaID    string `json:"wa_id"`
		Profile struct {
			Name string `json:"name"`
		} `json:"profile"`
	} `json:"contacts"`
	Messages []WebhookMessage `json:"messages"`
}

type WebhookMessage struct {
	ID   string `json:"id"`
	From string `json:"from"`
	Text *struct {
		Body string `json:"body"`
	} `json:"text"`
	Interactive *struct {
		Type        string `json:"type"`
		ButtonReply *struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"button_reply"`
		ListReply *struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"list_reply"`
	} `json:"interactive"`
}

// Value returns the first change value, or nil when the payload carries none.
func (p *WebhookPayload) Value() *WebhookValue {
	if len(p.Entry) == 0 || len(p.Entry[0].Changes) == 0 {
		return nil
	}
	return &p.Entry[0].Changes[0].Value
}

// Selection kinds.
const (
	SelectionButton = "button"
	SelectionList   = "list"
)

// Selection is an interactive reply: an opaque id picked from the options the
// engine last offered.
type Selection struct {
	Kind  string `json:"kind"`
	ID    string `json:"id"`
	Title string `json:"title"`
}

// InboundMessage is the channel-independent inbound event the conversation
// engine consumes. Selection, when present, always takes the menu path; Text
// is only tested against the free-text command vocabulary.
type InboundMessage struct {
	WaID        string
	MessageID   string
	DisplayName string
	Text        string
	Selection   *Selection
}

// InboundFromWebhook flattens a provider payload into an InboundMessage.
// Returns nil for status-only deliveries (no messages array).
func InboundFromWebhook(p *WebhookPayload) *InboundMessage {
	v := p.Value()
	if v == nil || len(v.Messages) == 0 {
		return nil
	}
	m := v.Messages[0]
	in := &InboundMessage{
		WaID:      m.From,
		MessageID: m.ID,
	}
	if len(v.Contacts) > 0 {
		in.DisplayName = v.Contacts[0].Profile.Name
	}
	if m.Text != nil {
		in.Text = m.Text.Body
	}
	if m.Interactive != nil {
		switch {
		case m.Interactive.ButtonReply != nil:
			in.Selection = &Selection{Kind: SelectionButton, ID: m.Interactive.ButtonReply.ID, Title: m.Interactive.ButtonReply.Title}
		case m.Interactive.ListReply != nil:
			in.Selection = &Selection{Kind: SelectionList, ID: m.Interactive.ListReply.ID, Title: m.Interactive.ListReply.Title}
		}
	}
	return in
}
