package models

// Reply kinds.
const (
	ReplyText    = "text"
	ReplyButtons = "buttons"
	ReplyList    = "list"
)

// The channel caps interactive content sizes.
const (
	MaxButtons        = 3
	MaxListSections   = 10
	MaxRowsPerSection = 10
)

// ReplyOption is one pickable row or button; ID comes back as Selection.ID.
type ReplyOption struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ReplySection groups list rows under a title.
type ReplySection struct {
	Title string        `json:"title"`
	Rows  []ReplyOption `json:"rows"`
}

// Reply is the structured outbound content contract handed to the composer.
// Exactly one of Buttons / Sections is populated for interactive kinds.
type Reply struct {
	Kind        string         `json:"kind"`
	Body        string         `json:"body"`
	ButtonLabel string         `json:"buttonLabel,omitempty"`
	Buttons     []ReplyOption  `json:"buttons,omitempty"`
	Sections    []ReplySection `json:"sections,omitempty"`
}

// TextReply builds a plain text reply.
func TextReply(body string) *Reply {
	return &Reply{Kind: ReplyText, Body: body}
}

// ButtonsReply builds a button reply, truncating to the channel cap.
func ButtonsReply(body string, buttons ...ReplyOption) *Reply {
	if len(buttons) > MaxButtons {
		buttons = buttons[:MaxButtons]
	}
	return &Reply{Kind: ReplyButtons, Body: body, Buttons: buttons}
}

// ListReply builds a list reply, truncating sections and rows to channel caps.
func ListReply(body, buttonLabel string, sections ...ReplySection) *Reply {
	if len(sections) > MaxListSections {
		sections = sections[:MaxListSections]
	}
	for i := range sections {
		if len(sections[i].Rows) > MaxRowsPerSection {
			sections[i].Rows = sections[i].Rows[:MaxRowsPerSection]
		}
	}
	return &Reply{Kind: ReplyList, Body: body, ButtonLabel: buttonLabel, Sections: sections}
}

// OptionIDs returns every selectable id the reply offers, used to validate
// the next inbound selection against what was actually shown.
func (r *Reply) OptionIDs() []string {
	var ids []string
	for _, b := range r.Buttons {
		ids = append(ids, b.ID)
	}
	for _, s := range r.Sections {
		for _, row := range s.Rows {
			ids = append(ids, row.ID)
		}
	}
	return ids
}
