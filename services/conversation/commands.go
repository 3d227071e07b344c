// File: services/conversation/commands.go
package conversation

import (
	"strings"

	"randevio/models"
)

// Free-text commands. They outrank state-specific handling on every turn.
const (
	cmdMenu           = "menu"
	cmdBack           = "back"
	cmdMyAppointments = "my_appointments"
)

var commandVocabulary = map[string]string{
	"cancel":          cmdMenu,
	"menu":            cmdMenu,
	"start over":      cmdMenu,
	"restart":         cmdMenu,
	"help":            cmdMenu,
	"hi":              cmdMenu,
	"hello":           cmdMenu,
	"back":            cmdBack,
	"my appointments": cmdMyAppointments,
	"appointments":    cmdMyAppointments,
}

// matchCommand tests free text against the fixed vocabulary. Matching is
// whole-message, case-insensitive.
func matchCommand(text string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(text))
	normalized = strings.TrimRight(normalized, ".!?")
	cmd, ok := commandVocabulary[normalized]
	return cmd, ok
}

// backTarget is the static predecessor mapping used by the back command.
var backTarget = map[string]string{
	models.StateEmployeeSelect:    models.StateWelcome,
	models.StateDateSelect:        models.StateEmployeeSelect,
	models.StateTimeSelect:        models.StateDateSelect,
	models.StateConfirm:           models.StateTimeSelect,
	models.StateQueueConfirm:      models.StateWelcome,
	models.StateMyAppointments:    models.StateWelcome,
	models.StateAppointmentAction: models.StateMyAppointments,
	models.StateConfirmCancel:     models.StateAppointmentAction,
}
