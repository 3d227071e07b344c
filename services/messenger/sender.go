// File: services/messenger/sender.go
package messenger

import (
	"context"

	"randevio/models"
	"randevio/utils"

	"go.uber.org/zap"
)

// Sender delivers composed replies over the business's messaging channel.
// The concrete channel rendering (interactive payload shapes, API calls to
// the platform) lives behind this boundary.
type Sender interface {
	SendReply(ctx context.Context, integration models.ChannelIntegration, toWaID string, reply *models.Reply) error
}

// LoggingSender is the default sender. It records the outbound reply
// structure; the platform API client is wired per deployment.
type LoggingSender struct{}

func NewLoggingSender() *LoggingSender { return &LoggingSender{} }

func (s *LoggingSender) SendReply(ctx context.Context, integration models.ChannelIntegration, toWaID string, reply *models.Reply) error {
	if reply == nil {
		return nil
	}
	logger := utils.GetLogger()
	fields := []zap.Field{
		zap.String("phoneNumberId", integration.PhoneNumberID),
		zap.String("to", toWaID),
		zap.String("kind", reply.Kind),
	}
	switch reply.Kind {
	case models.ReplyButtons:
		fields = append(fields, zap.Strings("options", reply.OptionIDs()))
	case models.ReplyList:
		fields = append(fields, zap.Int("sections", len(reply.Sections)))
	}
	logger.Info("outbound reply", fields...)
	return nil
}
