package workers

import (
	"context"
	"log/slog"
	"taskroom/contract"
	"taskroom/domain"
	"taskroom/moderation"

	"github.com/abadojack/whatlanggo"
)

var _ contract.Worker = (*ModerationWorker)(nil)

// ModerationWorker sits between the transport queue and the room worker.
// Publish bodies are censored before they ever reach the store, so the
// censored form is what gets stored, broadcast and back-filled.
// All other commands pass through untouched.
type ModerationWorker struct {
	moderator moderation.Moderator
	inbound   chan domain.Command
	outbound  chan domain.Command
	log       *slog.Logger
}

func NewModerationWorker(moderator moderation.Moderator,
	inbound, outbound chan domain.Command, log *slog.Logger) *ModerationWorker {
	return &ModerationWorker{
		moderator: moderator,
		inbound:   inbound,
		outbound:  outbound,
		log:       log,
	}
}

func (w *ModerationWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping worker")
			return ctx.Err()
		case cmd, ok := <-w.inbound:
			if !ok {
				w.log.Debug("Channel is closed")
				return nil
			}
			if publish, isPublish := cmd.(domain.PublishCommand); isPublish {
				cmd = w.censor(publish)
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case w.outbound <- cmd:
			}
		}
	}
}

func (w *ModerationWorker) censor(cmd domain.PublishCommand) domain.PublishCommand {
	sanitized, foundWords := w.moderator.Censor(cmd.Body)
	if len(foundWords) > 0 {
		info := whatlanggo.Detect(cmd.Body)
		w.log.Warn("Censored message",
			"author", cmd.Name,
			"words", len(foundWords),
			"lang", info.Lang.Iso6391())
	}
	cmd.Body = sanitized
	return cmd
}
