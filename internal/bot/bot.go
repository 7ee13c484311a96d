// Package bot runs the Telegram side of the service: it receives updates,
// feeds each text message through the parser and the ledger writer, and sends
// exactly one reply per message.
package bot

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tx0095/moneyflow-bot/internal/domain"
	"github.com/tx0095/moneyflow-bot/internal/ledger"
	"github.com/tx0095/moneyflow-bot/internal/parser"
	"github.com/tx0095/moneyflow-bot/internal/reply"
)

// Sender is the outbound half of the Telegram API. *tgbotapi.BotAPI
// implements it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// LedgerWriter appends one record to the ledger.
type LedgerWriter interface {
	Write(ctx context.Context, rec domain.TransactionRecord) (ledger.RowHandle, error)
}

// RowMirror copies one record into a secondary sink, best-effort.
type RowMirror interface {
	Record(ctx context.Context, rec domain.TransactionRecord, recordedAt time.Time) error
}

// Handler processes one Telegram update end to end.
type Handler struct {
	sender         Sender
	writer         LedgerWriter
	mirror         RowMirror // nil when no mirror is configured
	currencyPrefix string
	log            zerolog.Logger
}

// NewHandler creates a Handler. mirror may be nil.
func NewHandler(sender Sender, writer LedgerWriter, mirror RowMirror, currencyPrefix string, log zerolog.Logger) *Handler {
	return &Handler{
		sender:         sender,
		writer:         writer,
		mirror:         mirror,
		currencyPrefix: currencyPrefix,
		log:            log,
	}
}

// HandleUpdate processes a single update. Updates without text are ignored:
// no record, no reply. Every text message gets exactly one reply, and raw
// errors never reach the user.
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Text == "" {
		return
	}

	log := h.log.With().
		Str("event_id", uuid.NewString()).
		Int64("chat_id", msg.Chat.ID).
		Logger()

	rec, err := parser.Parse(msg.Text)
	if err != nil {
		// Not an operator fault: the sender just typed something the
		// parser cannot price.
		log.Debug().Str("text", msg.Text).Msg("Unparseable message")
		h.send(log, msg.Chat.ID, reply.Usage)
		return
	}

	rec.ChatID = msg.Chat.ID
	rec.Username = senderName(msg)

	handle, err := h.writer.Write(ctx, rec)
	if err != nil {
		log.Error().Err(err).Msg("Ledger write failed")
		h.send(log, msg.Chat.ID, reply.WriteFailed)
		return
	}

	if h.mirror != nil {
		if err := h.mirror.Record(ctx, rec, time.Now()); err != nil {
			log.Warn().Err(err).Msg("Notion mirror failed, ledger row is still recorded")
		}
	}

	log.Info().
		Str("type", string(rec.Type)).
		Float64("amount", rec.Amount).
		Str("updated_range", handle.UpdatedRange).
		Msg("Transaction recorded")

	h.send(log, msg.Chat.ID, reply.Confirmation(rec, h.currencyPrefix))
}

func (h *Handler) send(log zerolog.Logger, chatID int64, text string) {
	if _, err := h.sender.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Error().Err(err).Msg("Sending reply failed")
	}
}

// senderName picks a display name for the ledger's username column. The
// writer substitutes a placeholder when it stays empty.
func senderName(msg *tgbotapi.Message) string {
	if msg.From == nil {
		return ""
	}
	if msg.From.UserName != "" {
		return msg.From.UserName
	}
	return msg.From.FirstName
}

// Bot couples the Telegram long-polling loop with a Handler.
type Bot struct {
	api     *tgbotapi.BotAPI
	handler *Handler
	log     zerolog.Logger
}

// New creates a Bot around a connected API client.
func New(api *tgbotapi.BotAPI, handler *Handler, log zerolog.Logger) *Bot {
	return &Bot{api: api, handler: handler, log: log}
}

// Run polls for updates until ctx is cancelled. Each message is handled in
// its own goroutine; appends are independent, so row order is whatever the
// store's own append semantics produce.
func (b *Bot) Run(ctx context.Context) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30

	updates := b.api.GetUpdatesChan(cfg)
	b.log.Info().Str("bot", b.api.Self.UserName).Msg("Listening for messages")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.log.Info().Msg("Update loop stopped")
			return
		case update := <-updates:
			go b.handler.HandleUpdate(ctx, update)
		}
	}
}
