// Package bot provides the Telegram chat front end for claim verification.
package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/factcheckit/factcheckit/internal/models"
	"github.com/factcheckit/factcheckit/internal/verify"
)

const welcomeMessage = `*Welcome to FactCheckit Bot!*

I help you verify claims using AI and multiple trusted sources.

*How to use:*
Just send me any text, article, or claim you want to verify!

I'll analyze it and give you:
- Verdict (TRUE/FALSE/MISLEADING/UNVERIFIED)
- Confidence score
- Sources from trusted fact-checkers
- Detailed explanation

Try it now! Send me a claim to verify.`

const helpMessage = `*FactCheckit Bot - Help*

*Commands:*
/start - Start the bot and see welcome message
/help - Show this help message

*How verification works:*
1. Send me any text/claim
2. AI extracts the verifiable claim
3. The claim is checked against fact-check registries and web search
4. AI analyzes all sources
5. You get a verdict with confidence score

Just send your text - no special format needed!`

// Bot drives the verification pipeline from Telegram messages.
type Bot struct {
	api    *tgbotapi.BotAPI
	engine *verify.Engine
}

// New creates a Telegram bot bound to the verification engine.
func New(token string, engine *verify.Engine) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	return &Bot{api: api, engine: engine}, nil
}

// Run starts long polling until the context is cancelled.
func (b *Bot) Run(ctx context.Context) {
	log.Info().Str("username", b.api.Self.UserName).Msg("Telegram bot started")

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30
	updates := b.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			log.Info().Msg("Telegram bot stopped")
			return
		case update := <-updates:
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.reply(msg.Chat.ID, welcomeMessage)
		return
	case "help":
		b.reply(msg.Chat.ID, helpMessage)
		return
	case "":
		// Free text: verify it
	default:
		b.reply(msg.Chat.ID, "Unknown command. Send /help for usage.")
		return
	}

	text := strings.TrimSpace(msg.Text)
	if len(text) < 10 {
		b.reply(msg.Chat.ID, "Please send a longer claim (at least 10 characters) so I can verify it.")
		return
	}

	b.reply(msg.Chat.ID, "Analyzing your claim... This may take a moment.")

	result := b.engine.Verify(ctx, text)
	b.reply(msg.Chat.ID, formatResult(result))
}

func (b *Bot) reply(chatID int64, text string) {
	reply := tgbotapi.NewMessage(chatID, text)
	reply.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(reply); err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send Telegram message")
	}
}

func formatResult(result *models.VerifyResponse) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s *Verdict: %s*\n", verdictEmoji(result.Verdict), result.Verdict)
	fmt.Fprintf(&sb, "Confidence: %.0f%%\n\n", result.ConfidenceScore*100)
	fmt.Fprintf(&sb, "*Claim:* %s\n\n", result.ExtractedClaim)
	fmt.Fprintf(&sb, "%s\n\n%s\n", result.Summary, result.DetailedText)

	if len(result.EvidencePoints) > 0 {
		sb.WriteString("\n*Evidence:*\n")
		for _, ep := range result.EvidencePoints {
			if ep.Source != "" {
				fmt.Fprintf(&sb, "- %s (%s)\n", ep.Point, ep.Source)
			} else {
				fmt.Fprintf(&sb, "- %s\n", ep.Point)
			}
		}
	}

	if len(result.Sources) > 0 {
		sb.WriteString("\n*Sources:*\n")
		for _, src := range result.Sources {
			fmt.Fprintf(&sb, "- [%s](%s)\n", src.Title, src.URL)
		}
	}

	return sb.String()
}

func verdictEmoji(verdict models.VerdictType) string {
	switch verdict {
	case models.VerdictTrue:
		return "✅"
	case models.VerdictFalse:
		return "❌"
	case models.VerdictMisleading:
		return "⚠️"
	default:
		return "❔"
	}
}
