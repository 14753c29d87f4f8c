package bot

import (
	"Explainer/core"
	"Explainer/lib/sl"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

const (
	maxMessageLength = 4096
	typingInterval   = 5 * time.Second
	emptyReply       = "The model returned an empty explanation, please try again."
)

const helpText = "Send me a piece of code and I will explain it.\n" +
	"/help - show this help\n" +
	"/beginner - simple explanations for new programmers\n" +
	"/expert - technical analysis for experienced developers\n" +
	"/model - show models, /model <name> to switch\n" +
	"/settings - show current level and model\n" +
	"/explain <code> - explain code, handy in group chats\n" +
	"/clear - reset level and model to defaults\n"

type TgBot struct {
	api         *tgbotapi.BotAPI
	explainer   core.ExplainService
	settings    *settingsStore
	botUsername string
	log         *slog.Logger
	ctx         context.Context
	cancel      context.CancelFunc
}

func NewTgBot(conf *core.Config, log *slog.Logger) (*TgBot, error) {
	api, err := tgbotapi.NewBotAPI(conf.Telegram.ApiKey)
	if err != nil {
		return nil, fmt.Errorf("connecting to telegram: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &TgBot{
		api:         api,
		botUsername: conf.Telegram.Username,
		log:         log.With(sl.Module("tgbot")),
		ctx:         ctx,
		cancel:      cancel,
	}, nil
}

// SetExplainer set explanation service, resets per-chat settings
func (t *TgBot) SetExplainer(explainer core.ExplainService) {
	t.explainer = explainer
	t.settings = newSettingsStore(defaultSettings(explainer))
}

func defaultSettings(explainer core.ExplainService) chatSettings {
	cs := chatSettings{}
	if levels := explainer.Levels(); len(levels) > 0 {
		cs.Level = levels[0]
	}
	if models := explainer.Models(); len(models) > 0 {
		cs.Model = models[0]
	}
	return cs
}

// Start blocks reading updates until Stop is called
func (t *TgBot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates, err := t.api.GetUpdatesChan(u)
	if err != nil {
		return fmt.Errorf("getting updates: %w", err)
	}

	for {
		select {
		case <-t.ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			t.handle(update)
		}
	}
}

func (t *TgBot) Stop() {
	t.cancel()
	t.api.StopReceivingUpdates()
}

func (t *TgBot) handle(update tgbotapi.Update) {
	incoming := update.Message
	if incoming == nil || incoming.Chat == nil {
		return
	}
	chat := incoming.Chat

	if !incoming.IsCommand() && !chat.IsPrivate() && !t.isMentioned(incoming.Text) && !t.isReplyToBot(incoming) {
		return
	}
	text := incoming.Text
	if !chat.IsPrivate() {
		text = t.stripMention(text)
	}

	user := ""
	if incoming.From != nil {
		user = incoming.From.UserName
	}
	t.log.With(
		slog.Int64("chat", chat.ID),
		slog.String("user", user),
		slog.Int("length", len(text)),
	).Debug("incoming message")

	go t.SendResponse(chat.ID, text)
}

// SendResponse keeps the typing indicator on while the reply is being prepared
func (t *TgBot) SendResponse(chatId int64, request string) {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(typingInterval)
		defer ticker.Stop()
		for {
			t.sendChatAction(chatId, tgbotapi.ChatTyping)
			select {
			case <-ticker.C:
			case <-done:
				return
			}
		}
	}()

	reply := t.reply(t.ctx, chatId, request)
	close(done)

	for _, part := range replyParts(reply) {
		t.plainResponse(chatId, part)
	}
}

// replyParts prepares the reply for sending, telegram rejects empty messages
func replyParts(reply string) []string {
	if strings.TrimSpace(reply) == "" {
		reply = emptyReply
	}
	return splitMessage(reply, maxMessageLength)
}

// reply produces the answer text for one incoming message
func (t *TgBot) reply(ctx context.Context, chatId int64, text string) string {
	if !strings.HasPrefix(strings.TrimSpace(text), "/") {
		return t.explain(ctx, chatId, text)
	}

	command, args := parseCommand(strings.TrimLeft(text, " \t\r\n"))
	switch command {
	case "help", "start":
		return helpText
	case "beginner", "expert":
		t.settings.SetLevel(chatId, command)
		return "Audience level set to " + command
	case "model":
		return t.selectModel(chatId, args)
	case "settings":
		cs := t.settings.Get(chatId)
		return fmt.Sprintf("Level: %s\nModel: %s", cs.Level, cs.Model)
	case "explain":
		return t.explain(ctx, chatId, args)
	case "clear":
		t.settings.Reset(chatId)
		return "Settings reset to defaults"
	default:
		return "Unknown command, see /help"
	}
}

func (t *TgBot) explain(ctx context.Context, chatId int64, code string) string {
	cs := t.settings.Get(chatId)
	return t.explainer.Explain(ctx, code, cs.Level, cs.Model).String()
}

func (t *TgBot) selectModel(chatId int64, model string) string {
	model = strings.TrimSpace(model)
	models := t.explainer.Models()
	if model == "" {
		current := t.settings.Get(chatId).Model
		lines := make([]string, 0, len(models)+1)
		lines = append(lines, "Available models:")
		for _, m := range models {
			mark := "  "
			if m == current {
				mark = "* "
			}
			lines = append(lines, mark+m)
		}
		return strings.Join(lines, "\n")
	}
	for _, m := range models {
		if m == model {
			t.settings.SetModel(chatId, model)
			return "Model set to " + model
		}
	}
	return core.Failure(core.UnsupportedModel, "Unsupported model "+model).String()
}

// parseCommand splits "/cmd@bot rest" into cmd and rest; rest keeps
// its indentation and line breaks so code survives
func parseCommand(text string) (string, string) {
	text = strings.TrimPrefix(text, "/")
	end := strings.IndexAny(text, " \t\r\n")
	command, args := text, ""
	if end >= 0 {
		command = text[:end]
		args = strings.TrimLeft(text[end:], " \t")
		args = strings.TrimPrefix(strings.TrimPrefix(args, "\r"), "\n")
	}
	if at := strings.Index(command, "@"); at >= 0 {
		command = command[:at]
	}
	return strings.ToLower(command), args
}

// splitMessage cuts text into parts of at most limit bytes, preferring line breaks
func splitMessage(text string, limit int) []string {
	var parts []string
	for len(text) > limit {
		cut := strings.LastIndex(text[:limit], "\n")
		if cut <= 0 {
			cut = limit
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
		}
		parts = append(parts, text[:cut])
		text = strings.TrimPrefix(text[cut:], "\n")
	}
	return append(parts, text)
}

func (t *TgBot) sendChatAction(chatId int64, action string) {
	if _, err := t.api.Send(tgbotapi.NewChatAction(chatId, action)); err != nil {
		t.log.Warn("sending chat action", sl.Err(err))
	}
}

func (t *TgBot) plainResponse(chatId int64, text string) {
	msg := tgbotapi.NewMessage(chatId, text)
	if _, err := t.api.Send(msg); err != nil {
		t.log.With(slog.Int64("chat", chatId)).Error("sending message", sl.Err(err))
	}
}

// detect if we are mentioned in the message
func (t *TgBot) isMentioned(text string) bool {
	if t.botUsername != "" {
		return strings.Contains(text, "@"+t.botUsername)
	}
	return false
}

func (t *TgBot) stripMention(text string) string {
	if t.botUsername == "" || strings.HasPrefix(strings.TrimSpace(text), "/") {
		return text
	}
	return strings.ReplaceAll(text, "@"+t.botUsername, "")
}

// detect if message is a reply to a message from the bot
func (t *TgBot) isReplyToBot(message *tgbotapi.Message) bool {
	if t.botUsername == "" {
		return false
	}
	if message.ReplyToMessage != nil && message.ReplyToMessage.From != nil {
		return message.ReplyToMessage.From.UserName == t.botUsername
	}
	return false
}
