// Package delivery sends rendered charts straight to a Telegram chat as an
// alternative to publishing them behind a URL.
package delivery

import (
	"fmt"

	"expense-reports/internal/infra/log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// SendChart uploads the image at imagePath as a photo with the given
// caption. Telegram caps photo captions at 1024 runes; longer captions are
// truncated rather than rejected.
func SendChart(botToken string, chatID int64, imagePath, caption string) error {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return fmt.Errorf("failed to create telegram bot: %w", err)
	}

	if runes := []rune(caption); len(runes) > 1024 {
		caption = string(runes[:1024])
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(imagePath))
	photo.Caption = caption

	if _, err := bot.Send(photo); err != nil {
		return fmt.Errorf("failed to send chart to telegram: %w", err)
	}

	log.LogInfo("Chart delivered to telegram",
		zap.Int64("chat_id", chatID),
		zap.String("image", imagePath))
	return nil
}
