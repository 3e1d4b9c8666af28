package commands

// Shared plumbing of the three report commands: publish flags, the
// upload/delivery step and warning logging.

import (
	"context"
	"fmt"
	"time"

	"expense-reports/internal/clients_api/cloudinary"
	"expense-reports/internal/features/delivery"
	"expense-reports/internal/infra/config"
	"expense-reports/internal/infra/log"
	"expense-reports/internal/series"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const publishTimeout = 2 * time.Minute

type publishFlags struct {
	upload   bool
	telegram bool
	folder   string
}

func addPublishFlags(fs *pflag.FlagSet, flags *publishFlags) {
	fs.BoolVar(&flags.upload, "upload", false, "Upload the rendered chart to Cloudinary and print its URL")
	fs.BoolVar(&flags.telegram, "telegram", false, "Send the rendered chart to the configured Telegram chat")
	fs.StringVar(&flags.folder, "folder", "", "Cloudinary folder for the upload (default from config)")
}

// publish runs the optional upload and delivery steps and returns the single
// line the command prints on success: the public URL when uploading,
// otherwise a saved-file confirmation.
func publish(cfg *config.Config, imagePath, caption string, flags publishFlags) (string, error) {
	result := fmt.Sprintf("Imagem salva com sucesso: %s", imagePath)

	if flags.upload {
		if err := cfg.ValidateUpload(); err != nil {
			return "", err
		}

		client := cloudinary.NewClient(
			cfg.Cloudinary.CloudName,
			cfg.Cloudinary.APIKey,
			cfg.Cloudinary.APISecret,
			cfg.Cloudinary.RequestTimeout,
			cfg.Cloudinary.MaxRetries,
		)
		client.SetMaxResponseSize(cfg.App.MaxResponseSize)

		folder := flags.folder
		if folder == "" {
			folder = cfg.Cloudinary.UploadFolder
		}

		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		url, err := client.Upload(ctx, imagePath, folder)
		if err != nil {
			return "", err
		}
		result = url
	}

	if flags.telegram {
		if err := cfg.ValidateTelegram(); err != nil {
			return "", err
		}
		if err := delivery.SendChart(cfg.Telegram.BotToken, cfg.Telegram.ChatID, imagePath, caption); err != nil {
			return "", err
		}
	}

	return result, nil
}

// logWarnings surfaces clamped negative totals; they never fail the run.
func logWarnings(s *series.Series) {
	for _, w := range s.Warnings {
		log.LogWarn("Negative total clamped to zero",
			zap.String("label", w.Label),
			zap.Float64("original", w.Original))
	}
}
