// Glossa - голосовой переводчик для рабочего стола.
//
// Записывает речь, распознаёт её, переводит и озвучивает перевод.
// Работает в системном трее, Ctrl+Shift+Space начинает запись.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"glossa/internal/app"
	"glossa/internal/config"
	"glossa/internal/dialog"
	"glossa/internal/hotkey"
	"glossa/internal/i18n"
)

// Version устанавливается при сборке через -ldflags.
var Version = "dev"

var (
	configPath = flag.String("config", "", "путь к config.json (по умолчанию рядом с бинарником)")
	download   = flag.Bool("download", false, "скачать настроенную модель распознавания и выйти")
)

func main() {
	flag.Parse()

	log.SetFlags(log.Ltime | log.Lshortfile)
	log.Printf("Glossa %s запускается...", Version)

	cfg := loadConfig()

	if *download {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := app.Download(ctx, cfg); err != nil {
			log.Printf("Ошибка загрузки модели: %v", err)
			os.Exit(1)
		}
		log.Println("Модель скачана")
		return
	}

	// Запускаем в главном потоке (требование для macOS и некоторых GUI)
	hotkey.RunOnMainThread(func() { run(cfg) })
}

func loadConfig() *config.Config {
	if *configPath != "" {
		return config.Load(*configPath)
	}
	return config.New()
}

func run(cfg *config.Config) {
	application, err := app.New(cfg)

	var missing *app.ModelMissingError
	switch {
	case errors.As(err, &missing):
		fmt.Fprintln(os.Stderr, missing.Error())
		fmt.Fprintln(os.Stderr, missing.Hint())
		dialog.ShowError(i18n.T("dialog_model_missing"), missing.Error()+"\n\n"+missing.Hint())
		os.Exit(1)
	case err != nil:
		log.Printf("Ошибка инициализации: %v", err)
		os.Exit(1)
	}

	log.Printf("Приложение запущено. Нажмите %s для записи.", cfg.Hotkey())
	application.Run()
}
