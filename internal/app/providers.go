package app

import (
	"github.com/eslsoft/keymantra/internal/infrastructure/config"
	"github.com/eslsoft/keymantra/internal/usecase"
)

func provideDictationSettings(cfg *config.Config) usecase.DictationSettings {
	return usecase.DictationSettings{
		AdvanceDelay: cfg.Dictation.AdvanceDelay,
		SessionTTL:   cfg.Dictation.SessionTTL,
	}
}
