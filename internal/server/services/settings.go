package services

import (
	"github.com/dmitrijs2005/citizenportal/internal/server/config"
)

// PublicSettings is what an anonymous client may learn about the portal.
type PublicSettings struct {
	AppName    string
	AccessMode string
	Pages      []string
	MainPage   string
}

type SettingsService struct {
	config *config.Config
}

func NewSettingsService(cfg *config.Config) *SettingsService {
	return &SettingsService{config: cfg}
}

func (s *SettingsService) Public() PublicSettings {
	pages := make([]string, len(s.config.Pages))
	copy(pages, s.config.Pages)

	mainPage := s.config.MainPage
	if mainPage == "" && len(pages) > 0 {
		mainPage = pages[0]
	}

	return PublicSettings{
		AppName:    s.config.AppName,
		AccessMode: s.config.AccessMode,
		Pages:      pages,
		MainPage:   mainPage,
	}
}

// Private reports whether every call needs a signed-in user.
func (s *SettingsService) Private() bool {
	return s.config.AccessMode == config.AccessPrivate
}
