package transync

import "time"

// CacheInfo is a read-only diagnostic snapshot.
type CacheInfo struct {
	Config        Config                `json:"config"`
	ActiveLocale  string                `json:"active_locale"`
	DefaultLocale string                `json:"default_locale"`
	Locales       map[string]LocaleInfo `json:"locales"`
}

// LocaleInfo describes one cached locale.
type LocaleInfo struct {
	Keys        int        `json:"keys"`
	LastUpdated time.Time  `json:"last_updated"`
	Provenance  Provenance `json:"provenance"`
	Overrides   int        `json:"overrides"`
	Fresh       bool       `json:"fresh"`
	AutoUpdate  bool       `json:"auto_update"`
}

// CacheInfo reports what is cached per locale and the current config.
// It never loads or modifies anything.
func (s *Service) CacheInfo() CacheInfo {
	cfg := s.config()
	now := s.now()

	records := s.store.snapshot()
	info := CacheInfo{
		Config:        cfg,
		ActiveLocale:  s.ActiveLocale(),
		DefaultLocale: s.defaultLocale,
		Locales:       make(map[string]LocaleInfo, len(records)),
	}
	for locale, rec := range records {
		info.Locales[locale] = LocaleInfo{
			Keys:        len(rec.translations),
			LastUpdated: rec.lastUpdated,
			Provenance:  rec.provenance,
			Overrides:   len(rec.remote),
			Fresh:       rec.fresh(now, cfg.CacheExpiration),
			AutoUpdate:  s.scheduler.isArmed(locale),
		}
	}
	return info
}
