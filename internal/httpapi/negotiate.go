package httpapi

import "golang.org/x/text/language"

// newMatcher builds a matcher over the supported locales. The first locale
// is the default and wins when nothing matches. tags holds the locale string
// for each matcher index.
func newMatcher(locales []string) (language.Matcher, []string) {
	parsed := make([]language.Tag, 0, len(locales))
	tags := make([]string, 0, len(locales))
	for _, l := range locales {
		tag, err := language.Parse(l)
		if err != nil {
			continue
		}
		parsed = append(parsed, tag)
		tags = append(tags, l)
	}
	if len(parsed) == 0 {
		return nil, nil
	}
	return language.NewMatcher(parsed), tags
}

func (h *handler) match(header string) string {
	if h.matcher == nil {
		return h.svc.DefaultLocale()
	}

	accepted, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(accepted) == 0 {
		return h.svc.DefaultLocale()
	}

	_, idx, conf := h.matcher.Match(accepted...)
	if conf == language.No {
		return h.svc.DefaultLocale()
	}
	return h.tags[idx]
}
