package domain

// PhraseCategory groups phrases (e.g. "Dining", "Emergencies").
type PhraseCategory struct {
	ID        string
	Name      string
	Icon      string
	SortOrder int
}

// PhraseTranslation is one stored row: an English phrase in one language.
type PhraseTranslation struct {
	ID            string
	CategoryID    string
	English       string
	LanguageCode  string
	Translation   string
	Pronunciation string
	Icon          string
	SortOrder     int
}

// Translation is the per-language half of a grouped phrase.
type Translation struct {
	Text          string
	Pronunciation string
}

// GroupedPhrase is an English phrase with all of its translations keyed by
// language code.
type GroupedPhrase struct {
	English      string
	Icon         string
	SortOrder    int
	Translations map[string]Translation
}

// Language is one of the languages phrases are translated into.
type Language struct {
	Code string
	Name string
	Flag string
}

// Languages lists the supported translation languages in display order.
var Languages = []Language{
	{Code: "de", Name: "German", Flag: "🇩🇪"},
	{Code: "fr", Name: "French", Flag: "🇫🇷"},
	{Code: "it", Name: "Italian", Flag: "🇮🇹"},
	{Code: "es", Name: "Spanish", Flag: "🇪🇸"},
	{Code: "nl", Name: "Dutch", Flag: "🇳🇱"},
	{Code: "cs", Name: "Czech", Flag: "🇨🇿"},
}
