package handler

import (
	"net/http"

	"github.com/pkordes/european-living/internal/domain"
	"github.com/pkordes/european-living/internal/handler/api"
)

// ListPhraseCategories handles GET /phrases/categories.
func (s *Server) ListPhraseCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.phrases.Categories(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "phrase category")
		return
	}
	writeJSON(w, http.StatusOK, api.List[api.PhraseCategory]{Data: mapSlice(cats, func(c domain.PhraseCategory) api.PhraseCategory {
		return api.PhraseCategory{ID: c.ID, Name: c.Name, Icon: c.Icon, SortOrder: c.SortOrder}
	})})
}

// ListPhrasesByCategory handles GET /phrases/categories/{id}.
func (s *Server) ListPhrasesByCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathString(r, "id")
	if err != nil {
		badRequest(w, err)
		return
	}
	list, err := s.phrases.ByCategory(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "phrase category")
		return
	}
	writeJSON(w, http.StatusOK, api.List[api.GroupedPhrase]{Data: mapSlice(list, groupedPhraseToResponse)})
}

// ListLanguages handles GET /phrases/languages.
func (s *Server) ListLanguages(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, api.List[api.Language]{Data: mapSlice(domain.Languages, func(l domain.Language) api.Language {
		return api.Language{Code: l.Code, Name: l.Name, Flag: l.Flag}
	})})
}

// SearchPhrases handles GET /phrases/search?q=&lang=.
func (s *Server) SearchPhrases(w http.ResponseWriter, r *http.Request) {
	var q, lang *string
	if err := bindQuery(r, param{"q", &q}, param{"lang", &lang}); err != nil {
		badRequest(w, err)
		return
	}
	list, err := s.phrases.Search(r.Context(), val(q), val(lang))
	if err != nil {
		s.writeServiceError(w, r, err, "phrase")
		return
	}
	writeJSON(w, http.StatusOK, api.List[api.GroupedPhrase]{Data: mapSlice(list, groupedPhraseToResponse)})
}

// LookupPhrase handles GET /phrases/lookup?english=.
func (s *Server) LookupPhrase(w http.ResponseWriter, r *http.Request) {
	var english *string
	if err := queryParam(r, "english", &english); err != nil {
		badRequest(w, err)
		return
	}
	if val(english) == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("bad_request", "english is required"))
		return
	}
	p, err := s.phrases.ByEnglish(r.Context(), *english)
	if err != nil {
		s.writeServiceError(w, r, err, "phrase")
		return
	}
	writeJSON(w, http.StatusOK, groupedPhraseToResponse(p))
}

func groupedPhraseToResponse(p domain.GroupedPhrase) api.GroupedPhrase {
	tr := make(map[string]api.Translation, len(p.Translations))
	for code, t := range p.Translations {
		tr[code] = api.Translation{Text: t.Text, Pronunciation: t.Pronunciation}
	}
	return api.GroupedPhrase{
		English:      p.English,
		Icon:         p.Icon,
		SortOrder:    p.SortOrder,
		Translations: tr,
	}
}
