package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/european-living/internal/domain"
	"github.com/pkordes/european-living/internal/handler/api"
)

// ListDayTripsParams are the query parameters of GET /day-trips.
type ListDayTripsParams struct {
	Base       *string
	Tag        *string
	Search     *string
	Difficulty *string
	Featured   *bool
}

// ListDayTrips handles GET /day-trips. Every given filter applies; without
// ?base= the caller's selected base is used and ?base=all lists every base.
func (s *Server) ListDayTrips(w http.ResponseWriter, r *http.Request) {
	var p ListDayTripsParams
	if err := bindQuery(r,
		param{"base", &p.Base},
		param{"tag", &p.Tag},
		param{"search", &p.Search},
		param{"difficulty", &p.Difficulty},
		param{"featured", &p.Featured},
	); err != nil {
		badRequest(w, err)
		return
	}

	list, err := s.dayTrips.List(r.Context(), domain.DayTripFilter{
		BaseID:       val(p.Base),
		Tag:          val(p.Tag),
		Search:       val(p.Search),
		Difficulty:   domain.Difficulty(val(p.Difficulty)),
		FeaturedOnly: val(p.Featured),
	})
	if err != nil {
		s.writeServiceError(w, r, err, "day trip")
		return
	}
	writeJSON(w, http.StatusOK, api.List[api.DayTrip]{Data: mapSlice(list, dayTripToResponse)})
}

// GetDayTrip handles GET /day-trips/{id}. The reference may be a UUID or a
// slug.
func (s *Server) GetDayTrip(w http.ResponseWriter, r *http.Request) {
	ref, err := pathString(r, "id")
	if err != nil {
		badRequest(w, err)
		return
	}

	var t domain.DayTrip
	if id, perr := uuid.Parse(ref); perr == nil {
		t, err = s.dayTrips.GetByID(r.Context(), id)
	} else {
		t, err = s.dayTrips.GetBySlug(r.Context(), ref)
	}
	if err != nil {
		s.writeServiceError(w, r, err, "day trip")
		return
	}
	writeJSON(w, http.StatusOK, dayTripToResponse(t))
}

// ListDayTripBases handles GET /day-trips/bases: the bases that have trips.
func (s *Server) ListDayTripBases(w http.ResponseWriter, r *http.Request) {
	bases, err := s.dayTrips.ListBases(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "base")
		return
	}
	writeJSON(w, http.StatusOK, api.List[api.Base]{Data: mapSlice(bases, baseToResponse)})
}

// ListSavedDayTrips handles GET /day-trips/saved for the X-User-ID caller.
func (s *Server) ListSavedDayTrips(w http.ResponseWriter, r *http.Request) {
	user, err := userID(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized", err.Error()))
		return
	}
	list, err := s.dayTrips.ListSaved(r.Context(), user)
	if err != nil {
		s.writeServiceError(w, r, err, "day trip")
		return
	}
	writeJSON(w, http.StatusOK, api.List[api.DayTrip]{Data: mapSlice(list, dayTripToResponse)})
}

// GetSavedState handles GET /day-trips/{id}/saved.
func (s *Server) GetSavedState(w http.ResponseWriter, r *http.Request) {
	user, trip, ok := s.savedTripRefs(w, r)
	if !ok {
		return
	}
	saved, err := s.dayTrips.IsSaved(r.Context(), user, trip)
	if err != nil {
		s.writeServiceError(w, r, err, "day trip")
		return
	}
	writeJSON(w, http.StatusOK, api.SavedState{Saved: saved})
}

// ToggleSaved handles POST /day-trips/{id}/saved/toggle and returns the new
// saved state.
func (s *Server) ToggleSaved(w http.ResponseWriter, r *http.Request) {
	user, trip, ok := s.savedTripRefs(w, r)
	if !ok {
		return
	}
	saved, err := s.dayTrips.ToggleSaved(r.Context(), user, trip)
	if err != nil {
		s.writeServiceError(w, r, err, "day trip")
		return
	}
	writeJSON(w, http.StatusOK, api.SavedState{Saved: saved})
}

// savedTripRefs reads the caller and trip ids, writing the error response
// itself when either is missing or malformed.
func (s *Server) savedTripRefs(w http.ResponseWriter, r *http.Request) (user, trip uuid.UUID, ok bool) {
	user, err := userID(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized", err.Error()))
		return uuid.Nil, uuid.Nil, false
	}
	trip, err = pathUUID(r, "id")
	if err != nil {
		badRequest(w, err)
		return uuid.Nil, uuid.Nil, false
	}
	return user, trip, true
}

func dayTripToResponse(t domain.DayTrip) api.DayTrip {
	return api.DayTrip{
		ID:                  t.ID,
		BaseID:              t.BaseID,
		BaseName:            t.BaseName,
		Name:                t.Name,
		Slug:                t.Slug,
		Distance:            t.Distance,
		DriveTime:           t.DriveTime,
		TrainTime:           t.TrainTime,
		Description:         t.Description,
		ShortDescription:    t.ShortDescription,
		FullDescription:     t.FullDescription,
		BestFor:             nonNil(t.BestFor),
		Difficulty:          string(t.Difficulty),
		Cost:                string(t.Cost),
		ImageURL:            t.ImageURL,
		HeroImageURL:        t.HeroImageURL,
		Rating:              t.Rating,
		IsMustSee:           t.IsMustSee,
		RecommendedDuration: t.RecommendedDuration,
		Featured:            t.Featured,
		Latitude:            t.Latitude,
		Longitude:           t.Longitude,
		Tags:                mapSlice(t.Tags, func(tg domain.TagName) api.Tag { return api.Tag{Name: tg.Name} }),
		Photos: mapSlice(t.Photos, func(p domain.Photo) api.Photo {
			return api.Photo{ImageURL: p.ImageURL, Caption: p.Caption, DisplayOrder: p.DisplayOrder}
		}),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func baseToResponse(b domain.Base) api.Base {
	return api.Base{ID: b.ID, Name: b.Name}
}
