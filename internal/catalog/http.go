// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/anitoki/internal/platform/apperr"
	"github.com/taibuivan/anitoki/internal/platform/constants"
	requestutil "github.com/taibuivan/anitoki/internal/platform/request"
	"github.com/taibuivan/anitoki/internal/platform/respond"
	"github.com/taibuivan/anitoki/internal/platform/validate"
	"github.com/taibuivan/anitoki/internal/schedule"
	"github.com/taibuivan/anitoki/pkg/pagination"
	"github.com/taibuivan/anitoki/pkg/query"
)

var errRefresherStopped = apperr.ServiceUnavailable("Schedule refresher is not running")

// maxGenresLen bounds the raw ?genres= list.
const maxGenresLen = 256

// Defaults apply when a request does not choose its own rendering options.
type Defaults struct {
	Location *time.Location
	Locale   schedule.Locale
	Titles   schedule.TitlePolicy
}

// Control exposes the background refresher to HTTP.
type Control interface {
	Refresh() bool
	Status() Status
}

// Handler implements the schedule HTTP endpoints.
type Handler struct {
	service  *Service
	control  Control
	defaults Defaults
}

// NewHandler constructs a new catalog [Handler].
func NewHandler(service *Service, control Control, defaults Defaults) *Handler {
	return &Handler{service: service, control: control, defaults: defaults}
}

// Routes returns a [chi.Router] with all catalog routes registered.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Route("/season", func(r chi.Router) {
		r.Get("/", handler.dashboard)
		r.Get("/today", handler.today)
		r.Get("/weekly", handler.weekly)
		r.Get("/gallery", handler.gallery)
	})
	router.Get("/airing", handler.airing)

	router.Route("/catalog", func(r chi.Router) {
		r.Get("/status", handler.status)
		r.Post("/refresh", handler.refresh)
	})

	return router
}

// # Views

/*
GET /api/v1/season.

Query:
  - tz: IANA timezone of the observer (default UTC)
  - locale: BCP 47 display locale (default Accept-Language)
  - title: english, romaji or native
  - genres: comma-separated genre filter
  - at: RFC 3339 reference instant (default now)

Response:
  - 200: Dashboard
  - 400: Invalid query parameter
  - 502: Upstream unavailable
*/
func (handler *Handler) dashboard(writer http.ResponseWriter, request *http.Request) {
	view, err := handler.view(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	dashboard, err := handler.service.Dashboard(request.Context(), view)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, dashboard)
}

/*
GET /api/v1/season/today.

Response:
  - 200: TodayView
*/
func (handler *Handler) today(writer http.ResponseWriter, request *http.Request) {
	view, err := handler.view(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	today, err := handler.service.Today(request.Context(), view)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, today)
}

/*
GET /api/v1/season/weekly.

Response:
  - 200: []Bucket in Monday..Sunday, Unknown order
*/
func (handler *Handler) weekly(writer http.ResponseWriter, request *http.Request) {
	view, err := handler.view(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	buckets, err := handler.service.Weekly(request.Context(), view)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, buckets)
}

/*
GET /api/v1/season/gallery?page=1&limit=20.

Response:
  - 200: []Item with pagination meta
*/
func (handler *Handler) gallery(writer http.ResponseWriter, request *http.Request) {
	view, err := handler.view(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.Gallery(request.Context(), view, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, page.Items, page.Meta)
}

/*
GET /api/v1/airing.

Response:
  - 200: AiringBoard
*/
func (handler *Handler) airing(writer http.ResponseWriter, request *http.Request) {
	view, err := handler.view(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	board, err := handler.service.AiringBoard(request.Context(), view)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, board)
}

// # Refresher

func (handler *Handler) status(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, handler.control.Status())
}

/*
POST /api/v1/catalog/refresh.

Response:
  - 202: Status, the refresh runs in the background
  - 503: Refresher not running
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	if !handler.control.Refresh() {
		respond.Error(writer, request, errRefresherStopped)
		return
	}
	respond.Accepted(writer, handler.control.Status())
}

// # Query Parsing

// view reads the rendering options of request. All failures are reported
// together as one validation error.
func (handler *Handler) view(request *http.Request) (View, error) {
	tz := requestutil.Query(request, "tz")
	localeCode := requestutil.Query(request, "locale")
	title := requestutil.Query(request, "title")
	at := requestutil.Query(request, "at")
	genres := requestutil.Query(request, "genres")

	locale := handler.defaults.Locale
	var localeErr error
	if localeCode != "" {
		locale, localeErr = schedule.ResolveLocale(localeCode)
	} else if accept := request.Header.Get(constants.HeaderAcceptLanguage); accept != "" {
		locale = schedule.MatchLocale(accept)
	}

	policy := handler.defaults.Titles
	var policyErr error
	if title != "" {
		policy, policyErr = schedule.ParseTitlePolicy(title)
	}

	validator := &validate.Validator{}
	validator.
		Timezone("tz", tz).
		Timestamp("at", at).
		MaxLen("genres", genres, maxGenresLen).
		Custom("locale", localeErr != nil, "Must be a BCP 47 language tag (e.g. en-US)").
		Custom("title", policyErr != nil, "Must be one of: english, romaji, native")
	if err := validator.Err(); err != nil {
		return View{}, err
	}

	view := View{
		Location: handler.defaults.Location,
		Locale:   locale,
		Titles:   policy,
		Genres:   query.StringSlice(genres),
	}
	if tz != "" {
		view.Location, _ = time.LoadLocation(tz)
	}
	if at != "" {
		view.At, _ = time.Parse(time.RFC3339, at)
	}
	return view, nil
}
