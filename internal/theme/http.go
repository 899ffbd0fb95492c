// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package theme

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/anitoki/internal/platform/constants"
	"github.com/taibuivan/anitoki/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/anitoki/internal/platform/request"
	"github.com/taibuivan/anitoki/internal/platform/respond"
	"github.com/taibuivan/anitoki/internal/platform/validate"
	"github.com/taibuivan/anitoki/pkg/clock"
)

// Handler implements the theme preference endpoints.
type Handler struct {
	service   *Service
	clock     clock.Clock
	heartbeat time.Duration
}

// NewHandler constructs a theme [Handler]. The clock drives event-stream
// heartbeats.
func NewHandler(service *Service, clk clock.Clock) *Handler {
	if clk == nil {
		clk = clock.System{}
	}
	return &Handler{service: service, clock: clk, heartbeat: constants.EventHeartbeatInterval}
}

// Routes returns the request/response routes. They expect the Visitor
// middleware upstream.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.get)
	router.Put("/", handler.set)
	router.Delete("/", handler.clear)
	router.Post("/toggle", handler.toggle)
	router.Put("/system", handler.reportSystem)

	return router
}

// Events serves the long-lived Server-Sent Events stream. It is mounted
// outside the request timeout group.
func (handler *Handler) Events() http.HandlerFunc {
	return handler.events
}

type setRequest struct {
	Theme string `json:"theme"`
}

type systemRequest struct {
	Dark *bool `json:"dark"`
}

/*
GET /api/v1/theme.

Response:
  - 200: State
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	visitorID, err := requestutil.RequiredVisitorID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	state, err := handler.service.Get(request.Context(), visitorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, state)
}

/*
PUT /api/v1/theme.

Request Body:
  - theme: "light" or "dark"

Response:
  - 200: State
  - 400: Invalid theme
*/
func (handler *Handler) set(writer http.ResponseWriter, request *http.Request) {
	visitorID, err := requestutil.RequiredVisitorID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input setRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("theme", input.Theme).OneOf("theme", input.Theme, string(Light), string(Dark))
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	state, err := handler.service.Set(request.Context(), visitorID, Theme(input.Theme))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, state)
}

/*
POST /api/v1/theme/toggle.

Response:
  - 200: State, always explicit
*/
func (handler *Handler) toggle(writer http.ResponseWriter, request *http.Request) {
	visitorID, err := requestutil.RequiredVisitorID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	state, err := handler.service.Toggle(request.Context(), visitorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, state)
}

/*
DELETE /api/v1/theme.

Response:
  - 200: State, following the system preference
*/
func (handler *Handler) clear(writer http.ResponseWriter, request *http.Request) {
	visitorID, err := requestutil.RequiredVisitorID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	state, err := handler.service.Clear(request.Context(), visitorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, state)
}

/*
PUT /api/v1/theme/system.

Request Body:
  - dark: bool, the client's prefers-color-scheme

Response:
  - 200: State
*/
func (handler *Handler) reportSystem(writer http.ResponseWriter, request *http.Request) {
	visitorID, err := requestutil.RequiredVisitorID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input systemRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.Dark == nil {
		respond.Error(writer, request, validate.RequiredError("dark", "This field is required"))
		return
	}

	state, err := handler.service.ReportSystem(request.Context(), visitorID, *input.Dark)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, state)
}

/*
GET /api/v1/theme/events.

Streams "theme" events carrying State: the current state first, then every
change. A comment line is sent every heartbeat interval.
*/
func (handler *Handler) events(writer http.ResponseWriter, request *http.Request) {
	visitorID, err := requestutil.RequiredVisitorID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	ctx := request.Context()
	logger := ctxutil.GetLogger(ctx)

	states, cancel, err := handler.service.Subscribe(ctx, visitorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer cancel()

	current, err := handler.service.Get(ctx, visitorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	controller := http.NewResponseController(writer)
	_ = controller.SetWriteDeadline(time.Time{})

	header := writer.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	writer.WriteHeader(http.StatusOK)

	if err := writeEvent(writer, controller, current); err != nil {
		return
	}

	ticks := handler.clock.Tick(ctx, handler.heartbeat)
	for {
		select {
		case <-ctx.Done():
			return
		case state, ok := <-states:
			if !ok {
				return
			}
			if err := writeEvent(writer, controller, state); err != nil {
				logger.DebugContext(ctx, "theme_stream_write_failed", slog.Any("error", err))
				return
			}
		case _, ok := <-ticks:
			if !ok {
				return
			}
			if _, err := fmt.Fprint(writer, ": heartbeat\n\n"); err != nil {
				return
			}
			if err := controller.Flush(); err != nil {
				return
			}
		}
	}
}

func writeEvent(writer http.ResponseWriter, controller *http.ResponseController, state State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "event: theme\ndata: %s\n\n", payload); err != nil {
		return err
	}
	return controller.Flush()
}
