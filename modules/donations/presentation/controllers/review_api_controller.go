package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/mlongerich/DonationTracker-sub002/modules/donations/domain/aggregates/donation"
	"github.com/mlongerich/DonationTracker-sub002/modules/donations/presentation/mappers"
	"github.com/mlongerich/DonationTracker-sub002/modules/donations/presentation/viewmodels"
	"github.com/mlongerich/DonationTracker-sub002/modules/donations/services"
	"github.com/mlongerich/DonationTracker-sub002/pkg/httpapi"
	"github.com/mlongerich/DonationTracker-sub002/pkg/serrors"
)

const (
	reviewDefaultLimit = 50
	reviewMaxLimit     = 200
)

// ReviewAPIController exposes the operator review queue: listing
// non-succeeded donations and overriding their status.
type ReviewAPIController struct {
	reviews   *services.ReviewService
	apiPrefix string
}

func NewReviewAPIController(reviews *services.ReviewService) *ReviewAPIController {
	return &ReviewAPIController{
		reviews:   reviews,
		apiPrefix: "/donations/api",
	}
}

func (c *ReviewAPIController) Key() string {
	return c.apiPrefix
}

func (c *ReviewAPIController) Register(r *mux.Router) {
	api := r.PathPrefix(c.apiPrefix).Subrouter()
	api.HandleFunc("/review", c.instrumentAPI("review_list", c.List)).Methods(http.MethodGet)
	api.HandleFunc("/review/{id}/status", c.instrumentAPI("review_update_status", c.UpdateStatus)).Methods(http.MethodPost)
}

type reviewListResponse struct {
	Items []*viewmodels.Donation `json:"items"`
	Total int64                  `json:"total"`
}

func (c *ReviewAPIController) List(w http.ResponseWriter, r *http.Request) {
	params, err := parseQueueParams(r)
	if err != nil {
		_ = httpapi.WriteBaseError(w, http.StatusBadRequest,
			serrors.NewError("DONATIONS_INVALID_QUERY", err.Error(), "donations.review.invalid_query"))
		return
	}

	entries, total, err := c.reviews.Queue(r.Context(), params)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	items := make([]*viewmodels.Donation, 0, len(entries))
	for _, e := range entries {
		items = append(items, mappers.ReviewEntryToViewModel(e))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, &reviewListResponse{Items: items, Total: total})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (c *ReviewAPIController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteBaseError(w, http.StatusBadRequest,
			serrors.NewError("DONATIONS_INVALID_ID", "donation id must be a UUID", "donations.review.invalid_id"))
		return
	}

	var body updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		_ = httpapi.WriteBaseError(w, http.StatusBadRequest,
			serrors.NewError("DONATIONS_INVALID_BODY", "request body must be JSON", "donations.review.invalid_body"))
		return
	}
	if body.Status == "" {
		_ = httpapi.WriteBaseError(w, http.StatusBadRequest,
			serrors.NewFieldRequiredError("status", "donations.review.status_required"))
		return
	}

	updated, err := c.reviews.UpdateStatus(r.Context(), id, donation.Status(body.Status))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.DonationToViewModel(updated, "", ""))
}

func parseQueueParams(r *http.Request) (*services.QueueParams, error) {
	q := r.URL.Query()
	params := &services.QueueParams{
		Q:     q.Get("q"),
		Limit: reviewDefaultLimit,
	}

	for _, raw := range q["status"] {
		st := donation.Status(raw)
		if !st.IsValid() {
			return nil, errors.Errorf("unknown status %q", raw)
		}
		params.Statuses = append(params.Statuses, st)
	}

	if v := q.Get("from"); v != "" {
		t, err := parseDateParam(v)
		if err != nil {
			return nil, errors.New("from must be an RFC 3339 timestamp or YYYY-MM-DD date")
		}
		params.From = &t
	}
	if v := q.Get("to"); v != "" {
		t, err := parseDateParam(v)
		if err != nil {
			return nil, errors.New("to must be an RFC 3339 timestamp or YYYY-MM-DD date")
		}
		params.To = &t
	}

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, errors.New("limit must be a positive integer")
		}
		if n > reviewMaxLimit {
			n = reviewMaxLimit
		}
		params.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, errors.New("offset must be a non-negative integer")
		}
		params.Offset = n
	}
	return params, nil
}

func parseDateParam(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", v, time.UTC)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, donation.ErrNotFound):
		_ = httpapi.WriteBaseError(w, http.StatusNotFound,
			serrors.NewError("DONATIONS_NOT_FOUND", "donation not found", "donations.not_found"))
	case errors.Is(err, donation.ErrInvalidStatus):
		_ = httpapi.WriteBaseError(w, http.StatusUnprocessableEntity,
			serrors.NewError("DONATIONS_INVALID_STATUS", err.Error(), "donations.invalid_status"))
	default:
		_ = httpapi.WriteBaseError(w, http.StatusInternalServerError,
			serrors.NewError("DONATIONS_INTERNAL", "internal error", "donations.internal"))
	}
}
