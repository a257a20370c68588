package http

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	domain "bluerhyno/internal/domain/quoting"
	"bluerhyno/internal/ports"
	"bluerhyno/internal/usecase/quoting"
)

// maxUploadBytes caps a quote submission with photos.
const maxUploadBytes = 32 << 20

type QuoteHandler struct {
	svc    *quoting.Service
	photos ports.PhotoStore
}

func NewQuoteHandler(svc *quoting.Service, photos ports.PhotoStore) *QuoteHandler {
	return &QuoteHandler{svc: svc, photos: photos}
}

// looseFloat accepts both a bare JSON number and the quoted string the public
// form submits.
type looseFloat float64

func (f *looseFloat) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("parse number %q: %w", raw, err)
	}
	*f = looseFloat(v)
	return nil
}

type createQuoteRequest struct {
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Phone        string     `json:"phone"`
	Email        string     `json:"email"`
	Address1     string     `json:"address1"`
	Address2     string     `json:"address2"`
	City         string     `json:"city"`
	State        string     `json:"state"`
	ZipCode      string     `json:"zipcode"`
	HOAApproval  string     `json:"hoaApproval"`
	CityApproval string     `json:"cityApproval"`
	Material     string     `json:"material"`
	FenceLength  looseFloat `json:"fenceLength"`
}

// Create accepts the public quote form: multipart with a "data" JSON field
// plus photo files, or a bare JSON body without photos.
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createQuoteRequest
	var photoRefs []string

	if mediaTypeIsMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeError(w, r, wrapValidation(err))
			return
		}
		if err := json.Unmarshal([]byte(r.FormValue("data")), &req); err != nil {
			writeError(w, r, wrapValidation(err))
			return
		}
		if r.MultipartForm != nil {
			for _, header := range r.MultipartForm.File["photos"] {
				file, err := header.Open()
				if err != nil {
					writeError(w, r, err)
					return
				}
				ref, err := h.photos.Save(r.Context(), header.Filename, file)
				_ = file.Close()
				if err != nil {
					writeError(w, r, err)
					return
				}
				photoRefs = append(photoRefs, ref)
			}
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, wrapValidation(err))
			return
		}
	}

	result, err := h.svc.CreateQuote(r.Context(), quoting.CreateQuoteInput{
		Customer: quoting.CustomerInput{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
			Address1:  req.Address1,
			Address2:  req.Address2,
			City:      req.City,
			State:     req.State,
			ZipCode:   req.ZipCode,
		},
		Quote: quoting.QuoteInput{
			MaterialType: req.Material,
			FenceLength:  float64(req.FenceLength),
			HOAApproval:  req.HOAApproval,
			CityApproval: req.CityApproval,
		},
		PhotoRefs: photoRefs,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"message":         "Quote request submitted successfully",
		"quoteId":         result.QuoteID,
		"referenceNumber": result.ReferenceNumber,
	})
}

func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.svc.ListQuotes(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quotes)
}

func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	quote, err := h.svc.GetQuote(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

type updatePricingRequest struct {
	TotalAmount float64 `json:"totalAmount"`
}

func (h *QuoteHandler) UpdatePricing(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req updatePricingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, wrapValidation(err))
		return
	}

	if err := h.svc.UpdateQuotePricing(r.Context(), id, req.TotalAmount); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Quote updated"})
}

type transitionRequest struct {
	Reason           string `json:"reason"`
	ProjectStartDate string `json:"projectStartDate"`
	ProjectEndDate   string `json:"projectEndDate"`
}

func (h *QuoteHandler) transition(w http.ResponseWriter, r *http.Request, event domain.Event) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req transitionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, wrapValidation(err))
			return
		}
	}

	result, err := h.svc.TransitionQuote(r.Context(), quoting.TransitionQuoteInput{
		QuoteID:          id,
		Event:            string(event),
		Reason:           req.Reason,
		ProjectStartDate: req.ProjectStartDate,
		ProjectEndDate:   req.ProjectEndDate,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	payload := map[string]any{"success": true, "newStatus": result.NewStatus}
	if result.ProjectID != 0 {
		payload["projectId"] = result.ProjectID
	}
	writeJSON(w, http.StatusOK, payload)
}

func (h *QuoteHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, domain.EventApprove)
}

func (h *QuoteHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, domain.EventReject)
}

func (h *QuoteHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, domain.EventMarkComplete)
}

func (h *QuoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	summary, err := h.svc.DeleteQuote(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"message":     "Quote, related projects, invoices, and payments deleted",
		"rowsDeleted": summary.RowsDeleted,
	})
}

func pathID(r *http.Request, name string) (uint64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, wrapValidationMsg("invalid id %q", raw)
	}
	return id, nil
}

func mediaTypeIsMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}
