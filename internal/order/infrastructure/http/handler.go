package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	authhttp "github.com/shopworks/commerce-backend/internal/auth/infrastructure/http"
	"github.com/shopworks/commerce-backend/internal/order/application"
	"github.com/shopworks/commerce-backend/internal/order/domain"
	"github.com/shopworks/commerce-backend/internal/store"
	"github.com/shopworks/commerce-backend/pkg/money"
)

type Handler struct {
	log    *slog.Logger
	svc    *application.Service
	tracer trace.Tracer
}

func NewHandler(log *slog.Logger, svc *application.Service) *Handler {
	return &Handler{
		log:    log,
		svc:    svc,
		tracer: otel.Tracer("order-http"),
	}
}

// Routes are mounted behind the auth middleware; the order owner always comes
// from the verified token, never from the request body.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Post("/", h.placeOrder)
	r.Get("/", h.listOrders)
	return r
}

type placeOrderItem struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type placeOrderRequest struct {
	Items []placeOrderItem `json:"items"`
}

type orderItemResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

type orderResponse struct {
	ID        string              `json:"id"`
	UserID    string              `json:"user_id"`
	Total     string              `json:"total"`
	CreatedAt time.Time           `json:"created_at"`
	Items     []orderItemResponse `json:"items"`
}

func toOrderResponse(o domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: money.Format(item.UnitPriceCents),
		})
	}
	return orderResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		Total:     money.Format(o.TotalCents),
		CreatedAt: o.CreatedAt,
		Items:     items,
	}
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "PlaceOrder")
	defer span.End()

	payload := authhttp.AuthPayload(ctx)
	if payload == nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req placeOrderRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		cents, err := money.ToMinorUnits(it.UnitPrice)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		items = append(items, domain.OrderItem{
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			UnitPriceCents: cents,
		})
	}

	o, err := h.svc.PlaceOrder(ctx, payload.UserID, items)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(o))
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ListOrders")
	defer span.End()

	payload := authhttp.AuthPayload(ctx)
	if payload == nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	orders, err := h.svc.ListOrders(ctx, payload.UserID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidOrder):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "operation timed out")
	case errors.Is(err, domain.ErrPlacementRolledBack), errors.Is(err, store.ErrUnavailable):
		h.log.Error("order operation failed", "err", err)
		writeError(w, http.StatusInternalServerError, "order could not be processed")
	default:
		h.log.Error("order operation failed", "err", err)
		writeError(w, http.StatusInternalServerError, "order could not be processed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
