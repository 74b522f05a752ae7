package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"food-delivery/internal/cart"
	"food-delivery/internal/checkout"
	"food-delivery/internal/domain"
	"food-delivery/internal/order"
)

type handler struct {
	deps      Deps
	spending  *order.SpendingAggregator
	reorder   *order.ReorderService
	submitter *checkout.Submitter
}

func newHandler(deps Deps) *handler {
	return &handler{
		deps:      deps,
		spending:  order.NewSpendingAggregator(deps.Orders, deps.Logger),
		reorder:   order.NewReorderService(deps.Orders),
		submitter: checkout.NewSubmitter(deps.Orders, deps.Events, deps.Logger),
	}
}

func (h *handler) router() *mux.Router {
	r := mux.NewRouter()
	r.UseEncodedPath()

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"alive": true}`)
	}).Methods("GET")

	r.HandleFunc("/restaurants", h.listRestaurants).Methods("GET")
	r.HandleFunc("/restaurantDetail/{restaurantName}", h.restaurantDetail).Methods("GET")
	r.HandleFunc("/orders", h.placeOrder).Methods("POST")
	r.HandleFunc("/orders/{orderId}/reorder", h.reorderOrder).Methods("POST")
	r.HandleFunc("/recentOrders", h.recentOrders).Methods("GET")
	r.HandleFunc("/orderDetails", h.latestOrder).Methods("GET")
	r.HandleFunc("/orderDetails/{orderId}", h.orderByID).Methods("GET")
	r.HandleFunc("/orderTracking/{restaurantAddress}/{deliveryAddress}", h.orderTracking).Methods("GET")
	r.HandleFunc("/calendar", h.dailySpending).Methods("GET")
	r.HandleFunc("/calendar/{date}", h.dailySpending).Methods("GET")
	return r
}

// userID returns the caller's identity, threaded explicitly from the
// identity provider sitting in front of this service. May be empty.
func userID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}

// pathVar returns a route parameter with URL escaping undone. With
// UseEncodedPath the raw segment is preserved, so escaped slashes in
// addresses survive routing.
func pathVar(r *http.Request, name string) string {
	raw := mux.Vars(r)[name]
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *handler) listRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.deps.Restaurants.List(r.Context())
	if err != nil {
		http.Error(w, "failed to list restaurants", http.StatusInternalServerError)
		return
	}

	var favorites []string
	if uid := userID(r); uid != "" {
		favorites, err = h.deps.Orders.FindFavorites(r.Context(), uid)
		if err != nil {
			// Favorites are a ranking hint; the list still renders.
			h.deps.Logger.Error("favorites_failed", err, map[string]any{"user_id": uid})
			favorites = nil
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"favorites":   favorites,
		"restaurants": restaurants,
	})
}

func (h *handler) restaurantDetail(w http.ResponseWriter, r *http.Request) {
	name := pathVar(r, "restaurantName")
	restaurant, err := h.deps.Restaurants.FindByName(r.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "restaurant not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load restaurant", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, restaurant)
}

type placeOrderRequest struct {
	RestaurantName      string `json:"restaurant_name"`
	DeliveryAddress     string `json:"delivery_address"`
	SpecialInstructions string `json:"special_instructions"`
	Items               []struct {
		Name     string `json:"name"`
		Quantity int    `json:"quantity"`
	} `json:"items"`
}

type placeOrderResponse struct {
	OrderID      string  `json:"order_id"`
	Total        float64 `json:"total"`
	TotalDisplay string  `json:"total_display"`
}

func (h *handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.RestaurantName == "" {
		http.Error(w, "restaurant_name is required", http.StatusBadRequest)
		return
	}

	restaurant, err := h.deps.Restaurants.FindByName(r.Context(), req.RestaurantName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "restaurant not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load restaurant", http.StatusInternalServerError)
		return
	}

	c, err := cart.New(restaurant.Menu)
	if err != nil {
		// Duplicate names in stored menu data; refusing beats silent collisions.
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	for _, item := range req.Items {
		if err := c.SetQuantity(item.Name, item.Quantity); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	uid := userID(r)
	o, total, err := order.Build(c, &restaurant, req.DeliveryAddress, req.SpecialInstructions, uid, time.Now().UnixMilli())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	saved, err := h.submitter.Submit(r.Context(), o)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrSubmitInFlight):
		http.Error(w, "an order submission is already pending", http.StatusConflict)
		return
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// Client went away; nothing to answer.
		return
	default:
		http.Error(w, "failed to place order", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, placeOrderResponse{
		OrderID:      saved.ID,
		Total:        total.Float64(),
		TotalDisplay: total.String(),
	})
}

func (h *handler) recentOrders(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	orders, err := h.deps.Orders.FindRecent(r.Context(), userID(r), limit)
	if err != nil {
		http.Error(w, "failed to load orders", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *handler) latestOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.deps.Orders.FindLatest(r.Context(), userID(r))
	h.writeOrder(w, o, err)
}

func (h *handler) orderByID(w http.ResponseWriter, r *http.Request) {
	o, err := h.deps.Orders.FindByID(r.Context(), pathVar(r, "orderId"))
	h.writeOrder(w, o, err)
}

func (h *handler) writeOrder(w http.ResponseWriter, o domain.Order, err error) {
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load order", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *handler) reorderOrder(w http.ResponseWriter, r *http.Request) {
	previous, err := h.deps.Orders.FindByID(r.Context(), pathVar(r, "orderId"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load order", http.StatusInternalServerError)
		return
	}

	next, err := h.reorder.Reorder(r.Context(), previous, userID(r), time.Now())
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrMissingAddress):
		http.Error(w, "order has no restaurant address", http.StatusUnprocessableEntity)
		return
	default:
		http.Error(w, "failed to reorder", http.StatusInternalServerError)
		return
	}

	h.submitter.Announce(r.Context(), next)
	writeJSON(w, http.StatusCreated, next)
}

type trackingResponse struct {
	Resolved   bool               `json:"resolved"`
	Restaurant *domain.Coordinate `json:"restaurant,omitempty"`
	Delivery   *domain.Coordinate `json:"delivery,omitempty"`
	DistanceKm *float64           `json:"distance_km,omitempty"`
	EtaMinutes *int               `json:"eta_minutes,omitempty"`
}

func (h *handler) orderTracking(w http.ResponseWriter, r *http.Request) {
	restaurantAddr := pathVar(r, "restaurantAddress")
	deliveryAddr := pathVar(r, "deliveryAddress")

	est := h.deps.Estimator.EstimateRoute(r.Context(), restaurantAddr, deliveryAddr)
	resp := trackingResponse{Resolved: est.Resolved}
	if est.Resolved {
		// Display rounding happens here only; the estimate keeps full precision.
		dist := math.Round(est.DistanceKm*100) / 100
		resp.Restaurant = &est.Origin
		resp.Delivery = &est.Destination
		resp.DistanceKm = &dist
		resp.EtaMinutes = &est.EtaMinutes
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) dailySpending(w http.ResponseWriter, r *http.Request) {
	loc := time.UTC
	if tz := r.URL.Query().Get("tz"); tz != "" {
		var err error
		loc, err = time.LoadLocation(tz)
		if err != nil {
			http.Error(w, "unknown time zone", http.StatusBadRequest)
			return
		}
	}
	date := time.Now().In(loc)
	if raw := pathVar(r, "date"); raw != "" {
		var err error
		date, err = time.ParseInLocation("2006-01-02", raw, loc)
		if err != nil {
			http.Error(w, "invalid date, want YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	total, err := h.spending.TotalSpend(r.Context(), userID(r), date, loc)
	if err != nil {
		http.Error(w, "failed to compute spending", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date":          date.Format("2006-01-02"),
		"total":         total.Float64(),
		"total_display": total.String(),
	})
}
