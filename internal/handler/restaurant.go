package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/restaurant-directory/internal/apperror"
	"github.com/sakif/restaurant-directory/internal/auth"
	"github.com/sakif/restaurant-directory/internal/model"
	"github.com/sakif/restaurant-directory/internal/pagination"
	"github.com/sakif/restaurant-directory/internal/service"
)

// Messages rendered by the restaurant pages.
const (
	msgNotFound = "Not Id Exist"
	msgAdded    = "Restaurant added successfully!"
)

// RestaurantHandler serves the restaurant pages and the paginated query
// endpoint.
type RestaurantHandler struct {
	restaurants *service.RestaurantService
	users       *service.AuthService
	view        *View
	logger      *slog.Logger
}

// NewRestaurantHandler creates a RestaurantHandler.
func NewRestaurantHandler(
	restaurants *service.RestaurantService,
	users *service.AuthService,
	view *View,
	logger *slog.Logger,
) *RestaurantHandler {
	return &RestaurantHandler{
		restaurants: restaurants,
		users:       users,
		view:        view,
		logger:      logger,
	}
}

// HandleIndex lists the first restaurants.
//
// HTTP: GET /  (behind the token gate)
//
// The gate has already verified the token and put its subject in the
// context; the user record is looked up fresh for the greeting.
func (h *RestaurantHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	items, err := h.restaurants.Home(r.Context())
	if err != nil {
		serverError(w, r, h.logger, err)
		return
	}

	data := viewData{Title: "ALL", Restaurants: items}
	if userID, ok := auth.UserIDFromContext(r.Context()); ok {
		user, err := h.users.GetUserByID(r.Context(), userID)
		if err != nil {
			h.logger.Warn("index: token subject has no user",
				slog.String("userID", userID),
				slog.String("error", err.Error()),
			)
		} else {
			data.User = user
		}
	}

	h.view.render(w, r, http.StatusOK, pageIndex, data)
}

// HandleAbout renders the static about page.
//
// HTTP: GET /about
func (h *RestaurantHandler) HandleAbout(w http.ResponseWriter, r *http.Request) {
	h.view.render(w, r, http.StatusOK, pageAbout, viewData{Title: "About Us"})
}

// HandleSearchPage renders the search form with no results.
//
// HTTP: GET /api/restaurants
func (h *RestaurantHandler) HandleSearchPage(w http.ResponseWriter, r *http.Request) {
	h.view.render(w, r, http.StatusOK, pageSearch, viewData{Title: "Search"})
}

// HandleFind serves one page of restaurants.
//
// HTTP: GET /api/restaurants/find?page=2&perPage=9&borough=Queens
//
// RESPONSES:
//   - bad page/perPage → 400 JSON listing every rejected field; storage is
//     never queried
//   - storage failure  → 500 JSON with a generic message
//   - otherwise        → the rendered results with prev/next links
func (h *RestaurantHandler) HandleFind(w http.ResponseWriter, r *http.Request) {
	q, err := pagination.ParseQuery(r.URL.Query())
	if err != nil {
		writeJSONError(w, h.logger, err)
		return
	}

	page, err := h.restaurants.Find(r.Context(), q)
	if err != nil {
		writeJSONError(w, h.logger, err)
		return
	}

	h.view.render(w, r, http.StatusOK, pageSearch, viewData{Title: "Search", Results: page})
}

// HandleShowLookup renders the lookup-by-id form.
//
// HTTP: GET /getRestaurants
func (h *RestaurantHandler) HandleShowLookup(w http.ResponseWriter, r *http.Request) {
	h.view.render(w, r, http.StatusOK, pageLookup, viewData{Title: "Restaurants"})
}

// HandleLookup finds one restaurant by the id posted in the form.
//
// HTTP: POST /getRestaurants
func (h *RestaurantHandler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.view.render(w, r, http.StatusBadRequest, pageLookup, viewData{
			Title:   "Restaurants",
			Message: service.MsgInvalidRestaurantID,
		})
		return
	}

	found, err := h.restaurants.Get(r.Context(), r.PostForm.Get("id"))
	if err != nil {
		h.renderLookupError(w, r, pageLookup, "Restaurants", err)
		return
	}

	h.view.render(w, r, http.StatusOK, pageLookup, viewData{Title: "Restaurants", Restaurant: found})
}

// HandleDetail renders one restaurant.
//
// HTTP: GET /findResturant/{id}
func (h *RestaurantHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	found, err := h.restaurants.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.renderLookupError(w, r, pageRestaurant, "Restaurant", err)
		return
	}

	h.view.render(w, r, http.StatusOK, pageRestaurant, viewData{Title: found.Name, Restaurant: found})
}

// HandleShowAdd renders the empty add form.
//
// HTTP: GET /addRestaurants  (behind the session gate)
func (h *RestaurantHandler) HandleShowAdd(w http.ResponseWriter, r *http.Request) {
	h.view.render(w, r, http.StatusOK, pageAdd, viewData{
		Title:      "Add Restaurant",
		Restaurant: &model.Restaurant{},
	})
}

// HandleAdd creates a restaurant from the posted form.
//
// HTTP: POST /addRestaurants  (behind the session gate)
func (h *RestaurantHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.view.render(w, r, http.StatusBadRequest, pageAdd, viewData{
			Title:      "Add Restaurant",
			Errors:     []string{"Invalid form submission"},
			Restaurant: &model.Restaurant{},
		})
		return
	}

	restaurant := decodeRestaurant(r.PostForm)
	if err := h.restaurants.Create(r.Context(), restaurant); err != nil {
		serverError(w, r, h.logger, err)
		return
	}

	h.view.render(w, r, http.StatusOK, pageAdd, viewData{
		Title:      "Add Restaurant",
		Message:    msgAdded,
		Restaurant: &model.Restaurant{},
	})
}

// HandleShowUpdate renders the edit form filled with the stored record.
//
// HTTP: GET /updateResturant/{id}
func (h *RestaurantHandler) HandleShowUpdate(w http.ResponseWriter, r *http.Request) {
	found, err := h.restaurants.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.renderLookupError(w, r, pageUpdate, "Update", err)
		return
	}

	h.view.render(w, r, http.StatusOK, pageUpdate, viewData{Title: "Update", Restaurant: found})
}

// HandleUpdate replaces a restaurant with the posted form and goes home.
//
// HTTP: POST /updateResturant       (id in the form)
//
//	POST /updateResturant/{id}  (id in the URL)
func (h *RestaurantHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.view.render(w, r, http.StatusBadRequest, pageUpdate, viewData{
			Title:  "Update",
			Errors: []string{"Invalid form submission"},
		})
		return
	}

	restaurant := decodeRestaurant(r.PostForm)
	restaurant.ID = chi.URLParam(r, "id")
	if restaurant.ID == "" {
		restaurant.ID = r.PostForm.Get("id")
	}

	if err := h.restaurants.Update(r.Context(), restaurant); err != nil {
		h.renderLookupError(w, r, pageUpdate, "Update", err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleDelete removes a restaurant and goes home.
//
// HTTP: GET /deleteResturant/{id}
//
// A well-formed id with no record still redirects home as if the delete
// succeeded; the miss is logged so it isn't silently lost.
func (h *RestaurantHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.restaurants.Delete(r.Context(), id)
	switch {
	case err == nil:
	case errors.Is(err, apperror.ErrNotFound):
		h.logger.Info("delete: no restaurant with id", slog.String("id", id))
	case errors.Is(err, apperror.ErrValidation):
		h.view.render(w, r, http.StatusOK, pageRestaurant, viewData{
			Title:   "Restaurant",
			Message: service.MsgInvalidRestaurantID,
		})
		return
	default:
		serverError(w, r, h.logger, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleNotFound answers every unknown route.
func (h *RestaurantHandler) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "404", http.StatusNotFound)
}

// renderLookupError maps the errors of an id lookup onto page: a malformed
// id or a missing record becomes a message on the page, anything else a 500.
func (h *RestaurantHandler) renderLookupError(w http.ResponseWriter, r *http.Request, page, title string, err error) {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		h.view.render(w, r, http.StatusOK, page, viewData{Title: title, Message: service.MsgInvalidRestaurantID})
	case errors.Is(err, apperror.ErrNotFound):
		h.view.render(w, r, http.StatusOK, page, viewData{Title: title, Message: msgNotFound})
	default:
		serverError(w, r, h.logger, err)
	}
}
