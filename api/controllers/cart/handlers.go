package cart

import (
	"net/http"

	cartdto "github.com/angelmondragon/brewcart/api/controllers/cart/dto"
	"github.com/angelmondragon/brewcart/api/middleware"
	"github.com/angelmondragon/brewcart/api/responses"
	"github.com/angelmondragon/brewcart/api/validators"
	"github.com/angelmondragon/brewcart/internal/session"
	"github.com/angelmondragon/brewcart/pkg/enums"
	pkgerrors "github.com/angelmondragon/brewcart/pkg/errors"
	"github.com/angelmondragon/brewcart/pkg/logger"
)

// CartFetch returns the session cart and its active order.
func CartFetch(svc session.Service, currency enums.Currency, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session service unavailable"))
			return
		}

		view, err := svc.Cart(r.Context(), middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteAccepted(w, http.StatusOK, newCart(view, currency), view.Persisted)
	}
}

// CartAddItem adds an explicit selection, merging with an identical line.
func CartAddItem(svc session.Service, currency enums.Currency, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session service unavailable"))
			return
		}

		var payload cartdto.AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.AddToCart(r.Context(), middleware.SessionIDFromContext(r.Context()), toSelection(payload))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteAccepted(w, http.StatusCreated, newCart(view, currency), view.Persisted)
	}
}

// CartAddSaved adds product {index} with the session's stored preference.
func CartAddSaved(svc session.Service, currency enums.Currency, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session service unavailable"))
			return
		}

		idx, err := validators.ParsePathInt(r, "index")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.AddSavedSelection(r.Context(), middleware.SessionIDFromContext(r.Context()), idx)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteAccepted(w, http.StatusCreated, newCart(view, currency), view.Persisted)
	}
}

// CartAdjustQty moves the quantity of the line named by {key}.
func CartAdjustQty(svc session.Service, currency enums.Currency, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session service unavailable"))
			return
		}

		key, err := validators.PathString(r, "key")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload cartdto.QtyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.AdjustQty(r.Context(), middleware.SessionIDFromContext(r.Context()), key, payload.Delta)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteAccepted(w, http.StatusOK, newCart(view, currency), view.Persisted)
	}
}

// CartRemoveItem drops the line named by {key}.
func CartRemoveItem(svc session.Service, currency enums.Currency, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session service unavailable"))
			return
		}

		key, err := validators.PathString(r, "key")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Remove(r.Context(), middleware.SessionIDFromContext(r.Context()), key)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteAccepted(w, http.StatusOK, newCart(view, currency), view.Persisted)
	}
}

// Checkout syncs the active order from the cart.
func Checkout(svc session.Service, currency enums.Currency, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session service unavailable"))
			return
		}

		view, err := svc.Checkout(r.Context(), middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteAccepted(w, http.StatusOK, newCart(view, currency), view.Persisted)
	}
}

// OrderFetch returns the active order and its stage board.
func OrderFetch(svc session.Service, currency enums.Currency, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session service unavailable"))
			return
		}

		view, err := svc.Stages(r.Context(), middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newOrderStatus(view, currency))
	}
}

// OrderClear empties the cart and removes the active order.
func OrderClear(svc session.Service, currency enums.Currency, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session service unavailable"))
			return
		}

		view, err := svc.ClearAll(r.Context(), middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteAccepted(w, http.StatusOK, newCart(view, currency), view.Persisted)
	}
}
