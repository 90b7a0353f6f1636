package products

import (
	"context"
	"net/http"

	productdto "github.com/angelmondragon/brewcart/api/controllers/products/dto"
	"github.com/angelmondragon/brewcart/api/middleware"
	"github.com/angelmondragon/brewcart/api/responses"
	"github.com/angelmondragon/brewcart/api/validators"
	"github.com/angelmondragon/brewcart/internal/session"
	"github.com/angelmondragon/brewcart/pkg/enums"
	pkgerrors "github.com/angelmondragon/brewcart/pkg/errors"
	"github.com/angelmondragon/brewcart/pkg/logger"
)

type preferenceCommand func(ctx context.Context, sid string, idx int, r *http.Request) (session.ProductView, error)

// ProductFetch returns the product page for {index}. Viewing never stores a
// preference.
func ProductFetch(svc session.Service, currency enums.Currency, logg *logger.Logger) http.HandlerFunc {
	return handle(svc, currency, logg, func(ctx context.Context, sid string, idx int, _ *http.Request) (session.ProductView, error) {
		return svc.Product(ctx, sid, idx)
	})
}

// ProductSelectSize stores the preferred size.
func ProductSelectSize(svc session.Service, currency enums.Currency, logg *logger.Logger) http.HandlerFunc {
	return handle(svc, currency, logg, func(ctx context.Context, sid string, idx int, r *http.Request) (session.ProductView, error) {
		var payload productdto.OptionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return session.ProductView{}, err
		}
		return svc.SelectSize(ctx, sid, idx, payload.ID)
	})
}

// ProductSelectMilk stores the preferred milk.
func ProductSelectMilk(svc session.Service, currency enums.Currency, logg *logger.Logger) http.HandlerFunc {
	return handle(svc, currency, logg, func(ctx context.Context, sid string, idx int, r *http.Request) (session.ProductView, error) {
		var payload productdto.OptionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return session.ProductView{}, err
		}
		return svc.SelectMilk(ctx, sid, idx, payload.ID)
	})
}

// ProductToggleExtra flips {extraId} in the preferred extras.
func ProductToggleExtra(svc session.Service, currency enums.Currency, logg *logger.Logger) http.HandlerFunc {
	return handle(svc, currency, logg, func(ctx context.Context, sid string, idx int, r *http.Request) (session.ProductView, error) {
		extraID, err := validators.ParsePathInt(r, "extraId")
		if err != nil {
			return session.ProductView{}, err
		}
		return svc.ToggleExtra(ctx, sid, idx, extraID)
	})
}

// ProductStepQty moves the preferred quantity.
func ProductStepQty(svc session.Service, currency enums.Currency, logg *logger.Logger) http.HandlerFunc {
	return handle(svc, currency, logg, func(ctx context.Context, sid string, idx int, r *http.Request) (session.ProductView, error) {
		var payload productdto.QtyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return session.ProductView{}, err
		}
		return svc.StepQty(ctx, sid, idx, payload.Delta)
	})
}

func handle(svc session.Service, currency enums.Currency, logg *logger.Logger, cmd preferenceCommand) http.HandlerFunc {
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

		view, err := cmd(r.Context(), middleware.SessionIDFromContext(r.Context()), idx, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteAccepted(w, http.StatusOK, newProductPage(view, currency), view.Persisted)
	}
}
