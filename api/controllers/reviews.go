package controllers

import (
	"net/http"

	"github.com/angelmondragon/lavka-miniapp/api/responses"
	"github.com/angelmondragon/lavka-miniapp/api/validators"
	"github.com/angelmondragon/lavka-miniapp/internal/identity"
	"github.com/angelmondragon/lavka-miniapp/internal/reviews"
	"github.com/angelmondragon/lavka-miniapp/internal/session"
	pkgerrors "github.com/angelmondragon/lavka-miniapp/pkg/errors"
	"github.com/angelmondragon/lavka-miniapp/pkg/logger"
)

const maxReviewFieldLen = 2000

type productReviews struct {
	Summary        session.Summary  `json:"summary"`
	Reviews        []reviews.Review `json:"reviews"`
	CanWriteReview bool             `json:"can_write_review"`
}

type writeReviewRequest struct {
	Rating        int    `json:"rating" validate:"required,min=1,max=5"`
	Advantages    string `json:"advantages"`
	Disadvantages string `json:"disadvantages"`
	Comment       string `json:"comment"`
}

func ReviewsList(reg *session.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s, ok := shopperSession(w, r, logg)
		if !ok {
			return
		}
		productID, ok := productIDFromRequest(w, r, logg)
		if !ok {
			return
		}
		if _, found := reg.Catalog().ProductByID(productID); !found {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		responses.WriteSuccess(w, productReviews{
			Summary:        reg.Reviews().Summary(productID),
			Reviews:        reg.Reviews().ProductReviews(productID),
			CanWriteReview: s.CanWriteReview(productID),
		})
	}
}

// ReviewsCreate publishes a review by the calling shopper for a product they
// have ordered.
func ReviewsCreate(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s, ok := shopperSession(w, r, logg)
		if !ok {
			return
		}
		principal, ok := identity.FromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "shopper not resolved"))
			return
		}
		productID, ok := productIDFromRequest(w, r, logg)
		if !ok {
			return
		}
		var req writeReviewRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		review, err := s.WriteReview(ctx, principal, productID, session.ReviewInput{
			Rating:        req.Rating,
			Advantages:    validators.SanitizeString(req.Advantages, maxReviewFieldLen),
			Disadvantages: validators.SanitizeString(req.Disadvantages, maxReviewFieldLen),
			Comment:       validators.SanitizeString(req.Comment, maxReviewFieldLen),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, review)
	}
}
