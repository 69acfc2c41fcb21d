package controllers

import (
	"net/http"

	"github.com/adithyanarayan/stockline-backend/api/responses"
	"github.com/adithyanarayan/stockline-backend/internal/directory"
	pkgerrors "github.com/adithyanarayan/stockline-backend/pkg/errors"
	"github.com/adithyanarayan/stockline-backend/pkg/logger"
)

// DirectoryCustomers lists the customers attached to the calling salesman.
func DirectoryCustomers(svc directory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "directory service unavailable"))
			return
		}

		salesmanID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customers, err := svc.CustomersBySalesman(r.Context(), salesmanID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"customers": customers})
	}
}

// DirectoryWorkers lists the workers attached to the calling salesman.
func DirectoryWorkers(svc directory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "directory service unavailable"))
			return
		}

		salesmanID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		workers, err := svc.WorkersBySalesman(r.Context(), salesmanID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"workers": workers})
	}
}
