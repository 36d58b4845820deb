package rest

import (
	"errors"
	"net/http"

	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"
	"marketplace-service/internal/core/port/usecases_port"
	"marketplace-service/internal/core/usecase"

	"github.com/go-chi/chi/v5"
)

// AssetHandler обслуживает общие для участков и эстейтов маршруты:
// страницу маркетплейса и выборки по адресу владельца.
type AssetHandler struct {
	filterParcelsUC  usecases_port.FilterAssetsUseCase[domain.Parcel]
	filterEstatesUC  usecases_port.FilterAssetsUseCase[domain.Estate]
	addressParcelsUC usecases_port.GetAddressAssetsUseCase[domain.Parcel]
	addressEstatesUC usecases_port.GetAddressAssetsUseCase[domain.Estate]
}

func NewAssetHandler(
	filterParcelsUC usecases_port.FilterAssetsUseCase[domain.Parcel],
	filterEstatesUC usecases_port.FilterAssetsUseCase[domain.Estate],
	addressParcelsUC usecases_port.GetAddressAssetsUseCase[domain.Parcel],
	addressEstatesUC usecases_port.GetAddressAssetsUseCase[domain.Estate]) *AssetHandler {
	return &AssetHandler{
		filterParcelsUC:  filterParcelsUC,
		filterEstatesUC:  filterEstatesUC,
		addressParcelsUC: addressParcelsUC,
		addressEstatesUC: addressEstatesUC,
	}
}

// FilterAssets обрабатывает GET /api/v1/assets.
// Все параметры идут в домен сырыми, их чистит санитайзер: кривое
// значение не ломает запрос, а откатывается к дефолту.
func (h *AssetHandler) FilterAssets(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	query := r.URL.Query()

	limit, err := GetIntOrDefault(r, "limit", domain.DefaultLimit)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid limit value")
		return
	}
	offset, err := GetIntOrDefault(r, "offset", 0)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid offset value")
		return
	}

	filters := domain.PublicationFilters{
		Status:    query.Get("status"),
		AssetType: query.Get("asset_type"),
		SortBy:    query.Get("sort_by"),
		SortOrder: query.Get("sort_order"),
		Limit:     limit,
		Offset:    offset,
	}

	handlerLogger := logger.WithFields(port.Fields{
		"handler":    "FilterAssets",
		"asset_type": filters.AssetType,
	})
	handlerLogger.Debug("Processing marketplace page request", nil)

	// Маршрутизация по типу ассета решается до санитайзера: у каждого
	// типа свой use case, а дефолт для неизвестного типа - участки.
	if filters.AssetType == string(domain.AssetEstate) {
		result, err := h.filterEstatesUC.Execute(r.Context(), filters)
		if err != nil {
			handlerLogger.Error("Use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve estates")
			return
		}
		RespondWithJSON(w, http.StatusOK, PaginatedAssetsResponse[EstateResponse]{
			Data:   newEstateResponses(result.Assets),
			Total:  result.Total,
			Limit:  limit,
			Offset: offset,
		})
		return
	}

	result, err := h.filterParcelsUC.Execute(r.Context(), filters)
	if err != nil {
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve parcels")
		return
	}
	RespondWithJSON(w, http.StatusOK, PaginatedAssetsResponse[ParcelResponse]{
		Data:   newParcelResponses(result.Assets),
		Total:  result.Total,
		Limit:  limit,
		Offset: offset,
	})
}

// GetAddressParcels обрабатывает GET /api/v1/addresses/{address}/parcels
func (h *AssetHandler) GetAddressParcels(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	address := chi.URLParam(r, "address")
	status := r.URL.Query().Get("status")

	handlerLogger := logger.WithFields(port.Fields{
		"handler": "GetAddressParcels",
		"address": address,
		"status":  status,
	})

	parcels, err := h.addressParcelsUC.Execute(r.Context(), address, status)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidPublicationStatus) {
			WriteJSONError(w, http.StatusBadRequest, "Invalid publication status")
			return
		}
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve parcels")
		return
	}

	handlerLogger.Info("Successfully found address parcels", port.Fields{"count": len(parcels)})
	RespondWithJSON(w, http.StatusOK, newParcelResponses(parcels))
}

// GetAddressEstates обрабатывает GET /api/v1/addresses/{address}/estates
func (h *AssetHandler) GetAddressEstates(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	address := chi.URLParam(r, "address")
	status := r.URL.Query().Get("status")

	handlerLogger := logger.WithFields(port.Fields{
		"handler": "GetAddressEstates",
		"address": address,
		"status":  status,
	})

	estates, err := h.addressEstatesUC.Execute(r.Context(), address, status)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidPublicationStatus) {
			WriteJSONError(w, http.StatusBadRequest, "Invalid publication status")
			return
		}
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve estates")
		return
	}

	handlerLogger.Info("Successfully found address estates", port.Fields{"count": len(estates)})
	RespondWithJSON(w, http.StatusOK, newEstateResponses(estates))
}
