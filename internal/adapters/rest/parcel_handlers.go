package rest

import (
	"context"
	"net/http"
	"strconv"

	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"
	"marketplace-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

// ParcelHandler обслуживает маршруты, существующие только для участков:
// диапазоны карты, точечные чтения по координатам, токены, залоги.
type ParcelHandler struct {
	getParcelUC  usecases_port.GetAssetUseCase[domain.Parcel]
	inRangeUC    usecases_port.ParcelsInRangeUseCase
	tokenIDUC    usecases_port.ParcelTokenIDUseCase
	mapParcelsUC usecases_port.GetMapParcelsUseCase
	mortgagedUC  usecases_port.GetMortgagedParcelsUseCase
}

func NewParcelHandler(
	getParcelUC usecases_port.GetAssetUseCase[domain.Parcel],
	inRangeUC usecases_port.ParcelsInRangeUseCase,
	tokenIDUC usecases_port.ParcelTokenIDUseCase,
	mapParcelsUC usecases_port.GetMapParcelsUseCase,
	mortgagedUC usecases_port.GetMortgagedParcelsUseCase) *ParcelHandler {
	return &ParcelHandler{
		getParcelUC:  getParcelUC,
		inRangeUC:    inRangeUC,
		tokenIDUC:    tokenIDUC,
		mapParcelsUC: mapParcelsUC,
		mortgagedUC:  mortgagedUC,
	}
}

// GetParcelsInRange обрабатывает GET /api/v1/parcels?nw=&se=
// Углы принимаются в виде "x,y" и могут быть перепутаны местами.
func (h *ParcelHandler) GetParcelsInRange(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	query := r.URL.Query()

	nw, err := domain.ParseCoordinate(query.Get("nw"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid nw coordinate")
		return
	}
	se, err := domain.ParseCoordinate(query.Get("se"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid se coordinate")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"handler": "GetParcelsInRange",
		"nw":      nw.ID(),
		"se":      se.ID(),
	})
	handlerLogger.Debug("Processing map range request", nil)

	parcels, err := h.inRangeUC.Execute(r.Context(), nw, se)
	if err != nil {
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve parcels")
		return
	}

	handlerLogger.Info("Successfully found parcels in range", port.Fields{"count": len(parcels)})
	RespondWithJSON(w, http.StatusOK, newParcelResponses(parcels))
}

// GetParcel обрабатывает GET /api/v1/parcels/{x}/{y}
func (h *ParcelHandler) GetParcel(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	x, y, ok := parseCoordinateParams(w, r)
	if !ok {
		return
	}
	id, err := domain.BuildParcelID(&x, &y)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid parcel coordinates")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"handler":   "GetParcel",
		"parcel_id": id,
	})

	parcel, err := h.getParcelUC.ByID(r.Context(), id)
	if err != nil {
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve parcel")
		return
	}
	if parcel == nil {
		WriteJSONError(w, http.StatusNotFound, "Parcel not found")
		return
	}

	RespondWithJSON(w, http.StatusOK, newParcelResponse(*parcel))
}

// GetParcelByTokenID обрабатывает GET /api/v1/parcels/token/{tokenID}
func (h *ParcelHandler) GetParcelByTokenID(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	tokenID := chi.URLParam(r, "tokenID")

	handlerLogger := logger.WithFields(port.Fields{
		"handler":  "GetParcelByTokenID",
		"token_id": tokenID,
	})

	parcel, err := h.getParcelUC.ByTokenID(r.Context(), tokenID)
	if err != nil {
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve parcel")
		return
	}
	if parcel == nil {
		WriteJSONError(w, http.StatusNotFound, "Parcel not found")
		return
	}

	RespondWithJSON(w, http.StatusOK, newParcelResponse(*parcel))
}

// EncodeTokenID обрабатывает GET /api/v1/parcels/{x}/{y}/token-id
func (h *ParcelHandler) EncodeTokenID(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	x, y, ok := parseCoordinateParams(w, r)
	if !ok {
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"handler": "EncodeTokenID",
		"x":       x,
		"y":       y,
	})

	tokenID, err := h.tokenIDUC.Encode(r.Context(), x, y)
	if err != nil {
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to encode token id")
		return
	}
	if tokenID == nil {
		WriteJSONError(w, http.StatusNotFound, "Parcel not found")
		return
	}

	RespondWithJSON(w, http.StatusOK, TokenIDResponse{TokenID: tokenID})
}

// DecodeTokenID обрабатывает GET /api/v1/parcels/token/{tokenID}/id
func (h *ParcelHandler) DecodeTokenID(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	tokenID := chi.URLParam(r, "tokenID")

	handlerLogger := logger.WithFields(port.Fields{
		"handler":  "DecodeTokenID",
		"token_id": tokenID,
	})

	id, err := h.tokenIDUC.Decode(r.Context(), tokenID)
	if err != nil {
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to decode token id")
		return
	}
	if id == nil {
		WriteJSONError(w, http.StatusNotFound, "Parcel not found")
		return
	}

	RespondWithJSON(w, http.StatusOK, TokenIDResponse{ID: id})
}

// GetOwneableParcels обрабатывает GET /api/v1/parcels/owneable
func (h *ParcelHandler) GetOwneableParcels(w http.ResponseWriter, r *http.Request) {
	h.respondWithMapLayer(w, r, "GetOwneableParcels", h.mapParcelsUC.Owneable)
}

// GetLandmarkParcels обрабатывает GET /api/v1/parcels/landmarks
func (h *ParcelHandler) GetLandmarkParcels(w http.ResponseWriter, r *http.Request) {
	h.respondWithMapLayer(w, r, "GetLandmarkParcels", h.mapParcelsUC.Landmarks)
}

// GetMortgagedParcels обрабатывает GET /api/v1/addresses/{address}/mortgaged-parcels
func (h *ParcelHandler) GetMortgagedParcels(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	address := chi.URLParam(r, "address")

	handlerLogger := logger.WithFields(port.Fields{
		"handler": "GetMortgagedParcels",
		"address": address,
	})

	parcels, err := h.mortgagedUC.Execute(r.Context(), address)
	if err != nil {
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve mortgaged parcels")
		return
	}

	handlerLogger.Info("Successfully found mortgaged parcels", port.Fields{"count": len(parcels)})
	RespondWithJSON(w, http.StatusOK, newParcelResponses(parcels))
}

func (h *ParcelHandler) respondWithMapLayer(w http.ResponseWriter, r *http.Request, handlerName string, layer func(ctx context.Context) ([]domain.Parcel, error)) {
	logger := contextkeys.LoggerFromContext(r.Context())
	handlerLogger := logger.WithFields(port.Fields{"handler": handlerName})

	parcels, err := layer(r.Context())
	if err != nil {
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve map parcels")
		return
	}

	handlerLogger.Info("Successfully found map parcels", port.Fields{"count": len(parcels)})
	RespondWithJSON(w, http.StatusOK, newParcelResponses(parcels))
}

func parseCoordinateParams(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	x, err := strconv.Atoi(chi.URLParam(r, "x"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid x coordinate")
		return 0, 0, false
	}
	y, err := strconv.Atoi(chi.URLParam(r, "y"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid y coordinate")
		return 0, 0, false
	}
	return x, y, true
}
