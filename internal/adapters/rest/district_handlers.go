package rest

import (
	"net/http"

	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/port"
	"marketplace-service/internal/core/port/usecases_port"
)

type DistrictHandler struct {
	getDistrictsUC usecases_port.GetDistrictsUseCase
}

func NewDistrictHandler(getDistrictsUC usecases_port.GetDistrictsUseCase) *DistrictHandler {
	return &DistrictHandler{getDistrictsUC: getDistrictsUC}
}

// GetDistricts обрабатывает GET /api/v1/districts
func (h *DistrictHandler) GetDistricts(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	handlerLogger := logger.WithFields(port.Fields{"handler": "GetDistricts"})

	districts, err := h.getDistrictsUC.Execute(r.Context())
	if err != nil {
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve districts")
		return
	}

	response := make([]DistrictResponse, len(districts))
	for i, d := range districts {
		response[i] = newDistrictResponse(d)
	}

	handlerLogger.Info("Successfully found districts", port.Fields{"count": len(response)})
	RespondWithJSON(w, http.StatusOK, response)
}
