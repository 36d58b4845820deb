package rest

import (
	"context"
	"net/http"

	core_port "marketplace-service/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

func NewServer(port string,
	assetHandler *AssetHandler,
	parcelHandler *ParcelHandler,
	districtHandler *DistrictHandler,
	baseLogger core_port.LoggerPort) *Server {

	r := chi.NewRouter()

	r.Use(LoggerMiddleware(baseLogger), middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		// страница маркетплейса
		r.Get("/assets", assetHandler.FilterAssets)

		// участки и карта
		r.Get("/parcels", parcelHandler.GetParcelsInRange)
		r.Get("/parcels/owneable", parcelHandler.GetOwneableParcels)
		r.Get("/parcels/landmarks", parcelHandler.GetLandmarkParcels)
		r.Get("/parcels/token/{tokenID}", parcelHandler.GetParcelByTokenID)
		r.Get("/parcels/token/{tokenID}/id", parcelHandler.DecodeTokenID)
		r.Get("/parcels/{x}/{y}", parcelHandler.GetParcel)
		r.Get("/parcels/{x}/{y}/token-id", parcelHandler.EncodeTokenID)

		// выборки по владельцу
		r.Get("/addresses/{address}/parcels", assetHandler.GetAddressParcels)
		r.Get("/addresses/{address}/estates", assetHandler.GetAddressEstates)
		r.Get("/addresses/{address}/mortgaged-parcels", parcelHandler.GetMortgagedParcels)

		r.Get("/districts", districtHandler.GetDistricts)
	})

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + port,
			Handler: r,
		},
		logger: baseLogger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", core_port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
