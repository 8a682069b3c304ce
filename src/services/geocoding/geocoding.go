package geocoding

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"badajozrespira/src/domain"
	"badajozrespira/src/infra/nominatim"
)

// LocalitySuffix restringe a busca ao município.
const LocalitySuffix = ", Badajoz, España"

// Searcher é implementado por *nominatim.Client.
type Searcher interface {
	Search(ctx context.Context, query string) ([]nominatim.Place, error)
}

type Recorder interface {
	GeocodeLookup(outcome string)
}

type noopRecorder struct{}

func (noopRecorder) GeocodeLookup(string) {}

type GeocodingService struct {
	logger   *slog.Logger
	searcher Searcher
	recorder Recorder
}

func NewGeocodingService(logger *slog.Logger, searcher Searcher, recorder Recorder) *GeocodingService {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &GeocodingService{logger: logger, searcher: searcher, recorder: recorder}
}

// Geocode faz uma única consulta, sem retry e sem cache, e usa o primeiro
// resultado.
func (s *GeocodingService) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return domain.Coordinates{}, domain.NewValidationError("address", "Escribe una dirección para buscar.")
	}

	places, err := s.searcher.Search(ctx, address+LocalitySuffix)
	if err != nil {
		s.logger.Error("Geocoding error", "address", address, "error", err)
		s.recorder.GeocodeLookup("error")
		return domain.Coordinates{}, fmt.Errorf("GeocodingService.Geocode - %v: %w", err, domain.ErrGeocoderUnavailable)
	}

	if len(places) == 0 {
		s.recorder.GeocodeLookup("not_found")
		return domain.Coordinates{}, domain.ErrNoGeocodeResults
	}

	lat, latErr := strconv.ParseFloat(places[0].Lat, 64)
	lng, lngErr := strconv.ParseFloat(places[0].Lon, 64)
	if latErr != nil || lngErr != nil {
		s.logger.Error("Geocoder returned unparseable coordinates", "lat", places[0].Lat, "lon", places[0].Lon)
		s.recorder.GeocodeLookup("error")
		return domain.Coordinates{}, fmt.Errorf("GeocodingService.Geocode - bad coordinates: %w", domain.ErrGeocoderUnavailable)
	}

	s.recorder.GeocodeLookup("ok")
	return domain.Coordinates{Lat: lat, Lng: lng}, nil
}
