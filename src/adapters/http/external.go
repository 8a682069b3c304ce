package http

import "net/http"

func (s *Server) Geocode(w http.ResponseWriter, r *http.Request) {
	coordinates, err := s.services.Geocoder.Geocode(r.Context(), r.URL.Query().Get("address"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, coordinates)
}

// Ask nunca falha: o assistente devolve sempre uma mensagem exibível.
func (s *Server) Ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	writeJSON(w, http.StatusOK, askResponse{Answer: s.services.Assistant.Ask(r.Context(), req.Question)})
}
