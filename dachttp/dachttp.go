// Package dachttp exposes DAC channels over HTTP.
//
// This is not the last word in latency, but it makes the converter
// reachable from any language with an HTTP client, which is what lab
// bring-up scripts want. Requests carry small JSON bodies naming the
// channel.
package dachttp

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi"
	"periph.io/x/conn/v3/physic"

	"github.com/ksekimoto/fsp/dac"
)

// Server serves a set of open DAC channels.
type Server struct {
	channels map[int]*dac.Channel
}

// NewServer returns a server over the given channels, keyed by channel
// index. The channels are expected to be open already.
func NewServer(channels map[int]*dac.Channel) *Server {
	return &Server{channels: channels}
}

// Routes returns the HTTP routes of the server.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/output", s.output)
	r.Post("/output-dn-16", s.outputDN16)
	r.Post("/start", s.start)
	r.Post("/stop", s.stop)
	r.Get("/version", s.version)
	return r
}

type channelVoltage struct {
	Channel int `json:"channel"`

	Voltage float64 `json:"voltage"`
}

type channelDN struct {
	Channel int `json:"channel"`

	DN uint16 `json:"dn"`
}

type channelOnly struct {
	Channel int `json:"channel"`
}

func (s *Server) channel(w http.ResponseWriter, idx int) *dac.Channel {
	ch, ok := s.channels[idx]
	if !ok {
		http.Error(w, "no such channel", http.StatusNotFound)
		return nil
	}
	return ch
}

func (s *Server) output(w http.ResponseWriter, r *http.Request) {
	var input channelVoltage
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ch := s.channel(w, input.Channel)
	if ch == nil {
		return
	}
	v := physic.ElectricPotential(input.Voltage * float64(physic.Volt))
	if err := ch.WritePotential(v); err != nil {
		httpError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) outputDN16(w http.ResponseWriter, r *http.Request) {
	var input channelDN
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ch := s.channel(w, input.Channel)
	if ch == nil {
		return
	}
	if err := ch.Write(input.DN); err != nil {
		httpError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) start(w http.ResponseWriter, r *http.Request) {
	var input channelOnly
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ch := s.channel(w, input.Channel)
	if ch == nil {
		return
	}
	if err := ch.Start(); err != nil {
		httpError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) stop(w http.ResponseWriter, r *http.Request) {
	var input channelOnly
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ch := s.channel(w, input.Channel)
	if ch == nil {
		return
	}
	if err := ch.Stop(); err != nil {
		httpError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) version(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dac.Version())
}

// httpError maps driver errors to status codes. Lifecycle violations are
// the caller's fault; anything else is reported as a server error.
func httpError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, dac.ErrNotOpen),
		errors.Is(err, dac.ErrAlreadyStarted),
		errors.Is(err, dac.ErrAlreadyOpen):
		code = http.StatusConflict
	case errors.Is(err, dac.ErrInvalidArgument),
		errors.Is(err, dac.ErrChannelNotPresent):
		code = http.StatusBadRequest
	}
	http.Error(w, err.Error(), code)
}
