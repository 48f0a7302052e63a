package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/abates/control4amp"
	"github.com/gorilla/mux"
)

type api struct {
	amp *control4amp.Amplifier
}

func New(amp *control4amp.Amplifier) *mux.Router {
	a := &api{amp: amp}

	r := mux.NewRouter()
	r.HandleFunc("/zones", a.listZones).Methods("GET")
	r.HandleFunc("/{zone}/status", a.zoneHandler(a.status)).Methods("GET")
	r.HandleFunc("/{zone}/power/{state}", a.zoneHandler(a.setPower)).Methods("PUT")
	r.HandleFunc("/{zone}/volume/{level}", a.zoneHandler(a.setVolume)).Methods("PUT")
	r.HandleFunc("/{zone}/source/{source}", a.zoneHandler(a.selectSource)).Methods("PUT")
	r.HandleFunc("/{zone}/refresh", a.zoneHandler(a.refresh)).Methods("PUT")

	return r
}

func (a *api) listZones(w http.ResponseWriter, r *http.Request) {
	ids := []int{}
	for _, zone := range a.amp.Zones() {
		ids = append(ids, zone.ID())
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(ids)
}

func (a *api) zoneHandler(handler func(*control4amp.Zone, http.ResponseWriter, *http.Request)) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["zone"])
		if err != nil {
			log.Printf("Failed to convert zone %q to integer: %v", vars["zone"], err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		zone := a.amp.Zone(id)
		if zone == nil {
			log.Printf("Zone %d not found", id)
			http.Error(w, "Zone not found", http.StatusNotFound)
			return
		}
		handler(zone, w, r)
	}
}

type zoneStatus struct {
	Zone      int      `json:"zone"`
	Power     *bool    `json:"power"`
	Volume    *float64 `json:"volume"`
	Source    *string  `json:"source"`
	Available bool     `json:"available"`
}

func (a *api) status(zone *control4amp.Zone, w http.ResponseWriter, r *http.Request) {
	status := zoneStatus{Zone: zone.ID(), Available: zone.Available()}
	if power, known := zone.Power(); known {
		status.Power = &power
	}
	if level, known := zone.VolumeLevel(); known {
		status.Volume = &level
	}
	if label, known := zone.SourceLabel(); known {
		status.Source = &label
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(status)
}

func (a *api) setPower(zone *control4amp.Zone, w http.ResponseWriter, r *http.Request) {
	on, err := strconv.ParseBool(mux.Vars(r)["state"])
	if err != nil {
		log.Printf("Failed decoding power state %q: %v", mux.Vars(r)["state"], err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if on {
		err = zone.TurnOn()
	} else {
		err = zone.TurnOff()
	}
	a.finish(w, err)
}

func (a *api) setVolume(zone *control4amp.Zone, w http.ResponseWriter, r *http.Request) {
	level, err := strconv.Atoi(mux.Vars(r)["level"])
	if err != nil {
		log.Printf("Failed decoding volume %q: %v", mux.Vars(r)["level"], err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	a.finish(w, zone.SetVolume(level))
}

func (a *api) selectSource(zone *control4amp.Zone, w http.ResponseWriter, r *http.Request) {
	source, err := strconv.Atoi(mux.Vars(r)["source"])
	if err != nil {
		// Fall back to label form, e.g. "Input 3".
		a.finish(w, zone.SelectSourceLabel(mux.Vars(r)["source"]))
		return
	}
	a.finish(w, zone.SelectSource(source))
}

func (a *api) refresh(zone *control4amp.Zone, w http.ResponseWriter, r *http.Request) {
	a.finish(w, zone.Refresh())
}

func (a *api) finish(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	case errors.Is(err, control4amp.ErrInvalidInput),
		errors.Is(err, control4amp.ErrInvalidVolume),
		errors.Is(err, control4amp.ErrInvalidOutput):
		log.Printf("Rejected command: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, control4amp.ErrUnsupported):
		http.Error(w, err.Error(), http.StatusNotImplemented)
	default:
		log.Printf("Failed sending command to amp: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
