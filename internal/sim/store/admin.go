package store

import (
	"fmt"
	"net/http"

	"github.com/tailscale/tailsql/server/tailsql"
	"tailscale.com/tsweb"
)

// AttachAdminRoutes mounts a live SQL debugging UI over the store's
// database on mux, under the teacher's tsweb.Debugger convention.
func (s *Store) AttachAdminRoutes(mux *http.ServeMux) error {
	debug := tsweb.Debugger(mux)

	tsql, err := tailsql.NewServer(tailsql.Options{
		RoutePrefix: "/debug/tailsql/",
	})
	if err != nil {
		return fmt.Errorf("create tailsql server: %w", err)
	}
	tsql.SetDB("sqlite://adsilsim.db", s.DB, &tailsql.DBOptions{
		Label: "ADSIL simulator detections/trajectory",
	})

	debug.Handle("tailsql/", "SQL live debugging", tsql.NewMux())
	debug.Handle("store-stats", "Detection/trajectory row counts (JSON)", http.HandlerFunc(s.statsHandler))
	return nil
}

func (s *Store) statsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var detections, trajectory int
	if err := s.QueryRow("SELECT COUNT(*) FROM detections").Scan(&detections); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := s.QueryRow("SELECT COUNT(*) FROM trajectory").Scan(&trajectory); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	fmt.Fprintf(w, `{"detections":%d,"trajectory":%d}`, detections, trajectory)
}
