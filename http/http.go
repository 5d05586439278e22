package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/RoanBrand/NMRStats/log"
	"github.com/RoanBrand/NMRStats/metrics"
	"github.com/RoanBrand/NMRStats/stats"
)

// StatsGetter scans subDir of the data tree for the experiments of year.
// An empty subDir is the whole tree.
type StatsGetter func(ctx context.Context, year int, subDir string, verbose bool) (*stats.Summary, error)

var ErrBadRequest = errors.New("bad request")

// NewMux serves:
//
//	/stats?year=2015&path=maxim&verbose=true
//	/metrics
func NewMux(getStats StatsGetter) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/stats", statsEndpoint(getStats))
	mux.Handle("/metrics", metrics.Handler())
	return mux
}

func StartServer(port string, h http.Handler) error {
	log.Println("Starting NMRStats service on port", port)
	return http.ListenAndServe(":"+port, h)
}

func statsEndpoint(getStats StatsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		q := r.URL.Query()
		year := time.Now().Year()
		if y := q.Get("year"); y != "" {
			var err error
			if year, err = strconv.Atoi(y); err != nil || year <= 0 {
				http.Error(w, "invalid year: "+y, http.StatusBadRequest)
				return
			}
		}

		res, err := getStats(r.Context(), year, q.Get("path"), q.Get("verbose") == "true")
		if err != nil {
			errMsg := "Error querying stats: " + err.Error()
			log.Println(errMsg)
			code := http.StatusInternalServerError
			if errors.Is(err, ErrBadRequest) || errors.Is(err, stats.ErrInvalidYear) {
				code = http.StatusBadRequest
			}
			http.Error(w, errMsg, code)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err = json.NewEncoder(w).Encode(res); err != nil {
			log.Println("Error writing stats response:", err)
		}
	}
}
