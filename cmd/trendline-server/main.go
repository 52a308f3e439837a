package main

import (
	"net/http"
	"os"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/midbel/trendline"
	"github.com/midbel/trendline/source"
)

var (
	defaultHttpPort = "8080"
	defaultLogLevel = "INFO"
	logLevel        = os.Getenv("LOG_LEVEL")
	httpPort        = os.Getenv("HTTP_PORT")
	influxURL       = os.Getenv("INFLUXDB_URL")
	influxToken     = os.Getenv("INFLUXDB_TOKEN")
	influxOrg       = os.Getenv("INFLUXDB_ORG")
)

var (
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests processed, labeled by status code and method.",
		},
		[]string{"code", "method"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP requests.",
		},
		[]string{"handler", "method"},
	)
)

func init() {
	prometheus.MustRegister(httpRequests, httpDuration)
}

func main() {
	if logLevel == "" {
		logLevel = defaultLogLevel
	}
	if level, err := logrus.ParseLevel(logLevel); err == nil {
		logrus.SetLevel(level)
	} else {
		logrus.Fatalf("Invalid LOG_LEVEL: %s", logLevel)
	}
	if httpPort == "" {
		logrus.Debugf("No HTTP_PORT specified, defaulting to: %s", defaultHttpPort)
		httpPort = defaultHttpPort
	}

	http.Handle("/monitoring/metrics", promhttp.Handler())
	http.HandleFunc("/monitoring/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	http.Handle("/render", instrument("render", handleRender))
	if influxURL != "" {
		http.Handle("/query", instrument("query", handleQuery))
	}

	logrus.Infof("Starting server on port: %s", httpPort)
	logrus.Fatal(http.ListenAndServe(":"+httpPort, nil))
}

func instrument(name string, fn http.HandlerFunc) http.Handler {
	return promhttp.InstrumentHandlerDuration(
		httpDuration.MustCurryWith(prometheus.Labels{"handler": name}),
		promhttp.InstrumentHandlerCounter(httpRequests, fn),
	)
}

// handleRender binds the dataset posted as JSON body and answers with the
// rendered SVG.
func handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "only POST is supported", http.StatusMethodNotAllowed)
		return
	}
	defer r.Body.Close()

	ch, err := chartFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	set, err := trendline.DecodeDataset(r.Body, fieldsFromQuery(r))
	if err != nil {
		logrus.Warnf("Failed to decode dataset: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeChart(w, ch, set)
}

// handleQuery runs the flux query given in the q parameter and renders the
// resulting dataset.
func handleQuery(w http.ResponseWriter, r *http.Request) {
	flux := r.URL.Query().Get("q")
	if flux == "" {
		http.Error(w, "missing 'q' query parameter", http.StatusBadRequest)
		return
	}
	ch, err := chartFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	src := source.Influx{
		URL:      influxURL,
		Token:    influxToken,
		Org:      influxOrg,
		Query:    flux,
		TopicTag: r.URL.Query().Get("topic"),
	}
	set, err := src.Load(r.Context())
	if err != nil {
		logrus.Warnf("Failed to query datapoints: %v", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeChart(w, ch, set)
}

func writeChart(w http.ResponseWriter, ch *trendline.Chart, set trendline.Dataset) {
	if err := ch.Bind(set); err != nil {
		logrus.Warnf("Failed to bind dataset: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	ch.Render(w)
}

func chartFromQuery(r *http.Request) (*trendline.Chart, error) {
	ch := trendline.New()
	if s := r.URL.Query().Get("width"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 200 || v > 2000 {
			return nil, invalidParam("width")
		}
		ch.SetWidth(v)
	}
	if s := r.URL.Query().Get("height"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 100 || v > 1200 {
			return nil, invalidParam("height")
		}
		ch.SetHeight(v)
	}
	if s := r.URL.Query().Get("grid"); s != "" {
		ch.SetGrid(s)
	}
	if s := r.URL.Query().Get("ticks"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 || v > 20 {
			return nil, invalidParam("ticks")
		}
		ch.SetVerticalTicks(v)
	}
	return ch, nil
}

func fieldsFromQuery(r *http.Request) trendline.FieldNames {
	q := r.URL.Query()
	return trendline.FieldNames{
		Topic:     q.Get("topicField"),
		TopicName: q.Get("topicNameField"),
		Date:      q.Get("dateField"),
		Value:     q.Get("valueField"),
	}
}

func invalidParam(name string) error {
	return trendline.ConfigurationError{
		Option:  name,
		Message: "invalid query parameter",
	}
}
