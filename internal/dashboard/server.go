// Package dashboard serves go-echarts views over the analyzer's JSON
// artifacts. It reads the files on every request, so re-running the
// analyze stage refreshes the charts without a restart.
package dashboard

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/minjipark/audioguide-scraper/internal/reactions"
	"github.com/minjipark/audioguide-scraper/internal/storage"
)

// Server renders the dashboard pages.
type Server struct {
	store     *storage.Store
	reactions *reactions.Loader
	log       *slog.Logger
}

// New builds a Server. The reactions loader may be nil when no digests
// are available.
func New(store *storage.Store, loader *reactions.Loader, log *slog.Logger) *Server {
	return &Server{store: store, reactions: loader, log: log}
}

// Start blocks serving the dashboard on the given port.
func (s *Server) Start(port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleOverview)
	mux.HandleFunc("/museums", s.handleMuseums)
	mux.HandleFunc("/reactions", s.handleReactions)

	s.log.Info("dashboard listening", "port", port)
	return http.ListenAndServe(":"+port, mux)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	cmp, err := s.store.LoadComparison()
	if err != nil {
		s.log.Error("load comparison failed", "error", err)
		http.Error(w, "comparison artifact not available, run the analyze stage first", http.StatusServiceUnavailable)
		return
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Forum Distribution"}),
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
	)
	pie.AddSeries("Museums", pieItems(cmp.ForumDistribution))

	themes := charts.NewBar()
	themes.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Theme Distribution"}))
	x, y := barItems(cmp.ThemeDistribution)
	themes.SetXAxis(x).AddSeries("Mentions", y)

	engagement := charts.NewBar()
	engagement.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Top Museums by Engagement"}))
	var museums []string
	var totals []opts.BarData
	for _, e := range cmp.TopMuseumsByEngagement {
		museums = append(museums, e.Museum)
		totals = append(totals, opts.BarData{Value: e.TotalEngagement})
	}
	engagement.SetXAxis(museums).AddSeries("Posts + Replies", totals)

	pie.Render(w)
	themes.Render(w)
	engagement.Render(w)
}

func (s *Server) handleMuseums(w http.ResponseWriter, r *http.Request) {
	metrics, err := s.store.LoadMetrics()
	if err != nil {
		s.log.Error("load metrics failed", "error", err)
		http.Error(w, "metrics artifact not available, run the analyze stage first", http.StatusServiceUnavailable)
		return
	}

	sentiment := charts.NewBar()
	sentiment.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Audio Guide Reactions by Museum"}),
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
	)

	var museums []string
	var positive, negative, neutral []opts.BarData
	for _, m := range metrics {
		museums = append(museums, m.Museum)
		positive = append(positive, opts.BarData{Value: m.PositiveReactions})
		negative = append(negative, opts.BarData{Value: m.NegativeReactions})
		neutral = append(neutral, opts.BarData{Value: m.NeutralReactions})
	}
	sentiment.SetXAxis(museums).
		AddSeries("Positive", positive).
		AddSeries("Negative", negative).
		AddSeries("Neutral", neutral)

	score := charts.NewBar()
	score.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Sentiment Score"}))
	var scores []opts.BarData
	for _, m := range metrics {
		scores = append(scores, opts.BarData{Value: m.SentimentScore})
	}
	score.SetXAxis(museums).AddSeries("Score", scores)

	sentiment.Render(w)
	score.Render(w)
}

func (s *Server) handleReactions(w http.ResponseWriter, _ *http.Request) {
	if s.reactions == nil {
		http.Error(w, "no reaction digests loaded", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<html><body><h1>Audio Guide Reaction Digests</h1>")
	for _, museum := range s.reactions.Museums() {
		digest, _ := s.reactions.ForMuseum(museum)
		fmt.Fprintf(w, "<h2>%s</h2><p>%s</p>", museum, digest.OverallSummary)
		fmt.Fprint(w, "<h3>Positive</h3><ul>")
		for _, p := range digest.PositivePoints {
			fmt.Fprintf(w, "<li>%s</li>", p)
		}
		fmt.Fprint(w, "</ul><h3>Negative</h3><ul>")
		for _, p := range digest.NegativePoints {
			fmt.Fprintf(w, "<li>%s</li>", p)
		}
		fmt.Fprintf(w, "</ul><p><strong>Recommendation:</strong> %s</p>", digest.Recommendation)
	}
	fmt.Fprint(w, "</body></html>")
}

func pieItems(counts map[string]int) []opts.PieData {
	var items []opts.PieData
	for _, k := range sortedKeys(counts) {
		items = append(items, opts.PieData{Name: k, Value: counts[k]})
	}
	return items
}

func barItems(counts map[string]int) ([]string, []opts.BarData) {
	var x []string
	var y []opts.BarData
	for _, k := range sortedKeys(counts) {
		x = append(x, k)
		y = append(y, opts.BarData{Value: counts[k]})
	}
	return x, y
}

func sortedKeys(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
