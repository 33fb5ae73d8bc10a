package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	api "github.com/okian/ascent/internal/adapters/http/api"
	service "github.com/okian/ascent/internal/app"
	"github.com/okian/ascent/internal/domain/arbitrage"
	"github.com/okian/ascent/internal/domain/synergy"
	"github.com/okian/ascent/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	svc := service.New(
		service.WithEngineOptions(arbitrage.WithSeed(7)),
		service.WithScorer(synergy.New(synergy.WithSeed(7))),
		service.WithWorkerCount(2),
	)
	So(svc.Start(context.Background()), ShouldBeNil)
	t.Cleanup(svc.Stop)

	mux := http.NewServeMux()
	server := api.NewServer(svc, svc, 100)
	server.Register(context.Background(), mux)

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) (*http.Response, []byte) {
	t.Helper()
	payload, err := json.Marshal(body)
	So(err, ShouldBeNil)
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload)) //nolint:noctx // test helper
	So(err, ShouldBeNil)
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	So(err, ShouldBeNil)
	return resp, buf.Bytes()
}

func getBody(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url) //nolint:noctx // test helper
	So(err, ShouldBeNil)
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	So(err, ShouldBeNil)
	return resp, buf.Bytes()
}

func TestGameEndpoints(t *testing.T) {
	Convey("Given a running API server", t, func() {
		ts := newTestServer(t)

		Convey("When creating a game", func() {
			resp, body := postJSON(t, ts.URL+"/games", map[string]string{
				"player_id": "ada",
				"mode":      "easy",
			})

			Convey("Then the session starts with the first pattern", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusCreated)
				var start types.GameStart
				So(json.Unmarshal(body, &start), ShouldBeNil)
				So(start.SessionID, ShouldNotBeEmpty)
				So(start.Mode, ShouldEqual, "easy")
				So(len(strings.Split(start.Pattern, ".")), ShouldEqual, 3)
			})
		})

		Convey("When creating a game with an unknown mode", func() {
			resp, _ := postJSON(t, ts.URL+"/games", map[string]string{"mode": "nope"})

			Convey("Then the request is rejected", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When posting malformed JSON", func() {
			resp, err := http.Post(ts.URL+"/games", "application/json", strings.NewReader("{")) //nolint:noctx // test
			So(err, ShouldBeNil)
			resp.Body.Close()

			Convey("Then the request is rejected", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When attempting against a live session", func() {
			_, body := postJSON(t, ts.URL+"/games", map[string]string{
				"player_id": "ada",
				"mode":      "easy",
			})
			var start types.GameStart
			So(json.Unmarshal(body, &start), ShouldBeNil)

			Convey("Then a correct attempt scores and issues the next pattern", func() {
				resp, body := postJSON(t, ts.URL+"/games/"+start.SessionID+"/attempts",
					map[string]string{"input": start.Pattern})
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var result types.AttemptResult
				So(json.Unmarshal(body, &result), ShouldBeNil)
				So(result.Correct, ShouldBeTrue)
				So(result.Score, ShouldAlmostEqual, 60.0, 1e-9)
				So(result.NextPattern, ShouldNotBeEmpty)
			})

			Convey("And a wrong attempt reports no score", func() {
				resp, body := postJSON(t, ts.URL+"/games/"+start.SessionID+"/attempts",
					map[string]string{"input": "wrong"})
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var result types.AttemptResult
				So(json.Unmarshal(body, &result), ShouldBeNil)
				So(result.Correct, ShouldBeFalse)
				So(result.Score, ShouldEqual, 0.0)
			})

			Convey("And the session leaderboard is readable", func() {
				resp, body := getBody(t, ts.URL+"/games/"+start.SessionID+"/leaderboard")
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var board map[string][]float64
				So(json.Unmarshal(body, &board), ShouldBeNil)
				So(board, ShouldContainKey, "easy")
			})

			Convey("And a visualization is rendered", func() {
				resp, body := postJSON(t, ts.URL+"/games/"+start.SessionID+"/visualization",
					map[string]string{"sequence": "abc"})
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var viz arbitrage.Visualization
				So(json.Unmarshal(body, &viz), ShouldBeNil)
				So(len(viz.Wave), ShouldEqual, 3*3-2)
			})
		})

		Convey("When touching an unknown session", func() {
			resp, _ := postJSON(t, ts.URL+"/games/missing/attempts", map[string]string{"input": "x"})

			Convey("Then 404 is returned", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When using an unknown subresource", func() {
			resp, _ := getBody(t, ts.URL+"/games/some-id/unknown")

			Convey("Then 404 is returned", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestHallOfFameEndpoint(t *testing.T) {
	Convey("Given a running API server", t, func() {
		ts := newTestServer(t)

		Convey("When querying without a limit", func() {
			resp, _ := getBody(t, ts.URL+"/halloffame?mode=easy")

			Convey("Then the request is rejected", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When exceeding the maximum limit", func() {
			resp, _ := getBody(t, ts.URL+"/halloffame?mode=easy&limit=101")

			Convey("Then the request is rejected", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When querying an unknown mode", func() {
			resp, _ := getBody(t, ts.URL+"/halloffame?mode=nope&limit=5")

			Convey("Then the request is rejected", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When a player has scored", func() {
			_, body := postJSON(t, ts.URL+"/games", map[string]string{
				"player_id": "ada",
				"mode":      "easy",
			})
			var start types.GameStart
			So(json.Unmarshal(body, &start), ShouldBeNil)
			resp, _ := postJSON(t, ts.URL+"/games/"+start.SessionID+"/attempts",
				map[string]string{"input": start.Pattern})
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			Convey("Then the board lists them", func() {
				resp, body := getBody(t, ts.URL+"/halloffame?mode=easy&limit=5")
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var entries []types.Entry
				So(json.Unmarshal(body, &entries), ShouldBeNil)
				So(len(entries), ShouldEqual, 1)
				So(entries[0].PlayerID, ShouldEqual, "ada")
				So(entries[0].Rank, ShouldEqual, 1)
			})
		})
	})
}

func TestSynergyEndpoints(t *testing.T) {
	Convey("Given a running API server", t, func() {
		ts := newTestServer(t)

		Convey("When running a synchronous analysis", func() {
			resp, body := postJSON(t, ts.URL+"/synergy/analysis", map[string]any{
				"resume_text": "Python, Machine Learning, teamwork",
			})

			Convey("Then the full report is returned", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var report types.AnalysisReport
				So(json.Unmarshal(body, &report), ShouldBeNil)
				So(report.Status, ShouldEqual, types.AnalysisComplete)
				So(len(report.Candidate), ShouldEqual, synergy.FeatureCount())
				So(len(report.Scores), ShouldEqual, 3)
			})
		})

		Convey("When the resume text is missing", func() {
			resp, _ := postJSON(t, ts.URL+"/synergy/analysis", map[string]any{})

			Convey("Then the request is rejected", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When submitting an asynchronous analysis", func() {
			resp, body := postJSON(t, ts.URL+"/synergy/analyses", map[string]string{
				"request_id":  "req-http-1",
				"resume_text": "Data Science and leadership",
			})

			So(resp.StatusCode, ShouldEqual, http.StatusAccepted)
			var submitted struct {
				AnalysisID string `json:"analysis_id"`
				Status     string `json:"status"`
				Duplicate  bool   `json:"duplicate"`
			}
			So(json.Unmarshal(body, &submitted), ShouldBeNil)
			So(submitted.AnalysisID, ShouldNotBeEmpty)
			So(submitted.Status, ShouldEqual, "accepted")

			Convey("Then polling eventually returns the completed report", func() {
				var report types.AnalysisReport
				deadline := time.Now().Add(2 * time.Second)
				for {
					resp, body := getBody(t, ts.URL+"/synergy/analyses/"+submitted.AnalysisID)
					So(resp.StatusCode, ShouldEqual, http.StatusOK)
					So(json.Unmarshal(body, &report), ShouldBeNil)
					if report.Status != types.AnalysisPending {
						break
					}
					if time.Now().After(deadline) {
						t.Fatal("timed out waiting for analysis")
					}
					time.Sleep(10 * time.Millisecond)
				}
				So(report.Status, ShouldEqual, types.AnalysisComplete)
				So(report.RequestID, ShouldEqual, "req-http-1")
			})

			Convey("And resubmitting the same request ID reports a duplicate", func() {
				resp, body := postJSON(t, ts.URL+"/synergy/analyses", map[string]string{
					"request_id":  "req-http-1",
					"resume_text": "Data Science and leadership",
				})
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var again struct {
					AnalysisID string `json:"analysis_id"`
					Duplicate  bool   `json:"duplicate"`
				}
				So(json.Unmarshal(body, &again), ShouldBeNil)
				So(again.Duplicate, ShouldBeTrue)
				So(again.AnalysisID, ShouldEqual, submitted.AnalysisID)
			})
		})

		Convey("When submitting without a request ID", func() {
			resp, _ := postJSON(t, ts.URL+"/synergy/analyses", map[string]string{
				"resume_text": "Python",
			})

			Convey("Then the request is rejected", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When reading an unknown analysis", func() {
			resp, _ := getBody(t, ts.URL+"/synergy/analyses/missing")

			Convey("Then 404 is returned", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When uploading something that is not multipart", func() {
			resp, err := http.Post(ts.URL+"/synergy/resume", "application/pdf", strings.NewReader("junk")) //nolint:noctx // test
			So(err, ShouldBeNil)
			resp.Body.Close()

			Convey("Then the request is rejected", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestOperationalEndpoints(t *testing.T) {
	Convey("Given a running API server", t, func() {
		ts := newTestServer(t)

		Convey("When fetching stats", func() {
			resp, body := getBody(t, ts.URL+"/stats")

			Convey("Then live gauges are exposed", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var stats map[string]any
				So(json.Unmarshal(body, &stats), ShouldBeNil)
				So(stats["started"], ShouldEqual, true)
			})
		})

		Convey("When scraping metrics", func() {
			resp, body := getBody(t, ts.URL+"/healthz")

			Convey("Then the exposition format is served", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(string(body), ShouldContainSubstring, "ascent_core")
			})
		})

		Convey("When using the wrong method", func() {
			for _, url := range []string{
				ts.URL + "/games",
				ts.URL + "/synergy/analysis",
			} {
				resp, err := http.Get(url) //nolint:noctx // test
				So(err, ShouldBeNil)
				resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
			}

			resp, _ := postJSON(t, fmt.Sprintf("%s/halloffame?mode=easy&limit=5", ts.URL), nil)
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})
	})
}
