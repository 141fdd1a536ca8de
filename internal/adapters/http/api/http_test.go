package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/compass/internal/adapters/ai"
	"github.com/okian/compass/internal/adapters/repository"
	service "github.com/okian/compass/internal/app"
	"github.com/okian/compass/internal/domain/model"
	"github.com/okian/compass/internal/domain/psych"
)

// mockDeps implements Dependencies and StatsProvider with canned answers.
type mockDeps struct {
	matchRoles  []string
	matchErr    error
	ranked      []model.RankedRole
	rankErr     error
	roles       []model.Role
	rolesErr    error
	assessment  Assessment
	issueErr    error
	scoreResult psych.Result
	scoreErr    error
	analysis    AnalysisResult
	analysisErr error
	chatReply   string
	chatErr     error

	lastThreshold *float64
	lastTopN      *int
	lastCategory  string
	lastSessionID string
	lastCount     int
}

func (m *mockDeps) MatchSkills(ctx context.Context, skills []string, threshold *float64) ([]string, error) {
	m.lastThreshold = threshold
	return m.matchRoles, m.matchErr
}

func (m *mockDeps) Recommend(ctx context.Context, profile model.Profile, topN *int) ([]model.RankedRole, error) {
	m.lastTopN = topN
	return m.ranked, m.rankErr
}

func (m *mockDeps) ListRoles(ctx context.Context, category string) ([]model.Role, error) {
	m.lastCategory = category
	return m.roles, m.rolesErr
}

func (m *mockDeps) IssueAssessment(ctx context.Context, count int) (Assessment, error) {
	m.lastCount = count
	return m.assessment, m.issueErr
}

func (m *mockDeps) ScoreAssessment(ctx context.Context, sessionID string, answers map[string]string) (psych.Result, error) {
	m.lastSessionID = sessionID
	return m.scoreResult, m.scoreErr
}

func (m *mockDeps) AnalyzeResume(ctx context.Context, text string) (AnalysisResult, error) {
	return m.analysis, m.analysisErr
}

func (m *mockDeps) Chat(ctx context.Context, message string) (string, error) {
	return m.chatReply, m.chatErr
}

func (m *mockDeps) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true}
}

func newTestMux(deps *mockDeps) *http.ServeMux {
	mux := http.NewServeMux()
	NewServer(deps, deps, 50).Register(context.Background(), mux)
	return mux
}

func doJSON(mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestHandleMatch(t *testing.T) {
	Convey("Given the match endpoint", t, func() {
		deps := &mockDeps{matchRoles: []string{"Backend Developer"}}
		mux := newTestMux(deps)

		Convey("When posting a valid skill list", func() {
			rec := doJSON(mux, http.MethodPost, "/match", `{"skills":["go","sql"]}`)

			Convey("Then matched roles are returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var resp matchResponse
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.MatchedRoles, ShouldResemble, []string{"Backend Developer"})
				So(deps.lastThreshold, ShouldBeNil)
			})
		})

		Convey("When posting an explicit threshold", func() {
			rec := doJSON(mux, http.MethodPost, "/match", `{"skills":["go"],"threshold":2.5}`)

			Convey("Then the override is forwarded", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(deps.lastThreshold, ShouldNotBeNil)
				So(*deps.lastThreshold, ShouldAlmostEqual, 2.5)
			})
		})

		Convey("When the skill list is missing", func() {
			rec := doJSON(mux, http.MethodPost, "/match", `{}`)

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the threshold is non-positive", func() {
			rec := doJSON(mux, http.MethodPost, "/match", `{"skills":["go"],"threshold":0}`)

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the catalog is unavailable", func() {
			deps.matchErr = repository.ErrUnavailable
			rec := doJSON(mux, http.MethodPost, "/match", `{"skills":["go"]}`)

			Convey("Then the service reports unavailability", func() {
				So(rec.Code, ShouldEqual, http.StatusServiceUnavailable)
			})
		})

		Convey("When using the wrong method", func() {
			rec := doJSON(mux, http.MethodGet, "/match", "")

			Convey("Then the route is not found", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestHandleRecommend(t *testing.T) {
	Convey("Given the recommend endpoint", t, func() {
		deps := &mockDeps{ranked: []model.RankedRole{{Role: "Backend Developer", Score: 5.5}}}
		mux := newTestMux(deps)

		Convey("When posting a valid profile", func() {
			body := `{"name":"Sam","academic_standing":3,"skills":["Go"],"interests":["Docker"]}`
			rec := doJSON(mux, http.MethodPost, "/recommend", body)

			Convey("Then ranked roles are returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var resp recommendResponse
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(len(resp.Recommendations), ShouldEqual, 1)
				So(resp.Recommendations[0].Role, ShouldEqual, "Backend Developer")
				So(resp.Recommendations[0].Score, ShouldAlmostEqual, 5.5)
			})
		})

		Convey("When the profile name is missing", func() {
			rec := doJSON(mux, http.MethodPost, "/recommend", `{"academic_standing":3}`)

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When academic standing is negative", func() {
			rec := doJSON(mux, http.MethodPost, "/recommend", `{"name":"Sam","academic_standing":-1}`)

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When top_n exceeds the configured maximum", func() {
			rec := doJSON(mux, http.MethodPost, "/recommend", `{"name":"Sam","academic_standing":3,"top_n":100}`)

			Convey("Then the request is rejected as limit exceeded", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				var resp errorResponse
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Code, ShouldEqual, "limit_exceeded")
			})
		})

		Convey("When top_n is within bounds", func() {
			rec := doJSON(mux, http.MethodPost, "/recommend", `{"name":"Sam","academic_standing":3,"top_n":3}`)

			Convey("Then the bound is forwarded", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(deps.lastTopN, ShouldNotBeNil)
				So(*deps.lastTopN, ShouldEqual, 3)
			})
		})
	})
}

func TestHandleListRoles(t *testing.T) {
	Convey("Given the roles endpoint", t, func() {
		deps := &mockDeps{roles: []model.Role{
			{Name: "Backend Developer", Category: "Engineering", RequiredSkills: []string{"Go"}},
		}}
		mux := newTestMux(deps)

		Convey("When listing with a category filter", func() {
			rec := doJSON(mux, http.MethodGet, "/roles?category=Engineering", "")

			Convey("Then the filter is forwarded and roles returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(deps.lastCategory, ShouldEqual, "Engineering")
				var resp []roleResponse
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(len(resp), ShouldEqual, 1)
				So(resp[0].Name, ShouldEqual, "Backend Developer")
			})
		})
	})
}

func TestHandleAssessment(t *testing.T) {
	Convey("Given the assessment endpoints", t, func() {
		deps := &mockDeps{
			assessment: Assessment{
				SessionID: "token-1",
				Questions: []model.Question{{ID: "q1", Text: "I enjoy solving problems."}},
			},
			scoreResult: psych.Result{Score: 85, Tier: psych.TierHigh, Recommendations: []string{"Data Scientist"}},
		}
		mux := newTestMux(deps)

		Convey("When requesting questions", func() {
			rec := doJSON(mux, http.MethodGet, "/assessment/questions", "")

			Convey("Then a session and its questions are returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var resp questionsResponse
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.SessionID, ShouldEqual, "token-1")
				So(len(resp.Questions), ShouldEqual, 1)
				So(deps.lastCount, ShouldEqual, 0)
			})
		})

		Convey("When requesting an explicit question count", func() {
			rec := doJSON(mux, http.MethodGet, "/assessment/questions?count=5", "")

			Convey("Then the count is forwarded", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(deps.lastCount, ShouldEqual, 5)
			})
		})

		Convey("When requesting a malformed count", func() {
			rec := doJSON(mux, http.MethodGet, "/assessment/questions?count=zero", "")

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When scoring valid answers", func() {
			body := `{"session_id":"token-1","responses":{"q1":"agree"}}`
			rec := doJSON(mux, http.MethodPost, "/assessment/score", body)

			Convey("Then the result is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var resp scoreResponse
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Score, ShouldAlmostEqual, 85)
				So(resp.Tier, ShouldEqual, "high")
				So(deps.lastSessionID, ShouldEqual, "token-1")
			})
		})

		Convey("When scoring with an unknown session", func() {
			deps.scoreErr = service.ErrUnknownSession
			body := `{"session_id":"nope","responses":{"q1":"agree"}}`
			rec := doJSON(mux, http.MethodPost, "/assessment/score", body)

			Convey("Then the session is reported missing", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When scoring a mismatched answer set", func() {
			deps.scoreErr = psych.ErrResponseMismatch
			body := `{"session_id":"token-1","responses":{"q9":"agree"}}`
			rec := doJSON(mux, http.MethodPost, "/assessment/score", body)

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When scoring without responses", func() {
			rec := doJSON(mux, http.MethodPost, "/assessment/score", `{"session_id":"token-1"}`)

			Convey("Then the request is rejected before the engine runs", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(deps.lastSessionID, ShouldBeEmpty)
			})
		})
	})
}

func TestHandleResume(t *testing.T) {
	Convey("Given the resume endpoint", t, func() {
		deps := &mockDeps{analysis: AnalysisResult{
			Skills:          []string{"python", "sql"},
			MatchedRoles:    []string{"Data Scientist"},
			Recommendations: []string{"Data Scientist", "ML Engineer"},
		}}
		mux := newTestMux(deps)

		Convey("When posting resume text", func() {
			rec := doJSON(mux, http.MethodPost, "/resume/skills", `{"text":"Python and SQL heavy work"}`)

			Convey("Then the analysis is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var resp resumeResponse
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Skills, ShouldResemble, []string{"python", "sql"})
				So(resp.Recommendations, ShouldResemble, []string{"Data Scientist", "ML Engineer"})
			})
		})

		Convey("When the text is missing", func() {
			rec := doJSON(mux, http.MethodPost, "/resume/skills", `{}`)

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestHandleChat(t *testing.T) {
	Convey("Given the chat endpoint", t, func() {
		deps := &mockDeps{chatReply: "study distributed systems"}
		mux := newTestMux(deps)

		Convey("When posting a message", func() {
			rec := doJSON(mux, http.MethodPost, "/chat", `{"message":"what next?"}`)

			Convey("Then the advisor reply is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var resp chatResponse
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Reply, ShouldEqual, "study distributed systems")
			})
		})

		Convey("When the advisor is unavailable", func() {
			deps.chatErr = ai.ErrUnavailable
			rec := doJSON(mux, http.MethodPost, "/chat", `{"message":"hello"}`)

			Convey("Then the endpoint reports unavailability", func() {
				So(rec.Code, ShouldEqual, http.StatusServiceUnavailable)
				var resp errorResponse
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Code, ShouldEqual, "advisor_unavailable")
			})
		})
	})
}

func TestOperationalEndpoints(t *testing.T) {
	Convey("Given the operational endpoints", t, func() {
		deps := &mockDeps{}
		mux := newTestMux(deps)

		Convey("Then healthz answers ok", func() {
			rec := doJSON(mux, http.MethodGet, "/healthz", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "ok")
		})

		Convey("Then stats returns the provider payload", func() {
			rec := doJSON(mux, http.MethodGet, "/stats", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "started")
		})

		Convey("Then metrics serves the prometheus registry", func() {
			rec := doJSON(mux, http.MethodGet, "/metrics", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
		})
	})
}
