package api_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/ironledger/ironledger/api"
	"github.com/ironledger/ironledger/internal/models"
	"github.com/ironledger/ironledger/pkg/repository/mock"
)

func TestDashboardSummary(t *testing.T) {
	mocks := mock.NewMocks()
	mocks.CompoundRepo.Stored = []*models.Compound{
		{ID: "c1", UserID: "u1", Name: "Test E", Category: "TRT"},
		{ID: "c2", UserID: "u1", Name: "Anastrozole", Category: "ANCILLARY", IsArchived: true},
		{ID: "c3", UserID: "other", Name: "Test C", Category: "TRT"},
	}
	now := time.Now().UTC()
	mocks.DoseRepo.Stored = []*models.DoseLog{
		{ID: "d1", UserID: "u1", CompoundID: "c1", DateTime: now.Add(-24 * time.Hour), DoseMg: 100, Route: "IM", Site: "GLUTE"},
		{ID: "d2", UserID: "u1", CompoundID: "c1", DateTime: now.Add(-3 * 24 * time.Hour), DoseMg: 100, Route: "IM", Site: "DELT"},
		{ID: "d3", UserID: "u1", CompoundID: "c2", DateTime: now.Add(-30 * 24 * time.Hour), DoseMg: 1, Route: "ORAL", Site: "OTHER"},
		{ID: "d4", UserID: "other", CompoundID: "c3", DateTime: now, DoseMg: 100, Route: "IM", Site: "GLUTE"},
	}
	h := api.NewDashboardHandler(mocks.CompoundRepo, mocks.DoseRepo)

	res, b := doRequest(t, http.HandlerFunc(h.Summary), authedRequest(http.MethodGet, "/dashboard/summary", nil, "u1"))
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", res.StatusCode, string(b))
	}

	var got struct {
		TotalCompounds         int64 `json:"totalCompounds"`
		TotalDoses             int64 `json:"totalDoses"`
		DosesLast7Days         int64 `json:"dosesLast7Days"`
		DistinctCompoundsDosed int64 `json:"distinctCompoundsDosed"`
	}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal summary: %v", err)
	}

	// archived compounds are not counted; the foreign user's rows never are
	if got.TotalCompounds != 1 {
		t.Fatalf("totalCompounds: expected 1, got %d", got.TotalCompounds)
	}
	if got.TotalDoses != 3 {
		t.Fatalf("totalDoses: expected 3, got %d", got.TotalDoses)
	}
	if got.DosesLast7Days != 2 {
		t.Fatalf("dosesLast7Days: expected 2, got %d", got.DosesLast7Days)
	}
	if got.DistinctCompoundsDosed != 2 {
		t.Fatalf("distinctCompoundsDosed: expected 2, got %d", got.DistinctCompoundsDosed)
	}
}

func TestDashboardSummary_Unauthenticated(t *testing.T) {
	mocks := mock.NewMocks()
	h := api.NewDashboardHandler(mocks.CompoundRepo, mocks.DoseRepo)

	res, _ := doRequest(t, http.HandlerFunc(h.Summary), authedRequest(http.MethodGet, "/dashboard/summary", nil, ""))
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
}

func TestDashboardSummary_EmptyAccount(t *testing.T) {
	mocks := mock.NewMocks()
	h := api.NewDashboardHandler(mocks.CompoundRepo, mocks.DoseRepo)

	res, b := doRequest(t, http.HandlerFunc(h.Summary), authedRequest(http.MethodGet, "/dashboard/summary", nil, "u1"))
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var got map[string]int64
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, k := range []string{"totalCompounds", "totalDoses", "dosesLast7Days", "distinctCompoundsDosed"} {
		if got[k] != 0 {
			t.Fatalf("%s: expected 0 for a fresh account, got %d", k, got[k])
		}
	}
}
