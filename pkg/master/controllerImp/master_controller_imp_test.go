package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"bonsai/entities"
	"bonsai/pkg/master/repository"
)

type fakeMasterRepo struct {
	role    string
	creates int
	deletes int
}

func (f *fakeMasterRepo) UserRole(uint) (string, error) { return f.role, nil }

func (f *fakeMasterRepo) ListPesticides() ([]entities.PesticideMaster, error) {
	return []entities.PesticideMaster{{PesticideID: 1, Name: "オルトラン", Type: "insecticide", IntervalDays: 14}}, nil
}
func (f *fakeMasterRepo) CreatePesticide(*entities.PesticideMaster) error { f.creates++; return nil }
func (f *fakeMasterRepo) UpdatePesticide(*entities.PesticideMaster) error { return nil }
func (f *fakeMasterRepo) DeletePesticide(uint) error                      { f.deletes++; return nil }
func (f *fakeMasterRepo) PesticideRefs(uint) (int64, error)               { return 0, nil }

func (f *fakeMasterRepo) ListPestDiseases() ([]entities.PestDiseaseMaster, error) { return nil, nil }
func (f *fakeMasterRepo) CreatePestDisease(*entities.PestDiseaseMaster) error {
	f.creates++
	return nil
}
func (f *fakeMasterRepo) DeletePestDisease(uint) error        { f.deletes++; return nil }
func (f *fakeMasterRepo) PestDiseaseRefs(uint) (int64, error) { return 0, nil }

func (f *fakeMasterRepo) ListSpecies() ([]entities.SpeciesMaster, error) { return nil, nil }
func (f *fakeMasterRepo) CreateSpecies(*entities.SpeciesMaster) error    { f.creates++; return nil }
func (f *fakeMasterRepo) DeleteSpecies(uint) error                       { f.deletes++; return nil }
func (f *fakeMasterRepo) SpeciesRefs(uint) (int64, error)                { return 0, nil }

func (f *fakeMasterRepo) ListEffectiveness() ([]repository.EffectivenessRow, error) {
	return nil, nil
}
func (f *fakeMasterRepo) UpsertEffectiveness(*entities.PesticideEffectiveness) error {
	f.creates++
	return nil
}
func (f *fakeMasterRepo) DeleteEffectiveness(uint) error { f.deletes++; return nil }

func (f *fakeMasterRepo) ListSpeciesRisks() ([]repository.SpeciesRiskRow, error) { return nil, nil }
func (f *fakeMasterRepo) UpsertSpeciesRisk(*entities.SpeciesPestDisease) error {
	f.creates++
	return nil
}
func (f *fakeMasterRepo) DeleteSpeciesRisk(uint) error { f.deletes++; return nil }

func (f *fakeMasterRepo) ListProhibited() ([]repository.ProhibitedRow, error) { return nil, nil }
func (f *fakeMasterRepo) UpsertProhibited(*entities.SpeciesProhibitedPesticide) error {
	f.creates++
	return nil
}
func (f *fakeMasterRepo) DeleteProhibited(uint) error { f.deletes++; return nil }

func (f *fakeMasterRepo) Summary() (map[string]int64, error) { return map[string]int64{}, nil }

func call(h echo.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h(e.NewContext(req, rec))
	return rec
}

func TestAdminGateBlocksNonAdminReads(t *testing.T) {
	repo := &fakeMasterRepo{role: "user"}
	h := New(repo)

	rec := call(h.ListPesticides, http.MethodGet, "/?user_id=42", "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("body is not a single JSON object: %q", rec.Body.String())
	}
	if resp["error"] != "管理者権限が必要です" {
		t.Errorf("error = %q", resp["error"])
	}
	if strings.Contains(rec.Body.String(), "オルトラン") {
		t.Error("master list leaked past the rejection")
	}
}

func TestAdminGateBlocksNonAdminMutations(t *testing.T) {
	repo := &fakeMasterRepo{role: "user"}
	h := New(repo)

	rec := call(h.AddPesticide, http.MethodPost, "/",
		`{"user_id":42,"name":"新薬","type":"insecticide","interval_days":7}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("add status = %d, want 403", rec.Code)
	}
	if repo.creates != 0 {
		t.Errorf("creates = %d, unauthorized write executed", repo.creates)
	}

	rec = call(h.UpdatePesticide, http.MethodPut, "/?user_id=42", `{"user_id":42,"name":"新薬"}`)
	if rec.Code != http.StatusForbidden {
		t.Errorf("update status = %d, want 403", rec.Code)
	}

	rec = call(h.DeletePesticide, http.MethodDelete, "/?user_id=42", "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("delete status = %d, want 403", rec.Code)
	}
	if repo.deletes != 0 {
		t.Errorf("deletes = %d, unauthorized delete executed", repo.deletes)
	}
}

func TestAdminGateRequiresUserID(t *testing.T) {
	h := New(&fakeMasterRepo{role: "admin"})

	rec := call(h.Summary, http.MethodGet, "/", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 without user_id", rec.Code)
	}
	var resp map[string]string
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["error"] != "ユーザーIDが必要です" {
		t.Errorf("error = %q", resp["error"])
	}
}

func TestAdminGateAllowsAdmin(t *testing.T) {
	repo := &fakeMasterRepo{role: "admin"}
	h := New(repo)

	rec := call(h.ListPesticides, http.MethodGet, "/?user_id=1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}

	rec = call(h.AddPesticide, http.MethodPost, "/",
		`{"user_id":1,"name":"新薬","type":"insecticide","interval_days":7}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add status = %d, want 201", rec.Code)
	}
	if repo.creates != 1 {
		t.Errorf("creates = %d, want 1", repo.creates)
	}
}
