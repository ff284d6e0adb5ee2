package httpapi

import (
	"encoding/json"
	"net/http"
	"testing"
)

func createEmployee(t *testing.T, e testEnv, adminToken, name, email string) (id string) {
	t.Helper()
	w := e.do(t, http.MethodPost, "/v1/users", adminToken, map[string]string{
		"full_name": name,
		"email":     email,
		"password":  "supersecret",
		"role":      "employee",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create employee: status %d body %s", w.Code, w.Body.String())
	}
	var u struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &u); err != nil || u.ID == "" {
		t.Fatalf("decode created employee: %v body %s", err, w.Body.String())
	}
	return u.ID
}

func TestProfiles_AdminCreatesEmployeeReadsOwn(t *testing.T) {
	e := newTestEnv(t)
	registerOrg(t, e)
	adminToken, _ := login(t, e, "ada@acme.test", "supersecret")
	empID := createEmployee(t, e, adminToken, "Eve Employee", "eve@acme.test")

	w := e.do(t, http.MethodPost, "/v1/profiles", adminToken, map[string]any{
		"user_id":      empID,
		"position":     "Accountant",
		"salary_minor": 45000000,
		"currency":     "RWF",
		"hire_date":    "2023-04-01T00:00:00Z",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create profile: status %d body %s", w.Code, w.Body.String())
	}

	// A second profile for the same user is rejected.
	w = e.do(t, http.MethodPost, "/v1/profiles", adminToken, map[string]any{
		"user_id":      empID,
		"position":     "Accountant",
		"salary_minor": 45000000,
		"currency":     "RWF",
		"hire_date":    "2023-04-01T00:00:00Z",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate profile, got %d", w.Code)
	}
	var body errorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body.Code != "PROFILE_EXISTS" {
		t.Fatalf("expected PROFILE_EXISTS, got %s", w.Body.String())
	}

	// The employee sees their own profile with the account embedded.
	empToken, _ := login(t, e, "eve@acme.test", "supersecret")
	w = e.do(t, http.MethodGet, "/v1/profiles/me", empToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("my profile: status %d body %s", w.Code, w.Body.String())
	}
	var mine struct {
		Position    string `json:"position"`
		SalaryMinor int64  `json:"salary_minor"`
		User        struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &mine); err != nil {
		t.Fatalf("decode my profile: %v", err)
	}
	if mine.Position != "Accountant" || mine.SalaryMinor != 45000000 {
		t.Fatalf("unexpected profile: %s", w.Body.String())
	}
	if mine.User.Email != "eve@acme.test" {
		t.Fatalf("expected embedded account, got %s", w.Body.String())
	}

	// Admin listing is org-wide.
	w = e.do(t, http.MethodGet, "/v1/profiles", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list profiles: status %d", w.Code)
	}
	var list struct {
		Profiles []json.RawMessage `json:"profiles"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil || len(list.Profiles) != 1 {
		t.Fatalf("expected one profile, got %s", w.Body.String())
	}
}

func TestMyProfile_MissingIsNotFound(t *testing.T) {
	e := newTestEnv(t)
	registerOrg(t, e)
	adminToken, _ := login(t, e, "ada@acme.test", "supersecret")

	w := e.do(t, http.MethodGet, "/v1/profiles/me", adminToken, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without a profile, got %d", w.Code)
	}
	var body errorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body.Code != "PROFILE_NOT_FOUND" {
		t.Fatalf("expected PROFILE_NOT_FOUND, got %s", w.Body.String())
	}
}

func TestGoals_PrivateToOwner(t *testing.T) {
	e := newTestEnv(t)
	registerOrg(t, e)
	adminToken, _ := login(t, e, "ada@acme.test", "supersecret")
	createEmployee(t, e, adminToken, "Eve Employee", "eve@acme.test")
	empToken, _ := login(t, e, "eve@acme.test", "supersecret")

	w := e.do(t, http.MethodPost, "/v1/goals", empToken, map[string]any{
		"title":        "Emergency fund",
		"target_minor": 1000,
		"currency":     "RWF",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create goal: status %d body %s", w.Code, w.Body.String())
	}
	var g struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &g); err != nil || g.ID == "" {
		t.Fatalf("decode goal: %v body %s", err, w.Body.String())
	}

	// Goals are invisible to everyone but the owner, admins included.
	w = e.do(t, http.MethodGet, "/v1/goals/"+g.ID, adminToken, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for non-owner, got %d", w.Code)
	}

	w = e.do(t, http.MethodPut, "/v1/goals/"+g.ID, empToken, map[string]any{"saved_minor": 1200})
	if w.Code != http.StatusOK {
		t.Fatalf("update goal: status %d body %s", w.Code, w.Body.String())
	}
	var updated struct {
		SavedMinor int64 `json:"saved_minor"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil || updated.SavedMinor != 1200 {
		t.Fatalf("expected progress recorded, got %s", w.Body.String())
	}

	w = e.do(t, http.MethodDelete, "/v1/goals/"+g.ID, empToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete goal: status %d", w.Code)
	}
	w = e.do(t, http.MethodGet, "/v1/goals", empToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list goals: status %d", w.Code)
	}
	var list struct {
		Goals []json.RawMessage `json:"goals"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil || len(list.Goals) != 0 {
		t.Fatalf("expected empty goal list, got %s", w.Body.String())
	}
}
