package experienceRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"central/models"

	"go.uber.org/zap"
)

type stubRepo struct {
	byID  map[int]models.Experience
	calls int
}

func newStubRepo() *stubRepo {
	return &stubRepo{byID: map[int]models.Experience{
		1: {ID: 1, Code: "01", Name: "Mundo en Degustación", Price: 150},
		2: {ID: 2, Code: "02", Name: "Inmersión Costa Sierra Selva", Price: 190},
	}}
}

func (s *stubRepo) GetByID(_ context.Context, id int) (*models.Experience, error) {
	s.calls++
	if exp, ok := s.byID[id]; ok {
		return &exp, nil
	}
	return nil, fmt.Errorf("experience %d not found", id)
}

func (s *stubRepo) GetByCode(_ context.Context, code string) (*models.Experience, error) {
	s.calls++
	for _, exp := range s.byID {
		if exp.Code == code {
			e := exp
			return &e, nil
		}
	}
	return nil, fmt.Errorf("experience code %q not found", code)
}

func (s *stubRepo) List(_ context.Context) ([]models.Experience, error) {
	s.calls++
	var out []models.Experience
	for _, exp := range s.byID {
		out = append(out, exp)
	}
	return out, nil
}

func (s *stubRepo) SeedDefaults(_ context.Context) error {
	s.calls++
	return nil
}

func TestCachedRepoPassThroughWithoutCache(t *testing.T) {
	stub := newStubRepo()
	repo := NewCachedExperienceRepo(stub, nil, zap.NewNop())
	ctx := context.Background()

	exp, err := repo.GetByID(ctx, 1)
	if err != nil || exp.Code != "01" {
		t.Fatalf("GetByID = %+v, %v", exp, err)
	}
	if _, err := repo.GetByCode(ctx, "02"); err != nil {
		t.Fatalf("GetByCode: %v", err)
	}
	if exps, err := repo.List(ctx); err != nil || len(exps) != 2 {
		t.Fatalf("List = %d experiences, %v", len(exps), err)
	}
	if err := repo.SeedDefaults(ctx); err != nil {
		t.Fatalf("SeedDefaults: %v", err)
	}
	if stub.calls != 4 {
		t.Errorf("backing store calls = %d, want 4", stub.calls)
	}

	if _, err := repo.GetByID(ctx, 99); err == nil {
		t.Error("expected not-found error to pass through")
	}
}

func TestDecodeExperience(t *testing.T) {
	payload, _ := json.Marshal(models.Experience{ID: 3, Code: "03", Name: "Theobroma", Price: 120})

	exp, ok := decodeExperience(string(payload))
	if !ok || exp.ID != 3 || exp.Price != 120 {
		t.Errorf("decodeExperience = %+v, %v", exp, ok)
	}

	for _, bad := range []string{"", "{", "null", "{}"} {
		if _, ok := decodeExperience(bad); ok {
			t.Errorf("decodeExperience(%q) accepted a corrupt payload", bad)
		}
	}
}

func TestDecodeExperienceList(t *testing.T) {
	payload, _ := json.Marshal([]models.Experience{{ID: 1, Code: "01"}, {ID: 2, Code: "02"}})

	exps, ok := decodeExperienceList(string(payload))
	if !ok || len(exps) != 2 {
		t.Errorf("decodeExperienceList = %d experiences, %v", len(exps), ok)
	}

	for _, bad := range []string{"", "[", "null", "[]"} {
		if _, ok := decodeExperienceList(bad); ok {
			t.Errorf("decodeExperienceList(%q) accepted a corrupt payload", bad)
		}
	}
}
