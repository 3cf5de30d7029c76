package domain

import "context"

type City struct {
	ID   uint   `json:"id"`
	Name string `json:"city"`
}

type ProfessionGroup struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Profession struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	GroupID uint   `json:"group_id"`
}

// Taxonomy is the reference data inserted by Seed.
type Taxonomy struct {
	Cities      []string
	Groups      []string
	Professions []ProfessionSeed
}

type ProfessionSeed struct {
	Name  string
	Group string
}

type SeedResult struct {
	Cities      int64 `json:"cities"`
	Groups      int64 `json:"profession_groups"`
	Professions int64 `json:"professions"`
}

type CatalogRepository interface {
	Cities(ctx context.Context) ([]City, error)
	ProfessionGroups(ctx context.Context) ([]ProfessionGroup, error)
	Professions(ctx context.Context, groupID *uint) ([]Profession, error)
	CityExists(ctx context.Context, id uint) (bool, error)
	ProfessionExists(ctx context.Context, id uint) (bool, error)
	Seed(ctx context.Context, t Taxonomy) (SeedResult, error)
}
