package model

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 {
	return &f
}

func strPtr(s string) *string {
	return &s
}

// validCreateRequest is the baseline fixture; each test mutates one field.
func validCreateRequest() CreateMonsterRequest {
	return CreateMonsterRequest{
		Name: MonsterNameInput{
			First: "Janfri",
			Last:  "Man",
			Title: "Mr",
		},
		Gender:          "male",
		Description:     "A fearsome but polite monster",
		Nationality:     []string{"ES", "US"},
		Image:           "https://example.com/janfri.png",
		GoldBalance:     floatPtr(100),
		Speed:           floatPtr(42.5),
		Health:          floatPtr(88),
		SecretNotes:     "Afraid of thunderstorms",
		MonsterPassword: "password1",
	}
}

func TestCreateMonsterRequest_Validate(t *testing.T) {
	t.Run("valid request passes", func(t *testing.T) {
		req := validCreateRequest()
		assert.NoError(t, req.Validate())
	})

	t.Run("optional fields can be omitted", func(t *testing.T) {
		req := validCreateRequest()
		req.Gender = ""
		req.GoldBalance = nil
		req.SecretNotes = ""
		req.Author = ""
		assert.NoError(t, req.Validate())
	})

	tests := []struct {
		name   string
		mutate func(*CreateMonsterRequest)
	}{
		{"missing name.first", func(r *CreateMonsterRequest) { r.Name.First = "" }},
		{"missing name.last", func(r *CreateMonsterRequest) { r.Name.Last = "" }},
		{"missing name.title", func(r *CreateMonsterRequest) { r.Name.Title = "" }},
		{"name.first too long", func(r *CreateMonsterRequest) { r.Name.First = strings.Repeat("a", 51) }},
		{"name.title too long", func(r *CreateMonsterRequest) { r.Name.Title = strings.Repeat("a", 11) }},
		{"invalid gender", func(r *CreateMonsterRequest) { r.Gender = "dragon" }},
		{"description too short", func(r *CreateMonsterRequest) { r.Description = "too short" }},
		{"description too long", func(r *CreateMonsterRequest) { r.Description = strings.Repeat("a", 101) }},
		{"missing nationality", func(r *CreateMonsterRequest) { r.Nationality = nil }},
		{"too many nationalities", func(r *CreateMonsterRequest) {
			r.Nationality = []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
		}},
		{"nationality entry too long", func(r *CreateMonsterRequest) {
			r.Nationality = []string{strings.Repeat("a", 51)}
		}},
		{"missing image", func(r *CreateMonsterRequest) { r.Image = "" }},
		{"image not a URL", func(r *CreateMonsterRequest) { r.Image = "not a url" }},
		{"negative goldBalance", func(r *CreateMonsterRequest) { r.GoldBalance = floatPtr(-1) }},
		{"goldBalance above cap", func(r *CreateMonsterRequest) { r.GoldBalance = floatPtr(1_000_001) }},
		{"missing speed", func(r *CreateMonsterRequest) { r.Speed = nil }},
		{"negative speed", func(r *CreateMonsterRequest) { r.Speed = floatPtr(-0.5) }},
		{"missing health", func(r *CreateMonsterRequest) { r.Health = nil }},
		{"health above cap", func(r *CreateMonsterRequest) { r.Health = floatPtr(2_000_000) }},
		{"secretNotes too long", func(r *CreateMonsterRequest) { r.SecretNotes = strings.Repeat("a", 101) }},
		{"missing monsterPassword", func(r *CreateMonsterRequest) { r.MonsterPassword = "" }},
		{"monsterPassword too short", func(r *CreateMonsterRequest) { r.MonsterPassword = "abcd" }},
		{"monsterPassword too long", func(r *CreateMonsterRequest) { r.MonsterPassword = strings.Repeat("a", 52) }},
		{"author not a UUID", func(r *CreateMonsterRequest) { r.Author = "not-a-uuid" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestCreateMonsterRequest_NewMonster(t *testing.T) {
	t.Run("maps all fields", func(t *testing.T) {
		authorID := uuid.New()
		req := validCreateRequest()
		req.Author = authorID.String()

		m := req.NewMonster()

		assert.Equal(t, "Janfri", m.Name.First)
		assert.Equal(t, "Man", m.Name.Last)
		assert.Equal(t, "Mr", m.Name.Title)
		require.NotNil(t, m.Gender)
		assert.Equal(t, "male", *m.Gender)
		assert.Equal(t, []string{"ES", "US"}, m.Nationality)
		assert.True(t, m.GoldBalance.Equal(decimal.NewFromInt(100)))
		assert.Equal(t, 42.5, m.Speed)
		assert.Equal(t, 88.0, m.Health)
		require.NotNil(t, m.SecretNotes)
		assert.Equal(t, "Afraid of thunderstorms", *m.SecretNotes)
		require.NotNil(t, m.AuthorID)
		assert.Equal(t, authorID, *m.AuthorID)
		assert.Equal(t, 0, m.Likes)
	})

	t.Run("gold defaults to zero", func(t *testing.T) {
		req := validCreateRequest()
		req.GoldBalance = nil

		m := req.NewMonster()

		assert.True(t, m.GoldBalance.IsZero())
	})
}

func TestUpdateMonsterRequest_Validate(t *testing.T) {
	t.Run("empty patch is rejected", func(t *testing.T) {
		req := UpdateMonsterRequest{}
		assert.Error(t, req.Validate())
	})

	t.Run("single field is enough", func(t *testing.T) {
		req := UpdateMonsterRequest{Speed: floatPtr(10)}
		assert.NoError(t, req.Validate())
	})

	t.Run("bounds still apply", func(t *testing.T) {
		req := UpdateMonsterRequest{Description: strPtr("short")}
		assert.Error(t, req.Validate())
	})

	t.Run("partial name update", func(t *testing.T) {
		req := UpdateMonsterRequest{Name: &MonsterNameUpdate{First: strPtr("Gruk")}}
		assert.NoError(t, req.Validate())
	})
}

func TestUpdateMonsterRequest_ApplyTo(t *testing.T) {
	base := validCreateRequest().NewMonster()
	base.ID = uuid.New()

	patch := UpdateMonsterRequest{
		Name:        &MonsterNameUpdate{First: strPtr("Gruk")},
		Speed:       floatPtr(99),
		SecretNotes: strPtr("Likes tea now"),
	}

	patch.ApplyTo(base)

	assert.Equal(t, "Gruk", base.Name.First)
	assert.Equal(t, "Man", base.Name.Last)
	assert.Equal(t, 99.0, base.Speed)
	assert.Equal(t, 88.0, base.Health)
	require.NotNil(t, base.SecretNotes)
	assert.Equal(t, "Likes tea now", *base.SecretNotes)
}

func TestGetMonsterGoldRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		amount  *float64
		wantErr bool
	}{
		{"valid amount", floatPtr(50), false},
		{"zero amount", floatPtr(0), false},
		{"missing amount", nil, true},
		{"negative amount", floatPtr(-10), true},
		{"amount above cap", floatPtr(1_000_001), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := GetMonsterGoldRequest{GoldGetAmount: tt.amount}
			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestListMonstersRequest(t *testing.T) {
	t.Run("sortBy format enforced", func(t *testing.T) {
		assert.NoError(t, ListMonstersRequest{SortBy: "speed:desc"}.Validate())
		assert.NoError(t, ListMonstersRequest{SortBy: "name.first:asc"}.Validate())
		assert.Error(t, ListMonstersRequest{SortBy: "speed"}.Validate())
		assert.Error(t, ListMonstersRequest{SortBy: "speed:up"}.Validate())
	})

	t.Run("projectBy format enforced", func(t *testing.T) {
		assert.NoError(t, ListMonstersRequest{ProjectBy: "secretNotes:hide"}.Validate())
		assert.NoError(t, ListMonstersRequest{ProjectBy: "name:include"}.Validate())
		assert.Error(t, ListMonstersRequest{ProjectBy: "secretNotes"}.Validate())
	})

	t.Run("limit cap enforced", func(t *testing.T) {
		assert.Error(t, ListMonstersRequest{Limit: 101}.Validate())
	})

	t.Run("normalize fills defaults", func(t *testing.T) {
		req := ListMonstersRequest{}
		req.Normalize()
		assert.Equal(t, 10, req.Limit)
		assert.Equal(t, 1, req.Page)
	})

	t.Run("normalize keeps explicit values", func(t *testing.T) {
		req := ListMonstersRequest{Limit: 25, Page: 3}
		req.Normalize()
		assert.Equal(t, 25, req.Limit)
		assert.Equal(t, 3, req.Page)
	})
}

func TestNewQueryResult(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		total      int
		totalPages int
	}{
		{"exact multiple", 1, 10, 30, 3},
		{"partial last page", 2, 10, 31, 4},
		{"empty result", 1, 10, 0, 0},
		{"single page", 1, 10, 7, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewQueryResult([]*Monster{}, tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.totalPages, result.TotalPages)
			assert.Equal(t, tt.total, result.TotalResults)
			assert.Equal(t, tt.page, result.Page)
			assert.Equal(t, tt.limit, result.Limit)
		})
	}
}
