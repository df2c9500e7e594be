package model

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	maxStatValue  = 1_000_000.0
	defaultLimit  = 10
	defaultPage   = 1
	maxQueryLimit = 100
)

var (
	sortByPattern    = regexp.MustCompile(`^[a-zA-Z_.]+:(asc|desc)$`)
	projectByPattern = regexp.MustCompile(`^[a-zA-Z_.]+:(hide|include)$`)
)

// ========================================
// CREATE
// ========================================

// MonsterNameInput is the nested name object on create; every part is required.
type MonsterNameInput struct {
	First string `json:"first"`
	Last  string `json:"last"`
	Title string `json:"title"`
}

func (n MonsterNameInput) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.First, validation.Required, validation.Length(1, 50)),
		validation.Field(&n.Last, validation.Required, validation.Length(1, 50)),
		validation.Field(&n.Title, validation.Required, validation.Length(1, 10)),
	)
}

type CreateMonsterRequest struct {
	Name            MonsterNameInput `json:"name"`
	Gender          string           `json:"gender"`
	Description     string           `json:"description"`
	Nationality     []string         `json:"nationality"`
	Image           string           `json:"image"`
	GoldBalance     *float64         `json:"goldBalance"`
	Speed           *float64         `json:"speed"`
	Health          *float64         `json:"health"`
	SecretNotes     string           `json:"secretNotes"`
	MonsterPassword string           `json:"monsterPassword"`
	Author          string           `json:"author"`
}

func (r CreateMonsterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name),
		validation.Field(&r.Gender,
			validation.In("male", "female", "other").Error("gender must be one of male, female, other"),
		),
		validation.Field(&r.Description, validation.Required, validation.Length(10, 100)),
		validation.Field(&r.Nationality,
			validation.Required,
			validation.Length(1, 9),
			validation.Each(validation.Required, validation.Length(1, 50)),
		),
		validation.Field(&r.Image, validation.Required, is.URL, validation.Length(1, 250)),
		validation.Field(&r.GoldBalance, validation.Min(0.0), validation.Max(maxStatValue)),
		validation.Field(&r.Speed, validation.NotNil, validation.Min(0.0), validation.Max(maxStatValue)),
		validation.Field(&r.Health, validation.NotNil, validation.Min(0.0), validation.Max(maxStatValue)),
		validation.Field(&r.SecretNotes, validation.Length(1, 100)),
		validation.Field(&r.MonsterPassword, validation.Required, validation.Length(5, 51)),
		validation.Field(&r.Author, is.UUID),
	)
}

// ========================================
// UPDATE
// ========================================

// MonsterNameUpdate is the nested name object on update; parts are optional.
type MonsterNameUpdate struct {
	First *string `json:"first"`
	Last  *string `json:"last"`
	Title *string `json:"title"`
}

func (n MonsterNameUpdate) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.First, validation.Length(1, 50)),
		validation.Field(&n.Last, validation.Length(1, 50)),
		validation.Field(&n.Title, validation.Length(1, 10)),
	)
}

// UpdateMonsterRequest is a sparse patch: only present fields are applied.
type UpdateMonsterRequest struct {
	Name            *MonsterNameUpdate `json:"name"`
	Gender          *string            `json:"gender"`
	Description     *string            `json:"description"`
	Nationality     []string           `json:"nationality"`
	Image           *string            `json:"image"`
	GoldBalance     *float64           `json:"goldBalance"`
	Speed           *float64           `json:"speed"`
	Health          *float64           `json:"health"`
	SecretNotes     *string            `json:"secretNotes"`
	MonsterPassword *string            `json:"monsterPassword"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (r UpdateMonsterRequest) IsEmpty() bool {
	return r.Name == nil &&
		r.Gender == nil &&
		r.Description == nil &&
		r.Nationality == nil &&
		r.Image == nil &&
		r.GoldBalance == nil &&
		r.Speed == nil &&
		r.Health == nil &&
		r.SecretNotes == nil &&
		r.MonsterPassword == nil
}

func (r UpdateMonsterRequest) Validate() error {
	if r.IsEmpty() {
		return validation.NewError("validation_empty_body", "update body must contain at least one field")
	}

	return validation.ValidateStruct(&r,
		validation.Field(&r.Name),
		validation.Field(&r.Gender,
			validation.In("male", "female", "other").Error("gender must be one of male, female, other"),
		),
		validation.Field(&r.Description, validation.Length(10, 100)),
		validation.Field(&r.Nationality,
			validation.Length(1, 9),
			validation.Each(validation.Required, validation.Length(1, 50)),
		),
		validation.Field(&r.Image, is.URL, validation.Length(1, 250)),
		validation.Field(&r.GoldBalance, validation.Min(0.0), validation.Max(maxStatValue)),
		validation.Field(&r.Speed, validation.Min(0.0), validation.Max(maxStatValue)),
		validation.Field(&r.Health, validation.Min(0.0), validation.Max(maxStatValue)),
		validation.Field(&r.SecretNotes, validation.Length(1, 100)),
		validation.Field(&r.MonsterPassword, validation.Length(5, 51)),
	)
}

// ========================================
// GOLD DRAIN
// ========================================

type GetMonsterGoldRequest struct {
	GoldGetAmount *float64 `json:"goldGetAmount"`
}

func (r GetMonsterGoldRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.GoldGetAmount,
			validation.NotNil,
			validation.Min(0.0),
			validation.Max(maxStatValue),
		),
	)
}

// Amount returns the requested amount as a decimal.
func (r GetMonsterGoldRequest) Amount() decimal.Decimal {
	if r.GoldGetAmount == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*r.GoldGetAmount)
}

// ========================================
// LIST / QUERY
// ========================================

type ListMonstersRequest struct {
	NameFirst string `form:"name.first"`
	NameLast  string `form:"name.last"`
	SortBy    string `form:"sortBy"`    // field:asc or field:desc
	ProjectBy string `form:"projectBy"` // field:hide or field:include
	Limit     int    `form:"limit"`
	Page      int    `form:"page"`
}

func (r ListMonstersRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SortBy,
			validation.Match(sortByPattern).Error("sortBy must be in the form field:asc or field:desc"),
		),
		validation.Field(&r.ProjectBy,
			validation.Match(projectByPattern).Error("projectBy must be in the form field:hide or field:include"),
		),
		validation.Field(&r.Limit, validation.Min(0), validation.Max(maxQueryLimit)),
		validation.Field(&r.Page, validation.Min(0)),
	)
}

// Normalize fills in the pagination defaults (limit=10, page=1).
func (r *ListMonstersRequest) Normalize() {
	if r.Limit <= 0 {
		r.Limit = defaultLimit
	}
	if r.Page <= 0 {
		r.Page = defaultPage
	}
}

// Filter extracts the free-text filter part of the query.
func (r ListMonstersRequest) Filter() MonsterFilter {
	return MonsterFilter{
		NameFirst: r.NameFirst,
		NameLast:  r.NameLast,
	}
}

// ========================================
// RESPONSES
// ========================================

// QueryResult is the page envelope: results plus page metadata.
// Results is []*Monster, or []map[string]interface{} when projectBy reshapes it.
type QueryResult struct {
	Results      interface{} `json:"results"`
	Page         int         `json:"page"`
	Limit        int         `json:"limit"`
	TotalPages   int         `json:"totalPages"`
	TotalResults int         `json:"totalResults"`
}

// NewQueryResult computes totalPages = ceil(total/limit).
func NewQueryResult(results interface{}, page, limit, total int) *QueryResult {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return &QueryResult{
		Results:      results,
		Page:         page,
		Limit:        limit,
		TotalPages:   totalPages,
		TotalResults: total,
	}
}

// NewMonster builds the entity from a validated create request.
// ID, timestamps and the password hash are set by the service.
func (r CreateMonsterRequest) NewMonster() *Monster {
	m := &Monster{
		Name: MonsterName{
			First: r.Name.First,
			Last:  r.Name.Last,
			Title: r.Name.Title,
		},
		Description: r.Description,
		Nationality: r.Nationality,
		Image:       r.Image,
		GoldBalance: decimal.Zero,
		Likes:       0,
	}

	if r.Gender != "" {
		gender := r.Gender
		m.Gender = &gender
	}
	if r.GoldBalance != nil {
		m.GoldBalance = decimal.NewFromFloat(*r.GoldBalance)
	}
	if r.Speed != nil {
		m.Speed = *r.Speed
	}
	if r.Health != nil {
		m.Health = *r.Health
	}
	if r.SecretNotes != "" {
		notes := r.SecretNotes
		m.SecretNotes = &notes
	}
	if r.Author != "" {
		if authorID, err := uuid.Parse(r.Author); err == nil {
			m.AuthorID = &authorID
		}
	}

	return m
}

// ApplyTo merges the present patch fields onto the monster.
// monsterPassword is handled by the service because it needs hashing.
func (r UpdateMonsterRequest) ApplyTo(m *Monster) {
	if r.Name != nil {
		if r.Name.First != nil {
			m.Name.First = *r.Name.First
		}
		if r.Name.Last != nil {
			m.Name.Last = *r.Name.Last
		}
		if r.Name.Title != nil {
			m.Name.Title = *r.Name.Title
		}
	}
	if r.Gender != nil {
		m.Gender = r.Gender
	}
	if r.Description != nil {
		m.Description = *r.Description
	}
	if r.Nationality != nil {
		m.Nationality = r.Nationality
	}
	if r.Image != nil {
		m.Image = *r.Image
	}
	if r.GoldBalance != nil {
		m.GoldBalance = decimal.NewFromFloat(*r.GoldBalance)
	}
	if r.Speed != nil {
		m.Speed = *r.Speed
	}
	if r.Health != nil {
		m.Health = *r.Health
	}
	if r.SecretNotes != nil {
		m.SecretNotes = r.SecretNotes
	}
}
