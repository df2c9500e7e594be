package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"monster-backend/internal/domains/monster/model"
	"monster-backend/pkg/database"
)

// monsterColumns is the SELECT list shared by every monster read.
// likes is computed per read; only records with liked = true count.
const monsterColumns = `
	m.id, m.name_first, m.name_last, m.name_title,
	m.gender, m.description, m.nationality, m.image,
	m.gold_balance, m.speed, m.health, m.secret_notes,
	m.password_hash, m.author_id, m.created_at, m.updated_at,
	(SELECT COUNT(*) FROM monster_likes ml WHERE ml.monster_id = m.id AND ml.liked) AS likes
`

// sortColumns whitelists sortBy fields before they reach ORDER BY.
var sortColumns = map[string]string{
	"name.first":  "m.name_first",
	"name.last":   "m.name_last",
	"speed":       "m.speed",
	"health":      "m.health",
	"goldBalance": "m.gold_balance",
	"createdAt":   "m.created_at",
	"likes":       "likes",
}

type postgresMonsterRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresMonsterRepository(pool *pgxpool.Pool) MonsterRepository {
	return &postgresMonsterRepository{pool: pool}
}

// ========================================
// CRUD
// ========================================

func (r *postgresMonsterRepository) Create(ctx context.Context, monster *model.Monster) error {
	query := `
		INSERT INTO monsters (
			id, name_first, name_last, name_title,
			gender, description, nationality, image,
			gold_balance, speed, health, secret_notes,
			password_hash, author_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.pool.Exec(ctx, query,
		monster.ID,
		monster.Name.First,
		monster.Name.Last,
		monster.Name.Title,
		monster.Gender,
		monster.Description,
		pq.Array(monster.Nationality),
		monster.Image,
		monster.GoldBalance,
		monster.Speed,
		monster.Health,
		monster.SecretNotes,
		monster.PasswordHash,
		monster.AuthorID,
		monster.CreatedAt,
		monster.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create monster: %w", err)
	}

	return nil
}

func scanMonster(row pgx.Row) (*model.Monster, error) {
	monster := &model.Monster{}
	var nationality []string

	err := row.Scan(
		&monster.ID,
		&monster.Name.First,
		&monster.Name.Last,
		&monster.Name.Title,
		&monster.Gender,
		&monster.Description,
		pq.Array(&nationality),
		&monster.Image,
		&monster.GoldBalance,
		&monster.Speed,
		&monster.Health,
		&monster.SecretNotes,
		&monster.PasswordHash,
		&monster.AuthorID,
		&monster.CreatedAt,
		&monster.UpdatedAt,
		&monster.Likes,
	)
	if err != nil {
		return nil, err
	}

	monster.Nationality = nationality
	return monster, nil
}

func (r *postgresMonsterRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Monster, error) {
	query := `SELECT ` + monsterColumns + ` FROM monsters m WHERE m.id = $1`

	monster, err := scanMonster(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrMonsterNotFound
		}
		return nil, fmt.Errorf("failed to get monster: %w", err)
	}

	return monster, nil
}

func (r *postgresMonsterRepository) GetByIDAndAuthor(ctx context.Context, id, authorID uuid.UUID) (*model.Monster, error) {
	query := `SELECT ` + monsterColumns + ` FROM monsters m WHERE m.id = $1 AND m.author_id = $2`

	monster, err := scanMonster(r.pool.QueryRow(ctx, query, id, authorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrMonsterNotFound
		}
		return nil, fmt.Errorf("failed to get monster: %w", err)
	}

	return monster, nil
}

func (r *postgresMonsterRepository) List(
	ctx context.Context,
	filter model.MonsterFilter,
	sortBy string,
	page, limit int,
) ([]*model.Monster, int, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	argCount := 1

	if filter.NameFirst != "" {
		where += fmt.Sprintf(" AND m.name_first ILIKE $%d", argCount)
		args = append(args, "%"+filter.NameFirst+"%")
		argCount++
	}

	if filter.NameLast != "" {
		where += fmt.Sprintf(" AND m.name_last ILIKE $%d", argCount)
		args = append(args, "%"+filter.NameLast+"%")
		argCount++
	}

	query := `SELECT ` + monsterColumns + ` FROM monsters m` + where

	if orderBy, err := buildOrderBy(sortBy); err != nil {
		return nil, 0, err
	} else if orderBy != "" {
		query += " ORDER BY " + orderBy
	}

	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list monsters: %w", err)
	}
	defer rows.Close()

	var monsters []*model.Monster
	for rows.Next() {
		monster, err := scanMonster(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan monster: %w", err)
		}
		monsters = append(monsters, monster)
	}

	countQuery := `SELECT COUNT(*) FROM monsters m` + where
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args[:argCount-1]...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count monsters: %w", err)
	}

	return monsters, total, nil
}

// buildOrderBy translates "field:asc|desc" through the sort whitelist.
func buildOrderBy(sortBy string) (string, error) {
	if sortBy == "" {
		return "", nil
	}

	parts := strings.SplitN(sortBy, ":", 2)
	column, ok := sortColumns[parts[0]]
	if !ok {
		return "", fmt.Errorf("%w: %s", model.ErrInvalidSortField, parts[0])
	}

	direction := "ASC"
	if len(parts) == 2 && strings.EqualFold(parts[1], "desc") {
		direction = "DESC"
	}

	return column + " " + direction, nil
}

func (r *postgresMonsterRepository) ListByLikes(ctx context.Context) ([]*model.Monster, error) {
	query := `SELECT ` + monsterColumns + ` FROM monsters m ORDER BY likes DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list monsters by likes: %w", err)
	}
	defer rows.Close()

	var monsters []*model.Monster
	for rows.Next() {
		monster, err := scanMonster(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan monster: %w", err)
		}
		monsters = append(monsters, monster)
	}

	return monsters, nil
}

func (r *postgresMonsterRepository) Update(ctx context.Context, monster *model.Monster) error {
	query := `
		UPDATE monsters
		SET
			name_first = $2,
			name_last = $3,
			name_title = $4,
			gender = $5,
			description = $6,
			nationality = $7,
			image = $8,
			gold_balance = $9,
			speed = $10,
			health = $11,
			secret_notes = $12,
			password_hash = $13,
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		monster.ID,
		monster.Name.First,
		monster.Name.Last,
		monster.Name.Title,
		monster.Gender,
		monster.Description,
		pq.Array(monster.Nationality),
		monster.Image,
		monster.GoldBalance,
		monster.Speed,
		monster.Health,
		monster.SecretNotes,
		monster.PasswordHash,
	)

	if err != nil {
		return fmt.Errorf("failed to update monster: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrMonsterNotFound
	}

	return nil
}

func (r *postgresMonsterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM monsters WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete monster: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrMonsterNotFound
	}

	return nil
}

// ========================================
// GOLD
// ========================================

// TransferGold runs the conditional decrement and the ledger insert in one
// transaction: both commit or neither does. The gold_balance >= amount guard
// makes concurrent drains safe; the loser reads as insufficient gold.
func (r *postgresMonsterRepository) TransferGold(
	ctx context.Context,
	monsterID, userID uuid.UUID,
	amount decimal.Decimal,
) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		decrement := `
			UPDATE monsters
			SET gold_balance = gold_balance - $2, updated_at = NOW()
			WHERE id = $1 AND gold_balance >= $2
		`

		result, err := tx.Exec(ctx, decrement, monsterID, amount)
		if err != nil {
			return fmt.Errorf("failed to decrement gold balance: %w", err)
		}

		if result.RowsAffected() == 0 {
			return model.ErrInsufficientGold
		}

		ledger := `
			INSERT INTO user_gold (id, user_id, monster_id, gold, created_at, updated_at)
			VALUES ($1, $2, $3, $4, NOW(), NOW())
		`

		if _, err := tx.Exec(ctx, ledger, uuid.New(), userID, monsterID, amount); err != nil {
			return fmt.Errorf("failed to create gold ledger record: %w", err)
		}

		return nil
	})
}

// ========================================
// LIKES
// ========================================

func (r *postgresMonsterRepository) GetLike(ctx context.Context, monsterID, userID uuid.UUID) (*model.MonsterLike, error) {
	query := `
		SELECT id, user_id, monster_id, liked, created_at, updated_at
		FROM monster_likes
		WHERE monster_id = $1 AND user_id = $2
	`

	like := &model.MonsterLike{}
	err := r.pool.QueryRow(ctx, query, monsterID, userID).Scan(
		&like.ID,
		&like.UserID,
		&like.MonsterID,
		&like.Liked,
		&like.CreatedAt,
		&like.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrLikeNotFound
		}
		return nil, fmt.Errorf("failed to get monster like: %w", err)
	}

	return like, nil
}

func (r *postgresMonsterRepository) CreateLike(ctx context.Context, like *model.MonsterLike) error {
	query := `
		INSERT INTO monster_likes (id, user_id, monster_id, liked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		like.ID,
		like.UserID,
		like.MonsterID,
		like.Liked,
		like.CreatedAt,
		like.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create monster like: %w", err)
	}

	return nil
}

func (r *postgresMonsterRepository) UpdateLike(ctx context.Context, like *model.MonsterLike) error {
	query := `
		UPDATE monster_likes
		SET liked = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, like.ID, like.Liked)
	if err != nil {
		return fmt.Errorf("failed to update monster like: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrLikeNotFound
	}

	return nil
}
