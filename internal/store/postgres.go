package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	model "github.com/MassBabyGeek/StudyPulse-backend/internal/models"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/scanner"
	"github.com/MassBabyGeek/StudyPulse-backend/internal/xp"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres implémente xp.UserStore au-dessus du pool pgx.
// Les utilisateurs supprimés (soft delete) sont invisibles partout.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT `+scanner.UserColumns+`
		 FROM users WHERE id=$1 AND deleted_at IS NULL`,
		id,
	)

	user, err := scanner.ScanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xp.ErrUserNotFound
		}
		return nil, fmt.Errorf("could not load user: %w", err)
	}
	return user, nil
}

// orderClause traduit un tri du classement en ORDER BY.
// Chaque tri porte un tie-break stable, comme dans l'application d'origine.
func orderClause(sortBy string) string {
	switch sortBy {
	case xp.SortByLevel:
		return "level DESC, xp DESC, last_active DESC"
	case xp.SortByQuizzes:
		return "total_quizzes DESC, xp DESC, last_active DESC"
	case xp.SortByAccuracy:
		return "average_score DESC, xp DESC, last_active DESC"
	case xp.SortByRecent:
		return "last_active DESC, xp DESC"
	default:
		return "xp DESC, last_active DESC"
	}
}

func (p *Postgres) Find(ctx context.Context, q xp.UserQuery) ([]model.User, error) {
	sqlQuery := `SELECT ` + scanner.UserColumns + `
		FROM users
		WHERE deleted_at IS NULL AND xp >= $1`
	args := []interface{}{q.MinXP}

	if !q.ActiveSince.IsZero() {
		args = append(args, q.ActiveSince)
		sqlQuery += fmt.Sprintf(" AND last_active >= $%d", len(args))
	}

	sqlQuery += " ORDER BY " + orderClause(q.SortBy)

	if q.Limit > 0 {
		args = append(args, q.Limit)
		sqlQuery += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if q.Skip > 0 {
		args = append(args, q.Skip)
		sqlQuery += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := p.pool.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("could not query users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanner.ScanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan user row: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// Count compte les utilisateurs correspondant au filtre, pagination ignorée
func (p *Postgres) Count(ctx context.Context, q xp.UserQuery) (int, error) {
	sqlQuery := `SELECT COUNT(*) FROM users WHERE deleted_at IS NULL AND xp >= $1`
	args := []interface{}{q.MinXP}

	if !q.ActiveSince.IsZero() {
		args = append(args, q.ActiveSince)
		sqlQuery += fmt.Sprintf(" AND last_active >= $%d", len(args))
	}

	var total int
	if err := p.pool.QueryRow(ctx, sqlQuery, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("could not count users: %w", err)
	}
	return total, nil
}

// jsonList encode une slice en JSON, une slice nil devient un tableau vide
func jsonList(v interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(b) == "null" {
		return []byte("[]"), nil
	}
	return b, nil
}

// Save réécrit le document utilisateur entier (last-write-wins)
func (p *Postgres) Save(ctx context.Context, user *model.User) error {
	badges, err := jsonList(user.Badges)
	if err != nil {
		return fmt.Errorf("could not encode badges: %w", err)
	}
	history, err := jsonList(user.QuizHistory)
	if err != nil {
		return fmt.Errorf("could not encode quiz history: %w", err)
	}
	plans, err := jsonList(user.StudyPlans)
	if err != nil {
		return fmt.Errorf("could not encode study plans: %w", err)
	}

	res, err := p.pool.Exec(ctx,
		`UPDATE users SET
			username=$2, avatar=$3, bio=$4, interests=$5,
			xp=$6, level=$7, badges=$8, quiz_history=$9, study_plans=$10,
			total_quizzes=$11, total_correct=$12, average_score=$13,
			last_active=$14, updated_at=NOW()
		 WHERE id=$1 AND deleted_at IS NULL`,
		user.ID, user.Username, user.Avatar, user.Bio, user.Interests,
		user.XP, user.Level, badges, history, plans,
		user.QuizStats.TotalQuizzes, user.QuizStats.TotalCorrect, user.QuizStats.AverageScore,
		user.LastActive,
	)
	if err != nil {
		return fmt.Errorf("could not save user: %w", err)
	}
	if res.RowsAffected() == 0 {
		return xp.ErrUserNotFound
	}
	return nil
}

// IncrementXP incrémente l'XP atomiquement côté base et retourne la ligne
// après incrément. Le niveau retourné reflète encore l'XP d'avant.
func (p *Postgres) IncrementXP(ctx context.Context, id string, amount int) (*model.User, error) {
	row := p.pool.QueryRow(ctx,
		`UPDATE users SET xp = xp + $2, updated_at=NOW()
		 WHERE id=$1 AND deleted_at IS NULL
		 RETURNING `+scanner.UserColumns,
		id, amount,
	)

	user, err := scanner.ScanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xp.ErrUserNotFound
		}
		return nil, fmt.Errorf("could not increment xp: %w", err)
	}
	return user, nil
}

// CreateUser insère un nouvel utilisateur (XP 0, niveau 1, badges vides)
func (p *Postgres) CreateUser(ctx context.Context, username, email, passwordHash string) (*model.User, error) {
	row := p.pool.QueryRow(ctx,
		`INSERT INTO users(username, email, password_hash, join_date, last_active, created_at, updated_at)
		 VALUES($1, $2, $3, NOW(), NOW(), NOW(), NOW())
		 RETURNING `+scanner.UserColumns,
		username, email, passwordHash,
	)

	user, err := scanner.ScanUser(row)
	if err != nil {
		return nil, fmt.Errorf("could not create user: %w", err)
	}
	return user, nil
}

// FindByEmailWithPassword recherche un utilisateur par email et retourne
// aussi le hash du mot de passe
func (p *Postgres) FindByEmailWithPassword(ctx context.Context, email string) (*model.User, string, error) {
	var id, passwordHash string
	err := p.pool.QueryRow(ctx,
		`SELECT id, password_hash FROM users WHERE email=$1 AND deleted_at IS NULL`,
		email,
	).Scan(&id, &passwordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", xp.ErrUserNotFound
		}
		return nil, "", fmt.Errorf("could not look up user: %w", err)
	}

	user, err := p.FindByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return user, passwordHash, nil
}
