package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// ComplaintFilter narrows administrator listings by status.
type ComplaintFilter struct {
	Statuses        []domain.ComplaintStatus
	ExcludeStatuses []domain.ComplaintStatus
}

// ComplaintRepository encapsulates complaint persistence. Listings are ordered
// by creation time, oldest first.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	GetByID(ctx context.Context, id string) (*domain.Complaint, error)
	UpdateStatus(ctx context.Context, id string, status domain.ComplaintStatus) (*domain.Complaint, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Complaint, error)
	ListWithOwner(ctx context.Context, filter ComplaintFilter) ([]domain.ComplaintWithOwner, error)
}

type complaintRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintRepository instantiates repository.
func NewComplaintRepository(pool *pgxpool.Pool) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

const complaintColumns = `c.id, c.user_id, c.room_no, c.mobile_no, c.roll_no, c.title, c.description,
               c.status, c.created_at, c.updated_at`

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        INSERT INTO complaints (user_id, room_no, mobile_no, roll_no, title, description, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		complaint.OwnerID,
		complaint.RoomNo,
		complaint.MobileNo,
		complaint.RollNo,
		complaint.Title,
		complaint.Description,
		complaint.Status,
	).Scan(&complaint.ID, &complaint.CreatedAt, &complaint.UpdatedAt)
}

func (r *complaintRepository) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints c WHERE c.id=$1`
	return scanComplaint(r.pool.QueryRow(ctx, query, id))
}

// UpdateStatus overwrites the status and returns the stored row, or
// pgx.ErrNoRows when the complaint does not exist.
func (r *complaintRepository) UpdateStatus(ctx context.Context, id string, status domain.ComplaintStatus) (*domain.Complaint, error) {
	query := `
        UPDATE complaints c SET status=$1, updated_at=NOW()
        WHERE c.id=$2
        RETURNING ` + complaintColumns
	return scanComplaint(r.pool.QueryRow(ctx, query, status, id))
}

// ListByOwner fills only the fields shown to the owner.
func (r *complaintRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Complaint, error) {
	const query = `
        SELECT id, user_id, title, description, status, created_at
        FROM complaints WHERE user_id=$1
        ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Complaint
	for rows.Next() {
		var complaint domain.Complaint
		if err := rows.Scan(
			&complaint.ID,
			&complaint.OwnerID,
			&complaint.Title,
			&complaint.Description,
			&complaint.Status,
			&complaint.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, complaint)
	}
	return result, rows.Err()
}

func (r *complaintRepository) ListWithOwner(ctx context.Context, filter ComplaintFilter) ([]domain.ComplaintWithOwner, error) {
	query, args := buildOwnerListQuery(filter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ComplaintWithOwner
	for rows.Next() {
		var item domain.ComplaintWithOwner
		if err := rows.Scan(
			&item.ID,
			&item.OwnerID,
			&item.RoomNo,
			&item.MobileNo,
			&item.RollNo,
			&item.Title,
			&item.Description,
			&item.Status,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.Owner.Name,
			&item.Owner.Email,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func buildOwnerListQuery(filter ComplaintFilter) (string, []any) {
	base := `SELECT ` + complaintColumns + `, u.name, u.email
             FROM complaints c JOIN users u ON u.id = c.user_id`
	clauses := []string{"1=1"}
	args := []any{}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("c.status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.ExcludeStatuses) > 0 {
		placeholders := make([]string, len(filter.ExcludeStatuses))
		for i, status := range filter.ExcludeStatuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("c.status NOT IN (%s)", strings.Join(placeholders, ",")))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY c.created_at ASC, c.id ASC`, base, strings.Join(clauses, " AND "))
	return query, args
}

func scanComplaint(row pgx.Row) (*domain.Complaint, error) {
	var complaint domain.Complaint
	if err := row.Scan(
		&complaint.ID,
		&complaint.OwnerID,
		&complaint.RoomNo,
		&complaint.MobileNo,
		&complaint.RollNo,
		&complaint.Title,
		&complaint.Description,
		&complaint.Status,
		&complaint.CreatedAt,
		&complaint.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &complaint, nil
}
