package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/harborlane/tenantd/internal/accounts/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, tenant_id, email, password_hash, role, is_active, last_login_at, created_at, updated_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.TenantUser, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM tenant_users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByTenantAndEmail(ctx context.Context, tenantID, email string) (domain.TenantUser, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM tenant_users WHERE tenant_id = ? AND email = ?`,
		tenantID, email)
	return scanUser(row)
}

func (r *usersRepo) ListUsersByTenant(ctx context.Context, tenantID string) ([]domain.TenantUser, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM tenant_users
		 WHERE tenant_id = ? ORDER BY created_at DESC, id DESC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TenantUser
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.TenantUser) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tenant_users (id, tenant_id, email, password_hash, role, is_active, last_login_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.TenantID, u.Email, u.PasswordHash, string(u.Role), u.IsActive,
		mapOptionalTime(u.LastLoginAt), u.CreatedAt, u.UpdatedAt)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateUser(ctx context.Context, id string, role domain.Role, isActive bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tenant_users SET role = ?, is_active = ?, updated_at = ? WHERE id = ?`,
		string(role), isActive, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, id string, newHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tenant_users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tenant_users SET last_login_at = ? WHERE id = ?`, at, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) DeleteUser(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tenant_users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanUser(row rowScanner) (domain.TenantUser, error) {
	var (
		u         domain.TenantUser
		role      string
		lastLogin sql.NullTime
	)
	err := row.Scan(&u.ID, &u.TenantID, &u.Email, &u.PasswordHash, &role,
		&u.IsActive, &lastLogin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.TenantUser{}, mapNotFound(err)
	}
	u.Role = domain.Role(role)
	u.LastLoginAt = mapNullTimePtr(lastLogin)
	return u, nil
}
