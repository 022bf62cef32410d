package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/linstore/linstore-api/internal/model"
)

// UserRepo encapsulates all database access for accounts: registration,
// lookup, profile patching and the password-recovery token lifecycle.
type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = `id, email, username, password_hash, COALESCE(google_uid,''), role,
	COALESCE(basket_id,0), firstname, lastname, surname, phone, birthday,
	COALESCE(reset_token,''), reset_expires_at, created_at, updated_at`

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.GoogleUID, &u.Role,
		&u.BasketID, &u.Firstname, &u.Lastname, &u.Surname, &u.Phone, &u.Birthday,
		&u.ResetToken, &u.ResetExpiresAt, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// Register creates a local account together with its three dependent rows
// (basket, recently-viewed list, save list) and back-fills the user's basket
// reference. All five writes run in one transaction so a failure partway
// through never leaves a user without a basket.
func (r *UserRepo) Register(ctx context.Context, email, username, passwordHash string) (model.User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.User{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO users (email, username, password_hash, role) VALUES (?,?,?,?)",
		email, username, passwordHash, model.RoleUser)
	if err != nil {
		if isDuplicateKey(err) {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	userID, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	basketID, err := createDependentRows(ctx, tx, uint64(userID))
	if err != nil {
		return model.User{}, err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE users SET basket_id=? WHERE id=?", basketID, userID); err != nil {
		return model.User{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.User{}, err
	}
	committed = true
	return r.GetByID(ctx, uint64(userID))
}

// RegisterGoogle mirrors Register for a Google-federated account: identity
// is keyed by the external uid and no password hash is stored. The same
// dependent rows are created in the same transaction.
func (r *UserRepo) RegisterGoogle(ctx context.Context, uid, email, username string) (model.User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.User{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO users (email, username, password_hash, google_uid, role) VALUES (?,?,'',?,?)",
		email, username, uid, model.RoleUser)
	if err != nil {
		if isDuplicateKey(err) {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	userID, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	basketID, err := createDependentRows(ctx, tx, uint64(userID))
	if err != nil {
		return model.User{}, err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE users SET basket_id=? WHERE id=?", basketID, userID); err != nil {
		return model.User{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.User{}, err
	}
	committed = true
	return r.GetByID(ctx, uint64(userID))
}

// createDependentRows inserts the basket, old-views and save-list containers
// for a new user inside the registration transaction and returns the basket
// id for back-filling.
func createDependentRows(ctx context.Context, tx *sql.Tx, userID uint64) (uint64, error) {
	res, err := tx.ExecContext(ctx, "INSERT INTO baskets (user_id) VALUES (?)", userID)
	if err != nil {
		return 0, err
	}
	basketID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO old_views (user_id) VALUES (?)", userID); err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO save_lists (user_id) VALUES (?)", userID); err != nil {
		return 0, err
	}
	return uint64(basketID), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// GetByGoogleUID fetches a federated account by its external uid.
func (r *UserRepo) GetByGoogleUID(ctx context.Context, uid string) (model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE google_uid=? LIMIT 1", uid))
}

// UpdateProfile patches the whitelisted profile fields of a user. Values
// are written as given; per-field validation happens in the handler.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, p model.Profile) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET username=?, firstname=?, lastname=?, surname=?, phone=?, birthday=?
		 WHERE id=?`,
		p.Username, p.Firstname, p.Lastname, p.Surname, p.Phone, p.Birthday, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// MySQL reports zero rows both for a missing user and for a no-op
		// update; confirm existence before reporting not found.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// SetResetToken stores a recovery token and its expiry on the user
// identified by email.
func (r *UserRepo) SetResetToken(ctx context.Context, email, token string, expiresAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET reset_token=?, reset_expires_at=? WHERE email=?",
		token, expiresAt.UTC(), strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByResetToken fetches the user holding an outstanding recovery token.
// ErrNotFound means the token was never issued or already consumed;
// ErrTokenExpired means it exists but its three-minute window has passed.
func (r *UserRepo) GetByResetToken(ctx context.Context, token string) (model.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE reset_token=? LIMIT 1", token))
	if err != nil {
		return model.User{}, err
	}
	if u.ResetExpiresAt == nil || time.Now().UTC().After(u.ResetExpiresAt.UTC()) {
		return model.User{}, ErrTokenExpired
	}
	return u, nil
}

// ConsumeResetToken finishes the recovery flow in one transaction: the token
// and expiry are cleared, the previous hash is pushed onto the password
// history and the new hash is persisted. Clearing the token makes it
// single-use; a replayed link no longer matches any row.
func (r *UserRepo) ConsumeResetToken(ctx context.Context, token, newHash string) error {
	u, err := r.GetByResetToken(ctx, token)
	if err != nil {
		return err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// The WHERE clause repeats the token so a concurrent consumption of the
	// same link makes exactly one of the two transactions win.
	res, err := tx.ExecContext(ctx,
		"UPDATE users SET password_hash=?, reset_token=NULL, reset_expires_at=NULL WHERE id=? AND reset_token=?",
		newHash, u.ID, token)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	if u.PasswordHash != "" {
		hist := model.PasswordHistoryEntry{UserID: u.ID, PasswordHash: u.PasswordHash}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO password_history (user_id, password_hash) VALUES (?,?)",
			hist.UserID, hist.PasswordHash); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// isDuplicateKey detects MySQL error 1062 (duplicate entry) without binding
// to the driver's error type.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
