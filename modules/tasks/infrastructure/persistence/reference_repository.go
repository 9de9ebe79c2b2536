package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskdock/importer/modules/tasks/domain/importentry"
)

const (
	listsQuery      = `SELECT id, name, project_id FROM task_lists`
	projectsQuery   = `SELECT id, name FROM projects`
	usersQuery      = `SELECT id, name FROM users`
	membershipQuery = `SELECT task_list_id, user_id FROM task_list_members`
)

// ReferenceRepository loads the lookup snapshot the validator resolves
// rows against. The snapshot is read once per import invocation and
// treated as immutable afterwards.
type ReferenceRepository struct {
	db *pgxpool.Pool
}

func NewReferenceRepository(db *pgxpool.Pool) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

func (r *ReferenceRepository) Snapshot(ctx context.Context) (*importentry.ReferenceSet, error) {
	refs := &importentry.ReferenceSet{
		Lists:      map[int]importentry.ListRef{},
		Projects:   map[int]string{},
		Users:      map[string]string{},
		Membership: map[int]map[string]struct{}{},
	}

	rows, err := r.db.Query(ctx, listsQuery)
	if err != nil {
		return nil, errors.Wrap(err, "query task lists")
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id        int
			name      string
			projectID int
		)
		if err := rows.Scan(&id, &name, &projectID); err != nil {
			return nil, errors.Wrap(err, "scan task list")
		}
		refs.Lists[id] = importentry.ListRef{Name: name, ProjectID: projectID}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate task lists")
	}

	projectRows, err := r.db.Query(ctx, projectsQuery)
	if err != nil {
		return nil, errors.Wrap(err, "query projects")
	}
	defer projectRows.Close()
	for projectRows.Next() {
		var (
			id   int
			name string
		)
		if err := projectRows.Scan(&id, &name); err != nil {
			return nil, errors.Wrap(err, "scan project")
		}
		refs.Projects[id] = name
	}
	if err := projectRows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate projects")
	}

	userRows, err := r.db.Query(ctx, usersQuery)
	if err != nil {
		return nil, errors.Wrap(err, "query users")
	}
	defer userRows.Close()
	for userRows.Next() {
		var id, name string
		if err := userRows.Scan(&id, &name); err != nil {
			return nil, errors.Wrap(err, "scan user")
		}
		refs.Users[id] = name
	}
	if err := userRows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate users")
	}

	memberRows, err := r.db.Query(ctx, membershipQuery)
	if err != nil {
		return nil, errors.Wrap(err, "query list membership")
	}
	defer memberRows.Close()
	for memberRows.Next() {
		var (
			listID int
			userID string
		)
		if err := memberRows.Scan(&listID, &userID); err != nil {
			return nil, errors.Wrap(err, "scan list membership")
		}
		if _, ok := refs.Membership[listID]; !ok {
			refs.Membership[listID] = map[string]struct{}{}
		}
		refs.Membership[listID][userID] = struct{}{}
	}
	if err := memberRows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate list membership")
	}

	return refs, nil
}
