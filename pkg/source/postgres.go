package source

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/referralworks/refnet/pkg/record"
	"github.com/referralworks/refnet/pkg/referral"
)

// Postgres reads record snapshots from the collaborator store. The store
// owns the schema and the identifier assignment; this adapter only reads.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a source over an existing connection pool. The caller
// owns the pool's lifecycle.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

const snapshotQuery = `
SELECT id, kind, referral_code, referred_by, name, phone, city
FROM referral_records
ORDER BY id`

const directoryQuery = `
SELECT referral_code, name, profile_url
FROM referral_records
WHERE kind = 'recruiter' AND referral_code IS NOT NULL`

// Snapshot implements RecordSource with a single atomic read.
func (p *Postgres) Snapshot(ctx context.Context) ([]record.Record, error) {
	rows, err := p.pool.Query(ctx, snapshotQuery)
	if err != nil {
		return nil, &SourceError{Op: "snapshot", Source: "postgres", Cause: err}
	}
	defer rows.Close()

	var out []record.Record
	for rows.Next() {
		var (
			rec  record.Record
			kind *string
			opt  [5]*string // code, referrer, name, phone, city
		)
		if err := rows.Scan(&rec.ID, &kind, &opt[0], &opt[1], &opt[2], &opt[3], &opt[4]); err != nil {
			return nil, &SourceError{Op: "snapshot", Source: "postgres", Cause: err}
		}
		rec.Kind = record.ParseKind(deref(kind))
		rec.Code = deref(opt[0])
		rec.ReferrerCode = deref(opt[1])
		rec.Name = deref(opt[2])
		rec.Phone = deref(opt[3])
		rec.City = deref(opt[4])
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &SourceError{Op: "snapshot", Source: "postgres", Cause: err}
	}
	return out, nil
}

// RecruiterDirectory implements referral.DirectoryProvider. The lookup table
// is materialized once per build and handed to the pipeline read-only.
func (p *Postgres) RecruiterDirectory(ctx context.Context) (referral.RecruiterDirectory, error) {
	rows, err := p.pool.Query(ctx, directoryQuery)
	if err != nil {
		return nil, &SourceError{Op: "directory", Source: "postgres", Cause: err}
	}
	defer rows.Close()

	dir := referral.StaticDirectory{}
	for rows.Next() {
		var code, name, url *string
		if err := rows.Scan(&code, &name, &url); err != nil {
			return nil, &SourceError{Op: "directory", Source: "postgres", Cause: err}
		}
		if deref(code) == "" {
			continue
		}
		dir[referral.CanonicalCode(deref(code))] = referral.RecruiterInfo{
			Name: deref(name),
			URL:  deref(url),
		}
	}
	if err := rows.Err(); err != nil {
		return nil, &SourceError{Op: "directory", Source: "postgres", Cause: err}
	}
	return dir, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
